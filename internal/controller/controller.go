// Package controller is the pet's orchestrator. It owns the Pet record and
// is the only code that mutates it: actions, pointer and resize events and
// the mover all go through a Controller.
package controller

import (
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/sethgrid/deskpet/internal/behavior"
	"github.com/sethgrid/deskpet/internal/boundary"
	"github.com/sethgrid/deskpet/internal/bubble"
	"github.com/sethgrid/deskpet/internal/gallery"
	"github.com/sethgrid/deskpet/internal/interaction"
	"github.com/sethgrid/deskpet/internal/pet"
	"github.com/sethgrid/deskpet/internal/sched"
	"github.com/sethgrid/deskpet/internal/sound"
	"github.com/sethgrid/deskpet/internal/speech"
)

// Bubble durations.
const (
	shortBubble   = 2 * time.Second
	longBubble    = 3 * time.Second
	timeBubble    = 4 * time.Second
	holdCheckTick = 100 * time.Millisecond
)

type Options struct {
	Config  pet.PetConfig
	Width   int
	Height  int
	Lines   *speech.Lines
	Sound   sound.Player
	Gallery *gallery.Gallery
	Rand    *rand.Rand
	Log     *zap.Logger
}

type Controller struct {
	cfg     pet.PetConfig
	sched   *sched.Scheduler
	pet     *pet.Pet
	size    pet.Size
	bounds  *boundary.Detector
	bubble  *bubble.System
	clicks  *interaction.Handler
	behave  *behavior.Scheduler
	lines   *speech.Lines
	sound   sound.Player
	gallery *gallery.Gallery
	rng     *rand.Rand
	log     *zap.Logger

	move     *move
	action   *sched.Sequence
	flashes  map[pet.Effect]*sched.Sequence
	hold     *sched.Timer
	welcome  *sched.Timer
	settings bool
}

func New(s *sched.Scheduler, opts Options) *Controller {
	cfg := opts.Config
	cfg.Normalize()

	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	lines := opts.Lines
	if lines == nil {
		lines = speech.New(cfg.Locale, log)
	}
	player := opts.Sound
	if player == nil {
		player = sound.Nop{}
	}

	c := &Controller{
		cfg:     cfg,
		sched:   s,
		pet:     pet.New(cfg.Name),
		size:    cfg.Sprite,
		bounds:  boundary.NewDetector(cfg.Margin, opts.Width, opts.Height),
		lines:   lines,
		sound:   player,
		gallery: opts.Gallery,
		rng:     rng,
		log:     log,
		flashes: make(map[pet.Effect]*sched.Sequence),
	}
	c.bubble = bubble.New(s, c.Rect)
	c.clicks = interaction.NewHandler(c, cfg.DoubleClickWindow.Duration)
	c.behave = behavior.New(s, c.pet, c, behavior.Config{
		WanderInterval:   cfg.WanderInterval.Duration,
		BehaviorInterval: cfg.BehaviorInterval.Duration,
		ClockInterval:    cfg.ClockInterval.Duration,
	}, rng, log.Named("behavior"))
	return c
}

// Start drops the pet in from above and queues the welcome bubble. The
// idle-behavior and clock timers run from here on; only wandering waits for
// the landing.
func (c *Controller) Start() {
	c.startFallingAnimation()
	c.behave.Start()
	c.welcome.Stop()
	c.welcome = c.sched.AfterFunc(pet.WelcomeDelay, func() {
		c.Say(speech.Welcome, longBubble)
	})
}

// Stop cancels every timer and animation.
func (c *Controller) Stop() {
	c.interrupt()
	c.behave.Stop()
	c.welcome.Stop()
	c.hold.Stop()
	for e, f := range c.flashes {
		f.Cancel()
		delete(c.flashes, e)
	}
	c.bubble.Hide()
}

func (c *Controller) Advance(now time.Time) {
	c.sched.Advance(now)
}

func (c *Controller) Now() time.Time {
	return c.sched.Now()
}

func (c *Controller) Pet() *pet.Pet {
	return c.pet
}

func (c *Controller) Bubble() *bubble.System {
	return c.bubble
}

func (c *Controller) Size() pet.Size {
	return c.size
}

func (c *Controller) Lines() *speech.Lines {
	return c.lines
}

func (c *Controller) Wandering() bool {
	return c.behave.Wandering()
}

// Rect is the pet's current screen rectangle.
func (c *Controller) Rect() bubble.Rect {
	return bubble.Rect{X: c.pet.Position.X, Y: c.pet.Position.Y, W: c.size.W, H: c.size.H}
}

// Contains reports whether the cell (x, y) is on the pet.
func (c *Controller) Contains(x, y float64) bool {
	r := c.Rect()
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Resize refreshes the viewport and pulls the pet back inside it.
func (c *Controller) Resize(width, height int) {
	c.bounds.Resize(width, height)
	if c.pet.State == pet.StateFalling {
		return
	}
	c.clampToViewport()
}

func (c *Controller) clampToViewport() {
	w, h := c.bounds.Viewport()
	c.pet.Clamp(w, h, c.size)
}

// SetPose, Flash, Say and Chirp are the cosmetic hooks used by the click
// reaction.

func (c *Controller) SetPose(pose string) {
	c.pet.Pose = pose
}

// Flash turns an effect on for d, then off, then runs then. Flashing an
// effect again replaces the pending one.
func (c *Controller) Flash(e pet.Effect, d time.Duration, then func()) {
	c.flashes[e].Cancel()
	c.pet.SetEffect(e, true)
	c.flashes[e] = c.sched.Sequence(sched.Step{After: d, Do: func() {
		delete(c.flashes, e)
		c.pet.SetEffect(e, false)
		if then != nil {
			then()
		}
	}})
}

func (c *Controller) Say(key speech.Key, d time.Duration) {
	c.sayf(key, d)
}

func (c *Controller) sayf(key speech.Key, d time.Duration, args ...any) {
	c.bubble.Show(c.lines.Line(key, args...), d)
}

func (c *Controller) Chirp() {
	c.sound.Play(sound.CueClick)
}

// Click and DoubleClick are the pointer gestures on the pet.

func (c *Controller) Click() {
	if c.pet.IsDragging || c.pet.State == pet.StateEscaping {
		return
	}
	c.clicks.HandleClick(c.sched.Now())
}

func (c *Controller) DoubleClick() {
	c.clicks.HandleDoubleClick()
}

// PointerDown grabs the pet and reports whether a drag started. A sleeping
// pet wakes up instead.
func (c *Controller) PointerDown(x, y float64) bool {
	if c.pet.State == pet.StateSleeping {
		c.Wake()
		return false
	}

	c.interrupt()
	now := c.sched.Now()
	c.pet.IsDragging = true
	c.pet.DragStartTime = now
	c.pet.DragOrigin = c.pet.Position
	c.pet.State = pet.StateDragged
	c.pet.SetEffect(pet.EffectResisting, true)

	c.hold.Stop()
	c.hold = c.sched.Every(holdCheckTick, c.checkHold)
	c.log.Debug("drag start", zap.Float64("x", x), zap.Float64("y", y))
	return true
}

// PointerMove follows the pointer while dragging, holding the pet by its
// centre and keeping it fully on screen.
func (c *Controller) PointerMove(x, y float64) {
	if !c.pet.IsDragging {
		return
	}
	c.pet.Position = pet.Vec{X: x - c.size.W/2, Y: y - c.size.H/2}
	c.clampToViewport()
	c.checkHold()
}

// PointerUp drops the pet where it is and pauses wandering.
func (c *Controller) PointerUp() {
	if !c.pet.IsDragging {
		return
	}
	c.endDrag()
	c.behave.Pause(c.cfg.MovementPause.Duration)
	c.pet.State = pet.StateIdle
	c.log.Debug("drag end", zap.Float64("x", c.pet.Position.X), zap.Float64("y", c.pet.Position.Y))
}

// checkHold tilts a pet held longer than tiltAfter and, when escaping is
// enabled, lets it wriggle free after escapeAfter.
func (c *Controller) checkHold() {
	if !c.pet.IsDragging {
		return
	}
	held := c.sched.Now().Sub(c.pet.DragStartTime)
	if tiltAfter := c.cfg.TiltAfter.Duration; held > tiltAfter {
		c.pet.Tilt = float64(held-tiltAfter) / float64(100*time.Millisecond)
		if c.pet.State == pet.StateDragged {
			c.pet.State = pet.StateResisting
		}
	}
	if escape := c.cfg.EscapeAfter.Duration; escape > 0 && held > escape {
		c.Escape()
	}
}

func (c *Controller) endDrag() {
	c.hold.Stop()
	c.hold = nil
	c.pet.IsDragging = false
	c.pet.DragStartTime = time.Time{}
	c.pet.Tilt = 0
	c.pet.SetEffect(pet.EffectResisting, false)
}

// Escape force-releases a held pet, which runs to a random spot.
func (c *Controller) Escape() {
	if c.pet.State == pet.StateEscaping {
		return
	}
	if c.pet.IsDragging {
		c.endDrag()
	}
	c.interrupt()
	c.pet.State = pet.StateEscaping
	c.Say(speech.Escape, shortBubble)

	w, h := c.bounds.Viewport()
	target := pet.Vec{
		X: c.rng.Float64() * math.Max(0, w-c.size.W),
		Y: c.rng.Float64() * math.Max(0, h-c.size.H),
	}
	c.log.Info("escaped", zap.Float64("x", target.X), zap.Float64("y", target.Y))
	c.MoveTo(target.X, target.Y, pet.RelocateTime, func() {
		c.pet.State = pet.StateIdle
	})
}

// interrupt cancels the running move and action sequence and clears the
// effects they own.
func (c *Controller) interrupt() {
	c.cancelMove()
	c.action.Cancel()
	c.action = nil
	for _, e := range []pet.Effect{pet.EffectWalk, pet.EffectJump, pet.EffectButterfly, pet.EffectScale} {
		c.pet.SetEffect(e, false)
	}
	c.pet.Pose = pet.PoseStand
}
