package pet

import (
	"time"
)

type State string

const (
	StateIdle      State = "idle"
	StateMoving    State = "moving"
	StateFalling   State = "falling"
	StateDragged   State = "dragged"
	StateResisting State = "resisting"
	StateEscaping  State = "escaping"
	StateSleeping  State = "sleeping"
	StatePlaying   State = "playing"
	StateEating    State = "eating"
)

// Effect is a cosmetic overlay the renderer applies on top of the pose.
type Effect string

const (
	EffectHappy     Effect = "happy"
	EffectBounce    Effect = "bounce"
	EffectJump      Effect = "jump"
	EffectButterfly Effect = "butterfly"
	EffectWalk      Effect = "walk"
	EffectScale     Effect = "scale"
	EffectResisting Effect = "resisting"
)

// Vec is a point or direction in viewport cells.
type Vec struct {
	X float64
	Y float64
}

// Size is the sprite footprint in cells.
type Size struct {
	W float64 `toml:"width"`
	H float64 `toml:"height"`
}

// Pet is the single owned record of the pet. Only the controller mutates it;
// the scheduler, renderer and handlers read it.
type Pet struct {
	Name     string
	State    State
	Position Vec
	Velocity Vec

	IsDragging    bool
	DragStartTime time.Time
	DragOrigin    Vec

	// Zero means wandering is not paused.
	MovementPausedUntil time.Time

	Pose    string
	Effects map[Effect]bool
	Tilt    float64 // degrees, only while held too long
}

func New(name string) *Pet {
	return &Pet{
		Name:     name,
		State:    StateFalling,
		Velocity: Vec{X: 1, Y: 1},
		Pose:     PoseStand,
		Effects:  make(map[Effect]bool),
	}
}

func (p *Pet) Idle() bool {
	return p.State == StateIdle
}

// Paused reports whether autonomous wandering is suspended at now.
func (p *Pet) Paused(now time.Time) bool {
	return !p.MovementPausedUntil.IsZero() && now.Before(p.MovementPausedUntil)
}

func (p *Pet) SetEffect(e Effect, on bool) {
	if on {
		p.Effects[e] = true
		return
	}
	delete(p.Effects, e)
}

func (p *Pet) HasEffect(e Effect) bool {
	return p.Effects[e]
}

// Clamp keeps the sprite fully inside a viewport of w×h cells.
func (p *Pet) Clamp(w, h float64, size Size) {
	p.Position.X = clamp(p.Position.X, 0, w-size.W)
	p.Position.Y = clamp(p.Position.Y, 0, h-size.H)
}

func clamp(value, min, max float64) float64 {
	if max < min {
		max = min
	}
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
