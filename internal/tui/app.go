// Package tui puts the pet on a tcell screen. It turns mouse, key and resize
// events into controller calls and redraws at a fixed frame rate.
package tui

import (
	"context"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/sethgrid/deskpet/internal/art"
	"github.com/sethgrid/deskpet/internal/controller"
	"github.com/sethgrid/deskpet/internal/pet"
)

type Options struct {
	FrameRate         int
	DoubleClickWindow time.Duration
	Poses             *art.Poses
	Log               *zap.Logger
}

// pointer tracks one button-1 gesture from press to release.
type pointer struct {
	down     bool
	onPet    bool
	dragging bool
	moved    bool
	x, y     int

	lastClick time.Time
}

type App struct {
	screen tcell.Screen
	ctrl   *controller.Controller
	poses  *art.Poses
	log    *zap.Logger
	frame  time.Duration
	double time.Duration

	ptr     pointer
	panel   panel
	bg      background
	started time.Time
	quit    bool

	// loadImage fetches a background; swapped out in tests.
	loadImage func(ctx context.Context, src string) (image.Image, error)
	ctx       context.Context
}

func New(screen tcell.Screen, ctrl *controller.Controller, opts Options) *App {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	rate := opts.FrameRate
	if rate <= 0 {
		rate = pet.DefaultFrameRate
	}
	double := opts.DoubleClickWindow
	if double <= 0 {
		double = pet.DefaultDoubleClickWindow
	}
	poses := opts.Poses
	if poses == nil {
		poses = art.LoadPoses(context.Background(), nil, "", ctrl.Size(), log)
	}
	return &App{
		screen:    screen,
		ctrl:      ctrl,
		poses:     poses,
		log:       log,
		frame:     time.Second / time.Duration(rate),
		double:    double,
		started:   ctrl.Now(),
		loadImage: art.Open,
		ctx:       context.Background(),
	}
}

// Run drives the screen until ctx is cancelled, the user quits or the
// screen is finalized.
func (a *App) Run(ctx context.Context) error {
	a.ctx = ctx

	events := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(a.frame)
	defer ticker.Stop()

	a.Tick(time.Now())
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			a.HandleEvent(ev, time.Now())
			if a.quit {
				a.log.Info("quit requested")
				return nil
			}
		case now := <-ticker.C:
			a.Tick(now)
		}
	}
}

// Tick advances the pet to now and repaints.
func (a *App) Tick(now time.Time) {
	a.ctrl.Advance(now)
	a.Draw()
	a.screen.Show()
}

func (a *App) Quit() bool {
	return a.quit
}

// HandleEvent applies one screen event. The controller clock is brought up to
// now first so debounce and drag timing see the real event time.
func (a *App) HandleEvent(ev tcell.Event, now time.Time) {
	a.ctrl.Advance(now)

	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		w, h := ev.Size()
		a.ctrl.Resize(w, h)
		a.bg.raster = nil
		a.log.Debug("resize", zap.Int("width", w), zap.Int("height", h))
	case *tcell.EventKey:
		a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev, now)
	case *tcell.EventInterrupt:
		if loaded, ok := ev.Data().(bgLoaded); ok {
			a.bg.apply(loaded, a.log)
		}
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	if a.panel.input.active {
		a.handleInputKey(ev)
		return
	}
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		a.quit = true
		return
	}
	switch ev.Rune() {
	case 'q', 'Q':
		a.quit = true
	case 's', 'S':
		a.toggleSettings()
	}
}

func (a *App) handleMouse(ev *tcell.EventMouse, now time.Time) {
	x, y := ev.Position()
	pressed := ev.Buttons()&tcell.Button1 != 0

	switch {
	case pressed && !a.ptr.down:
		a.press(x, y)
	case pressed && a.ptr.down:
		if x == a.ptr.x && y == a.ptr.y {
			return
		}
		a.ptr.moved = true
		a.ptr.x, a.ptr.y = x, y
		if a.ptr.dragging {
			a.ctrl.PointerMove(float64(x), float64(y))
		}
	case !pressed && a.ptr.down:
		a.release(now)
	}
}

func (a *App) press(x, y int) {
	a.ptr = pointer{down: true, x: x, y: y, lastClick: a.ptr.lastClick}

	// Chrome takes the press before the pet does.
	if a.panel.hit(x, y) {
		a.ptr.down = false
		return
	}
	if !a.ctrl.Contains(float64(x), float64(y)) {
		return
	}
	a.ptr.onPet = true
	a.ptr.dragging = a.ctrl.PointerDown(float64(x), float64(y))
}

// release ends the gesture. A press and release on the pet with no motion
// in between is a click; two within the double-click window also jump.
func (a *App) release(now time.Time) {
	p := a.ptr
	a.ptr.down = false
	a.ptr.dragging = false
	if p.dragging {
		a.ctrl.PointerUp()
	}
	if !p.onPet || p.moved {
		return
	}

	a.ctrl.Click()
	if !p.lastClick.IsZero() && now.Sub(p.lastClick) < a.double {
		a.ctrl.DoubleClick()
		a.ptr.lastClick = time.Time{}
		return
	}
	a.ptr.lastClick = now
}

func (a *App) toggleSettings() {
	if !a.ctrl.ToggleSettings() {
		a.panel.input.reset()
	}
}
