package controller

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/sethgrid/deskpet/internal/motion"
	"github.com/sethgrid/deskpet/internal/pet"
)

// move is one in-flight animation. Only the latest move may write the
// position; a replaced or cancelled move stops at its next frame.
type move struct {
	tween   motion.Tween
	bounce  bool
	done    func()
	stopped bool
}

// MoveTo eases the pet to (x, y) over d and then calls onComplete. Crossing
// into the edge margin ends the move early at the margin line, still
// calling onComplete. A new move replaces the running one.
func (c *Controller) MoveTo(x, y float64, d time.Duration, onComplete func()) {
	c.animate(pet.Vec{X: x, Y: y}, d, motion.EaseInOutQuad, true, onComplete)
}

// Moving reports whether an animation is in flight.
func (c *Controller) Moving() bool {
	return c.move != nil
}

func (c *Controller) animate(to pet.Vec, d time.Duration, ease motion.Easing, bounce bool, done func()) {
	c.cancelMove()
	m := &move{
		tween: motion.Tween{
			From:     c.pet.Position,
			To:       to,
			Start:    c.sched.Now(),
			Duration: d,
			Ease:     ease,
		},
		bounce: bounce,
		done:   done,
	}
	c.move = m
	c.sched.RequestFrame(func(now time.Time) { c.frame(m, now) })
}

func (c *Controller) frame(m *move, now time.Time) {
	if m.stopped {
		return
	}
	pos, progress := m.tween.At(now)

	if m.bounce {
		if hit := c.bounds.CheckBoundary(pos.X, pos.Y, c.size); hit.Hit {
			pos.X, pos.Y = c.bounds.Snap(pos.X, pos.Y, c.size, hit.Edges)
			c.pet.Velocity = hit.Bounce
			c.pet.Position = pos
			c.finish(m)
			return
		}
	}

	c.pet.Position = pos
	if progress >= 1 {
		c.finish(m)
		return
	}
	c.sched.RequestFrame(func(now time.Time) { c.frame(m, now) })
}

func (c *Controller) finish(m *move) {
	m.stopped = true
	if c.move == m {
		c.move = nil
	}
	c.clampToViewport()
	if m.done != nil {
		m.done()
	}
}

func (c *Controller) cancelMove() {
	if c.move == nil {
		return
	}
	c.move.stopped = true
	c.move = nil
}

// startFallingAnimation drops the pet from just above the top edge at a
// random column to its resting row.
func (c *Controller) startFallingAnimation() {
	w, h := c.bounds.Viewport()
	c.pet.State = pet.StateFalling
	c.pet.Pose = pet.PoseStand
	c.pet.Position = pet.Vec{
		X: c.rng.Float64() * math.Max(0, w-c.size.W),
		Y: -c.size.H,
	}
	rest := pet.Vec{X: c.pet.Position.X, Y: math.Max(0, h-2*c.size.H)}

	c.animate(rest, c.cfg.FallDuration.Duration, motion.EaseOutCubic, false, func() {
		c.pet.State = pet.StateIdle
		c.pet.Pose = pet.PoseStand
		c.log.Debug("landed", zap.Float64("x", c.pet.Position.X), zap.Float64("y", c.pet.Position.Y))
		c.behave.StartWandering()
		c.behave.CheckClock()
	})
}

// Wander takes a short stroll in a random direction.
func (c *Controller) Wander() {
	c.pet.State = pet.StateMoving
	angle := c.rng.Float64() * 2 * math.Pi
	distance := pet.WanderMinDistance + c.rng.Float64()*pet.WanderExtra
	d := pet.WanderMinTime + time.Duration(c.rng.Float64()*float64(pet.WanderExtraTime))

	// cells are about twice as tall as they are wide
	x := c.pet.Position.X + math.Cos(angle)*distance
	y := c.pet.Position.Y + math.Sin(angle)*distance/2
	c.MoveTo(x, y, d, func() {
		if c.pet.State == pet.StateMoving {
			c.pet.State = pet.StateIdle
		}
	})
}
