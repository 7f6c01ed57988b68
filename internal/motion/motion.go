// Package motion holds the easing curves and the time-based tween the mover
// evaluates once per frame.
package motion

import (
	"time"

	"github.com/sethgrid/deskpet/internal/pet"
)

type Easing func(p float64) float64

// EaseInOutQuad accelerates through the first half and decelerates through
// the second.
func EaseInOutQuad(p float64) float64 {
	if p < 0.5 {
		return 2 * p * p
	}
	q := 1 - p
	return 1 - 2*q*q
}

func EaseOutCubic(p float64) float64 {
	q := 1 - p
	return 1 - q*q*q
}

func Linear(p float64) float64 {
	return p
}

type Tween struct {
	From     pet.Vec
	To       pet.Vec
	Start    time.Time
	Duration time.Duration
	Ease     Easing
}

// Progress is the normalized elapsed time, clamped to [0, 1]. A tween with
// no duration is already complete.
func (t Tween) Progress(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(t.Start)) / float64(t.Duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// At returns the eased position at now and the raw progress.
func (t Tween) At(now time.Time) (pet.Vec, float64) {
	p := t.Progress(now)
	ease := t.Ease
	if ease == nil {
		ease = Linear
	}
	e := ease(p)
	return pet.Vec{
		X: t.From.X + (t.To.X-t.From.X)*e,
		Y: t.From.Y + (t.To.Y-t.From.Y)*e,
	}, p
}
