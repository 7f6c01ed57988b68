package interaction

import (
	"time"

	"github.com/sethgrid/deskpet/internal/pet"
	"github.com/sethgrid/deskpet/internal/speech"
)

// Target is what a click reaction acts on. The controller implements it.
type Target interface {
	SetPose(pose string)
	Flash(e pet.Effect, d time.Duration, then func())
	Say(key speech.Key, d time.Duration)
	Chirp()
	Perform(a pet.Action)
}

const ackDuration = 2 * time.Second

// Handler tells single clicks from the clicks of a double-click by
// debouncing: a click inside the window after the last accepted one is
// dropped.
type Handler struct {
	target Target
	window time.Duration

	lastClick time.Time
	clicks    int
}

func NewHandler(target Target, window time.Duration) *Handler {
	return &Handler{target: target, window: window}
}

// HandleClick reacts to an accepted click and reports whether it was accepted.
func (h *Handler) HandleClick(now time.Time) bool {
	if !h.lastClick.IsZero() && now.Sub(h.lastClick) < h.window {
		return false
	}
	h.lastClick = now
	h.clicks++

	h.target.SetPose(pet.PoseClick)
	h.target.Flash(pet.EffectHappy, pet.ClickReaction, nil)
	h.target.Say(speech.Click, ackDuration)
	h.target.Chirp()
	h.target.Flash(pet.EffectBounce, pet.ClickReaction, func() {
		h.target.SetPose(pet.PoseStand)
	})
	return true
}

// HandleDoubleClick always jumps, whatever the debounce state.
func (h *Handler) HandleDoubleClick() {
	h.target.Perform(pet.ActionJump)
}

// Clicks is the number of accepted clicks.
func (h *Handler) Clicks() int {
	return h.clicks
}
