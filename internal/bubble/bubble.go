package bubble

import (
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/sethgrid/deskpet/internal/pet"
	"github.com/sethgrid/deskpet/internal/sched"
)

// Height is the number of rows a bubble occupies: border, text, tail.
const Height = 3

// padding is the border plus one space on each side of the text.
const padding = 4

type Rect struct {
	X, Y, W, H float64
}

// System owns the single speech bubble and its pending auto-hide.
type System struct {
	sched  *sched.Scheduler
	target func() Rect

	text    string
	visible bool
	anchor  pet.Vec
	hide    *sched.Timer
}

// New returns a bubble anchored above whatever rectangle target reports at
// show time.
func New(s *sched.Scheduler, target func() Rect) *System {
	return &System{sched: s, target: target}
}

// Show replaces any visible bubble and its pending hide.
func (b *System) Show(text string, d time.Duration) {
	b.hide.Stop()
	b.text = text
	b.anchor = b.position(b.target())
	b.visible = true
	b.hide = b.sched.AfterFunc(d, b.Hide)
}

func (b *System) Hide() {
	b.hide.Stop()
	b.hide = nil
	b.visible = false
}

func (b *System) Visible() bool {
	return b.visible
}

func (b *System) Text() string {
	return b.text
}

// Anchor is the top-left cell of the bubble.
func (b *System) Anchor() pet.Vec {
	return b.anchor
}

func (b *System) Width() int {
	return runewidth.StringWidth(b.text) + padding
}

// position centres the bubble horizontally over r, directly above its top row.
func (b *System) position(r Rect) pet.Vec {
	return pet.Vec{
		X: r.X + r.W/2 - float64(b.Width())/2,
		Y: r.Y - Height,
	}
}
