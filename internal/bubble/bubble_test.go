package bubble

import (
	"testing"
	"time"

	"github.com/sethgrid/deskpet/internal/sched"
)

func newTestSystem() (*System, *sched.Scheduler, *Rect) {
	s := sched.New(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	r := &Rect{X: 20, Y: 10, W: 10, H: 4}
	return New(s, func() Rect { return *r }), s, r
}

func TestShowThenAutoHide(t *testing.T) {
	b, s, _ := newTestSystem()
	b.Show("hello", 2*time.Second)
	if !b.Visible() || b.Text() != "hello" {
		t.Fatalf("visible=%v text=%q", b.Visible(), b.Text())
	}
	s.Step(1999 * time.Millisecond)
	if !b.Visible() {
		t.Fatal("hidden before duration elapsed")
	}
	s.Step(time.Millisecond)
	if b.Visible() {
		t.Error("still visible after duration")
	}
}

func TestSecondShowWins(t *testing.T) {
	b, s, _ := newTestSystem()
	b.Show("first", time.Second)
	s.Step(500 * time.Millisecond)
	b.Show("second", time.Second)

	if b.Text() != "second" {
		t.Errorf("text = %q, want second", b.Text())
	}
	if s.Pending() != 1 {
		t.Errorf("pending hides = %d, want 1", s.Pending())
	}

	// the first bubble's hide would have fired here
	s.Step(600 * time.Millisecond)
	if !b.Visible() {
		t.Error("first bubble's hide fired after being replaced")
	}
	s.Step(400 * time.Millisecond)
	if b.Visible() {
		t.Error("second bubble did not hide")
	}
}

func TestHideImmediately(t *testing.T) {
	b, s, _ := newTestSystem()
	b.Show("bye", time.Minute)
	b.Hide()
	if b.Visible() {
		t.Error("visible after Hide")
	}
	if s.Pending() != 0 {
		t.Errorf("Hide left %d timers", s.Pending())
	}
}

func TestAnchoredAbovePet(t *testing.T) {
	b, _, r := newTestSystem()
	b.Show("hi", time.Second) // width 2+4
	a := b.Anchor()
	if a.Y != r.Y-Height {
		t.Errorf("anchor y = %v, want %v", a.Y, r.Y-Height)
	}
	if want := r.X + r.W/2 - 3; a.X != want {
		t.Errorf("anchor x = %v, want %v", a.X, want)
	}

	// the anchor is taken at show time
	r.X = 50
	if b.Anchor().X == 50+r.W/2-3 {
		t.Error("anchor followed the pet without a new Show")
	}
}

func TestWideText(t *testing.T) {
	b, _, _ := newTestSystem()
	b.Show("你好呀～", time.Second)
	if b.Width() != 8+padding {
		t.Errorf("width = %d, want %d", b.Width(), 8+padding)
	}
}
