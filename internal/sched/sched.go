// Package sched is the one scheduling primitive of the pet: timers, recurring
// timers, animation-frame requests and step sequences, all driven by a clock
// that only moves when the owner calls Advance.
//
// A Scheduler is not safe for concurrent use. The screen loop owns it and
// advances it to wall-clock time on every frame tick; tests advance it by
// hand.
package sched

import (
	"container/heap"
	"time"
)

type Scheduler struct {
	now    time.Time
	seq    uint64
	timers timerHeap
	frames []func(now time.Time)
}

func New(start time.Time) *Scheduler {
	return &Scheduler{now: start}
}

func (s *Scheduler) Now() time.Time {
	return s.now
}

// AfterFunc runs fn once, d after the current time.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	t := &Timer{s: s, when: s.now.Add(d), fn: fn, index: -1}
	s.push(t)
	return t
}

// Every runs fn every d until the returned timer is stopped.
func (s *Scheduler) Every(d time.Duration, fn func()) *Timer {
	if d <= 0 {
		d = time.Millisecond
	}
	t := &Timer{s: s, when: s.now.Add(d), period: d, fn: fn, index: -1}
	s.push(t)
	return t
}

// RequestFrame queues fn for the next Advance, after that call's timers.
// Frames requested from inside a frame callback run on the following Advance.
func (s *Scheduler) RequestFrame(fn func(now time.Time)) {
	s.frames = append(s.frames, fn)
}

// Advance moves the clock to `to`, firing due timers in deadline order and
// then the queued frame callbacks.
func (s *Scheduler) Advance(to time.Time) {
	for len(s.timers) > 0 {
		t := s.timers[0]
		if t.when.After(to) {
			break
		}
		heap.Pop(&s.timers)
		if t.when.After(s.now) {
			s.now = t.when
		}
		if t.period > 0 {
			t.when = t.when.Add(t.period)
			s.push(t)
		}
		t.fn()
	}
	if to.After(s.now) {
		s.now = to
	}

	frames := s.frames
	s.frames = nil
	for _, fn := range frames {
		fn(s.now)
	}
}

// Step advances the clock by d.
func (s *Scheduler) Step(d time.Duration) {
	s.Advance(s.now.Add(d))
}

// Pending is the number of queued timers.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

func (s *Scheduler) push(t *Timer) {
	s.seq++
	t.seq = s.seq
	heap.Push(&s.timers, t)
}

type Timer struct {
	s      *Scheduler
	when   time.Time
	period time.Duration
	fn     func()
	seq    uint64
	index  int // position in the heap, -1 when not queued
}

// Stop cancels the timer. It is safe on a nil or already fired timer.
func (t *Timer) Stop() bool {
	if t == nil || t.index < 0 {
		return false
	}
	heap.Remove(&t.s.timers, t.index)
	return true
}

func (t *Timer) Active() bool {
	return t != nil && t.index >= 0
}

type timerHeap []*Timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].when.Equal(h[j].when) {
		return h[i].seq < h[j].seq
	}
	return h[i].when.Before(h[j].when)
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*Timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
