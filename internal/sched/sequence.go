package sched

import (
	"time"
)

// Step is one timed effect of a Sequence. After is measured from the
// previous step (or from the start for the first step).
type Step struct {
	After time.Duration
	Do    func()
}

// Sequence is a short list of timed steps that is cancelled as a unit.
type Sequence struct {
	s         *Scheduler
	steps     []Step
	next      int
	timer     *Timer
	cancelled bool
}

func (s *Scheduler) Sequence(steps ...Step) *Sequence {
	q := &Sequence{s: s, steps: steps}
	q.schedule()
	return q
}

func (q *Sequence) schedule() {
	if q.next >= len(q.steps) {
		q.timer = nil
		return
	}
	step := q.steps[q.next]
	q.timer = q.s.AfterFunc(step.After, func() {
		q.next++
		q.timer = nil
		if step.Do != nil {
			step.Do()
		}
		if !q.cancelled {
			q.schedule()
		}
	})
}

// Cancel drops every step that has not run yet. Nil-safe.
func (q *Sequence) Cancel() {
	if q == nil {
		return
	}
	q.cancelled = true
	q.timer.Stop()
	q.timer = nil
}

// Done reports whether the sequence ran to the end or was cancelled.
func (q *Sequence) Done() bool {
	return q == nil || q.cancelled || q.next >= len(q.steps)
}
