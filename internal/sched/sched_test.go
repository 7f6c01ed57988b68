package sched

import (
	"testing"
	"time"
)

var epoch = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func TestAfterFuncFiresInDeadlineOrder(t *testing.T) {
	s := New(epoch)
	var got []string
	s.AfterFunc(300*time.Millisecond, func() { got = append(got, "c") })
	s.AfterFunc(100*time.Millisecond, func() { got = append(got, "a") })
	s.AfterFunc(100*time.Millisecond, func() { got = append(got, "b") })

	s.Step(50 * time.Millisecond)
	if len(got) != 0 {
		t.Fatalf("fired too early: %v", got)
	}
	s.Step(time.Second)
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}

func TestTimerSeesItsOwnDeadline(t *testing.T) {
	s := New(epoch)
	var at time.Time
	s.AfterFunc(2*time.Second, func() { at = s.Now() })
	s.Step(10 * time.Second)
	if !at.Equal(epoch.Add(2 * time.Second)) {
		t.Errorf("Now() inside callback = %v, want %v", at, epoch.Add(2*time.Second))
	}
	if !s.Now().Equal(epoch.Add(10 * time.Second)) {
		t.Errorf("Now() after Advance = %v", s.Now())
	}
}

func TestStop(t *testing.T) {
	s := New(epoch)
	fired := false
	timer := s.AfterFunc(time.Second, func() { fired = true })
	if !timer.Stop() {
		t.Fatal("Stop on a queued timer returned false")
	}
	if timer.Stop() {
		t.Error("second Stop returned true")
	}
	s.Step(2 * time.Second)
	if fired {
		t.Error("stopped timer fired")
	}

	var nilTimer *Timer
	if nilTimer.Stop() {
		t.Error("nil Stop returned true")
	}
}

func TestEvery(t *testing.T) {
	s := New(epoch)
	count := 0
	timer := s.Every(3*time.Second, func() { count++ })

	s.Step(10 * time.Second)
	if count != 3 {
		t.Errorf("count = %d after 10s at 3s period, want 3", count)
	}
	timer.Stop()
	s.Step(10 * time.Second)
	if count != 3 {
		t.Errorf("count = %d after Stop, want 3", count)
	}
}

func TestEveryCanStopItself(t *testing.T) {
	s := New(epoch)
	count := 0
	var timer *Timer
	timer = s.Every(time.Second, func() {
		count++
		if count == 2 {
			timer.Stop()
		}
	})
	s.Step(5 * time.Second)
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", s.Pending())
	}
}

func TestFramesRunOnNextAdvance(t *testing.T) {
	s := New(epoch)
	frames := 0
	var tick func(time.Time)
	tick = func(time.Time) {
		frames++
		if frames < 3 {
			s.RequestFrame(tick)
		}
	}
	s.RequestFrame(tick)

	for i := 0; i < 5; i++ {
		s.Step(16 * time.Millisecond)
	}
	if frames != 3 {
		t.Errorf("frames = %d, want 3 (one per Advance)", frames)
	}
}

func TestSequence(t *testing.T) {
	s := New(epoch)
	var got []string
	q := s.Sequence(
		Step{After: 500 * time.Millisecond, Do: func() { got = append(got, "one") }},
		Step{After: 500 * time.Millisecond, Do: func() { got = append(got, "two") }},
	)

	s.Step(499 * time.Millisecond)
	if len(got) != 0 {
		t.Fatalf("step ran early: %v", got)
	}
	s.Step(time.Millisecond)
	if len(got) != 1 || got[0] != "one" {
		t.Fatalf("got %v after 500ms", got)
	}
	if q.Done() {
		t.Error("Done before last step")
	}
	s.Step(500 * time.Millisecond)
	if len(got) != 2 {
		t.Fatalf("got %v after 1s", got)
	}
	if !q.Done() {
		t.Error("not Done after last step")
	}
}

func TestSequenceCancel(t *testing.T) {
	s := New(epoch)
	ran := 0
	q := s.Sequence(
		Step{After: 100 * time.Millisecond, Do: func() { ran++ }},
		Step{After: 100 * time.Millisecond, Do: func() { ran++ }},
		Step{After: 100 * time.Millisecond, Do: func() { ran++ }},
	)
	s.Step(150 * time.Millisecond)
	q.Cancel()
	s.Step(time.Second)
	if ran != 1 {
		t.Errorf("ran = %d, want 1", ran)
	}
	if s.Pending() != 0 {
		t.Errorf("cancelled sequence left %d timers", s.Pending())
	}

	var nilSeq *Sequence
	nilSeq.Cancel()
}

func TestSequenceCancelFromInsideStep(t *testing.T) {
	s := New(epoch)
	ran := 0
	var q *Sequence
	q = s.Sequence(
		Step{After: 0, Do: func() { ran++; q.Cancel() }},
		Step{After: 100 * time.Millisecond, Do: func() { ran++ }},
	)
	s.Step(time.Second)
	if ran != 1 {
		t.Errorf("ran = %d, want 1", ran)
	}
}
