// Package behavior runs the pet's autonomous timers: wandering, random idle
// behaviors, time-of-day rules and the movement pause after a drag.
//
// Only an idle pet is eligible for a scheduled behavior. That guard is the
// whole of the mutual exclusion between animations.
package behavior

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/sethgrid/deskpet/internal/pet"
	"github.com/sethgrid/deskpet/internal/sched"
)

// Actor carries out what the scheduler decides.
type Actor interface {
	Wander()
	Perform(a pet.Action)
}

type Config struct {
	WanderInterval   time.Duration
	BehaviorInterval time.Duration
	ClockInterval    time.Duration
}

type Scheduler struct {
	sched *sched.Scheduler
	pet   *pet.Pet
	actor Actor
	cfg   Config
	rng   *rand.Rand
	log   *zap.Logger

	wander *sched.Timer
	idle   *sched.Timer
	clock  *sched.Timer
	resume *sched.Timer
}

func New(s *sched.Scheduler, p *pet.Pet, actor Actor, cfg Config, rng *rand.Rand, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		sched: s,
		pet:   p,
		actor: actor,
		cfg:   cfg,
		rng:   rng,
		log:   log,
	}
}

// Start begins the idle-behavior and clock timers and checks the clock once
// right away.
func (b *Scheduler) Start() {
	b.idle.Stop()
	b.idle = b.sched.Every(b.cfg.BehaviorInterval, b.tickIdle)

	b.clock.Stop()
	b.clock = b.sched.Every(b.cfg.ClockInterval, b.CheckClock)

	b.CheckClock()
}

// Stop cancels every timer the scheduler owns.
func (b *Scheduler) Stop() {
	b.StopWandering()
	b.idle.Stop()
	b.idle = nil
	b.clock.Stop()
	b.clock = nil
	b.resume.Stop()
	b.resume = nil
}

// StartWandering (re)starts the wander timer, replacing any previous one.
func (b *Scheduler) StartWandering() {
	b.wander.Stop()
	b.wander = b.sched.Every(b.cfg.WanderInterval, b.tickWander)
}

func (b *Scheduler) StopWandering() {
	b.wander.Stop()
	b.wander = nil
}

func (b *Scheduler) Wandering() bool {
	return b.wander.Active()
}

// Pause suspends wandering for d. A new pause replaces a pending one.
func (b *Scheduler) Pause(d time.Duration) {
	b.StopWandering()
	b.resume.Stop()

	b.pet.MovementPausedUntil = b.sched.Now().Add(d)
	b.resume = b.sched.AfterFunc(d, func() {
		b.resume = nil
		b.pet.MovementPausedUntil = time.Time{}
		b.StartWandering()
		b.log.Debug("wandering resumed")
	})
	b.log.Debug("wandering paused", zap.Duration("for", d))
}

func (b *Scheduler) tickWander() {
	if !b.pet.Idle() || b.pet.IsDragging || b.pet.Paused(b.sched.Now()) {
		return
	}
	b.actor.Wander()
}

func (b *Scheduler) tickIdle() {
	if !b.pet.Idle() || b.pet.Paused(b.sched.Now()) {
		return
	}
	a := b.Pick()
	b.log.Debug("idle behavior", zap.String("action", string(a)))
	b.actor.Perform(a)
}

// Pick chooses uniformly among the idle behaviors, with no memory of past
// picks.
func (b *Scheduler) Pick() pet.Action {
	return pet.IdleActions[b.rng.Intn(len(pet.IdleActions))]
}

// CheckClock applies the first time-of-day rule matching the current hour,
// only while idle.
func (b *Scheduler) CheckClock() {
	if !b.pet.Idle() {
		return
	}
	a, ok := RuleForHour(b.sched.Now().Hour())
	if !ok {
		return
	}
	b.log.Debug("time-of-day behavior", zap.String("action", string(a)))
	b.actor.Perform(a)
}

// RuleForHour is the time-of-day table, in priority order: night hours
// sleep, meal hours eat, midnight announces the time. Midnight is also a
// night hour, so the night rule takes it.
func RuleForHour(hour int) (pet.Action, bool) {
	switch {
	case hour >= 22 || hour < 6:
		return pet.ActionSleep, true
	case hour == 8, hour == 12, hour == 18:
		return pet.ActionEat, true
	case hour == 0:
		return pet.ActionTime, true
	}
	return "", false
}
