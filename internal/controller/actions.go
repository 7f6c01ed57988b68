package controller

import (
	"go.uber.org/zap"

	"github.com/sethgrid/deskpet/internal/pet"
	"github.com/sethgrid/deskpet/internal/sched"
	"github.com/sethgrid/deskpet/internal/sound"
	"github.com/sethgrid/deskpet/internal/speech"
)

// Perform runs a named action. Actions are fire-and-forget; an action
// interrupts whatever the pet was animating.
func (c *Controller) Perform(a pet.Action) {
	c.log.Debug("action", zap.String("action", string(a)), zap.String("state", string(c.pet.State)))
	switch a {
	case pet.ActionSleep:
		c.Sleep()
	case pet.ActionButterfly:
		c.CatchButterfly()
	case pet.ActionWalk:
		c.Walk()
	case pet.ActionJump:
		c.Jump()
	case pet.ActionGreet:
		c.Greet()
	case pet.ActionEat:
		c.Eat()
	case pet.ActionTime:
		c.AnnounceTime()
	case pet.ActionReset:
		c.ResetPosition()
	default:
		c.log.Warn("unknown action", zap.String("action", string(a)))
	}
}

func (c *Controller) Sleep() {
	c.interrupt()
	c.pet.State = pet.StateSleeping
	c.pet.Pose = pet.PoseSleep
	c.Say(speech.Sleep, longBubble)
}

func (c *Controller) Wake() {
	c.pet.State = pet.StateIdle
	c.pet.Pose = pet.PoseStand
	c.Say(speech.Wake, shortBubble)
	c.sound.Play(sound.CueWake)
}

func (c *Controller) CatchButterfly() {
	c.interrupt()
	c.pet.State = pet.StatePlaying
	c.pet.SetEffect(pet.EffectButterfly, true)
	c.Say(speech.Butterfly, longBubble)
	c.action = c.sched.Sequence(sched.Step{After: pet.ButterflyTime, Do: func() {
		c.pet.SetEffect(pet.EffectButterfly, false)
		c.pet.State = pet.StateIdle
	}})
}

// Walk strolls sideways, left or right at random.
func (c *Controller) Walk() {
	c.interrupt()
	c.pet.State = pet.StateMoving
	c.pet.Pose = pet.PoseWalk
	c.pet.SetEffect(pet.EffectWalk, true)
	c.Say(speech.Walk, shortBubble)

	distance := pet.WalkMinDistance + c.rng.Float64()*pet.WalkExtraDistance
	if c.rng.Float64() <= 0.5 {
		distance = -distance
	}
	c.MoveTo(c.pet.Position.X+distance, c.pet.Position.Y, pet.WalkDuration, func() {
		c.pet.SetEffect(pet.EffectWalk, false)
		c.pet.Pose = pet.PoseStand
		c.pet.State = pet.StateIdle
	})
}

func (c *Controller) Jump() {
	c.interrupt()
	c.pet.State = pet.StatePlaying
	c.pet.SetEffect(pet.EffectJump, true)
	c.Say(speech.Jump, shortBubble)
	c.sound.Play(sound.CueJump)
	c.action = c.sched.Sequence(sched.Step{After: pet.JumpDuration, Do: func() {
		c.pet.SetEffect(pet.EffectJump, false)
		c.pet.Pose = pet.PoseStand
		c.pet.State = pet.StateIdle
	}})
}

func (c *Controller) Greet() {
	c.interrupt()
	c.pet.State = pet.StatePlaying
	c.pet.Pose = pet.PoseGreet1
	c.Say(speech.Greet, longBubble)
	c.action = c.sched.Sequence(
		sched.Step{After: pet.GreetStep, Do: func() {
			c.pet.Pose = pet.PoseGreet2
		}},
		sched.Step{After: pet.GreetStep, Do: func() {
			c.pet.Pose = pet.PoseStand
			c.pet.State = pet.StateIdle
		}},
	)
}

// Eat chews: the scale effect pulses every EatStep, and the last toggle
// ends the meal.
func (c *Controller) Eat() {
	c.interrupt()
	c.pet.State = pet.StateEating
	c.pet.Pose = pet.PoseEat
	c.Say(speech.Eat, longBubble)
	c.sound.Play(sound.CueEat)

	steps := make([]sched.Step, pet.EatToggles)
	for i := range steps {
		steps[i] = sched.Step{After: pet.EatStep, Do: func() {
			if i == pet.EatToggles-1 {
				c.pet.SetEffect(pet.EffectScale, false)
				c.pet.Pose = pet.PoseStand
				c.pet.State = pet.StateIdle
				return
			}
			c.pet.SetEffect(pet.EffectScale, i%2 == 0)
		}}
	}
	c.action = c.sched.Sequence(steps...)
}

// AnnounceTime only talks; it leaves the state alone.
func (c *Controller) AnnounceTime() {
	now := c.sched.Now()
	c.sayf(speech.Time, timeBubble, now.Hour(), now.Minute())
}

// ResetPosition walks the pet back to the middle of the screen.
func (c *Controller) ResetPosition() {
	c.interrupt()
	c.pet.State = pet.StateMoving
	w, h := c.bounds.Viewport()
	x := (w - c.size.W) / 2
	y := (h - c.size.H) / 2
	c.MoveTo(x, y, pet.RelocateTime, func() {
		c.pet.State = pet.StateIdle
		c.Say(speech.Reset, shortBubble)
	})
}
