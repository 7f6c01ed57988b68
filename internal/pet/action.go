package pet

import (
	"fmt"
	"strings"
)

// Action is a user- or scheduler-triggered behavior.
type Action string

const (
	ActionSleep     Action = "sleep"
	ActionButterfly Action = "butterfly"
	ActionWalk      Action = "walk"
	ActionJump      Action = "jump"
	ActionGreet     Action = "greet"
	ActionEat       Action = "eat"
	ActionTime      Action = "time"
	ActionReset     Action = "reset"
)

// Actions lists the commands exposed on the settings panel, in panel order.
var Actions = []Action{
	ActionSleep,
	ActionButterfly,
	ActionWalk,
	ActionJump,
	ActionGreet,
	ActionEat,
	ActionTime,
	ActionReset,
}

// IdleActions are the behaviors the idle timer picks from.
var IdleActions = []Action{ActionWalk, ActionJump, ActionGreet}

func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range Actions {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown action %q", s)
}

// Pose names. Every pose falls back to PoseStand when it cannot be loaded.
const (
	PoseStand  = "stand"
	PoseWalk   = "walk"
	PoseSleep  = "sleep"
	PoseClick  = "click"
	PoseGreet1 = "greet_01"
	PoseGreet2 = "greet_02"
	PoseEat    = "eat"
	PoseResist = "resist"
)
