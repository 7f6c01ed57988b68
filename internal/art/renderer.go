package art

import (
	"strings"

	"github.com/sethgrid/deskpet/internal/pet"
)

// ChoosePose picks the pose to draw. Struggling and sleeping override the
// current pose; anything without frames falls back to stand.
func ChoosePose(p *pet.Pet, poses *Poses) string {
	key := p.Pose
	switch {
	case p.State == pet.StateResisting:
		key = pet.PoseResist
	case p.State == pet.StateSleeping:
		key = pet.PoseSleep
	}

	if poses.Has(key) {
		return key
	}
	return pet.PoseStand
}

// DefaultPoses is the builtin rabbit, written into new pet.toml files.
func DefaultPoses() map[string]pet.PoseConfig {
	poses := make(map[string]pet.PoseConfig, len(builtin))
	for name, art := range builtin {
		poses[name] = pet.PoseConfig{
			Source: SourceInline,
			Frames: []pet.Frame{{Art: art}},
		}
	}
	// walking alternates feet
	poses[pet.PoseWalk] = pet.PoseConfig{
		Source: SourceInline,
		Frames: []pet.Frame{{Art: builtin[pet.PoseWalk]}, {Art: getWalkRabbitAlt()}},
	}
	return poses
}

// BuiltinArt is the builtin ASCII frame for a pose, or the standing rabbit.
func BuiltinArt(pose string) string {
	if art, ok := builtin[pose]; ok {
		return art
	}
	return getStandRabbit()
}

var builtin = map[string]string{
	pet.PoseStand:  getStandRabbit(),
	pet.PoseWalk:   getWalkRabbit(),
	pet.PoseSleep:  getSleepRabbit(),
	pet.PoseClick:  getClickRabbit(),
	pet.PoseGreet1: getGreetRabbit(1),
	pet.PoseGreet2: getGreetRabbit(2),
	pet.PoseEat:    getEatRabbit(),
	pet.PoseResist: getResistRabbit(),
}

func getStandRabbit() string {
	return ` (\_/)
 ( o.o)
 / > <\
 (_)(_)`
}

func getWalkRabbit() string {
	return ` (\_/)
 ( o.o)
 / >>\
 _/  \_`
}

func getWalkRabbitAlt() string {
	return ` (\_/)
 ( o.o)
 / >>\
  \__/`
}

func getSleepRabbit() string {
	return ` (\_/) z
 ( -.-)
 / > <\
 (_)(_)`
}

func getClickRabbit() string {
	return ` (\_/)
 ( ^o^)
 \ > </
 (_)(_)`
}

func getGreetRabbit(step int) string {
	paw := "/"
	if step == 2 {
		paw = "\\"
	}
	return strings.Join([]string{
		` (\_/)`,
		` ( ^.^)` + paw,
		` / >`,
		` (_)(_)`,
	}, "\n")
}

func getEatRabbit() string {
	return ` (\_/)
 ( o.o)@
 / > <\
 (_)(_)`
}

func getResistRabbit() string {
	return ` (\_/)
 (>.< )
 \ >  /
 (_)(_)`
}
