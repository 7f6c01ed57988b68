package pet

import (
	"time"
)

const (
	DefaultName   = "Usagi"
	DefaultLocale = "en"

	// ConfigVersion is written to every new pet.toml.
	ConfigVersion = "1.0"
)

// Timing and geometry of the pet, scaled from an 80px browser sprite to a
// terminal sprite of roughly ten cells.
const (
	DefaultFrameRate         = 30
	DefaultMargin            = 2
	DefaultWanderInterval    = 3 * time.Second
	DefaultBehaviorInterval  = 30 * time.Second
	DefaultClockInterval     = 60 * time.Second
	DefaultMovementPause     = 5 * time.Minute
	DefaultDoubleClickWindow = 300 * time.Millisecond
	DefaultFallDuration      = 2 * time.Second
	DefaultTiltAfter         = 5 * time.Second

	ClickReaction   = 600 * time.Millisecond
	JumpDuration    = 800 * time.Millisecond
	ButterflyTime   = 2 * time.Second
	GreetStep       = 500 * time.Millisecond
	EatStep         = 300 * time.Millisecond
	EatToggles      = 7
	WalkDuration    = 3 * time.Second
	RelocateTime    = 1 * time.Second
	WelcomeDelay    = 3 * time.Second
	WanderMinTime   = 2 * time.Second
	WanderExtraTime = 2 * time.Second

	WalkMinDistance   = 15.0
	WalkExtraDistance = 30.0
	WanderMinDistance = 6.0
	WanderExtra       = 12.0
)

var DefaultSprite = Size{W: 10, H: 4}

func DefaultConfig() PetConfig {
	return PetConfig{
		Version:           ConfigVersion,
		Name:              DefaultName,
		Locale:            DefaultLocale,
		Sprite:            DefaultSprite,
		Margin:            DefaultMargin,
		FrameRate:         DefaultFrameRate,
		WanderInterval:    D(DefaultWanderInterval),
		BehaviorInterval:  D(DefaultBehaviorInterval),
		ClockInterval:     D(DefaultClockInterval),
		MovementPause:     D(DefaultMovementPause),
		DoubleClickWindow: D(DefaultDoubleClickWindow),
		FallDuration:      D(DefaultFallDuration),
		TiltAfter:         D(DefaultTiltAfter),
		Manifest:          "backgrounds/index.json",
		SpeechScript:      "speech.lua",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Poses: make(map[string]PoseConfig),
	}
}

// Normalize fills zero fields left out of a hand-edited config with defaults.
func (c *PetConfig) Normalize() {
	def := DefaultConfig()
	if c.Name == "" {
		c.Name = def.Name
	}
	if c.Locale == "" {
		c.Locale = def.Locale
	}
	if c.Sprite.W <= 0 || c.Sprite.H <= 0 {
		c.Sprite = def.Sprite
	}
	if c.Margin < 0 {
		c.Margin = def.Margin
	}
	if c.FrameRate <= 0 {
		c.FrameRate = def.FrameRate
	}
	fill := func(d *Duration, fallback Duration) {
		if d.Duration <= 0 {
			*d = fallback
		}
	}
	fill(&c.WanderInterval, def.WanderInterval)
	fill(&c.BehaviorInterval, def.BehaviorInterval)
	fill(&c.ClockInterval, def.ClockInterval)
	fill(&c.MovementPause, def.MovementPause)
	fill(&c.DoubleClickWindow, def.DoubleClickWindow)
	fill(&c.FallDuration, def.FallDuration)
	fill(&c.TiltAfter, def.TiltAfter)
	if c.Logging.Level == "" {
		c.Logging = def.Logging
	}
	if c.Poses == nil {
		c.Poses = make(map[string]PoseConfig)
	}
}
