package pet

import (
	"fmt"
	"time"
)

type PetConfig struct {
	Version string `toml:"version"`
	Name    string `toml:"name"`
	Locale  string `toml:"locale"`

	Sprite Size    `toml:"sprite"`
	Margin float64 `toml:"margin"`

	FrameRate         int      `toml:"frameRate"`
	WanderInterval    Duration `toml:"wanderInterval"`
	BehaviorInterval  Duration `toml:"behaviorInterval"`
	ClockInterval     Duration `toml:"clockInterval"`
	MovementPause     Duration `toml:"movementPause"`
	DoubleClickWindow Duration `toml:"doubleClickWindow"`
	FallDuration      Duration `toml:"fallDuration"`
	TiltAfter         Duration `toml:"tiltAfter"`
	EscapeAfter       Duration `toml:"escapeAfter"` // 0 disables escaping

	Sound        bool   `toml:"sound"`
	Manifest     string `toml:"manifest"`
	SpeechScript string `toml:"speechScript"`

	Logging LoggingConfig `toml:"logging"`

	Poses map[string]PoseConfig `toml:"poses"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type PoseConfig struct {
	Source string  `toml:"source"` // "inline" | "file"
	Path   string  `toml:"path,omitempty"`
	Frames []Frame `toml:"frames"` // for source == "inline"
}

type Frame struct {
	Art string `toml:"art"`
}

// Duration reads and writes TOML strings such as "30s" or "5m0s".
type Duration struct {
	time.Duration
}

func D(d time.Duration) Duration {
	return Duration{Duration: d}
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}
