// Package sound plays the pet's short synthesized chirps.
package sound

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

const sampleRate = beep.SampleRate(44100)

type Cue string

const (
	CueClick Cue = "click"
	CueJump  Cue = "jump"
	CueWake  Cue = "wake"
	CueEat   Cue = "eat"
)

// Tone is one note of a chirp.
type Tone struct {
	Freq     float64
	Duration time.Duration
}

var chirps = map[Cue][]Tone{
	CueClick: {{Freq: 880, Duration: 40 * time.Millisecond}, {Freq: 1320, Duration: 60 * time.Millisecond}},
	CueJump:  {{Freq: 523, Duration: 60 * time.Millisecond}, {Freq: 784, Duration: 60 * time.Millisecond}, {Freq: 1046, Duration: 80 * time.Millisecond}},
	CueWake:  {{Freq: 1200, Duration: 50 * time.Millisecond}, {Freq: 600, Duration: 120 * time.Millisecond}},
	CueEat:   {{Freq: 660, Duration: 40 * time.Millisecond}, {Freq: 660, Duration: 40 * time.Millisecond}},
}

// Tones returns the notes of a cue, or nil for an unknown cue.
func Tones(c Cue) []Tone {
	return chirps[c]
}

type Player interface {
	Play(c Cue)
}

// Nop is the player used when sound is disabled or unavailable.
type Nop struct{}

func (Nop) Play(Cue) {}

// Speaker plays cues on the default audio device.
type Speaker struct {
	mu     sync.Mutex
	volume float64
	log    *zap.Logger
}

// New returns a Speaker when enabled and the audio device initializes, and
// a Nop otherwise. Initialization failure is logged, not returned.
func New(enabled bool, log *zap.Logger) Player {
	if log == nil {
		log = zap.NewNop()
	}
	if !enabled {
		return Nop{}
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		log.Warn("sound disabled", zap.Error(err))
		return Nop{}
	}
	return &Speaker{volume: -1, log: log}
}

func (s *Speaker) Play(c Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	streamer, err := Chirp(Tones(c), s.volume)
	if err != nil {
		s.log.Debug("chirp", zap.String("cue", string(c)), zap.Error(err))
		return
	}
	speaker.Play(streamer)
}

// Chirp builds the streamer for a sequence of tones. volume is in halvings
// (base 2); 0 is unchanged.
func Chirp(tones []Tone, volume float64) (beep.Streamer, error) {
	if len(tones) == 0 {
		return nil, fmt.Errorf("no tones")
	}
	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		sine, err := generators.SineTone(sampleRate, t.Freq)
		if err != nil {
			return nil, fmt.Errorf("tone %.0fHz: %w", t.Freq, err)
		}
		parts = append(parts, beep.Take(sampleRate.N(t.Duration), sine))
	}
	return &effects.Volume{
		Streamer: beep.Seq(parts...),
		Base:     2,
		Volume:   volume,
	}, nil
}
