package speech

import (
	"context"
	"time"

	"github.com/kbukum/babelink/provider"
)

// DefaultTimeout bounds a single utterance.
const DefaultTimeout = 5 * time.Minute

// Gender values accepted in VoiceSettings.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// VoiceSettings shapes the synthesized voice. Pitch is accepted for
// compatibility with the front-end but no backend uses it.
type VoiceSettings struct {
	Gender   string  `json:"gender"`
	Speed    float64 `json:"speed" validate:"gte=0"`
	Pitch    float64 `json:"pitch"`
	Language string  `json:"language"`
}

// Normalize returns v with defaults applied: any gender other than "male"
// becomes "female", a zero speed becomes 1 and an empty language "en".
func (v VoiceSettings) Normalize() VoiceSettings {
	if v.Gender != GenderMale {
		v.Gender = GenderFemale
	}
	if v.Speed == 0 {
		v.Speed = 1
	}
	if v.Language == "" {
		v.Language = "en"
	}
	return v
}

// Synthesizer speaks text aloud.
type Synthesizer interface {
	provider.Provider
	Speak(ctx context.Context, text string, v VoiceSettings) error
}

// Config selects and tunes the speech backend.
type Config struct {
	// Backend overrides the platform default (say, espeak, sapi).
	Backend string `yaml:"backend" mapstructure:"backend"`
	// Binary overrides the path of the backend's tool.
	Binary string `yaml:"binary" mapstructure:"binary"`
	// Timeout bounds each utterance. Defaults to 5m.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// MaxConcurrent queues utterances beyond this many. 0 means unlimited.
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
}

// ApplyDefaults fills in zero values.
func (c *Config) ApplyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
}
