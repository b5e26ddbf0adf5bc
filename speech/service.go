package speech

import (
	"context"

	"github.com/kbukum/babelink/errors"
	"github.com/kbukum/babelink/logger"
	"github.com/kbukum/babelink/provider"
	"github.com/kbukum/babelink/resilience"
	"github.com/kbukum/babelink/validation"
)

// Service speaks text, optionally queueing overlapping utterances.
type Service struct {
	synth Synthesizer
	queue *provider.ResilienceState
	log   *logger.Logger
}

// NewService creates a speech Service. With cfg.MaxConcurrent set, callers
// beyond the limit wait for a free slot until their context ends.
func NewService(s Synthesizer, cfg Config) *Service {
	var res provider.ResilienceConfig
	if cfg.MaxConcurrent > 0 {
		res.Bulkhead = &resilience.BulkheadConfig{Name: "speech", MaxConcurrent: cfg.MaxConcurrent, MaxWait: -1}
	}
	return &Service{
		synth: s,
		queue: provider.BuildResilience("speech synthesizer", res),
		log:   logger.WithComponent("speech"),
	}
}

// Synthesizer returns the backend in use.
func (s *Service) Synthesizer() Synthesizer { return s.synth }

// SpeakText speaks text with v and returns once playback has finished.
func (s *Service) SpeakText(ctx context.Context, text string, v VoiceSettings) error {
	if text == "" {
		return errors.InvalidInput("text", "text is required")
	}
	if err := validation.Validate(v); err != nil {
		return err
	}
	v = v.Normalize()

	_, err := provider.ExecuteWithResilience(ctx, s.queue, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.synth.Speak(ctx, text, v)
	})
	if err == nil {
		s.log.Debug("spoke", logger.Fields(logger.FieldTool, s.synth.Name(), "chars", len(text), "language", v.Language))
	}
	return err
}
