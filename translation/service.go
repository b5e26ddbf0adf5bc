package translation

import (
	"context"

	"github.com/kbukum/babelink/validation"
)

// Service validates translation requests and hands them to a Translator.
type Service struct {
	translator Translator
}

// NewService creates a translation Service.
func NewService(t Translator) *Service {
	return &Service{translator: t}
}

// Translator returns the backend in use.
func (s *Service) Translator() Translator { return s.translator }

// TranslateText translates req.Text from req.From to req.To.
func (s *Service) TranslateText(ctx context.Context, req Request) (string, error) {
	if err := validation.Validate(req); err != nil {
		return "", err
	}
	return s.translator.Translate(ctx, req)
}
