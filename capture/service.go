package capture

import (
	"context"
	"encoding/base64"
	stderrors "errors"

	"github.com/kbukum/babelink/errors"
	"github.com/kbukum/babelink/logger"
	"github.com/kbukum/babelink/scratch"
	"github.com/kbukum/babelink/validation"
)

// Service captures screen regions and returns them as base64 PNG.
type Service struct {
	capturer Capturer
	arena    *scratch.Arena
	log      *logger.Logger
}

// NewService creates a capture Service.
func NewService(c Capturer, arena *scratch.Arena) *Service {
	return &Service{capturer: c, arena: arena, log: logger.WithComponent("capture")}
}

// Capturer returns the backend in use.
func (s *Service) Capturer() Capturer { return s.capturer }

// Capture grabs region and returns the PNG as standard base64.
func (s *Service) Capture(ctx context.Context, region Region) (string, error) {
	if err := validation.Validate(region); err != nil {
		return "", err
	}

	path := s.arena.Path(scratch.KindCapture)
	if !s.arena.Shared() {
		defer s.arena.Release(path)
	}

	if err := s.capturer.CaptureTo(ctx, region, path); err != nil {
		return "", err
	}

	data, err := s.arena.Read(path)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", errors.IOFailure("read captured image", stderrors.New("capture produced an empty file"))
	}

	s.log.Debug("region captured", logger.Fields(logger.FieldTool, s.capturer.Name(), "bytes", len(data)))
	return base64.StdEncoding.EncodeToString(data), nil
}
