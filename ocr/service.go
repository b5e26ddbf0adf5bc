package ocr

import (
	"context"
	"strings"

	"github.com/kbukum/babelink/errors"
	"github.com/kbukum/babelink/logger"
	"github.com/kbukum/babelink/scratch"
)

// Service turns base64 images into text.
type Service struct {
	engines   *Engines
	arena     *scratch.Arena
	languages string
	sniff     bool
	log       *logger.Logger
}

// NewService creates an OCR Service.
func NewService(engines *Engines, arena *scratch.Arena, cfg Config) *Service {
	cfg.ApplyDefaults()
	return &Service{
		engines:   engines,
		arena:     arena,
		languages: cfg.Languages,
		sniff:     !cfg.SkipFormatCheck,
		log:       logger.WithComponent("ocr"),
	}
}

// Engine returns the engine the next call would use.
func (s *Service) Engine(ctx context.Context) (Engine, error) {
	return s.engines.Pick(ctx)
}

// ExtractText decodes imageBase64, runs OCR on it and returns the text.
func (s *Service) ExtractText(ctx context.Context, imageBase64 string) (string, error) {
	if strings.TrimSpace(imageBase64) == "" {
		return "", errors.InvalidInput("image", "image is required")
	}
	data, err := DecodeBase64(imageBase64)
	if err != nil {
		return "", err
	}
	if s.sniff {
		// Tesseract reads more formats than the image package knows (PNM,
		// JPEG 2000), so an unknown format is logged and still recognized.
		if format, err := SniffFormat(data); err != nil {
			s.log.Warn("image format not recognized, passing to engine as-is",
				logger.MergeWithError(logger.Fields("bytes", len(data)), err))
		} else {
			s.log.Debug("image accepted", logger.Fields("format", format, "bytes", len(data)))
		}
	}

	engine, err := s.engines.Pick(ctx)
	if err != nil {
		return "", err
	}

	path, err := s.arena.Write(scratch.KindOCR, data)
	if err != nil {
		return "", err
	}
	defer s.arena.Release(path)

	return engine.Recognize(ctx, path, s.languages)
}
