//go:build gosseract

package ocr

import (
	"context"
	"strings"
	"time"

	"github.com/otiai10/gosseract/v2"

	"github.com/kbukum/babelink/errors"
	"github.com/kbukum/babelink/process"
)

func init() {
	registerEngine(EngineGosseract, func(cfg Config, _ process.Executor) Engine {
		return NewGosseract(cfg)
	})
}

// Gosseract recognizes text in-process through libtesseract.
type Gosseract struct {
	clientFactory func() *gosseract.Client
	timeout       time.Duration
}

// NewGosseract creates the in-process engine.
func NewGosseract(cfg Config) *Gosseract {
	cfg.ApplyDefaults()
	return &Gosseract{clientFactory: gosseract.NewClient, timeout: cfg.Timeout}
}

func (g *Gosseract) Name() string                     { return EngineGosseract }
func (g *Gosseract) IsAvailable(context.Context) bool { return true }

// Init checks that libtesseract answers before the engine is selected.
func (g *Gosseract) Init(context.Context) error {
	c := g.clientFactory()
	defer c.Close()
	if c.Version() == "" {
		return errors.ProcessSpawnFailed(EngineGosseract, nil)
	}
	return nil
}

type recognition struct {
	text string
	err  error
}

// Recognize runs one client per call. The cgo call cannot be interrupted, so
// on timeout the result is abandoned and the client closes when it returns.
func (g *Gosseract) Recognize(ctx context.Context, imagePath, languages string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	done := make(chan recognition, 1)
	go func() {
		text, err := g.recognize(imagePath, languages)
		done <- recognition{text: text, err: err}
	}()

	select {
	case r := <-done:
		return r.text, r.err
	case <-ctx.Done():
		return "", errors.Timeout("gosseract").WithCause(ctx.Err())
	}
}

func (g *Gosseract) recognize(imagePath, languages string) (string, error) {
	c := g.clientFactory()
	defer c.Close()

	if err := c.SetLanguage(strings.Split(languages, "+")...); err != nil {
		return "", errors.InvalidInput("ocr.languages", err.Error())
	}
	if err := c.SetImage(imagePath); err != nil {
		return "", errors.DecodeFailure("image", err)
	}
	text, err := c.Text()
	if err != nil {
		return "", errors.Internal(err)
	}
	return strings.TrimSpace(text), nil
}
