package ocr

import (
	"context"
	"time"

	"github.com/kbukum/babelink/process"
)

// Tesseract runs the tesseract CLI and reads the text from stdout.
type Tesseract struct {
	exec    process.Executor
	binary  string
	timeout time.Duration
}

// NewTesseract creates the CLI engine.
func NewTesseract(exec process.Executor, cfg Config) *Tesseract {
	cfg.ApplyDefaults()
	return &Tesseract{exec: exec, binary: cfg.Binary, timeout: cfg.Timeout}
}

func (t *Tesseract) Name() string                       { return EngineTesseract }
func (t *Tesseract) IsAvailable(_ context.Context) bool { return process.LookPath(t.binary) }

// Recognize runs tesseract <imagePath> stdout -l <languages>.
func (t *Tesseract) Recognize(ctx context.Context, imagePath, languages string) (string, error) {
	res, err := t.exec.Run(ctx, process.Command{
		Tool:    "Tesseract",
		Binary:  t.binary,
		Args:    []string{imagePath, "stdout", "-l", languages},
		Timeout: t.timeout,
	})
	if err != nil {
		return "", err
	}
	return res.Output(), nil
}
