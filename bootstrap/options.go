package bootstrap

import (
	"io"
	"time"

	"github.com/kbukum/babelink/logger"
)

// Option configures NewApp.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	shutdownTimeout time.Duration
	summaryOut      io.Writer
}

func resolveOptions(opts []Option) appOptions {
	var o appOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger uses l instead of a logger built from the config.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) { o.logger = l }
}

// WithShutdownTimeout overrides the configured shutdown_timeout.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *appOptions) { o.shutdownTimeout = d }
}

// WithSummaryOutput redirects the startup summary from stderr. Pass
// io.Discard to silence it.
func WithSummaryOutput(w io.Writer) Option {
	return func(o *appOptions) { o.summaryOut = w }
}
