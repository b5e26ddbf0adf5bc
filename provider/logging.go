package provider

import (
	"context"
	"time"

	"github.com/kbukum/babelink/errors"
	"github.com/kbukum/babelink/logger"
)

// WithLogging writes a debug line for each successful call and an error
// line, tagged with the error code, for each failure.
func WithLogging[I, O any](log *logger.Logger) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return decorate(inner, func(ctx context.Context, input I) (O, error) {
			start := time.Now()
			out, err := inner.Execute(ctx, input)

			fields := logger.Fields(
				logger.FieldProvider, inner.Name(),
				logger.FieldDuration, time.Since(start).Milliseconds(),
			)
			l := log.WithContext(ctx)
			if err == nil {
				l.Debug("call succeeded", fields)
				return out, nil
			}
			if code := errors.CodeOf(err); code != "" {
				fields["code"] = string(code)
			}
			l.Error("call failed", logger.MergeWithError(fields, err))
			return out, err
		})
	}
}
