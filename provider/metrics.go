package provider

import (
	"context"
	"time"

	"github.com/kbukum/babelink/observability"
)

// WithMetrics counts and times each call under the service label and counts
// failures by error code.
func WithMetrics[I, O any](metrics *observability.Metrics, service string) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return decorate(inner, func(ctx context.Context, input I) (O, error) {
			start := time.Now()
			out, err := inner.Execute(ctx, input)
			elapsed := time.Since(start)

			status := observability.Status(err)
			if err != nil {
				metrics.CallFailed(ctx, status, inner.Name())
			}
			metrics.CallFinished(ctx, service, inner.Name(), status, elapsed)
			return out, err
		})
	}
}
