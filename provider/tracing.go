package provider

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/babelink/observability"
)

// WithTracing opens a span named "{service}.{provider}" around each call.
// Failures are recorded on the span together with their error code.
func WithTracing[I, O any](service string) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return decorate(inner, func(ctx context.Context, input I) (O, error) {
			ctx, span := observability.StartSpan(ctx, service+"."+inner.Name(), trace.WithAttributes(
				attribute.String(observability.AttrServiceName, service),
				attribute.String(observability.AttrOperationName, inner.Name()),
			))
			defer span.End()

			out, err := inner.Execute(ctx, input)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				span.SetAttributes(attribute.String(observability.AttrErrorCode, observability.Status(err)))
			}
			return out, err
		})
	}
}
