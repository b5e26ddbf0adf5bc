package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/babelink/errors"
)

// StatusOK labels a successful invocation.
const StatusOK = "ok"

// Invocation tracks one command request from the route to the response.
type Invocation struct {
	Service   string
	Command   string
	RequestID string
	Start     time.Time

	span    trace.Span
	metrics *Metrics
}

type invocationKey struct{}

// StartInvocation opens the request span for command and marks it in
// flight. metrics may be nil.
func StartInvocation(ctx context.Context, service, command, requestID string, metrics *Metrics) (context.Context, *Invocation) {
	ctx, span := StartSpan(ctx, SpanInvoke, trace.WithAttributes(
		attribute.String(AttrServiceName, service),
		attribute.String(AttrCommand, command),
		attribute.String(AttrRequestID, requestID),
	))
	inv := &Invocation{
		Service:   service,
		Command:   command,
		RequestID: requestID,
		Start:     time.Now(),
		span:      span,
		metrics:   metrics,
	}
	if metrics != nil {
		metrics.InvocationStarted(ctx, command)
	}
	return context.WithValue(ctx, invocationKey{}, inv), inv
}

// InvocationFromContext returns the invocation started on ctx, or nil.
func InvocationFromContext(ctx context.Context) *Invocation {
	inv, _ := ctx.Value(invocationKey{}).(*Invocation)
	return inv
}

// Status is StatusOK for a nil err, otherwise the error code.
func Status(err error) string {
	if err == nil {
		return StatusOK
	}
	if code := errors.CodeOf(err); code != "" {
		return string(code)
	}
	return string(errors.ErrCodeInternal)
}

// End closes the span and records the outcome.
func (inv *Invocation) End(ctx context.Context, err error) {
	d := inv.Duration()
	status := Status(err)

	if err != nil {
		inv.span.RecordError(err)
		inv.span.SetAttributes(
			attribute.String(AttrErrorMessage, err.Error()),
			attribute.String(AttrErrorCode, status),
		)
	}
	inv.span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, d.Milliseconds()),
	)
	inv.span.End()

	if inv.metrics != nil {
		inv.metrics.InvocationFinished(ctx, inv.Command, status, d)
	}
}

// SetCaller tags the span with the authenticated token subject.
func (inv *Invocation) SetCaller(subject string) {
	inv.span.SetAttributes(attribute.String(AttrCaller, subject))
}

// Duration is the time since the invocation started.
func (inv *Invocation) Duration() time.Duration {
	return time.Since(inv.Start)
}
