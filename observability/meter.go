package observability

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the instruments shared by the command routes, the provider
// middleware and the process runner.
//
// Invocations count HTTP command requests. Calls count executions of a
// single provider: a command handler, a tool run or an upstream request.
type Metrics struct {
	invocations        metric.Int64Counter
	invocationDuration metric.Float64Histogram
	inFlight           metric.Int64UpDownCounter
	calls              metric.Int64Counter
	callDuration       metric.Float64Histogram
	failures           metric.Int64Counter
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var (
		m    Metrics
		errs []error
		err  error
	)
	m.invocations, err = meter.Int64Counter("babelink.invocations",
		metric.WithDescription("Command requests by command and status"))
	errs = append(errs, err)
	m.invocationDuration, err = meter.Float64Histogram("babelink.invocation.duration",
		metric.WithDescription("Command request latency"), metric.WithUnit("s"))
	errs = append(errs, err)
	m.inFlight, err = meter.Int64UpDownCounter("babelink.invocations.in_flight",
		metric.WithDescription("Command requests being served"))
	errs = append(errs, err)
	m.calls, err = meter.Int64Counter("babelink.calls",
		metric.WithDescription("Provider calls by provider and status"))
	errs = append(errs, err)
	m.callDuration, err = meter.Float64Histogram("babelink.call.duration",
		metric.WithDescription("Provider call latency"), metric.WithUnit("s"))
	errs = append(errs, err)
	m.failures, err = meter.Int64Counter("babelink.failures",
		metric.WithDescription("Failed provider calls by error code"))
	errs = append(errs, err)

	if err := stderrors.Join(errs...); err != nil {
		return nil, fmt.Errorf("observability: create instruments: %w", err)
	}
	return &m, nil
}

// NewDefaultMetrics creates the instruments on the global meter provider.
// Instruments made before Setup follow the provider Setup installs.
func NewDefaultMetrics(serviceName string) (*Metrics, error) {
	return NewMetrics(otel.Meter(serviceName))
}

// InvocationStarted marks a command request as in flight.
func (m *Metrics) InvocationStarted(ctx context.Context, command string) {
	m.inFlight.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrCommand, command)))
}

// InvocationFinished records a completed command request.
func (m *Metrics) InvocationFinished(ctx context.Context, command, status string, d time.Duration) {
	cmd := attribute.String(AttrCommand, command)
	m.inFlight.Add(ctx, -1, metric.WithAttributes(cmd))
	m.invocations.Add(ctx, 1, metric.WithAttributes(cmd, attribute.String(AttrStatus, status)))
	m.invocationDuration.Record(ctx, d.Seconds(), metric.WithAttributes(cmd))
}

// CallFinished records one provider call.
func (m *Metrics) CallFinished(ctx context.Context, service, provider, status string, d time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String(AttrServiceName, service),
		attribute.String(AttrOperationName, provider),
	}
	m.calls.Add(ctx, 1, metric.WithAttributes(append(attrs, attribute.String(AttrStatus, status))...))
	m.callDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attrs...))
}

// CallFailed counts a failed provider call by error code.
func (m *Metrics) CallFailed(ctx context.Context, code, provider string) {
	m.failures.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrErrorCode, code),
		attribute.String(AttrOperationName, provider),
	))
}
