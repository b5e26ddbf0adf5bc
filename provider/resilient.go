package provider

import (
	"context"
	stderrors "errors"

	"github.com/kbukum/babelink/errors"
	"github.com/kbukum/babelink/resilience"
)

// WithResilience wraps a RequestResponse provider with resilience middleware.
// Execution chain: Timeout → RateLimiter → Bulkhead → CircuitBreaker → Retry → Execute.
// Nil config fields are skipped. Empty config returns the provider unchanged.
func WithResilience[I, O any](p RequestResponse[I, O], cfg ResilienceConfig) RequestResponse[I, O] {
	if cfg.IsEmpty() {
		return p
	}
	return &resilientRR[I, O]{
		inner: p,
		state: BuildResilience(p.Name(), cfg),
	}
}

// ResilienceMiddleware is WithResilience in Middleware form, for use in Chain.
func ResilienceMiddleware[I, O any](cfg ResilienceConfig) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return WithResilience(inner, cfg)
	}
}

type resilientRR[I, O any] struct {
	inner RequestResponse[I, O]
	state *ResilienceState
}

func (r *resilientRR[I, O]) Name() string { return r.inner.Name() }

// IsAvailable is false while the circuit is open.
func (r *resilientRR[I, O]) IsAvailable(ctx context.Context) bool {
	if r.state.CircuitState() == resilience.StateOpen {
		return false
	}
	return r.inner.IsAvailable(ctx)
}

func (r *resilientRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	return ExecuteWithResilience(ctx, r.state, func(ctx context.Context) (O, error) {
		return r.inner.Execute(ctx, input)
	})
}

// ExecuteWithResilience runs fn through the resilience chain:
// Timeout → RateLimiter.Wait → Bulkhead → CircuitBreaker → Retry → fn.
// Exported so other packages (the process runner, the HTTP adapter) can
// reuse the chain. Guard rejections are returned as AppErrors.
func ExecuteWithResilience[T any](ctx context.Context, s *ResilienceState, fn func(ctx context.Context) (T, error)) (T, error) {
	if s == nil {
		return fn(ctx)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	// Layer 1: Rate limiter (wait for token)
	if s.rl != nil {
		if err := s.rl.Wait(ctx); err != nil {
			var zero T
			return zero, s.wrapResilienceError(err)
		}
	}

	// Build the innermost call: retry wrapping fn, or bare fn
	call := func() (T, error) { return fn(ctx) }
	if s.retryCfg != nil {
		retryCfg := *s.retryCfg
		bare := call
		call = func() (T, error) {
			return resilience.Retry(ctx, retryCfg, bare)
		}
	}

	// Layer 2: Circuit breaker wrapping call
	if s.cb != nil {
		cbCall := call
		call = func() (T, error) {
			var result T
			var resultErr error
			cbErr := s.cb.Execute(func() error {
				result, resultErr = cbCall()
				return resultErr
			})
			if cbErr != nil && resultErr == nil {
				return result, s.wrapResilienceError(cbErr)
			}
			return result, resultErr
		}
	}

	// Layer 3: Bulkhead wrapping everything
	if s.bh != nil {
		bhCall := call
		var inner error
		result, err := resilience.ExecuteWithResult(ctx, s.bh, func() (T, error) {
			r, e := bhCall()
			inner = e
			return r, e
		})
		if err != nil && inner == nil {
			return result, s.wrapResilienceError(err)
		}
		return result, err
	}

	return call()
}

// wrapResilienceError converts resilience sentinel errors to AppErrors.
func (s *ResilienceState) wrapResilienceError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.AsAppError(err); ok {
		return err
	}

	switch {
	case stderrors.Is(err, resilience.ErrCircuitOpen):
		return errors.ServiceUnavailable(s.name).WithCause(err)
	case stderrors.Is(err, resilience.ErrRateLimited):
		return errors.RateLimited().WithCause(err)
	case stderrors.Is(err, resilience.ErrBulkheadFull), stderrors.Is(err, resilience.ErrBulkheadTimeout):
		return errors.ServiceUnavailable(s.name).
			WithCause(err).
			WithDetail("reason", "concurrency limit reached")
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.Timeout(s.name).WithCause(err)
	case stderrors.Is(err, context.Canceled):
		return errors.Internal(err)
	default:
		return err
	}
}
