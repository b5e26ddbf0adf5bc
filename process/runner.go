package process

import (
	"context"

	"github.com/kbukum/babelink/provider"
)

var _ Executor = (*Runner)(nil)

// Runner executes subprocesses through a provider middleware chain with
// persistent resilience state. The circuit breaker state persists across
// calls, so a tool that keeps failing to spawn trips the breaker.
type Runner struct {
	rr provider.RequestResponse[Command, *Result]
}

// NewRunner creates a Runner around an Adapter built from cfg. Middlewares
// are applied outermost first, then the resilience layer. An empty
// resilience config adds nothing.
func NewRunner(cfg Config, res provider.ResilienceConfig, mws ...provider.Middleware[Command, *Result]) *Runner {
	var rr provider.RequestResponse[Command, *Result] = NewAdapter(cfg)
	rr = provider.WithResilience(rr, res)
	rr = provider.Chain(mws...)(rr)
	return &Runner{rr: rr}
}

// Name returns the name of the underlying adapter.
func (r *Runner) Name() string { return r.rr.Name() }

// Run executes cmd through the chain.
func (r *Runner) Run(ctx context.Context, cmd Command) (*Result, error) {
	return r.rr.Execute(ctx, cmd)
}
