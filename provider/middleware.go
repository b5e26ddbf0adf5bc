package provider

import "context"

// Middleware decorates a RequestResponse, e.g. with tracing or logging, and
// delegates the call to it.
type Middleware[I, O any] func(RequestResponse[I, O]) RequestResponse[I, O]

// Chain folds mws into one Middleware whose first element ends up
// outermost, so Chain(trace, log)(p) traces the logged call to p.
func Chain[I, O any](mws ...Middleware[I, O]) Middleware[I, O] {
	return func(p RequestResponse[I, O]) RequestResponse[I, O] {
		for i := range mws {
			p = mws[len(mws)-1-i](p)
		}
		return p
	}
}

// decorated keeps the name and availability of the embedded provider and
// replaces its Execute with call.
type decorated[I, O any] struct {
	RequestResponse[I, O]
	call func(ctx context.Context, input I) (O, error)
}

func (d *decorated[I, O]) Execute(ctx context.Context, input I) (O, error) {
	return d.call(ctx, input)
}

func decorate[I, O any](inner RequestResponse[I, O], call func(context.Context, I) (O, error)) RequestResponse[I, O] {
	return &decorated[I, O]{RequestResponse: inner, call: call}
}
