package provider

import "context"

// RequestResponse represents a provider that takes one input and returns one
// output. Every command, external tool run and HTTP call in babelink has
// this shape.
type RequestResponse[I, O any] interface {
	Provider
	Execute(ctx context.Context, input I) (O, error)
}

// Func adapts a plain function to RequestResponse.
type Func[I, O any] struct {
	// ID is returned by Name.
	ID string
	// Fn does the work.
	Fn func(ctx context.Context, input I) (O, error)
	// Available backs IsAvailable. Nil means always available.
	Available func(ctx context.Context) bool
}

// NewFunc returns a RequestResponse named name that calls fn.
func NewFunc[I, O any](name string, fn func(ctx context.Context, input I) (O, error)) *Func[I, O] {
	return &Func[I, O]{ID: name, Fn: fn}
}

// Name returns the provider name.
func (f *Func[I, O]) Name() string { return f.ID }

// IsAvailable reports whether the function can serve requests.
func (f *Func[I, O]) IsAvailable(ctx context.Context) bool {
	if f.Available == nil {
		return true
	}
	return f.Available(ctx)
}

// Execute calls the wrapped function.
func (f *Func[I, O]) Execute(ctx context.Context, input I) (O, error) {
	return f.Fn(ctx, input)
}
