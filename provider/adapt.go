package provider

import "context"

// Adapt exposes inner, which speaks [BI, BO], as a provider speaking [I, O].
// The command dispatcher uses it to decode raw JSON arguments into a typed
// request on the way in and to erase the typed result on the way out.
//
// A mapIn error is returned without calling inner.
func Adapt[I, O, BI, BO any](
	inner RequestResponse[BI, BO],
	name string,
	mapIn func(ctx context.Context, input I) (BI, error),
	mapOut func(output BO) (O, error),
) RequestResponse[I, O] {
	return &adapter[I, O, BI, BO]{inner: inner, name: name, in: mapIn, out: mapOut}
}

type adapter[I, O, BI, BO any] struct {
	inner RequestResponse[BI, BO]
	name  string
	in    func(context.Context, I) (BI, error)
	out   func(BO) (O, error)
}

func (a *adapter[I, O, BI, BO]) Name() string { return a.name }

func (a *adapter[I, O, BI, BO]) IsAvailable(ctx context.Context) bool {
	return a.inner.IsAvailable(ctx)
}

func (a *adapter[I, O, BI, BO]) Execute(ctx context.Context, input I) (O, error) {
	var zero O
	req, err := a.in(ctx, input)
	if err != nil {
		return zero, err
	}
	resp, err := a.inner.Execute(ctx, req)
	if err != nil {
		return zero, err
	}
	return a.out(resp)
}
