package httpclient

import (
	"context"
	"encoding/json"
	"net/http"

	apperrors "github.com/kbukum/babelink/errors"
)

// TypedResponse is a response whose JSON body was decoded into T.
type TypedResponse[T any] struct {
	StatusCode int
	Header     http.Header
	Data       T
}

// Get sends a GET and decodes the JSON response into T.
func Get[T any](a *Adapter, ctx context.Context, path string, opts ...RequestOption) (*TypedResponse[T], error) {
	return call[T](a, ctx, Request{Method: http.MethodGet, Path: path}, opts)
}

// Post sends body as JSON and decodes the JSON response into T.
func Post[T any](a *Adapter, ctx context.Context, path string, body any, opts ...RequestOption) (*TypedResponse[T], error) {
	return call[T](a, ctx, Request{Method: http.MethodPost, Path: path, Body: body}, opts)
}

// call sends req and decodes the body. An error response whose body still
// decodes into T is returned alongside the error, so callers can read
// structured error payloads. An undecodable success body is a
// DECODE_FAILURE.
func call[T any](a *Adapter, ctx context.Context, req Request, opts []RequestOption) (*TypedResponse[T], error) {
	for _, opt := range opts {
		opt(&req)
	}

	resp, err := a.Do(ctx, req)
	if err != nil {
		if resp == nil {
			return nil, err
		}
		var data T
		if json.Unmarshal(resp.Body, &data) != nil {
			return nil, err
		}
		return &TypedResponse[T]{StatusCode: resp.StatusCode, Header: resp.Header, Data: data}, err
	}

	out := &TypedResponse[T]{StatusCode: resp.StatusCode, Header: resp.Header}
	if len(resp.Body) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(resp.Body, &out.Data); err != nil {
		decodeErr := apperrors.DecodeFailure(a.Name()+" response", err)
		decodeErr.HTTPStatus = http.StatusBadGateway
		return nil, decodeErr
	}
	return out, nil
}
