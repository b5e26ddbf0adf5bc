package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/kbukum/babelink/errors"
	"github.com/kbukum/babelink/provider"
	"github.com/kbukum/babelink/resilience"
)

// Option customizes an Adapter after construction.
type Option func(*Adapter)

// WithTransport replaces the HTTP transport (tests point it at httptest).
func WithTransport(rt http.RoundTripper) Option {
	return func(a *Adapter) { a.client.Transport = rt }
}

// Adapter is an HTTP client bound to one upstream. Every call runs through
// the configured resilience chain and fails with an *errors.AppError.
type Adapter struct {
	client *http.Client
	config Config
	res    *provider.ResilienceState
}

var (
	_ provider.RequestResponse[Request, *Response] = (*Adapter)(nil)
	_ provider.Closeable                           = (*Adapter)(nil)
)

// New creates an adapter for cfg.
func New(cfg Config, opts ...Option) (*Adapter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &Adapter{
		client: &http.Client{
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
			Timeout:   cfg.Timeout,
		},
		config: cfg,
		res:    provider.BuildResilience(cfg.Name, cfg.resilienceConfig()),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Do sends req and reads the whole response. A non-2xx response is
// returned together with its error.
func (a *Adapter) Do(ctx context.Context, req Request) (*Response, error) {
	return provider.ExecuteWithResilience(ctx, a.res, func(ctx context.Context) (*Response, error) {
		return a.send(ctx, req)
	})
}

func (a *Adapter) send(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := a.newRequest(ctx, req)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, transportError(ctx, a.config.Name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(ctx, a.config.Name, fmt.Errorf("read response body: %w", err))
	}

	out := &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, statusError(a.config.Name, resp.StatusCode, body)
	}
	return out, nil
}

func (a *Adapter) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, a.resolve(req.Path), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, vs := range req.Query {
			q[k] = vs
		}
		httpReq.URL.RawQuery = q.Encode()
	}
	for k, v := range a.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, vs := range req.Header {
		httpReq.Header[http.CanonicalHeaderKey(k)] = vs
	}
	if contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	auth := a.config.Auth
	if req.Auth != nil {
		auth = req.Auth
	}
	if auth != nil {
		auth(httpReq)
	}
	return httpReq, nil
}

// resolve joins path to the base URL unless path is already absolute.
func (a *Adapter) resolve(path string) string {
	if a.config.BaseURL == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimSuffix(a.config.BaseURL, "/") + "/" + strings.TrimPrefix(path, "/")
}

func encodeBody(body any) (io.Reader, string, error) {
	switch v := body.(type) {
	case nil:
		return nil, "", nil
	case io.Reader:
		return v, "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	case string:
		return strings.NewReader(v), "text/plain", nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(data), "application/json", nil
}

// Name returns the upstream name from Config.
func (a *Adapter) Name() string { return a.config.Name }

// IsAvailable is false while the circuit breaker is open.
func (a *Adapter) IsAvailable(context.Context) bool {
	return a.res.CircuitState() != resilience.StateOpen
}

// Execute is Do in provider.RequestResponse form.
func (a *Adapter) Execute(ctx context.Context, req Request) (*Response, error) {
	return a.Do(ctx, req)
}

// Close drops idle keep-alive connections.
func (a *Adapter) Close(context.Context) error {
	a.client.CloseIdleConnections()
	return nil
}
