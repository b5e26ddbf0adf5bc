package httpclient

import (
	"net/http"
	"net/url"
)

// Request describes one call to the upstream.
type Request struct {
	Method string
	// Path is joined to Config.BaseURL unless it is already an absolute URL.
	Path string
	// Header is merged over Config.Headers.
	Header http.Header
	Query  url.Values
	// Body is sent as-is for io.Reader, []byte and string, and JSON-encoded
	// otherwise.
	Body any
	// Auth replaces Config.Auth for this request.
	Auth Credentials
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// RequestOption configures a single request.
type RequestOption func(*Request)

// WithHeader sets a request header.
func WithHeader(key, value string) RequestOption {
	return func(r *Request) {
		if r.Header == nil {
			r.Header = make(http.Header)
		}
		r.Header.Set(key, value)
	}
}

// WithQueryParam sets a query parameter.
func WithQueryParam(key, value string) RequestOption {
	return func(r *Request) {
		if r.Query == nil {
			r.Query = make(url.Values)
		}
		r.Query.Set(key, value)
	}
}

// WithRequestAuth overrides the adapter's credentials for one request.
func WithRequestAuth(auth Credentials) RequestOption {
	return func(r *Request) { r.Auth = auth }
}
