// Package httpclient provides a configurable HTTP client with built-in
// authentication and resilience (retry, circuit breaker, rate limiting).
//
// Failures are AppErrors: timeouts are TIMEOUT, transport failures and
// 5xx/429 answers are NETWORK_FAILURE, other non-2xx answers are
// UPSTREAM_REJECTED. A response status stays reachable through StatusCode.
//
// # Basic Usage
//
//	client, err := httpclient.New(httpclient.Config{
//	    Name:    "Translation API",
//	    BaseURL: "https://api.us-south.language-translator.watson.cloud.ibm.com",
//	    Timeout: 30 * time.Second,
//	    Auth:    httpclient.BasicAuth("apikey", key),
//	})
//
//	resp, err := httpclient.Post[translateResponse](client, ctx, "/v3/translate", body,
//	    httpclient.WithQueryParam("version", "2018-05-01"))
//
// # With Resilience
//
//	cfg := httpclient.Config{Name: "Translation API", BaseURL: url}
//	cfg.ApplyPolicy(resilience.Policy{
//	    Retry:          &resilience.RetryPolicy{MaxAttempts: 3},
//	    CircuitBreaker: &resilience.CircuitBreakerPolicy{MaxFailures: 5},
//	})
//	client, err := httpclient.New(cfg)
package httpclient
