package httpclient

import (
	"errors"
	"net/http"
	"testing"
	"time"

	apperrors "github.com/kbukum/babelink/errors"
	"github.com/kbukum/babelink/resilience"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %v", cfg.Timeout)
	}
	if cfg.Name != "http" {
		t.Errorf("expected default name 'http', got %q", cfg.Name)
	}
}

func TestConfig_ApplyDefaults_PreservesExisting(t *testing.T) {
	cfg := Config{Timeout: 10 * time.Second, Name: "Translation API"}
	cfg.ApplyDefaults()
	if cfg.Timeout != 10*time.Second || cfg.Name != "Translation API" {
		t.Errorf("defaults overwrote explicit values: %+v", cfg)
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := (&Config{Timeout: 10 * time.Second}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (&Config{Timeout: -1}).Validate(); err == nil {
		t.Fatal("expected error for negative timeout")
	}
}

func TestConfig_ApplyPolicy(t *testing.T) {
	cfg := Config{Name: "Translation API"}
	cfg.ApplyPolicy(resilience.Policy{
		Retry:          &resilience.RetryPolicy{MaxAttempts: 4},
		CircuitBreaker: &resilience.CircuitBreakerPolicy{MaxFailures: 2},
	})
	if cfg.Retry == nil || cfg.Retry.MaxAttempts != 4 {
		t.Errorf("retry = %+v", cfg.Retry)
	}
	if cfg.CircuitBreaker == nil || cfg.CircuitBreaker.Name != "Translation API" {
		t.Errorf("breaker = %+v", cfg.CircuitBreaker)
	}
	if cfg.RateLimiter != nil {
		t.Error("rate limiter should stay disabled")
	}
}

func TestConfig_ApplyPolicyUsesHTTPPredicates(t *testing.T) {
	cfg := Config{Name: "test"}
	cfg.ApplyPolicy(resilience.Policy{
		Retry:          &resilience.RetryPolicy{},
		CircuitBreaker: &resilience.CircuitBreakerPolicy{},
	})
	retryIf, isFailure := cfg.Retry.RetryIf, cfg.CircuitBreaker.IsFailure

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"4xx", statusError("x", http.StatusUnauthorized, nil), false},
		{"5xx", statusError("x", http.StatusServiceUnavailable, nil), true},
		{"429", statusError("x", http.StatusTooManyRequests, nil), true},
		{"rejected", apperrors.UpstreamRejected("x", http.StatusBadRequest), false},
		{"unclassified", errors.New("unclassified"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := retryIf(tt.err); got != tt.want {
				t.Errorf("RetryIf = %v, want %v", got, tt.want)
			}
			if got := isFailure(tt.err); got != tt.want {
				t.Errorf("IsFailure = %v, want %v", got, tt.want)
			}
		})
	}
}
