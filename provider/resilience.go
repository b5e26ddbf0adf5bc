package provider

import (
	"time"

	"github.com/kbukum/babelink/resilience"
)

// ResilienceConfig bundles optional resilience policies for a provider.
// Nil fields are skipped and a zero config is a pure passthrough.
type ResilienceConfig struct {
	// CircuitBreaker stops calls after repeated errors.
	CircuitBreaker *resilience.CircuitBreakerConfig
	// Retry retries failed calls with exponential backoff.
	Retry *resilience.RetryConfig
	// RateLimiter limits the rate of calls using a token bucket.
	RateLimiter *resilience.RateLimiterConfig
	// Bulkhead limits concurrent calls.
	Bulkhead *resilience.BulkheadConfig
	// Timeout bounds each call, including retries. Zero means no extra deadline.
	Timeout time.Duration
}

// IsEmpty returns true if no resilience policies are configured.
func (c ResilienceConfig) IsEmpty() bool {
	return c.CircuitBreaker == nil && c.Retry == nil && c.RateLimiter == nil &&
		c.Bulkhead == nil && c.Timeout <= 0
}

// FromPolicy converts a configuration policy into a ResilienceConfig whose
// primitives are labelled name.
func FromPolicy(name string, p resilience.Policy, timeout time.Duration) ResilienceConfig {
	return ResilienceConfig{
		CircuitBreaker: p.CircuitBreakerConfig(name),
		Retry:          p.RetryConfig(),
		RateLimiter:    p.RateLimiterConfig(name),
		Bulkhead:       p.BulkheadConfig(name),
		Timeout:        timeout,
	}
}

// ResilienceState holds initialized resilience primitives built from config.
type ResilienceState struct {
	name string
	cb   *resilience.CircuitBreaker
	rl   *resilience.RateLimiter
	bh   *resilience.Bulkhead
	// Retry config is stored as-is since resilience.Retry is a function, not a struct.
	retryCfg *resilience.RetryConfig
	timeout  time.Duration
}

// BuildResilience creates initialized resilience primitives from config.
// name is used in errors returned when a guard rejects a call.
func BuildResilience(name string, cfg ResilienceConfig) *ResilienceState {
	if cfg.IsEmpty() {
		return nil
	}
	s := &ResilienceState{
		name:     name,
		retryCfg: cfg.Retry,
		timeout:  cfg.Timeout,
	}
	if cfg.CircuitBreaker != nil {
		s.cb = resilience.NewCircuitBreaker(*cfg.CircuitBreaker)
	}
	if cfg.RateLimiter != nil {
		s.rl = resilience.NewRateLimiter(*cfg.RateLimiter)
	}
	if cfg.Bulkhead != nil {
		s.bh = resilience.NewBulkhead(*cfg.Bulkhead)
	}
	return s
}

// CircuitState reports the breaker state, or StateClosed without a breaker.
func (s *ResilienceState) CircuitState() resilience.State {
	if s == nil || s.cb == nil {
		return resilience.StateClosed
	}
	return s.cb.State()
}
