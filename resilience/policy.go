package resilience

import (
	"time"

	"github.com/kbukum/babelink/logger"
)

// Policy is the configuration form of the resilience primitives. Nil
// sections are disabled; a zero Policy adds nothing.
type Policy struct {
	Retry          *RetryPolicy          `yaml:"retry" mapstructure:"retry"`
	CircuitBreaker *CircuitBreakerPolicy `yaml:"circuit_breaker" mapstructure:"circuit_breaker"`
	RateLimit      *RateLimitPolicy      `yaml:"rate_limit" mapstructure:"rate_limit"`
	Bulkhead       *BulkheadPolicy       `yaml:"bulkhead" mapstructure:"bulkhead"`
}

// RetryPolicy configures Retry.
type RetryPolicy struct {
	MaxAttempts    int           `yaml:"max_attempts" mapstructure:"max_attempts"`
	InitialBackoff time.Duration `yaml:"initial_backoff" mapstructure:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff" mapstructure:"max_backoff"`
}

// CircuitBreakerPolicy configures a CircuitBreaker.
type CircuitBreakerPolicy struct {
	MaxFailures int           `yaml:"max_failures" mapstructure:"max_failures"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// RateLimitPolicy configures a RateLimiter.
type RateLimitPolicy struct {
	Rate  float64 `yaml:"rate" mapstructure:"rate"`
	Burst int     `yaml:"burst" mapstructure:"burst"`
}

// BulkheadPolicy configures a Bulkhead. A negative MaxWait queues callers
// until their context ends.
type BulkheadPolicy struct {
	MaxConcurrent int           `yaml:"max_concurrent" mapstructure:"max_concurrent"`
	MaxWait       time.Duration `yaml:"max_wait" mapstructure:"max_wait"`
}

// IsZero reports whether no section is enabled.
func (p Policy) IsZero() bool {
	return p.Retry == nil && p.CircuitBreaker == nil && p.RateLimit == nil && p.Bulkhead == nil
}

// RetryConfig converts the policy section, or returns nil when disabled.
func (p Policy) RetryConfig() *RetryConfig {
	if p.Retry == nil {
		return nil
	}
	cfg := DefaultRetryConfig()
	if p.Retry.MaxAttempts > 0 {
		cfg.MaxAttempts = p.Retry.MaxAttempts
	}
	if p.Retry.InitialBackoff > 0 {
		cfg.InitialBackoff = p.Retry.InitialBackoff
	}
	if p.Retry.MaxBackoff > 0 {
		cfg.MaxBackoff = p.Retry.MaxBackoff
	}
	return &cfg
}

// CircuitBreakerConfig converts the policy section, or returns nil when disabled.
func (p Policy) CircuitBreakerConfig(name string) *CircuitBreakerConfig {
	if p.CircuitBreaker == nil {
		return nil
	}
	cfg := DefaultCircuitBreakerConfig(name)
	cfg.IsFailure = DefaultRetryIf
	cfg.OnStateChange = logStateChange
	if p.CircuitBreaker.MaxFailures > 0 {
		cfg.MaxFailures = p.CircuitBreaker.MaxFailures
	}
	if p.CircuitBreaker.Timeout > 0 {
		cfg.Timeout = p.CircuitBreaker.Timeout
	}
	return &cfg
}

// RateLimiterConfig converts the policy section, or returns nil when disabled.
func (p Policy) RateLimiterConfig(name string) *RateLimiterConfig {
	if p.RateLimit == nil {
		return nil
	}
	return &RateLimiterConfig{Name: name, Rate: p.RateLimit.Rate, Burst: p.RateLimit.Burst, OnLimit: logLimited}
}

// BulkheadConfig converts the policy section, or returns nil when disabled
// or when MaxConcurrent is not positive.
func (p Policy) BulkheadConfig(name string) *BulkheadConfig {
	if p.Bulkhead == nil || p.Bulkhead.MaxConcurrent <= 0 {
		return nil
	}
	return &BulkheadConfig{Name: name, MaxConcurrent: p.Bulkhead.MaxConcurrent, MaxWait: p.Bulkhead.MaxWait}
}

func logStateChange(name string, from, to State) {
	fields := logger.Fields(logger.FieldProvider, name, "from", from.String(), "to", to.String())
	if to == StateOpen {
		logger.WithComponent("resilience").Warn("circuit breaker opened", fields)
		return
	}
	logger.WithComponent("resilience").Info("circuit breaker state changed", fields)
}

func logLimited(name string) {
	logger.WithComponent("resilience").Debug("rate limit reached", logger.Fields(logger.FieldProvider, name))
}
