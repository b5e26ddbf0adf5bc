package httpclient

import (
	"fmt"
	"time"

	"github.com/kbukum/babelink/provider"
	"github.com/kbukum/babelink/resilience"
)

const (
	defaultTimeout = 30 * time.Second
)

// Config configures the HTTP client.
type Config struct {
	// Name identifies the upstream in errors, logs and resilience state
	// (e.g. "Translation API").
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL is the base URL prepended to all request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout is the default request timeout. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Auth configures default authentication applied to all requests.
	// Individual requests can override this.
	Auth Credentials `yaml:"-" mapstructure:"-"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Retry configures retry behavior. Nil disables retry.
	Retry *resilience.RetryConfig `yaml:"-" mapstructure:"-"`

	// CircuitBreaker configures circuit breaker behavior. Nil disables it.
	CircuitBreaker *resilience.CircuitBreakerConfig `yaml:"-" mapstructure:"-"`

	// RateLimiter configures rate limiting. Nil disables it.
	RateLimiter *resilience.RateLimiterConfig `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	if c.Name == "" {
		c.Name = "http"
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	return nil
}

// ApplyPolicy copies the enabled sections of a configuration policy into c.
// Retries and breaker failures are limited to Retryable errors, so a 4xx
// answer is neither repeated nor held against the upstream.
func (c *Config) ApplyPolicy(p resilience.Policy) {
	if c.Retry = p.RetryConfig(); c.Retry != nil {
		c.Retry.RetryIf = Retryable
	}
	if c.CircuitBreaker = p.CircuitBreakerConfig(c.Name); c.CircuitBreaker != nil {
		c.CircuitBreaker.IsFailure = Retryable
	}
	c.RateLimiter = p.RateLimiterConfig(c.Name)
}

func (c *Config) resilienceConfig() provider.ResilienceConfig {
	return provider.ResilienceConfig{
		Retry:          c.Retry,
		CircuitBreaker: c.CircuitBreaker,
		RateLimiter:    c.RateLimiter,
	}
}
