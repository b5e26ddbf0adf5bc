package auth

import (
	"fmt"
	"time"

	"github.com/kbukum/babelink/auth/jwt"
)

// Config holds command-server authentication settings. Authentication is
// off unless Secret is set.
type Config struct {
	// Secret is the HS256 key shared with the desktop front end.
	Secret string `yaml:"secret" mapstructure:"secret"`

	// Issuer is stamped on minted tokens and required on verification.
	Issuer string `yaml:"issuer" mapstructure:"issuer"`

	// TokenTTL is the lifetime of tokens minted by babelinkctl.
	TokenTTL time.Duration `yaml:"token_ttl" mapstructure:"token_ttl"`
}

// Enabled reports whether bearer tokens are required.
func (c *Config) Enabled() bool {
	return c.Secret != ""
}

// ApplyDefaults sets defaults for an enabled configuration.
func (c *Config) ApplyDefaults() {
	if c.Issuer == "" {
		c.Issuer = "babelink"
	}
	if c.TokenTTL == 0 {
		c.TokenTTL = jwt.DefaultTokenTTL
	}
}

// Validate checks an enabled configuration.
func (c *Config) Validate() error {
	if !c.Enabled() {
		return nil
	}
	cfg := c.JWT()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	return nil
}

// JWT converts c into the token service configuration.
func (c *Config) JWT() jwt.Config {
	cfg := jwt.Config{Secret: c.Secret, Issuer: c.Issuer, TokenTTL: c.TokenTTL}
	cfg.ApplyDefaults()
	return cfg
}

// Describe returns a one-line summary for startup logs. The secret is never
// included.
func (c *Config) Describe() string {
	if !c.Enabled() {
		return "disabled"
	}
	return fmt.Sprintf("JWT(HS256) issuer=%s TTL=%s", c.Issuer, c.TokenTTL)
}

// NewValidatorFromConfig builds the token validator for an enabled config.
// It returns nil, nil when authentication is disabled.
func NewValidatorFromConfig(c Config) (TokenValidator, error) {
	if !c.Enabled() {
		return nil, nil
	}
	svc, err := jwt.NewCommandService(c.JWT())
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}
	return NewValidator(svc.ValidatorFunc()), nil
}
