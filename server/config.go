package server

import (
	"fmt"

	"github.com/kbukum/babelink/auth"
	"github.com/kbukum/babelink/server/middleware"
	"github.com/kbukum/babelink/validation"
)

// Config holds HTTP server configuration.
type Config struct {
	Host         string                `yaml:"host" mapstructure:"host"`
	Port         int                   `yaml:"port" mapstructure:"port"`
	ReadTimeout  int                   `yaml:"read_timeout" mapstructure:"read_timeout"`   // seconds
	WriteTimeout int                   `yaml:"write_timeout" mapstructure:"write_timeout"` // seconds
	IdleTimeout  int                   `yaml:"idle_timeout" mapstructure:"idle_timeout"`   // seconds
	MaxBodySize  string                `yaml:"max_body_size" mapstructure:"max_body_size"` // e.g. "32MB"
	CORS         middleware.CORSConfig `yaml:"cors" mapstructure:"cors"`
	Auth         auth.Config           `yaml:"auth" mapstructure:"auth"`
}

// ApplyDefaults sets default values for unset fields. The server only
// listens on loopback unless told otherwise.
func (c *Config) ApplyDefaults() {
	if c.Host == "" {
		c.Host = "127.0.0.1"
	}
	if c.Port == 0 {
		c.Port = 7421
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 30
	}
	// Speech commands block until playback ends (up to 5 minutes).
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 330
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 120
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "32MB"
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"tauri://localhost", "http://localhost:1420", "http://127.0.0.1:1420"}
	}
	if len(c.CORS.AllowedMethods) == 0 {
		c.CORS.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-Id"}
	}
	if c.Auth.Enabled() {
		c.Auth.ApplyDefaults()
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	v := validation.New().
		Range("server.port", c.Port, 0, 65535).
		NonNegative("server.read_timeout", int64(c.ReadTimeout)).
		NonNegative("server.write_timeout", int64(c.WriteTimeout)).
		NonNegative("server.idle_timeout", int64(c.IdleTimeout))
	if err := c.Auth.Validate(); err != nil {
		v.AddError("server.auth", err.Error())
	}
	return v.Err()
}

// Addr returns host:port.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
