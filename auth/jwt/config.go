package jwt

import (
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/babelink/validation"
)

// SigningMethod identifies the HMAC algorithm used to sign command tokens.
type SigningMethod string

const (
	HS256 SigningMethod = "HS256"
	HS384 SigningMethod = "HS384"
	HS512 SigningMethod = "HS512"
)

var hmacMethods = map[SigningMethod]*gojwt.SigningMethodHMAC{
	HS256: gojwt.SigningMethodHS256,
	HS384: gojwt.SigningMethodHS384,
	HS512: gojwt.SigningMethodHS512,
}

// DefaultTokenTTL is the lifetime of tokens minted without an explicit TTL.
const DefaultTokenTTL = 12 * time.Hour

// Config configures the token service. The desktop front end and the
// backend share Secret; tokens never leave the machine.
type Config struct {
	Secret   string        `mapstructure:"secret"`
	Method   SigningMethod `mapstructure:"method"`
	Issuer   string        `mapstructure:"issuer"`   // "iss", checked on parse when set
	Audience []string      `mapstructure:"audience"` // "aud", first entry checked on parse
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Method == "" {
		c.Method = HS256
	}
	if c.TokenTTL == 0 {
		c.TokenTTL = DefaultTokenTTL
	}
}

// Validate checks that the configuration can sign and verify tokens.
func (c *Config) Validate() error {
	return validation.New().
		OneOf("jwt.method", string(c.Method), []string{string(HS256), string(HS384), string(HS512)}).
		Required("jwt.secret", c.Secret).
		NonNegative("jwt.token_ttl", int64(c.TokenTTL)).
		Err()
}

func (c *Config) method() *gojwt.SigningMethodHMAC {
	if m, ok := hmacMethods[c.Method]; ok {
		return m
	}
	return gojwt.SigningMethodHS256
}
