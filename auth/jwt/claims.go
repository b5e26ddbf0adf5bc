package jwt

import (
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Claims are the claims carried by a command token. Subject names the
// client (e.g. "babelink-ui" or "babelinkctl").
type Claims struct {
	gojwt.RegisteredClaims
}

// NewClaims returns claims for subject; the service fills the time fields.
func NewClaims(subject string) *Claims {
	return &Claims{RegisteredClaims: gojwt.RegisteredClaims{Subject: subject}}
}

// SetDefaults stamps issue/expiry times and fills issuer and audience when
// the caller left them empty.
func (c *Claims) SetDefaults(now time.Time, ttl time.Duration, issuer string, audience []string) {
	c.IssuedAt = gojwt.NewNumericDate(now)
	c.NotBefore = gojwt.NewNumericDate(now)
	if ttl > 0 {
		c.ExpiresAt = gojwt.NewNumericDate(now.Add(ttl))
	}
	if c.Issuer == "" {
		c.Issuer = issuer
	}
	if len(c.Audience) == 0 && len(audience) > 0 {
		c.Audience = audience
	}
}
