// Package jwt signs and verifies the bearer tokens accepted by the command
// server. It is generic over the claims type so tests and callers can carry
// their own fields.
package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// stamper is implemented by claims that take issue-time defaults, like
// *Claims.
type stamper interface {
	SetDefaults(now time.Time, ttl time.Duration, issuer string, audience []string)
}

// Service issues and parses tokens with claims of type T.
type Service[T gojwt.Claims] struct {
	cfg      Config
	newEmpty func() T
	parser   *gojwt.Parser
	now      func() time.Time
}

// NewService validates cfg and returns a service. newEmpty returns a fresh
// claims value to decode into.
func NewService[T gojwt.Claims](cfg Config, newEmpty func() T) (*Service[T], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Service[T]{cfg: cfg, newEmpty: newEmpty, now: time.Now}

	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{cfg.method().Alg()}),
		gojwt.WithTimeFunc(func() time.Time { return s.now() }),
	}
	if cfg.Issuer != "" {
		opts = append(opts, gojwt.WithIssuer(cfg.Issuer))
	}
	if len(cfg.Audience) > 0 {
		opts = append(opts, gojwt.WithAudience(cfg.Audience[0]))
	}
	s.parser = gojwt.NewParser(opts...)
	return s, nil
}

// NewCommandService returns a service for the default Claims type.
func NewCommandService(cfg Config) (*Service[*Claims], error) {
	return NewService(cfg, func() *Claims { return &Claims{} })
}

// Issue signs claims. Claims with a SetDefaults method are first stamped
// with the configured TTL, issuer and audience.
func (s *Service[T]) Issue(claims T) (string, error) {
	if st, ok := any(claims).(stamper); ok {
		st.SetDefaults(s.now(), s.cfg.TokenTTL, s.cfg.Issuer, s.cfg.Audience)
	}
	signed, err := gojwt.NewWithClaims(s.cfg.method(), claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("jwt: sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies tokenString and returns its claims.
func (s *Service[T]) Parse(tokenString string) (T, error) {
	var zero T
	token, err := s.parser.ParseWithClaims(tokenString, s.newEmpty(), func(*gojwt.Token) (any, error) {
		return []byte(s.cfg.Secret), nil
	})
	switch {
	case err != nil:
		return zero, fmt.Errorf("jwt: parse token: %w", err)
	case !token.Valid:
		return zero, errors.New("jwt: invalid token")
	}
	claims, ok := token.Claims.(T)
	if !ok {
		return zero, errors.New("jwt: unexpected claims type")
	}
	return claims, nil
}

// ValidatorFunc adapts Parse to the auth.TokenValidator function shape.
func (s *Service[T]) ValidatorFunc() func(string) (any, error) {
	return func(token string) (any, error) {
		return s.Parse(token)
	}
}
