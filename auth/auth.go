package auth

// TokenValidator validates a bearer token and returns its claims. The
// server's auth middleware depends on this contract rather than on jwt.
type TokenValidator interface {
	ValidateToken(token string) (any, error)
}

// TokenValidatorFunc adapts an ordinary function to TokenValidator.
type TokenValidatorFunc func(token string) (any, error)

// ValidateToken implements TokenValidator.
func (f TokenValidatorFunc) ValidateToken(token string) (any, error) {
	return f(token)
}

// NewValidator wraps fn, typically jwt.Service.ValidatorFunc().
func NewValidator(fn func(string) (any, error)) TokenValidator {
	return TokenValidatorFunc(fn)
}
