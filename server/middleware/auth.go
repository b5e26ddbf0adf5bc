package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/babelink/auth"
	"github.com/kbukum/babelink/auth/authctx"
	apperrors "github.com/kbukum/babelink/errors"
)

// ClaimsKey is the gin context key holding verified token claims.
const ClaimsKey = "auth.claims"

// Auth returns a gin middleware that requires a valid bearer token. Verified
// claims are stored in the gin context under ClaimsKey and in the request
// context via authctx.
func Auth(validator auth.TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Authorization header required")
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Request = c.Request.WithContext(authctx.Set(c.Request.Context(), claims))
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, reason string) {
	appErr := apperrors.Unauthorized(reason)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}
