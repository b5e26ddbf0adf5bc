package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/babelink/errors"
	"github.com/kbukum/babelink/logger"
)

// Recovery turns a handler panic into an INTERNAL_ERROR envelope and logs
// the stack.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			log.WithContext(c.Request.Context()).Error("panic recovered", logger.Fields(
				"panic", fmt.Sprint(rec),
				"stack", string(debug.Stack()),
				"method", c.Request.Method,
				logger.FieldPath, c.Request.URL.Path,
			))
			appErr := apperrors.Internal(fmt.Errorf("panic: %v", rec))
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
		}()
		c.Next()
	}
}
