package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/babelink/logger"
)

// quietPaths are polled by the front end and never logged.
var quietPaths = map[string]bool{
	"/health": true,
	"/info":   true,
}

// RequestLogger logs each finished request: errors for 5xx, warnings for
// 4xx and debug lines otherwise.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if quietPaths[path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := logger.Fields(
			"method", c.Request.Method,
			logger.FieldPath, path,
			logger.FieldStatus, status,
			logger.FieldDuration, time.Since(start).Milliseconds(),
		)
		if cmd := c.Param("command"); cmd != "" {
			fields[logger.FieldCommand] = cmd
		}

		l := log.WithContext(c.Request.Context())
		switch {
		case status >= 500:
			l.Error("request failed", fields)
		case status >= 400:
			l.Warn("request rejected", fields)
		default:
			l.Debug("request served", fields)
		}
	}
}
