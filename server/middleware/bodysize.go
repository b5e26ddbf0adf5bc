package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/babelink/util"
)

// defaultMaxBodySize fits a base64-encoded full-screen capture.
const defaultMaxBodySize = 32 * 1024 * 1024

// BodySizeLimit caps request bodies at maxSize ("32MB", "512KB"). Reading
// past the cap fails with *http.MaxBytesError.
func BodySizeLimit(maxSize string) gin.HandlerFunc {
	limit := util.ParseSize(maxSize, defaultMaxBodySize)
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
