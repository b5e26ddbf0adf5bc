package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/babelink/version"
)

var startedAt = time.Now()

// InfoReport is the /info body.
type InfoReport struct {
	Service string `json:"service"`
	*version.Info
	Uptime string `json:"uptime"`
}

// Info reports build information and process uptime.
func Info(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, InfoReport{
			Service: serviceName,
			Info:    version.GetVersionInfo(),
			Uptime:  time.Since(startedAt).Round(time.Second).String(),
		})
	}
}
