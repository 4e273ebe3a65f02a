package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/cognito-gateway/version"
)

var startTime = time.Now()

// Info returns a handler that reports build information and uptime.
func Info(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v := version.Get()
		c.JSON(http.StatusOK, gin.H{
			"service":    serviceName,
			"version":    v.Short(),
			"release":    v.IsRelease(),
			"build_time": v.BuildTime,
			"go_version": v.GoVersion,
			"uptime":     time.Since(startTime).Round(time.Second).String(),
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
		})
	}
}
