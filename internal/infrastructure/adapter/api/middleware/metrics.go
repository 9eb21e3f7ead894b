package middleware

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/nepalipay/settlement-service/internal/domain/port/core"
)

// Metrics records request count and latency per route template
func Metrics(recorder coreport.MetricsRecorder, timeProvider coreport.TimeProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := timeProvider.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		recorder.HTTPRequest(c.Request.Method, route, c.Writer.Status(), timeProvider.Since(start).Std())
	}
}
