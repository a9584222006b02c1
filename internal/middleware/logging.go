package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Logging emits one access log entry per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		status := c.Writer.Status()
		entry := logrus.WithFields(logrus.Fields{
			"component":   "http",
			"request_id":  GetRequestID(c),
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"status":      status,
			"duration_ms": time.Since(started).Milliseconds(),
		})
		switch {
		case status >= 500:
			entry.Warn("request completed with server error")
		default:
			entry.Info("request completed")
		}
	}
}
