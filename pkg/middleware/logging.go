package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"expofeedback/pkg/logger"
	"expofeedback/pkg/utils"
)

// RequestLogger writes one structured line per request. The client address comes from
// the proxy headers the protection layer trusts, not from the socket.
func RequestLogger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", utils.ClientIP(c.Request.Header),
			"user_agent", c.Request.UserAgent(),
			"trace_id", c.GetString("trace_id"),
		}
		if admin := c.GetString(utils.CtxUsername); admin != "" {
			args = append(args, "admin", admin)
		}
		if len(c.Errors) > 0 {
			args = append(args, "error", c.Errors.String())
		}

		status := c.Writer.Status()
		switch {
		case status >= 500:
			log.Error("HTTP request completed with server error", args...)
		case status >= 400:
			log.Warn("HTTP request completed with client error", args...)
		default:
			log.Debug("HTTP request completed", args...)
		}
	}
}
