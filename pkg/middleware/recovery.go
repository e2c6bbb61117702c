package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"expofeedback/pkg/logger"
	"expofeedback/pkg/utils"
)

func Recovery(log logger.Interface) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("panic recovered",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"error", recovered,
			"trace_id", c.GetString("trace_id"),
			"stack", string(debug.Stack()))

		utils.RespondError(c, http.StatusInternalServerError, "Internal server error")
		c.Abort()
	})
}
