package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taberinos/backend/internal/session"
)

var startTime = time.Now()

const version = "1.0.0"

// HealthCheck returns server health status
func HealthCheck(mgr *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":          "ok",
			"service":         "taberinos-api",
			"version":         version,
			"uptime":          time.Since(startTime).String(),
			"active_sessions": mgr.ActiveCount(),
		})
	}
}
