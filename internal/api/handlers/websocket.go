package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/taberinos/backend/internal/ws"
)

// HandleGameWebSocket handles real-time game communication
func HandleGameWebSocket(deps ws.Deps) gin.HandlerFunc {
	return ws.HandleWebSocket(deps)
}
