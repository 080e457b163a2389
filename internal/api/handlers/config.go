package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taberinos/backend/internal/config"
)

// GetConfig returns the values a client needs to draw and pace the game
func GetConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"canvas_width":      cfg.CanvasWidth,
			"canvas_height":     cfg.CanvasHeight,
			"level_margin":      cfg.LevelMargin,
			"frame_interval_ms": cfg.FrameIntervalMs,
			"leaderboard_size":  cfg.LeaderboardSize,
			"debug_routes":      cfg.EnableDebugRoutes,
		})
	}
}
