package api

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/taberinos/backend/internal/api/handlers"
	"github.com/taberinos/backend/internal/config"
	"github.com/taberinos/backend/internal/leaderboard"
	"github.com/taberinos/backend/internal/middleware"
	"github.com/taberinos/backend/internal/session"
	"github.com/taberinos/backend/internal/ws"
)

// Deps bundles what the routes need. DB and Snapshots may be nil.
type Deps struct {
	DB          *sqlx.DB
	Config      *config.Config
	Sessions    *session.Manager
	Leaderboard *leaderboard.Service
	Hub         *ws.Hub
	Snapshots   ws.SnapshotLoader
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, d Deps) {
	cfg := d.Config
	router.Use(middleware.CORSMiddleware(cfg))

	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Next()
		})
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck(d.Sessions))
		v1.GET("/config", handlers.GetConfig(cfg))

		// Game sessions
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", handlers.CreateSession(d.Sessions, cfg))
			sessions.GET("/:token", handlers.GetSession(d.Sessions, d.Snapshots))
			sessions.GET("/:token/ws", middleware.WebSocketOriginCheck(cfg), handlers.HandleGameWebSocket(ws.Deps{
				Hub:       d.Hub,
				Sessions:  d.Sessions,
				Snapshots: d.Snapshots,
				Config:    cfg,
			}))

			player := sessions.Group("/:token", handlers.PlayerAuth(cfg))
			{
				player.POST("/input", handlers.PostInput(d.Sessions))
				player.POST("/resize", handlers.PostResize(d.Sessions))
				player.DELETE("", handlers.EndSession(d.Sessions))

				if cfg.EnableDebugRoutes {
					debug := player.Group("/debug")
					for _, action := range []string{"break-all", "add-shots", "next-level", "stop"} {
						debug.POST("/"+action, handlers.DebugAction(d.Sessions, action))
					}
					log.Println("[DEV MODE] Debug session routes enabled")
				}
			}
		}

		// Leaderboard
		board := v1.Group("/leaderboard")
		{
			board.GET("", handlers.GetLeaderboard(d.Leaderboard))
			board.POST("", handlers.SubmitScore(d.Leaderboard))
			board.GET("/rank", handlers.GetRank(d.Leaderboard))
			board.DELETE("", handlers.RequireAdmin(d.DB, cfg), handlers.ClearLeaderboard(d.Leaderboard, d.DB))
		}

		v1.GET("/admin/audit", handlers.RequireAdmin(d.DB, cfg), handlers.GetAuditLogs(d.DB))
	}
}
