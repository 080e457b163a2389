package middleware

import (
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/taberinos/backend/internal/config"
)

// CORSMiddleware returns a CORS middleware configured for the environment
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Length", "Content-Type", "Authorization",
			"X-Admin-Name", "X-Admin-Token", "Accept", "Cache-Control",
		},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	if cfg.Environment != "production" {
		corsConfig.AllowOriginFunc = func(origin string) bool {
			return strings.HasPrefix(origin, "http://localhost:") ||
				strings.HasPrefix(origin, "http://127.0.0.1:")
		}
	} else {
		origins := []string{}
		if cfg.FrontendURL != "" {
			origins = append(origins, cfg.FrontendURL)
		} else {
			log.Printf("[CORS] FRONTEND_URL not set; browser clients will be rejected")
			origins = append(origins, "https://invalid.local")
		}
		corsConfig.AllowOrigins = origins
		log.Printf("[CORS] Production allowed origins: %v", origins)
	}

	return cors.New(corsConfig)
}

// WebSocketOriginCheck rejects browser upgrades from unknown origins in production
func WebSocketOriginCheck(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.ToLower(c.GetHeader("Upgrade")) != "websocket" || cfg.Environment != "production" {
			c.Next()
			return
		}

		origin := c.GetHeader("Origin")
		if origin != "" && origin != cfg.FrontendURL {
			c.AbortWithStatusJSON(403, gin.H{"error": "WebSocket origin not allowed"})
			return
		}
		c.Next()
	}
}
