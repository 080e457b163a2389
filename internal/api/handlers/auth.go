package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/taberinos/backend/internal/admin"
	"github.com/taberinos/backend/internal/auth"
	"github.com/taberinos/backend/internal/config"
)

// PlayerAuth validates the bearer player token against the :token session
func PlayerAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			errorJSON(c, http.StatusUnauthorized, "missing token")
			return
		}

		claims, err := auth.ParsePlayerToken(cfg.JWTSecret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			errorJSON(c, http.StatusUnauthorized, "invalid token")
			return
		}
		if claims.SessionToken != c.Param("token") {
			errorJSON(c, http.StatusForbidden, "token does not match session")
			return
		}

		c.Set("session_id", claims.SessionID)
		c.Next()
	}
}

// RequireAdmin checks X-Admin-Name / X-Admin-Token against admin_accounts.
// Without a name the token is checked against ADMIN_TOKEN_HASH.
func RequireAdmin(db *sqlx.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.TrimSpace(c.GetHeader("X-Admin-Name"))
		token := c.GetHeader("X-Admin-Token")
		if token == "" {
			errorJSON(c, http.StatusUnauthorized, "admin token required")
			return
		}

		if name == "" {
			if !admin.VerifyAdminToken(cfg.AdminTokenHash, token) {
				log.Printf("[ADMIN] rejected token for %s", c.FullPath())
				errorJSON(c, http.StatusForbidden, "invalid admin token")
				return
			}
			c.Set("admin_name", "env")
			c.Next()
			return
		}

		if db == nil {
			errorJSON(c, http.StatusServiceUnavailable, "admin accounts unavailable")
			return
		}
		if _, err := admin.ValidateAdminToken(db, name, token); err != nil {
			admin.LogAdminAction(db, name, c.ClientIP(), c.FullPath(), "auth", nil, false)
			errorJSON(c, http.StatusForbidden, "invalid admin credentials")
			return
		}
		c.Set("admin_name", name)
		c.Next()
	}
}
