package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taberinos/backend/internal/auth"
	"github.com/taberinos/backend/internal/config"
	"github.com/taberinos/backend/internal/session"
	"github.com/taberinos/backend/internal/ws"
)

// CreateSession starts a new game and returns its credentials
func CreateSession(mgr *session.Manager, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := mgr.Create(c.Request.Context())
		if err != nil {
			log.Printf("[SESSION] create failed: %v", err)
			errorJSON(c, http.StatusInternalServerError, "failed to create session")
			return
		}

		ttl := time.Duration(cfg.SessionTokenTTLMinutes) * time.Minute
		playerToken, err := auth.IssuePlayerToken(cfg.JWTSecret, sess.ID, sess.Token, ttl)
		if err != nil {
			log.Printf("[SESSION] token for %s failed: %v", sess.ID, err)
			mgr.End(sess.ID)
			errorJSON(c, http.StatusInternalServerError, "internal error")
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":           sess.ID,
			"token":        sess.Token,
			"player_token": playerToken,
			"expires_in":   int(ttl.Seconds()),
			"state":        sess.Snapshot(),
		})
	}
}

// GetSession returns the current snapshot. Sessions hosted on another
// instance are served from the Redis copy when one is available.
func GetSession(mgr *session.Manager, snapshots ws.SnapshotLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")
		sess, err := mgr.GetByToken(token)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"state": sess.Snapshot(), "stats": sess.Stats(), "last_result": sess.LastResult(), "live": true})
			return
		}

		if snapshots != nil {
			if snap, lerr := snapshots.LoadSnapshot(c.Request.Context(), token); lerr == nil {
				c.JSON(http.StatusOK, gin.H{"state": snap, "live": false})
				return
			}
		}
		errorJSON(c, http.StatusNotFound, "session not found")
	}
}

// sessionFor resolves :token to a local session or writes 404
func sessionFor(c *gin.Context, mgr *session.Manager) *session.Session {
	sess, err := mgr.GetByToken(c.Param("token"))
	if err != nil {
		errorJSON(c, http.StatusNotFound, "session not found")
		return nil
	}
	return sess
}

// PostInput applies a click or tap at a canvas point
func PostInput(mgr *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			X *float64 `json:"x" binding:"required"`
			Y *float64 `json:"y" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			errorJSON(c, http.StatusBadRequest, "x and y required")
			return
		}
		sess := sessionFor(c, mgr)
		if sess == nil {
			return
		}

		res := sess.HandleInput(*req.X, *req.Y)
		c.JSON(http.StatusOK, gin.H{"result": res, "stats": sess.Stats()})
	}
}

// PostResize rescales the playfield
func PostResize(mgr *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Width  float64 `json:"width"`
			Height float64 `json:"height"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			errorJSON(c, http.StatusBadRequest, "invalid request")
			return
		}
		sess := sessionFor(c, mgr)
		if sess == nil {
			return
		}

		if err := sess.Resize(req.Width, req.Height); err != nil {
			errorJSON(c, http.StatusBadRequest, err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"state": sess.Snapshot()})
	}
}

// EndSession stops a game early
func EndSession(mgr *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFor(c, mgr)
		if sess == nil {
			return
		}
		mgr.End(sess.ID)
		c.Status(http.StatusNoContent)
	}
}

// DebugAction exposes the console helpers used while testing levels
func DebugAction(mgr *session.Manager, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFor(c, mgr)
		if sess == nil {
			return
		}

		switch action {
		case "break-all":
			sess.BreakAll()
		case "add-shots":
			n := queryInt(c, "n", 5)
			if n <= 0 {
				errorJSON(c, http.StatusBadRequest, "n must be positive")
				return
			}
			sess.AddShots(n)
		case "next-level":
			sess.SkipLevel()
		case "stop":
			sess.StopBall()
		default:
			errorJSON(c, http.StatusNotFound, "unknown debug action")
			return
		}

		log.Printf("[GAME] debug %s on session %s", action, sess.ID)
		c.JSON(http.StatusOK, gin.H{"stats": sess.Stats()})
	}
}
