package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/taberinos/backend/internal/admin"
	"github.com/taberinos/backend/internal/leaderboard"
)

// GetLeaderboard returns the best scores
func GetLeaderboard(svc *leaderboard.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		scores, err := svc.Top(c.Request.Context(), queryInt(c, "limit", svc.MaxEntries()))
		if err != nil {
			log.Printf("[LEADERBOARD] read failed: %v", err)
			errorJSON(c, http.StatusServiceUnavailable, "leaderboard unavailable")
			return
		}
		c.JSON(http.StatusOK, gin.H{"scores": scores, "max_entries": svc.MaxEntries()})
	}
}

// SubmitScore records a finished game from a client that ran it locally
func SubmitScore(svc *leaderboard.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Player    string `json:"player"`
			Level     int    `json:"level"`
			ShotsUsed int    `json:"shots_used"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			errorJSON(c, http.StatusBadRequest, "invalid request")
			return
		}
		if len(req.Player) > 32 {
			req.Player = req.Player[:32]
		}

		res, err := svc.Submit(c.Request.Context(), leaderboard.NewScore(req.Player, req.Level, req.ShotsUsed))
		if errors.Is(err, leaderboard.ErrInvalidScore) {
			errorJSON(c, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			log.Printf("[LEADERBOARD] submit failed: %v", err)
			errorJSON(c, http.StatusServiceUnavailable, "score not recorded")
			return
		}
		c.JSON(http.StatusCreated, res)
	}
}

// GetRank reports where a result would place
func GetRank(svc *leaderboard.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		level := queryInt(c, "level", 0)
		shots := queryInt(c, "shots_used", -1)
		if level < 1 || shots < 0 {
			errorJSON(c, http.StatusBadRequest, "level and shots_used required")
			return
		}

		ctx := c.Request.Context()
		rank, err := svc.Rank(ctx, level, shots)
		if err != nil {
			errorJSON(c, http.StatusServiceUnavailable, "leaderboard unavailable")
			return
		}
		high, err := svc.IsHighScore(ctx, level, shots)
		if err != nil {
			errorJSON(c, http.StatusServiceUnavailable, "leaderboard unavailable")
			return
		}
		c.JSON(http.StatusOK, gin.H{"rank": rank, "high_score": high})
	}
}

// ClearLeaderboard wipes every score; admin only
func ClearLeaderboard(svc *leaderboard.Service, db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.GetString("admin_name")
		if err := svc.Clear(c.Request.Context()); err != nil {
			log.Printf("[LEADERBOARD] clear failed: %v", err)
			admin.LogAdminAction(db, name, c.ClientIP(), c.FullPath(), "clear_leaderboard", nil, false)
			errorJSON(c, http.StatusServiceUnavailable, "leaderboard unavailable")
			return
		}
		admin.LogAdminAction(db, name, c.ClientIP(), c.FullPath(), "clear_leaderboard", nil, true)
		c.Status(http.StatusNoContent)
	}
}

// GetAuditLogs lists recent admin actions
func GetAuditLogs(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			errorJSON(c, http.StatusServiceUnavailable, "audit log unavailable")
			return
		}
		limit := queryInt(c, "limit", 50)
		if limit <= 0 || limit > 500 {
			limit = 50
		}
		logs, err := admin.GetAdminAuditLogs(db, limit, max(queryInt(c, "offset", 0), 0))
		if err != nil {
			log.Printf("[ADMIN] audit read failed: %v", err)
			errorJSON(c, http.StatusInternalServerError, "internal error")
			return
		}
		c.JSON(http.StatusOK, gin.H{"logs": logs})
	}
}
