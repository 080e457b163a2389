package models

import (
	"encoding/json"
	"time"
)

// ScoreRow is a persisted leaderboard entry
type ScoreRow struct {
	ID        int       `db:"id" json:"id"`
	Player    string    `db:"player" json:"player"`
	Level     int       `db:"level" json:"level"`
	ShotsUsed int       `db:"shots_used" json:"shots_used"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// AdminAccount represents an operator allowed to manage the leaderboard
type AdminAccount struct {
	Name      string    `db:"name" json:"name"`
	TokenHash string    `db:"token_hash" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// AdminAudit represents an admin action log entry
type AdminAudit struct {
	ID        int             `db:"id" json:"id"`
	AdminName string          `db:"admin_name" json:"admin_name"`
	IP        string          `db:"ip" json:"ip"`
	Route     string          `db:"route" json:"route"`
	Action    string          `db:"action" json:"action"`
	Details   json.RawMessage `db:"details" json:"details"`
	Success   bool            `db:"success" json:"success"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
