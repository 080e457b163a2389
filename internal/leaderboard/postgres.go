package leaderboard

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/taberinos/backend/internal/models"
)

// PostgresStore keeps every submitted score in the scores table.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (p *PostgresStore) Save(ctx context.Context, s Score) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO scores (player, level, shots_used, created_at) VALUES ($1, $2, $3, $4)`,
		s.Player, s.Level, s.ShotsUsed, time.UnixMilli(s.Timestamp))
	if err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

func (p *PostgresStore) Top(ctx context.Context, n int) ([]Score, error) {
	var rows []models.ScoreRow
	err := p.db.SelectContext(ctx, &rows, `
		SELECT id, player, level, shots_used, created_at
		FROM scores
		ORDER BY level DESC, shots_used ASC, created_at ASC
		LIMIT $1
	`, n)
	if err != nil {
		return nil, fmt.Errorf("select scores: %w", err)
	}

	out := make([]Score, len(rows))
	for i, r := range rows {
		out[i] = fromRow(r)
	}
	return out, nil
}

func (p *PostgresStore) Clear(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM scores`); err != nil {
		return fmt.Errorf("clear scores: %w", err)
	}
	return nil
}

func fromRow(r models.ScoreRow) Score {
	return Score{
		Player:    r.Player,
		Level:     r.Level,
		ShotsUsed: r.ShotsUsed,
		Date:      r.CreatedAt.Format("2006-01-02"),
		Timestamp: r.CreatedAt.UnixMilli(),
	}
}
