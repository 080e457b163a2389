package leaderboard

import (
	"context"
	"errors"
	"log"
)

var ErrInvalidScore = errors.New("level must be at least 1 and shots_used not negative")

// Result describes where a submitted score landed.
type Result struct {
	Score     Score `json:"score"`
	Rank      int   `json:"rank"`
	HighScore bool  `json:"high_score"`
}

// Service applies the board size to a Store.
type Service struct {
	store Store
	max   int
}

func NewService(store Store, max int) *Service {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	return &Service{store: store, max: max}
}

func (s *Service) MaxEntries() int {
	return s.max
}

// Submit records a finished game.
func (s *Service) Submit(ctx context.Context, sc Score) (Result, error) {
	if sc.Level < 1 || sc.ShotsUsed < 0 {
		return Result{}, ErrInvalidScore
	}
	if sc.Timestamp == 0 {
		stamped := NewScore(sc.Player, sc.Level, sc.ShotsUsed)
		sc.Date, sc.Timestamp = stamped.Date, stamped.Timestamp
	}

	top, err := s.store.Top(ctx, s.max)
	if err != nil {
		return Result{}, err
	}
	res := Result{
		Score:     sc,
		Rank:      Rank(top, sc.Level, sc.ShotsUsed),
		HighScore: IsHighScore(top, sc.Level, sc.ShotsUsed, s.max),
	}

	if err := s.store.Save(ctx, sc); err != nil {
		return Result{}, err
	}
	log.Printf("[LEADERBOARD] Score saved: level %d with %d shots (rank %d)", sc.Level, sc.ShotsUsed, res.Rank)
	return res, nil
}

// Top returns up to limit scores; limit is clamped to the board size.
func (s *Service) Top(ctx context.Context, limit int) ([]Score, error) {
	if limit <= 0 || limit > s.max {
		limit = s.max
	}
	scores, err := s.store.Top(ctx, limit)
	if err != nil {
		return nil, err
	}
	if scores == nil {
		scores = []Score{}
	}
	return scores, nil
}

func (s *Service) Rank(ctx context.Context, level, shotsUsed int) (int, error) {
	top, err := s.store.Top(ctx, s.max)
	if err != nil {
		return 0, err
	}
	return Rank(top, level, shotsUsed), nil
}

func (s *Service) IsHighScore(ctx context.Context, level, shotsUsed int) (bool, error) {
	top, err := s.store.Top(ctx, s.max)
	if err != nil {
		return false, err
	}
	return IsHighScore(top, level, shotsUsed, s.max), nil
}

func (s *Service) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	log.Printf("[LEADERBOARD] Leaderboard cleared")
	return nil
}
