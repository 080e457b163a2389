package leaderboard

import (
	"context"
	"errors"
	"slices"
	"sync"
)

var ErrStoreUnavailable = errors.New("leaderboard store unavailable")

// Store persists scores. Top returns at most n scores, best first.
type Store interface {
	Save(ctx context.Context, s Score) error
	Top(ctx context.Context, n int) ([]Score, error)
	Clear(ctx context.Context) error
}

// MemoryStore keeps the best max scores in process.
type MemoryStore struct {
	mu     sync.RWMutex
	max    int
	scores []Score
}

func NewMemoryStore(max int) *MemoryStore {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	return &MemoryStore{max: max}
}

func (m *MemoryStore) Save(_ context.Context, s Score) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores = Insert(m.scores, s, m.max)
	return nil
}

func (m *MemoryStore) Top(_ context.Context, n int) ([]Score, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(Truncate(m.scores, n)), nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	m.scores = nil
	m.mu.Unlock()
	return nil
}

// Replace swaps the whole board for scores.
func (m *MemoryStore) Replace(_ context.Context, scores []Score) error {
	out := slices.Clone(scores)
	SortScores(out)
	m.mu.Lock()
	m.scores = Truncate(out, m.max)
	m.mu.Unlock()
	return nil
}
