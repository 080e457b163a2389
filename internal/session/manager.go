package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/taberinos/backend/internal/config"
	"github.com/taberinos/backend/internal/game"
)

var ErrSessionNotFound = errors.New("session not found")

// Options sizes new games and paces their loops.
type Options struct {
	Width         float64
	Height        float64
	Margin        float64
	FrameInterval time.Duration
	IdleTimeout   time.Duration
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Width:         float64(cfg.CanvasWidth),
		Height:        float64(cfg.CanvasHeight),
		Margin:        float64(cfg.LevelMargin),
		FrameInterval: time.Duration(cfg.FrameIntervalMs) * time.Millisecond,
		IdleTimeout:   time.Duration(cfg.SessionIdleMinutes) * time.Minute,
	}
}

// Manager owns every live session on this instance.
type Manager struct {
	ctx      context.Context
	opts     Options
	pub      Publisher
	scores   ScoreSink
	sessions map[string]*Session // keyed by session ID
	byToken  map[string]string   // token -> session ID
	mu       sync.RWMutex
}

// NewManager creates a manager whose session loops live until ctx is done.
// pub and scores may be nil.
func NewManager(ctx context.Context, opts Options, pub Publisher, scores ScoreSink) *Manager {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = 16 * time.Millisecond
	}
	return &Manager{
		ctx:      ctx,
		opts:     opts,
		pub:      pub,
		scores:   scores,
		sessions: make(map[string]*Session),
		byToken:  make(map[string]string),
	}
}

func generateToken(length int) string {
	b := make([]byte, length)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Create starts a new game at level 1.
func (m *Manager) Create(ctx context.Context) (*Session, error) {
	state, err := game.NewGameState(m.opts.Width, m.opts.Height, m.opts.Margin, nil)
	if err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}

	s := newSession("sess_"+generateToken(8), generateToken(16), state, m.opts.FrameInterval, m.pub, m.scores)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.byToken[s.Token] = s.ID
	m.mu.Unlock()

	if m.pub != nil {
		if err := m.pub.SaveSnapshot(ctx, s.Token, s.Snapshot()); err != nil {
			log.Printf("[REDIS] initial snapshot for session %s failed: %v", s.ID, err)
		}
	}

	s.Start(m.ctx)
	log.Printf("[SESSION] Created session %s", s.ID)
	return s, nil
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (m *Manager) GetByToken(token string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byToken[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return m.sessions[id], nil
}

// End stops a session and disconnects its subscribers.
func (m *Manager) End(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
		delete(m.byToken, s.Token)
	}
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	s.Stop()
	s.closeSubscribers()
	if m.pub != nil {
		if err := m.pub.DeleteSnapshot(context.Background(), s.Token); err != nil {
			log.Printf("[REDIS] delete snapshot for session %s failed: %v", s.ID, err)
		}
	}
	log.Printf("[SESSION] Ended session %s", id)
	return nil
}

func (m *Manager) ActiveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// StartExpiryChecker ends sessions idle longer than the configured timeout.
// It blocks until ctx is done.
func (m *Manager) StartExpiryChecker(ctx context.Context, every time.Duration) {
	if m.opts.IdleTimeout <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := m.ExpireIdle(now); n > 0 {
				log.Printf("[SESSION] Expired %d idle sessions (%d active)", n, m.ActiveCount())
			}
		}
	}
}

// ExpireIdle ends every session with no activity or subscribers since
// now - IdleTimeout and returns how many were ended.
func (m *Manager) ExpireIdle(now time.Time) int {
	m.mu.RLock()
	var stale []string
	for id, s := range m.sessions {
		if s.SubscriberCount() == 0 && now.Sub(s.LastActive()) > m.opts.IdleTimeout {
			stale = append(stale, id)
		}
	}
	m.mu.RUnlock()

	for _, id := range stale {
		m.End(id)
	}
	return len(stale)
}

// Shutdown ends every session.
func (m *Manager) Shutdown() {
	m.mu.RLock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.RUnlock()
	for _, id := range ids {
		m.End(id)
	}
}
