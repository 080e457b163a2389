package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestManager(t *testing.T, pub Publisher) *Manager {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	m := NewManager(ctx, Options{
		Width:         800,
		Height:        600,
		Margin:        50,
		FrameInterval: 5 * time.Millisecond,
		IdleTimeout:   time.Minute,
	}, pub, nil)
	t.Cleanup(func() {
		m.Shutdown()
		cancel()
	})
	return m
}

func TestManagerLifecycle(t *testing.T) {
	pub := &recordingPublisher{}
	m := newTestManager(t, pub)

	s, err := m.Create(context.Background())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !s.Running() {
		t.Fatal("new session not running")
	}
	if got, err := m.Get(s.ID); err != nil || got != s {
		t.Fatalf("Get = %v, %v", got, err)
	}
	if got, err := m.GetByToken(s.Token); err != nil || got != s {
		t.Fatalf("GetByToken = %v, %v", got, err)
	}
	if m.ActiveCount() != 1 {
		t.Fatalf("active = %d, want 1", m.ActiveCount())
	}

	if err := m.End(s.ID); err != nil {
		t.Fatalf("End: %v", err)
	}
	if s.Running() {
		t.Fatal("ended session still running")
	}
	if _, err := m.GetByToken(s.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("GetByToken after End err = %v", err)
	}
	if err := m.End(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("second End err = %v", err)
	}
	if len(pub.deleted) != 1 || pub.deleted[0] != s.Token {
		t.Fatalf("snapshot deletes = %v", pub.deleted)
	}
}

func TestManagerTokensAreUnique(t *testing.T) {
	m := newTestManager(t, nil)
	a, _ := m.Create(context.Background())
	b, _ := m.Create(context.Background())
	if a.ID == b.ID || a.Token == b.Token {
		t.Fatal("duplicate session identifiers")
	}
}

func TestExpireIdle(t *testing.T) {
	m := newTestManager(t, nil)
	idle, _ := m.Create(context.Background())
	watched, _ := m.Create(context.Background())
	_, unsubscribe := watched.Subscribe()
	defer unsubscribe()

	if n := m.ExpireIdle(time.Now()); n != 0 {
		t.Fatalf("expired %d fresh sessions", n)
	}
	if n := m.ExpireIdle(time.Now().Add(2 * time.Minute)); n != 1 {
		t.Fatalf("expired %d, want 1", n)
	}
	if _, err := m.Get(idle.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatal("idle session survived")
	}
	if _, err := m.Get(watched.ID); err != nil {
		t.Fatal("watched session was expired")
	}
}
