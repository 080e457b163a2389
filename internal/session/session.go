package session

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/taberinos/backend/internal/game"
	"github.com/taberinos/backend/internal/leaderboard"
)

// Publisher mirrors a session outside the process. Implementations must be
// safe for concurrent use.
type Publisher interface {
	PublishEvents(ctx context.Context, token string, events []game.Event) error
	SaveSnapshot(ctx context.Context, token string, snap game.Snapshot) error
	DeleteSnapshot(ctx context.Context, token string) error
}

// ScoreSink receives finished games.
type ScoreSink interface {
	Submit(ctx context.Context, s leaderboard.Score) (leaderboard.Result, error)
}

// Message is the envelope pushed to subscribers.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

const subscriberBuffer = 32

// Session is one running game and the goroutine that drives it.
type Session struct {
	ID        string
	Token     string
	CreatedAt time.Time

	mu         sync.Mutex
	state      *game.GameState
	lastActive time.Time
	scored     bool
	lastResult *leaderboard.Result

	subMu   sync.RWMutex
	subs    map[int]chan []byte
	nextSub int

	runMu   sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool

	interval time.Duration
	pub      Publisher
	scores   ScoreSink
}

func newSession(id, token string, state *game.GameState, interval time.Duration, pub Publisher, scores ScoreSink) *Session {
	now := time.Now()
	return &Session{
		ID:         id,
		Token:      token,
		CreatedAt:  now,
		state:      state,
		lastActive: now,
		subs:       make(map[int]chan []byte),
		interval:   interval,
		pub:        pub,
		scores:     scores,
	}
}

// Start launches the frame loop. Calling Start on a running session does nothing.
func (s *Session) Start(parent context.Context) {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	if s.running {
		return
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true
	go s.run(ctx, s.done)
}

// Stop halts the frame loop and waits for it to exit. Safe to call twice.
func (s *Session) Stop() {
	s.runMu.Lock()
	if !s.running {
		s.runMu.Unlock()
		return
	}
	s.cancel()
	done := s.done
	s.running = false
	s.runMu.Unlock()
	<-done
}

func (s *Session) Running() bool {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	return s.running
}

func (s *Session) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Step(ctx)
		}
	}
}

// Step advances the game one frame and fans the result out.
func (s *Session) Step(ctx context.Context) {
	s.mu.Lock()
	s.state.Update()
	events := s.state.DrainEvents()
	snap := s.state.Snapshot()
	score := s.takeScore()
	for _, e := range events {
		if e.Type == game.EventLevelStarted {
			log.Printf("[GAME] session %s level %d: %d segments, %d nodes, %d clusters",
				s.ID, s.state.LevelNumber, len(s.state.Segments), len(s.state.Nodes), s.state.Clusters)
		}
	}
	s.mu.Unlock()

	s.publishFrame(ctx, snap, events)

	if score != nil {
		s.submitScore(ctx, *score)
	}
}

// takeScore returns the final score once per finished game. Caller holds mu.
func (s *Session) takeScore() *game.Score {
	if s.state.Phase != game.PhaseGameOver {
		s.scored = false
		return nil
	}
	if s.scored {
		return nil
	}
	s.scored = true
	return s.state.FinalScore()
}

func (s *Session) publishFrame(ctx context.Context, snap game.Snapshot, events []game.Event) {
	if s.SubscriberCount() > 0 {
		s.broadcast(Message{Type: "frame", Data: snap})
		for _, e := range events {
			s.broadcast(Message{Type: "event", Data: e})
		}
	}

	if len(events) == 0 || s.pub == nil {
		return
	}
	if err := s.pub.PublishEvents(ctx, s.Token, events); err != nil {
		log.Printf("[REDIS] publish events for session %s failed: %v", s.ID, err)
	}
	if err := s.pub.SaveSnapshot(ctx, s.Token, snap); err != nil {
		log.Printf("[REDIS] save snapshot for session %s failed: %v", s.ID, err)
	}
}

func (s *Session) submitScore(ctx context.Context, score game.Score) {
	if s.scores == nil {
		return
	}
	res, err := s.scores.Submit(ctx, leaderboard.NewScore("", score.Level, score.ShotsUsed))
	if err != nil {
		log.Printf("[LEADERBOARD] score for session %s not recorded: %v", s.ID, err)
		return
	}
	s.mu.Lock()
	s.lastResult = &res
	s.mu.Unlock()
	s.broadcast(Message{Type: "score", Data: res})
}

// LastResult is the leaderboard placement of the most recent finished game.
func (s *Session) LastResult() *leaderboard.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastResult == nil {
		return nil
	}
	r := *s.lastResult
	return &r
}

// Subscribe returns a channel of encoded Messages and a function that ends the
// subscription. Slow subscribers miss frames rather than block the loop.
func (s *Session) Subscribe() (<-chan []byte, func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan []byte, subscriberBuffer)
	s.subs[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
			s.subMu.Unlock()
		})
	}
}

func (s *Session) SubscriberCount() int {
	s.subMu.RLock()
	defer s.subMu.RUnlock()
	return len(s.subs)
}

func (s *Session) broadcast(m Message) {
	data, err := json.Marshal(m)
	if err != nil {
		log.Printf("[SESSION] Error marshaling %s message: %v", m.Type, err)
		return
	}
	s.subMu.RLock()
	defer s.subMu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- data:
		default:
		}
	}
}

func (s *Session) closeSubscribers() {
	s.subMu.Lock()
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
	s.subMu.Unlock()
}

func (s *Session) touch() {
	s.lastActive = time.Now()
}

// LastActive is the time of the last player action.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// with runs fn on the game state under the session lock.
func (s *Session) with(fn func(st *game.GameState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	fn(s.state)
}

func (s *Session) HandleInput(x, y float64) game.InputResult {
	var res game.InputResult
	s.with(func(st *game.GameState) {
		res = st.HandleInput(game.NewVector(x, y))
	})
	return res
}

func (s *Session) Resize(width, height float64) error {
	var err error
	s.with(func(st *game.GameState) {
		err = st.Resize(width, height)
	})
	return err
}

func (s *Session) StopBall() {
	s.with(func(st *game.GameState) { st.StopBall() })
}

func (s *Session) Restart() {
	s.with(func(st *game.GameState) { st.Restart() })
}

func (s *Session) BreakAll() {
	s.with(func(st *game.GameState) { st.BreakAllSegments() })
}

func (s *Session) AddShots(n int) {
	s.with(func(st *game.GameState) { st.AddShots(n) })
}

func (s *Session) SkipLevel() {
	s.with(func(st *game.GameState) { st.SkipLevel() })
}

func (s *Session) Stats() game.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Stats()
}

func (s *Session) Snapshot() game.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Snapshot()
}
