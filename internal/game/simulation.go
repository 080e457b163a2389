package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

var ErrInvalidDimensions = errors.New("width and height must be positive")

// GameState is one player's game. It owns the ball, the segments and the
// junction nodes, and is not safe for concurrent use.
type GameState struct {
	LevelNumber    int
	ShotsRemaining int
	ShotsMax       int
	ShotsUsed      int
	Width          float64
	Height         float64
	Margin         float64
	Phase          Phase
	Ball           *Ball
	Segments       []*Segment
	Nodes          []*JunctionNode
	Clusters       int

	gen        *Generator
	events     []Event
	finalScore *Score
}

// NewGameState creates a game on a width x height canvas and starts level 1.
// rng may be nil.
func NewGameState(width, height, margin float64, rng *rand.Rand) (*GameState, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	s := &GameState{
		LevelNumber: 1,
		Width:       width,
		Height:      height,
		Margin:      margin,
		gen:         NewGenerator(rng),
	}
	s.StartLevel()
	return s, nil
}

// StartLevel builds fresh segments and nodes for the current level number,
// places the ball and refills the shot budget.
func (s *GameState) StartLevel() {
	lvl := s.gen.Generate(s.LevelNumber, s.Width, s.Height, s.Margin)
	s.LoadLevel(lvl, s.gen.PlaceBall(lvl))
}

// LoadLevel installs lvl with the ball at ballPos.
func (s *GameState) LoadLevel(lvl *Level, ballPos Vector) {
	s.Segments = lvl.Segments
	s.Nodes = lvl.Nodes
	s.Clusters = lvl.Clusters

	if s.Ball == nil {
		s.Ball = NewBall(ballPos)
	} else {
		s.Ball.Reset(ballPos)
	}

	s.ShotsMax = ShotsForLevel(s.LevelNumber)
	s.ShotsRemaining = s.ShotsMax
	s.Phase = PhaseAiming
	s.finalScore = nil
	s.emit(EventLevelStarted, -1, ballPos)
}

// NextLevel advances to the next level. It only works once the current level
// is complete.
func (s *GameState) NextLevel() bool {
	if s.Phase != PhaseLevelComplete {
		return false
	}
	s.LevelNumber++
	s.StartLevel()
	return true
}

// Restart begins a new game at level 1.
func (s *GameState) Restart() {
	s.LevelNumber = 1
	s.ShotsUsed = 0
	s.StartLevel()
}

// HandleInput dispatches a player action at point according to the phase.
func (s *GameState) HandleInput(point Vector) InputResult {
	switch s.Phase {
	case PhaseLevelComplete:
		s.NextLevel()
		return InputNextLevel
	case PhaseGameOver:
		s.Restart()
		return InputRestart
	case PhaseAiming:
		if s.Shoot(point) {
			return InputShot
		}
	}
	return InputIgnored
}

// Shoot launches the ball at target, spending one shot.
func (s *GameState) Shoot(target Vector) bool {
	if s.Phase != PhaseAiming || s.ShotsRemaining <= 0 || s.Ball.IsMoving() {
		return false
	}
	if !s.Ball.LaunchTowards(target, LaunchSpeed) {
		return false
	}
	s.ShotsRemaining--
	s.ShotsUsed++
	s.Phase = PhaseBallInFlight
	s.emit(EventShot, -1, s.Ball.Position)
	return true
}

// Update advances the game by one frame. The order of the steps decides which
// collision wins when several happen in the same frame.
func (s *GameState) Update() {
	switch s.Phase {
	case PhaseGameOver:
		return
	case PhaseLevelComplete:
		s.Ball.Update()
		for _, n := range s.Nodes {
			n.Update()
		}
		return
	}

	s.Ball.Update()
	s.Ball.HandleBoundaryCollision(s.Width, s.Height)

	for _, n := range s.Nodes {
		n.Update()
		if !n.IsCollidingWith(s.Ball.Position, s.Ball.Radius) {
			continue
		}
		n.Bounce(s.Ball)
		s.emit(EventNodeBounce, -1, n.Position)
		if n.IsGenerator() && !n.HasSpawned() {
			s.spawnSegmentFrom(n)
		}
	}

	// At most one segment collision per frame.
	for i, seg := range s.Segments {
		if seg.IsBroken() || !seg.IntersectsWithDisc(s.Ball.Position, s.Ball.Radius) {
			continue
		}
		s.Ball.HandleSegmentCollision(seg)
		seg.Break()
		s.emit(EventSegmentBroken, SegmentID(i), s.Ball.Position)
		break
	}

	kept := s.Nodes[:0]
	for _, n := range s.Nodes {
		if n.ShouldBeRemoved(s.Segments) {
			s.emit(EventNodeRemoved, -1, n.Position)
			continue
		}
		kept = append(kept, n)
	}
	for i := len(kept); i < len(s.Nodes); i++ {
		s.Nodes[i] = nil
	}
	s.Nodes = kept

	if s.Ball.IsMoving() {
		s.Phase = PhaseBallInFlight
		return
	}
	s.checkGameState()
}

func (s *GameState) checkGameState() {
	switch {
	case s.UnbrokenCount() == 0:
		s.Phase = PhaseLevelComplete
		s.emit(EventLevelComplete, -1, s.Ball.Position)
	case s.ShotsRemaining <= 0:
		s.Phase = PhaseGameOver
		s.finalScore = &Score{Level: s.LevelNumber, ShotsUsed: s.ShotsUsed}
		s.emit(EventGameOver, -1, s.Ball.Position)
	default:
		s.Phase = PhaseAiming
	}
}

// UnbrokenCount returns how many segments are still standing.
func (s *GameState) UnbrokenCount() int {
	n := 0
	for _, seg := range s.Segments {
		if !seg.IsBroken() {
			n++
		}
	}
	return n
}

// FinalScore returns the score of a finished game, or nil while it is running.
func (s *GameState) FinalScore() *Score {
	if s.finalScore == nil {
		return nil
	}
	sc := *s.finalScore
	return &sc
}

// DrainEvents returns the events recorded since the last call.
func (s *GameState) DrainEvents() []Event {
	out := s.events
	s.events = nil
	return out
}

func (s *GameState) emit(t EventType, seg SegmentID, pos Vector) {
	s.events = append(s.events, Event{Type: t, Level: s.LevelNumber, Segment: seg, Position: pos.Copy()})
}

// Resize rescales every stored position to a new canvas size, each axis on
// its own.
func (s *GameState) Resize(width, height float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("resize to %.0fx%.0f: %w", width, height, ErrInvalidDimensions)
	}
	sx := width / s.Width
	sy := height / s.Height

	s.Ball.Position.X *= sx
	s.Ball.Position.Y *= sy
	for _, seg := range s.Segments {
		seg.scale(sx, sy)
	}
	for _, n := range s.Nodes {
		n.scale(sx, sy)
	}

	s.Width = width
	s.Height = height
	return nil
}
