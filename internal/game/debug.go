package game

// Stats is a compact summary used by debug tooling and logs.
type Stats struct {
	Level          int   `json:"level"`
	Shots          int   `json:"shots"`
	Segments       int   `json:"segments"`
	BrokenSegments int   `json:"broken_segments"`
	Nodes          int   `json:"nodes"`
	Phase          Phase `json:"phase"`
}

func (s *GameState) Stats() Stats {
	return Stats{
		Level:          s.LevelNumber,
		Shots:          s.ShotsRemaining,
		Segments:       len(s.Segments),
		BrokenSegments: len(s.Segments) - s.UnbrokenCount(),
		Nodes:          len(s.Nodes),
		Phase:          s.Phase,
	}
}

// BreakAllSegments breaks every segment. The level completes on the next
// Update once the ball is at rest.
func (s *GameState) BreakAllSegments() {
	for _, seg := range s.Segments {
		seg.Break()
	}
}

// AddShots grants extra shots.
func (s *GameState) AddShots(n int) {
	if n > 0 {
		s.ShotsRemaining += n
	}
}

// SkipLevel jumps to the next level regardless of progress.
func (s *GameState) SkipLevel() {
	s.LevelNumber++
	s.StartLevel()
}

// StopBall halts the ball in flight. Phase is settled on the next Update.
func (s *GameState) StopBall() {
	if s.Ball.IsMoving() {
		s.Ball.Stop()
	}
}
