package game

// BallView is the render-facing copy of the ball.
type BallView struct {
	Position Vector   `json:"position"`
	Radius   float64  `json:"radius"`
	Trail    []Vector `json:"trail"`
	Glow     float64  `json:"glow"`
	Moving   bool     `json:"moving"`
}

// SegmentView is the render-facing copy of a segment.
type SegmentView struct {
	Start     Vector `json:"start"`
	End       Vector `json:"end"`
	Broken    bool   `json:"broken"`
	Generated bool   `json:"generated"`
}

// NodeView is the render-facing copy of a junction node.
type NodeView struct {
	Position     Vector  `json:"position"`
	Radius       float64 `json:"radius"`
	Generator    bool    `json:"generator"`
	Spawned      bool    `json:"spawned"`
	BounceEffect float64 `json:"bounce_effect"`
}

// Snapshot is a value copy of a game taken between frames. It shares no
// memory with the GameState it came from.
type Snapshot struct {
	Level          int           `json:"level"`
	ShotsRemaining int           `json:"shots_remaining"`
	ShotsMax       int           `json:"shots_max"`
	ShotsUsed      int           `json:"shots_used"`
	Phase          Phase         `json:"phase"`
	Width          float64       `json:"width"`
	Height         float64       `json:"height"`
	Ball           BallView      `json:"ball"`
	Segments       []SegmentView `json:"segments"`
	Nodes          []NodeView    `json:"nodes"`
	Unbroken       int           `json:"unbroken"`
}

func (s *GameState) Snapshot() Snapshot {
	trail := make([]Vector, len(s.Ball.Trail))
	copy(trail, s.Ball.Trail)

	segs := make([]SegmentView, len(s.Segments))
	for i, seg := range s.Segments {
		segs[i] = SegmentView{
			Start:     seg.Start,
			End:       seg.End,
			Broken:    seg.IsBroken(),
			Generated: seg.Generated,
		}
	}

	nodes := make([]NodeView, len(s.Nodes))
	for i, n := range s.Nodes {
		nodes[i] = NodeView{
			Position:     n.Position,
			Radius:       n.Radius,
			Generator:    n.IsGenerator(),
			Spawned:      n.HasSpawned(),
			BounceEffect: n.BounceEffect,
		}
	}

	return Snapshot{
		Level:          s.LevelNumber,
		ShotsRemaining: s.ShotsRemaining,
		ShotsMax:       s.ShotsMax,
		ShotsUsed:      s.ShotsUsed,
		Phase:          s.Phase,
		Width:          s.Width,
		Height:         s.Height,
		Ball: BallView{
			Position: s.Ball.Position,
			Radius:   s.Ball.Radius,
			Trail:    trail,
			Glow:     s.Ball.Glow,
			Moving:   s.Ball.IsMoving(),
		},
		Segments: segs,
		Nodes:    nodes,
		Unbroken: s.UnbrokenCount(),
	}
}

// Renderer draws snapshots. Implementations must not retain the snapshot
// between calls.
type Renderer interface {
	Render(Snapshot)
}
