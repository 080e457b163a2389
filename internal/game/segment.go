package game

// SegmentID indexes a segment in its level's segment slice.
type SegmentID int

// Segment is a breakable wall. Broken segments stay in the level so nodes and
// renderers can still see them.
type Segment struct {
	Start     Vector `json:"start"`
	End       Vector `json:"end"`
	Generated bool   `json:"generated"`
	broken    bool
}

func NewSegment(start, end Vector) *Segment {
	return &Segment{Start: start, End: end}
}

// Break marks the segment broken. Breaking is permanent.
func (s *Segment) Break() {
	s.broken = true
}

func (s *Segment) IsBroken() bool {
	return s.broken
}

func (s *Segment) Length() float64 {
	return s.Start.DistanceTo(s.End)
}

// ClosestPointTo returns the point on the segment nearest to p. A zero-length
// segment returns its start point.
func (s *Segment) ClosestPointTo(p Vector) Vector {
	line := VectorFromPoints(s.Start, s.End)
	lenSq := line.Dot(line)
	if lenSq == 0 {
		return s.Start.Copy()
	}

	t := VectorFromPoints(s.Start, p).Dot(line) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	closest := s.Start.Copy()
	closest.Add(*line.Multiply(t))
	return closest
}

// IntersectsWithDisc reports whether a disc centred at p touches the segment.
func (s *Segment) IntersectsWithDisc(p Vector, radius float64) bool {
	return p.DistanceTo(s.ClosestPointTo(p)) <= radius
}

func (s *Segment) scale(sx, sy float64) {
	s.Start.X *= sx
	s.Start.Y *= sy
	s.End.X *= sx
	s.End.Y *= sy
}
