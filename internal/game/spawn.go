package game

// spawnSegmentFrom joins source to a random other generator node that has not
// spawned yet and is more than SpawnMinDistance away. With no candidate nothing
// happens and source stays eligible for a later hit.
func (s *GameState) spawnSegmentFrom(source *JunctionNode) bool {
	if !source.IsGenerator() || source.HasSpawned() {
		return false
	}

	candidates := make([]*JunctionNode, 0)
	for _, n := range s.Nodes {
		if n == source || !n.IsGenerator() || n.HasSpawned() {
			continue
		}
		if n.Position.DistanceTo(source.Position) > SpawnMinDistance {
			candidates = append(candidates, n)
		}
	}
	if len(candidates) == 0 {
		return false
	}

	target := candidates[s.gen.intN(len(candidates))]

	seg := NewSegment(source.Position.Copy(), target.Position.Copy())
	seg.Generated = true
	s.Segments = append(s.Segments, seg)

	source.markSpawned()
	target.markSpawned()

	s.emit(EventSegmentSpawned, SegmentID(len(s.Segments)-1), source.Position)
	return true
}
