package game

import "math"

// NodeKind selects what a junction node does when the ball hits it.
type NodeKind string

const (
	KindPlain     NodeKind = "PLAIN"     // bounce only
	KindGenerator NodeKind = "GENERATOR" // bounce, and spawn one segment on first successful hit
)

// JunctionNode sits where segment endpoints meet. Sources holds the IDs of the
// segments that formed it; they index the owning level's segment slice.
type JunctionNode struct {
	Position     Vector      `json:"position"`
	Radius       float64     `json:"radius"`
	Kind         NodeKind    `json:"kind"`
	Sources      []SegmentID `json:"sources"`
	BounceEffect float64     `json:"bounce_effect"`
	spawned      bool
}

func NewJunctionNode(position Vector, kind NodeKind, sources []SegmentID) *JunctionNode {
	return &JunctionNode{
		Position: position.Copy(),
		Radius:   NodeRadius,
		Kind:     kind,
		Sources:  sources,
	}
}

func (n *JunctionNode) IsGenerator() bool {
	return n.Kind == KindGenerator
}

func (n *JunctionNode) HasSpawned() bool {
	return n.spawned
}

func (n *JunctionNode) markSpawned() {
	n.spawned = true
}

func (n *JunctionNode) IsCollidingWith(p Vector, otherRadius float64) bool {
	return n.Position.DistanceTo(p) <= n.Radius+otherRadius
}

// Bounce reflects the ball about the centre-to-centre normal and pushes it
// clear of the node. Callers must not call it with the ball centred exactly on
// the node; the normal is then zero and only the energy loss applies.
func (n *JunctionNode) Bounce(b *Ball) {
	normal := VectorFromPoints(n.Position, b.Position)
	normal.Normalize()

	b.Velocity.reflect(normal).Multiply(NodeRestitution)

	push := (n.Radius + b.Radius) - n.Position.DistanceTo(b.Position) + NodePushSlack
	b.Position.Add(*normal.Multiply(push))

	n.BounceEffect = NodeBounceEffect
}

// Update decays the bounce effect.
func (n *JunctionNode) Update() {
	n.BounceEffect = math.Max(0, n.BounceEffect*NodeEffectDecay)
}

// ShouldBeRemoved reports whether every source segment is broken. A node with
// no sources is never removed.
func (n *JunctionNode) ShouldBeRemoved(segments []*Segment) bool {
	if len(n.Sources) == 0 {
		return false
	}
	for _, id := range n.Sources {
		if int(id) < 0 || int(id) >= len(segments) {
			continue
		}
		if !segments[id].IsBroken() {
			return false
		}
	}
	return true
}

func (n *JunctionNode) scale(sx, sy float64) {
	n.Position.X *= sx
	n.Position.Y *= sy
}
