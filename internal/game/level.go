package game

import (
	"math"
	"math/rand/v2"
)

// Level is the set of obstacles for one level. Segments is append-only during
// play; nodes refer into it by SegmentID.
type Level struct {
	Number   int
	Width    float64
	Height   float64
	Margin   float64
	Segments []*Segment
	Nodes    []*JunctionNode
	Clusters int
}

// Generator builds random levels.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator drawing from rng. A nil rng uses a randomly
// seeded source.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{rng: rng}
}

// SegmentCount returns how many segments a level starts with.
func SegmentCount(level int) int {
	return BaseSegments + SegmentsPerLevel*(level-1)
}

// AnchorCount returns how many shared anchor points a level uses.
func AnchorCount(segments int) int {
	return min(segments/2, MaxAnchors)
}

// ShotsForLevel returns the shot budget for a level.
func ShotsForLevel(level int) int {
	return BaseShots + ShotsPerLevel*(level-1)
}

// Generate builds level number n on a width x height canvas. Endpoints are kept
// margin units away from every edge.
func (g *Generator) Generate(n int, width, height, margin float64) *Level {
	count := SegmentCount(n)

	anchors := make([]Vector, AnchorCount(count))
	for i := range anchors {
		anchors[i] = g.pointIn(width, height, margin)
	}

	segments := make([]*Segment, 0, count)
	for i := 0; i < count; i++ {
		var start, end Vector

		if g.rng.Float64() < AnchorProbability && len(anchors) > 0 {
			useStart := g.rng.Float64() < 0.5
			anchor := anchors[g.rng.IntN(len(anchors))]
			length := g.length()
			angle := g.rng.Float64() * 2 * math.Pi
			offset := VectorFromAngle(angle, length)

			if useStart {
				start = anchor.Copy()
				end = start.Copy()
				end.Add(offset)
			} else {
				end = anchor.Copy()
				start = end.Copy()
				start.Subtract(offset)
			}
		} else {
			start = g.pointIn(width, height, margin)
			length := g.length()
			angle := g.rng.Float64() * 2 * math.Pi
			end = start.Copy()
			end.Add(VectorFromAngle(angle, length))
		}

		end = clampInset(end, width, height, margin)
		start = clampInset(start, width, height, margin)

		segments = append(segments, NewSegment(start, end))
	}

	clusters := ClusterEndpoints(SegmentEndpoints(segments), ClusterTolerance)

	nodes := make([]*JunctionNode, 0)
	for _, c := range clusters {
		if len(c.Segments) < 2 {
			continue
		}
		kind := KindPlain
		if g.rng.Float64() < GeneratorProbability {
			kind = KindGenerator
		}
		sources := make([]SegmentID, len(c.Segments))
		copy(sources, c.Segments)
		nodes = append(nodes, NewJunctionNode(c.Center, kind, sources))
	}

	return &Level{
		Number:   n,
		Width:    width,
		Height:   height,
		Margin:   margin,
		Segments: segments,
		Nodes:    nodes,
		Clusters: len(clusters),
	}
}

// PlaceBall picks a ball position clear of segments and nodes. After
// PlacementAttempts rejected samples the last sample is used anyway.
func (g *Generator) PlaceBall(lvl *Level) Vector {
	var pos Vector
	for attempt := 0; attempt < PlacementAttempts; attempt++ {
		pos = Vector{
			X: PlacementInset + g.rng.Float64()*(lvl.Width-2*PlacementInset),
			Y: PlacementInset + g.rng.Float64()*(lvl.Height-2*PlacementInset),
		}
		if !tooCloseToObjects(lvl, pos, PlacementClearance) {
			break
		}
	}
	return pos
}

func (g *Generator) pointIn(width, height, margin float64) Vector {
	return Vector{
		X: margin + g.rng.Float64()*(width-2*margin),
		Y: margin + g.rng.Float64()*(height-2*margin),
	}
}

func (g *Generator) length() float64 {
	return MinSegmentLength + g.rng.Float64()*SegmentLengthRange
}

func (g *Generator) intN(n int) int {
	return g.rng.IntN(n)
}

func clampInset(p Vector, width, height, margin float64) Vector {
	p.X = math.Min(width-margin, math.Max(margin, p.X))
	p.Y = math.Min(height-margin, math.Max(margin, p.Y))
	return p
}

// tooCloseToObjects skips zero-length segments; they cannot block placement.
func tooCloseToObjects(lvl *Level, pos Vector, minDistance float64) bool {
	for _, s := range lvl.Segments {
		if s.Length() == 0 {
			continue
		}
		if pos.DistanceTo(s.ClosestPointTo(pos)) < minDistance {
			return true
		}
	}
	for _, n := range lvl.Nodes {
		if pos.DistanceTo(n.Position) < minDistance+n.Radius {
			return true
		}
	}
	return false
}
