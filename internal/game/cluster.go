package game

// Endpoint is one end of a segment.
type Endpoint struct {
	Point   Vector
	Segment SegmentID
	IsStart bool
}

// Cluster is a group of endpoints that are treated as one location.
type Cluster struct {
	Center    Vector
	Endpoints []Endpoint
	Segments  []SegmentID // distinct, in first-seen order
}

func (c *Cluster) hasSegment(id SegmentID) bool {
	for _, s := range c.Segments {
		if s == id {
			return true
		}
	}
	return false
}

// SegmentEndpoints lists the endpoints of segments in order: start then end of
// segment 0, start then end of segment 1, and so on.
func SegmentEndpoints(segments []*Segment) []Endpoint {
	out := make([]Endpoint, 0, 2*len(segments))
	for i, s := range segments {
		out = append(out,
			Endpoint{Point: s.Start.Copy(), Segment: SegmentID(i), IsStart: true},
			Endpoint{Point: s.End.Copy(), Segment: SegmentID(i), IsStart: false},
		)
	}
	return out
}

// ClusterEndpoints groups endpoints in one greedy pass. Each endpoint joins the
// first cluster, in creation order, whose centroid is within tolerance; the
// centroid is then updated as a running mean. Otherwise it opens a new cluster.
// The result depends on input order.
func ClusterEndpoints(endpoints []Endpoint, tolerance float64) []*Cluster {
	clusters := make([]*Cluster, 0)

	for _, ep := range endpoints {
		var target *Cluster
		for _, c := range clusters {
			if ep.Point.DistanceTo(c.Center) <= tolerance {
				target = c
				break
			}
		}

		if target == nil {
			clusters = append(clusters, &Cluster{
				Center:    ep.Point.Copy(),
				Endpoints: []Endpoint{ep},
				Segments:  []SegmentID{ep.Segment},
			})
			continue
		}

		target.Endpoints = append(target.Endpoints, ep)
		if !target.hasSegment(ep.Segment) {
			target.Segments = append(target.Segments, ep.Segment)
		}
		n := float64(len(target.Endpoints))
		target.Center = Vector{
			X: (target.Center.X*(n-1) + ep.Point.X) / n,
			Y: (target.Center.Y*(n-1) + ep.Point.Y) / n,
		}
	}

	return clusters
}
