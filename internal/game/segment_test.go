package game

import "testing"

func TestClosestPointClampsToSegment(t *testing.T) {
	s := NewSegment(NewVector(0, 0), NewVector(10, 0))
	tests := []struct {
		name string
		p    Vector
		want Vector
	}{
		{"before start", NewVector(-5, 3), NewVector(0, 0)},
		{"middle", NewVector(4, 7), NewVector(4, 0)},
		{"past end", NewVector(20, -2), NewVector(10, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.ClosestPointTo(tt.p)
			if !approx(got.X, tt.want.X) || !approx(got.Y, tt.want.Y) {
				t.Fatalf("closest = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClosestPointZeroLengthSegment(t *testing.T) {
	s := NewSegment(NewVector(3, 3), NewVector(3, 3))
	got := s.ClosestPointTo(NewVector(10, 10))
	if got.X != 3 || got.Y != 3 {
		t.Fatalf("closest on point segment = %+v, want (3,3)", got)
	}
}

func TestIntersectsWithDiscBoundaryInclusive(t *testing.T) {
	s := NewSegment(NewVector(0, 0), NewVector(10, 0))
	if !s.IntersectsWithDisc(NewVector(5, 15), 15) {
		t.Error("disc touching at exactly radius should intersect")
	}
	if s.IntersectsWithDisc(NewVector(5, 15.01), 15) {
		t.Error("disc just beyond radius should not intersect")
	}
}

func TestBreakIsIdempotent(t *testing.T) {
	s := NewSegment(NewVector(0, 0), NewVector(1, 1))
	if s.IsBroken() {
		t.Fatal("new segment is broken")
	}
	s.Break()
	s.Break()
	if !s.IsBroken() {
		t.Fatal("segment not broken after Break")
	}
}
