package game

import (
	"math"
	"testing"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestVectorChainingMutatesReceiver(t *testing.T) {
	v := NewVector(1, 2)
	v.Add(NewVector(3, 4)).Multiply(2).Subtract(NewVector(1, 1))
	if v.X != 7 || v.Y != 11 {
		t.Fatalf("chained ops = (%v,%v), want (7,11)", v.X, v.Y)
	}
}

func TestVectorCopyIsIndependent(t *testing.T) {
	v := NewVector(1, 1)
	c := v.Copy()
	c.Add(NewVector(5, 5))
	if v.X != 1 || v.Y != 1 {
		t.Fatalf("original changed after mutating copy: %+v", v)
	}
}

func TestNormalizeZeroVectorIsNoOp(t *testing.T) {
	v := Vector{}
	v.Normalize()
	if v.X != 0 || v.Y != 0 || math.IsNaN(v.X) || math.IsNaN(v.Y) {
		t.Fatalf("normalize zero = %+v, want (0,0)", v)
	}
}

func TestNormalizeUnitLength(t *testing.T) {
	v := NewVector(3, 4)
	v.Normalize()
	if !approx(v.Magnitude(), 1) || !approx(v.X, 0.6) || !approx(v.Y, 0.8) {
		t.Fatalf("normalize (3,4) = %+v", v)
	}
}

func TestVectorQueries(t *testing.T) {
	a := NewVector(1, 2)
	b := NewVector(4, 6)
	if got := a.DistanceTo(b); !approx(got, 5) {
		t.Errorf("distance = %v, want 5", got)
	}
	if got := a.Dot(b); got != 16 {
		t.Errorf("dot = %v, want 16", got)
	}
	d := VectorFromPoints(a, b)
	if d.X != 3 || d.Y != 4 {
		t.Errorf("from points = %+v, want (3,4)", d)
	}
	f := VectorFromAngle(math.Pi/2, 2)
	if !approx(f.X, 0) || !approx(f.Y, 2) {
		t.Errorf("from angle = %+v, want (0,2)", f)
	}
}
