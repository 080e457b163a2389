package game

import "math"

// Vector is a 2D point or displacement. Mutating methods use a pointer receiver
// and return the receiver so calls can be chained.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewVector(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// VectorFromPoints returns the displacement from p1 to p2.
func VectorFromPoints(p1, p2 Vector) Vector {
	return Vector{X: p2.X - p1.X, Y: p2.Y - p1.Y}
}

// VectorFromAngle returns a vector of the given magnitude pointing at angle (radians).
func VectorFromAngle(angle, magnitude float64) Vector {
	return Vector{X: math.Cos(angle) * magnitude, Y: math.Sin(angle) * magnitude}
}

func (v Vector) Copy() Vector {
	return Vector{X: v.X, Y: v.Y}
}

func (v *Vector) Add(o Vector) *Vector {
	v.X += o.X
	v.Y += o.Y
	return v
}

func (v *Vector) Subtract(o Vector) *Vector {
	v.X -= o.X
	v.Y -= o.Y
	return v
}

func (v *Vector) Multiply(s float64) *Vector {
	v.X *= s
	v.Y *= s
	return v
}

func (v *Vector) Set(x, y float64) *Vector {
	v.X = x
	v.Y = y
	return v
}

// Normalize scales v to unit length. A zero vector is left unchanged.
func (v *Vector) Normalize() *Vector {
	m := v.Magnitude()
	if m > 0 {
		v.X /= m
		v.Y /= m
	}
	return v
}

func (v Vector) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vector) Dot(o Vector) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vector) DistanceTo(o Vector) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// reflect applies v' = v - 2(v.n)n in place. n is expected to be unit length.
func (v *Vector) reflect(n Vector) *Vector {
	d := v.Dot(n)
	r := n.Copy()
	return v.Subtract(*r.Multiply(2 * d))
}
