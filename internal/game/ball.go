package game

import "math"

// Ball is the player's ball. There is one per game; it is reset between levels
// rather than recreated.
type Ball struct {
	Position Vector   `json:"position"`
	Velocity Vector   `json:"velocity"`
	Radius   float64  `json:"radius"`
	Trail    []Vector `json:"trail"`
	Glow     float64  `json:"glow"`
	moving   bool
}

func NewBall(position Vector) *Ball {
	return &Ball{
		Position: position.Copy(),
		Radius:   BallRadius,
		Trail:    make([]Vector, 0, TrailCapacity+1),
	}
}

func (b *Ball) IsMoving() bool {
	return b.moving
}

func (b *Ball) Speed() float64 {
	return b.Velocity.Magnitude()
}

// LaunchTowards sets the ball moving at speed towards target. It returns false
// and leaves the ball untouched if the ball is already moving.
func (b *Ball) LaunchTowards(target Vector, speed float64) bool {
	if b.moving {
		return false
	}

	dir := VectorFromPoints(b.Position, target)
	dir.Normalize().Multiply(speed)
	b.Velocity = dir
	b.moving = true
	b.Trail = b.Trail[:0]
	return true
}

// Update advances the ball by one frame.
func (b *Ball) Update() {
	if !b.moving {
		if len(b.Trail) > 0 {
			b.Trail = append(b.Trail[:0], b.Trail[1:]...)
		}
		b.Glow *= GlowDecay
		return
	}

	b.Position.Add(b.Velocity)
	b.Velocity.Multiply(BallFriction)

	if b.Velocity.Magnitude() < BallMinSpeed {
		b.Velocity.Set(0, 0)
		b.moving = false
	}

	b.Trail = append(b.Trail, b.Position.Copy())
	if len(b.Trail) > TrailCapacity {
		b.Trail = append(b.Trail[:0], b.Trail[1:]...)
	}

	b.Glow = math.Min(1, b.Velocity.Magnitude()/GlowSpeedDivisor)
}

// HandleBoundaryCollision keeps the ball inside a width x height area. Each
// axis is checked on its own so a corner hit reflects both components.
func (b *Ball) HandleBoundaryCollision(width, height float64) bool {
	collided := false

	if b.Position.X <= b.Radius {
		b.Position.X = b.Radius
		b.Velocity.X = math.Abs(b.Velocity.X) * BoundaryRestitution
		collided = true
	} else if b.Position.X >= width-b.Radius {
		b.Position.X = width - b.Radius
		b.Velocity.X = -math.Abs(b.Velocity.X) * BoundaryRestitution
		collided = true
	}

	if b.Position.Y <= b.Radius {
		b.Position.Y = b.Radius
		b.Velocity.Y = math.Abs(b.Velocity.Y) * BoundaryRestitution
		collided = true
	} else if b.Position.Y >= height-b.Radius {
		b.Position.Y = height - b.Radius
		b.Velocity.Y = -math.Abs(b.Velocity.Y) * BoundaryRestitution
		collided = true
	}

	return collided
}

// HandleSegmentCollision bounces the ball off seg if they touch. The contact
// normal runs from the closest point on seg to the ball centre. When the centre
// lies exactly on the segment there is no normal; the hit is still reported.
func (b *Ball) HandleSegmentCollision(seg *Segment) bool {
	closest := seg.ClosestPointTo(b.Position)
	dist := b.Position.DistanceTo(closest)
	if dist > b.Radius {
		return false
	}

	normal := VectorFromPoints(closest, b.Position)
	if normal.Magnitude() > 0 {
		normal.Normalize()

		push := normal.Copy()
		b.Position.Add(*push.Multiply(b.Radius - dist + SegmentPushSlack))

		b.Velocity.reflect(normal).Multiply(SegmentRestitution)
	}

	return true
}

// Stop halts the ball where it is.
func (b *Ball) Stop() {
	b.Velocity.Set(0, 0)
	b.moving = false
	b.Trail = b.Trail[:0]
}

// Reset moves the ball to position and clears all motion and effects.
func (b *Ball) Reset(position Vector) {
	b.Position = position.Copy()
	b.Velocity.Set(0, 0)
	b.moving = false
	b.Trail = b.Trail[:0]
	b.Glow = 0
}

func (b *Ball) IsInBounds(width, height float64) bool {
	return b.Position.X >= b.Radius &&
		b.Position.X <= width-b.Radius &&
		b.Position.Y >= b.Radius &&
		b.Position.Y <= height-b.Radius
}
