package game

import (
	"math/rand/v2"
	"testing"
)

func TestFrictionStopsBallWithExactZeroVelocity(t *testing.T) {
	for _, speed := range []float64{0.5, 1, 8, 25, 100} {
		b := NewBall(NewVector(0, 0))
		if !b.LaunchTowards(NewVector(1, 1), speed) {
			t.Fatalf("launch at speed %v failed", speed)
		}
		steps := 0
		for b.IsMoving() {
			b.Update()
			steps++
			if steps > 100000 {
				t.Fatalf("ball at speed %v still moving after %d steps", speed, steps)
			}
		}
		if b.Velocity.X != 0 || b.Velocity.Y != 0 {
			t.Fatalf("velocity after stop = %+v, want exact zero", b.Velocity)
		}
	}
}

func TestLaunchFailsWhileMoving(t *testing.T) {
	b := NewBall(NewVector(100, 100))
	if !b.LaunchTowards(NewVector(200, 100), LaunchSpeed) {
		t.Fatal("first launch failed")
	}
	v := b.Velocity
	if b.LaunchTowards(NewVector(0, 0), LaunchSpeed) {
		t.Fatal("second launch succeeded while moving")
	}
	if b.Velocity != v {
		t.Fatalf("velocity changed by failed launch: %+v -> %+v", v, b.Velocity)
	}
	if !approx(b.Velocity.X, LaunchSpeed) || !approx(b.Velocity.Y, 0) {
		t.Fatalf("launch velocity = %+v, want (%v,0)", b.Velocity, LaunchSpeed)
	}
}

func TestTrailIsBoundedAndFades(t *testing.T) {
	b := NewBall(NewVector(0, 0))
	b.LaunchTowards(NewVector(1, 0), 20)
	for i := 0; i < 30; i++ {
		b.Update()
	}
	if len(b.Trail) != TrailCapacity {
		t.Fatalf("trail length = %d, want %d", len(b.Trail), TrailCapacity)
	}
	if got, want := b.Trail[len(b.Trail)-1], b.Position; got != want {
		t.Fatalf("newest trail entry = %+v, want current position %+v", got, want)
	}

	b.Stop()
	b.Trail = append(b.Trail, NewVector(1, 1), NewVector(2, 2), NewVector(3, 3))
	b.Glow = 1
	b.Update()
	if len(b.Trail) != 2 || b.Trail[0] != NewVector(2, 2) {
		t.Fatalf("trail after fade = %+v, want oldest dropped", b.Trail)
	}
	if !approx(b.Glow, GlowDecay) {
		t.Fatalf("glow after fade = %v, want %v", b.Glow, GlowDecay)
	}
}

func TestGlowTracksSpeed(t *testing.T) {
	b := NewBall(NewVector(0, 0))
	b.LaunchTowards(NewVector(1, 0), 5)
	b.Update()
	want := 5 * BallFriction / GlowSpeedDivisor
	if !approx(b.Glow, want) {
		t.Fatalf("glow = %v, want %v", b.Glow, want)
	}

	b.Reset(NewVector(0, 0))
	b.LaunchTowards(NewVector(1, 0), 50)
	b.Update()
	if b.Glow != 1 {
		t.Fatalf("glow at high speed = %v, want 1", b.Glow)
	}
}

func TestBoundaryClampAtRadius(t *testing.T) {
	b := NewBall(NewVector(BallRadius, 100))
	b.Velocity = NewVector(3, 0)
	if !b.HandleBoundaryCollision(800, 600) {
		t.Fatal("ball at x = radius should collide")
	}
	if b.Position.X != BallRadius {
		t.Fatalf("x = %v, want %v", b.Position.X, BallRadius)
	}
	if !approx(b.Velocity.X, 3*BoundaryRestitution) {
		t.Fatalf("vx = %v, want %v", b.Velocity.X, 3*BoundaryRestitution)
	}

	b.Velocity = NewVector(-3, 0)
	b.HandleBoundaryCollision(800, 600)
	if !approx(b.Velocity.X, 3*BoundaryRestitution) {
		t.Fatalf("vx after inbound hit = %v, want %v", b.Velocity.X, 3*BoundaryRestitution)
	}
}

func TestBoundaryCornerReflectsBothAxes(t *testing.T) {
	b := NewBall(NewVector(810, 620))
	b.Velocity = NewVector(4, 2)
	if !b.HandleBoundaryCollision(800, 600) {
		t.Fatal("corner hit not reported")
	}
	if b.Position.X != 800-BallRadius || b.Position.Y != 600-BallRadius {
		t.Fatalf("position = %+v, want clamped to both far edges", b.Position)
	}
	if !approx(b.Velocity.X, -4*BoundaryRestitution) || !approx(b.Velocity.Y, -2*BoundaryRestitution) {
		t.Fatalf("velocity = %+v, want both components reversed and damped", b.Velocity)
	}
}

func TestBoundaryNoCollisionInside(t *testing.T) {
	b := NewBall(NewVector(400, 300))
	b.Velocity = NewVector(1, 1)
	if b.HandleBoundaryCollision(800, 600) {
		t.Fatal("collision reported for ball well inside")
	}
	if b.Velocity != NewVector(1, 1) {
		t.Fatalf("velocity changed: %+v", b.Velocity)
	}
}

func TestSegmentCollisionReflectsAndPushes(t *testing.T) {
	seg := NewSegment(NewVector(50, 100), NewVector(150, 100))
	b := NewBall(NewVector(100, 110))
	b.Velocity = NewVector(2, -5)

	if !b.HandleSegmentCollision(seg) {
		t.Fatal("expected collision")
	}
	if !approx(b.Position.Y, 110+(BallRadius-10+SegmentPushSlack)) || b.Position.X != 100 {
		t.Fatalf("position = %+v, want pushed along +y", b.Position)
	}
	if !approx(b.Velocity.X, 2*SegmentRestitution) || !approx(b.Velocity.Y, 5*SegmentRestitution) {
		t.Fatalf("velocity = %+v, want (1.8, 4.5)", b.Velocity)
	}
}

func TestSegmentCollisionDegenerateNormal(t *testing.T) {
	seg := NewSegment(NewVector(0, 0), NewVector(100, 0))
	b := NewBall(NewVector(50, 0))
	b.Velocity = NewVector(1, 2)

	if !b.HandleSegmentCollision(seg) {
		t.Fatal("centre on segment must still report a collision")
	}
	if b.Position != NewVector(50, 0) || b.Velocity != NewVector(1, 2) {
		t.Fatalf("degenerate hit changed state: pos=%+v vel=%+v", b.Position, b.Velocity)
	}
}

func TestSegmentCollisionMiss(t *testing.T) {
	seg := NewSegment(NewVector(0, 0), NewVector(100, 0))
	b := NewBall(NewVector(50, 40))
	if b.HandleSegmentCollision(seg) {
		t.Fatal("collision reported for distant ball")
	}
}

func TestSegmentReflectionNeverGainsEnergy(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 1000; i++ {
		seg := NewSegment(
			NewVector(rng.Float64()*200, rng.Float64()*200),
			NewVector(rng.Float64()*200, rng.Float64()*200),
		)
		p := seg.ClosestPointTo(NewVector(rng.Float64()*200, rng.Float64()*200))
		off := VectorFromAngle(rng.Float64()*6.283, rng.Float64()*BallRadius)
		p.Add(off)

		b := NewBall(p)
		b.Velocity = VectorFromAngle(rng.Float64()*6.283, rng.Float64()*20)
		before := b.Velocity.Magnitude()

		b.HandleSegmentCollision(seg)
		if after := b.Velocity.Magnitude(); after > before+eps {
			t.Fatalf("trial %d: speed grew from %v to %v", i, before, after)
		}
	}
}

func TestResetClearsMotion(t *testing.T) {
	b := NewBall(NewVector(0, 0))
	b.LaunchTowards(NewVector(10, 0), 8)
	b.Update()
	b.Reset(NewVector(50, 60))
	if b.IsMoving() || !b.Velocity.IsZero() || len(b.Trail) != 0 || b.Glow != 0 {
		t.Fatalf("reset left state behind: %+v", b)
	}
	if b.Position != NewVector(50, 60) {
		t.Fatalf("position = %+v, want (50,60)", b.Position)
	}
}
