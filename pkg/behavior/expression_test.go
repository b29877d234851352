package behavior

import (
	"math"
	"testing"

	"github.com/particlekit/go-particle-flock/pkg/geometry"
)

func TestSpiral(t *testing.T) {
	p := SpiralParams{
		Radius:       2,
		RadiusGrowth: 0.5,
		AngularSpeed: 1,
		ClimbSpeed:   3,
	}

	t.Run("Deterministic", func(t *testing.T) {
		a := Spiral(1.5, 42, p)
		b := Spiral(1.5, 42, p)
		if !a.Eq(b) {
			t.Errorf("same inputs gave different positions: %v vs %v", a, b)
		}
	})

	t.Run("SeedChangesPhase", func(t *testing.T) {
		a := Spiral(1.5, 1, p)
		b := Spiral(1.5, 2, p)
		if a.Eq(b) {
			t.Error("different seeds should start at different phases")
		}
	})

	t.Run("RadiusAndClimb", func(t *testing.T) {
		at := 4.0
		pos := Spiral(at, 7, p)

		// Distance from the axis is the grown radius.
		lateral := math.Hypot(pos.X, pos.Z)
		wantR := p.Radius + p.RadiusGrowth*at
		if math.Abs(lateral-wantR) > 1e-9 {
			t.Errorf("lateral distance = %v; want %v", lateral, wantR)
		}

		if math.Abs(pos.Y-p.ClimbSpeed*at) > 1e-9 {
			t.Errorf("height = %v; want %v", pos.Y, p.ClimbSpeed*at)
		}
	})

	t.Run("StartsOnBaseRadius", func(t *testing.T) {
		pos := Spiral(0, 9, p)
		if math.Abs(math.Hypot(pos.X, pos.Z)-p.Radius) > 1e-9 {
			t.Errorf("t=0 lateral distance = %v; want %v", math.Hypot(pos.X, pos.Z), p.Radius)
		}
		if pos.Y != 0 {
			t.Errorf("t=0 height = %v; want 0", pos.Y)
		}
	})
}

func TestWobble(t *testing.T) {
	t.Run("Deterministic", func(t *testing.T) {
		w1 := NewWobble(42, 0.5, 1.3)
		w2 := NewWobble(42, 0.5, 1.3)
		for _, tm := range []float64{0.1, 0.7, 2.9} {
			if a, b := w1.Delta(tm), w2.Delta(tm); !a.Eq(b) {
				t.Errorf("t=%v: same seed gave different deltas: %v vs %v", tm, a, b)
			}
		}
	})

	t.Run("SeedChangesDrift", func(t *testing.T) {
		a := NewWobble(1, 0.5, 1.3).Delta(0.7)
		b := NewWobble(2, 0.5, 1.3).Delta(0.7)
		if a.Eq(b) {
			t.Error("different seeds should drift differently")
		}
	})

	t.Run("LateralOnly", func(t *testing.T) {
		w := NewWobble(5, 0.5, 1.3)
		for _, tm := range []float64{0.2, 1.1, 3.7} {
			if d := w.Delta(tm); d.Y != 0 {
				t.Errorf("t=%v: wobble leaked into Y: %v", tm, d)
			}
		}
	})

	t.Run("ZeroAmplitude", func(t *testing.T) {
		w := NewWobble(5, 0, 1.3)
		if d := w.Delta(1.0); !d.Eq(geometry.Vector3D{}) {
			t.Errorf("zero amplitude gave %v; want zero", d)
		}
	})

	t.Run("Finite", func(t *testing.T) {
		w := NewWobble(11, 2, 0.8)
		for tm := 0.0; tm < 10; tm += 0.37 {
			d := w.Delta(tm)
			if math.IsNaN(d.X) || math.IsInf(d.X, 0) || math.IsNaN(d.Z) || math.IsInf(d.Z, 0) {
				t.Fatalf("t=%v: non-finite delta %v", tm, d)
			}
		}
	})
}

func TestBuoyancy(t *testing.T) {
	p := BuoyancyParams{Accel: 2, MaxRiseSpeed: 1}

	t.Run("PushesUp", func(t *testing.T) {
		d := Buoyancy(0, p, 0.1)
		if d.Y <= 0 {
			t.Errorf("delta = %v; want upward push", d)
		}
		if d.X != 0 || d.Z != 0 {
			t.Errorf("buoyancy leaked laterally: %v", d)
		}
	})

	t.Run("CapsAtTerminalSpeed", func(t *testing.T) {
		// A big step from rest must stop exactly at the cap.
		d := Buoyancy(0, p, 10)
		if math.Abs(d.Y-p.MaxRiseSpeed) > 1e-9 {
			t.Errorf("delta = %v; want capped at %v", d.Y, p.MaxRiseSpeed)
		}
	})

	t.Run("NoPushPastCap", func(t *testing.T) {
		// Already above terminal speed: no delta, and no drag either.
		d := Buoyancy(2, p, 0.1)
		if d.Y != 0 {
			t.Errorf("delta = %v; want 0 at/above cap", d.Y)
		}
	})

	t.Run("Uncapped", func(t *testing.T) {
		d := Buoyancy(100, BuoyancyParams{Accel: 2}, 0.5)
		if math.Abs(d.Y-1) > 1e-9 {
			t.Errorf("delta = %v; want Accel*dt = 1", d.Y)
		}
	})
}
