// Package behavior provides small stateless particle behaviors: closed-form
// expressions mapping (time, per-particle seed) to position or velocity
// deltas. They carry no simulation state of their own; the host integrates
// the deltas and owns emission, lifetime, and rendering.
package behavior

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/particlekit/go-particle-flock/pkg/geometry"
)

// ---------------------------------------------------------------------
// Spiral
// ---------------------------------------------------------------------

// SpiralParams controls the helix traced by Spiral.
type SpiralParams struct {
	Radius       float64 // orbit radius at t = 0
	RadiusGrowth float64 // radius gained per unit time
	AngularSpeed float64 // radians per unit time
	ClimbSpeed   float64 // height gained per unit time (Y axis)
}

// Spiral returns the position at time t of a particle whose seed fixes its
// phase around the axis. Pure: identical (t, seed, params) give identical
// positions.
func Spiral(t float64, seed int64, p SpiralParams) geometry.Vector3D {
	angle := phaseFromSeed(seed) + p.AngularSpeed*t
	r := p.Radius + p.RadiusGrowth*t
	return geometry.Vector3D{
		X: r * math.Cos(angle),
		Y: p.ClimbSpeed * t,
		Z: r * math.Sin(angle),
	}
}

// phaseFromSeed spreads a seed over [0, 2π) with an integer mix so that
// consecutive seeds don't start at consecutive angles.
func phaseFromSeed(seed int64) float64 {
	h := uint64(seed)
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	return 2 * math.Pi * float64(h&0xfffff) / float64(1<<20)
}

// ---------------------------------------------------------------------
// Wobble
// ---------------------------------------------------------------------

// Wobble produces the lateral drift of a rising bubble from seeded Perlin
// noise. Construction fixes the seed; after that Delta is a pure function
// of time, so two bubbles with the same seed wobble identically.
type Wobble struct {
	Amplitude float64 // drift magnitude per axis
	Frequency float64 // how fast the drift meanders over time

	noise *perlin.Perlin
}

// NewWobble creates a wobble source for one particle.
func NewWobble(seed int64, amplitude, frequency float64) *Wobble {
	return &Wobble{
		Amplitude: amplitude,
		Frequency: frequency,
		noise:     perlin.NewPerlin(2, 2, 3, seed),
	}
}

// Delta returns the lateral (X/Z only) position delta at time t.
// Zero amplitude yields the zero vector.
func (w *Wobble) Delta(t float64) geometry.Vector3D {
	if w.Amplitude == 0 {
		return geometry.Vector3D{}
	}
	// Two decorrelated 2D slices of the same noise field. The 0.5 offsets
	// keep the samples off the integer lattice, where Perlin noise is zero.
	return geometry.Vector3D{
		X: w.Amplitude * w.noise.Noise2D(t*w.Frequency, 0.5),
		Z: w.Amplitude * w.noise.Noise2D(0.5, t*w.Frequency),
	}
}

// ---------------------------------------------------------------------
// Buoyancy
// ---------------------------------------------------------------------

// BuoyancyParams controls the upward drive of a bubble.
type BuoyancyParams struct {
	Accel        float64 // upward acceleration per unit time
	MaxRiseSpeed float64 // terminal upward speed; 0 disables the cap
}

// Buoyancy returns the upward velocity delta over dt given the particle's
// current upward speed. The delta never pushes the upward speed past
// MaxRiseSpeed, and never pulls a fast particle back down.
func Buoyancy(currentUp float64, p BuoyancyParams, dt float64) geometry.Vector3D {
	dv := p.Accel * dt
	if p.MaxRiseSpeed > 0 && currentUp+dv > p.MaxRiseSpeed {
		dv = math.Max(p.MaxRiseSpeed-currentUp, 0)
	}
	return geometry.Vector3D{Y: dv}
}
