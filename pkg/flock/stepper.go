package flock

import (
	"math"
	"sync"

	"github.com/particlekit/go-particle-flock/pkg/geometry"
)

// parallelThreshold is the pool size below which splitting the force pass
// across goroutines costs more than it saves.
const parallelThreshold = 64

// Stepper advances a flock by one tick at a time.
//
// All forces for a tick are computed against the state of the slice as it
// was when Step began: results go to an internal scratch buffer and are
// copied back only after every particle has been processed. A particle
// never observes a neighbor's already-updated state, so the outcome does
// not depend on particle order.
//
// The zero value is a working single-threaded brute-force stepper.
type Stepper struct {
	workers int
	grid    *grid
	scratch []Particle
}

// Option configures a Stepper.
type Option func(*Stepper)

// WithWorkers splits the force pass across n goroutines. The pass is
// read-only over the snapshot and each goroutine writes a disjoint range
// of the scratch buffer, so no locking is needed.
func WithWorkers(n int) Option {
	return func(s *Stepper) {
		if n > 1 {
			s.workers = n
		}
	}
}

// WithGrid replaces the O(N²) neighbor scan with a uniform spatial hash
// rebuilt each tick. Worth it for large pools; the brute-force default
// keeps the reference behavior for small ones.
func WithGrid() Option {
	return func(s *Stepper) {
		s.grid = newGrid()
	}
}

func NewStepper(opts ...Option) *Stepper {
	s := &Stepper{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Step applies one flocking tick to particles in place.
//
// cfg must have passed Validate; dt is the tick duration in the host's
// time unit. Rule forces are per-tick accelerations, only the position
// integration is scaled by dt. The stepper keeps no reference to the
// slice after returning. Inputs containing NaN or Inf are the caller's
// problem: this is pure arithmetic with no error path.
func (s *Stepper) Step(particles []Particle, cfg *Config, dt float64) {
	n := len(particles)
	if n == 0 {
		return
	}

	if cap(s.scratch) < n {
		s.scratch = make([]Particle, n)
	}
	out := s.scratch[:n]

	if s.grid != nil {
		s.grid.rebuild(particles, cfg.CohesionRadius)
	}

	if s.workers > 1 && n >= parallelThreshold {
		var wg sync.WaitGroup
		chunk := (n + s.workers - 1) / s.workers
		for lo := 0; lo < n; lo += chunk {
			hi := min(lo+chunk, n)
			wg.Add(1)
			go func(lo, hi int) {
				defer wg.Done()
				s.stepRange(particles, out, cfg, dt, lo, hi)
			}(lo, hi)
		}
		wg.Wait()
	} else {
		s.stepRange(particles, out, cfg, dt, 0, n)
	}

	copy(particles, out)
}

func (s *Stepper) stepRange(src, dst []Particle, cfg *Config, dt float64, lo, hi int) {
	for i := lo; i < hi; i++ {
		dst[i] = s.stepOne(src, i, cfg, dt)
	}
}

// stepOne computes the next state of particle i from the tick snapshot.
func (s *Stepper) stepOne(src []Particle, i int, cfg *Config, dt float64) Particle {
	me := src[i]
	cohesionSq := cfg.CohesionRadius * cfg.CohesionRadius
	separationSq := cfg.SeparationRadius * cfg.SeparationRadius

	// Force accumulators
	var posSum, velSum, sepSum geometry.Vector3D
	neighbors := 0

	visit := func(j int) {
		if j == i {
			return
		}
		other := &src[j]
		distSq := me.Pos.DistanceSquaredTo(other.Pos)
		if distSq >= cohesionSq {
			return
		}

		// Cohesion & Alignment accumulators
		posSum = posSum.Add(other.Pos)
		velSum = velSum.Add(other.Vel)
		neighbors++

		// Separation: repulsion along the offset, weighted down with
		// distance. Coincident particles contribute nothing rather than
		// dividing by zero.
		if distSq < separationSq && distSq > 0 {
			d := math.Sqrt(distSq)
			sepSum = sepSum.Add(me.Pos.Sub(other.Pos).Mul(1 / d))
		}
	}

	if s.grid != nil {
		s.grid.visitNeighbors(me.Pos, visit)
	} else {
		for j := range src {
			visit(j)
		}
	}

	// Separation applies whether or not anything was close enough;
	// Normalize maps an empty accumulator to the zero vector.
	force := sepSum.Normalize().Mul(cfg.SeparationStrength)

	// Cohesion and alignment only make sense with at least one neighbor.
	if neighbors > 0 {
		inv := 1 / float64(neighbors)
		cohesion := posSum.Mul(inv).Sub(me.Pos).Normalize().Mul(cfg.CohesionStrength)
		alignment := velSum.Mul(inv).Sub(me.Vel).Normalize().Mul(cfg.AlignmentStrength)
		force = force.Add(cohesion).Add(alignment)
	}

	vel := me.Vel.Add(force).Limit(cfg.MaxSpeed)
	return Particle{
		Pos: me.Pos.Add(vel.Mul(dt)),
		Vel: vel,
	}
}
