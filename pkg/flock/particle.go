// Package flock computes boids-style flocking updates over a slice of
// particle records owned by a host loop.
//
// The three classic rules (cohesion, separation, alignment) were described
// by Craig Reynolds in his 1987 SIGGRAPH paper on "bird-oid objects".
// The host owns the particle pool: it creates and recycles slots, drives
// the frame clock, and hands the stepper a mutable view for exactly one
// Step call per tick.
package flock

import "github.com/particlekit/go-particle-flock/pkg/geometry"

// Particle is one record of the host-owned pool: where it is and where it
// is going. The stepper mutates both in place and nothing else.
type Particle struct {
	Pos geometry.Vector3D
	Vel geometry.Vector3D
}

// Speed returns the current velocity magnitude.
func (p *Particle) Speed() float64 {
	return p.Vel.Len()
}
