package flock

import (
	"math"

	"github.com/particlekit/go-particle-flock/pkg/geometry"
)

// minCellSize guards against degenerate cells when the cohesion radius is
// tiny relative to world units.
const minCellSize = 1.0

type cellKey struct {
	x, y, z int
}

// grid is a uniform spatial hash over particle indices, rebuilt once per
// tick. With cells at least as large as the cohesion radius, every
// neighbor of a particle lives in the 3x3x3 block around its own cell.
type grid struct {
	cells    map[cellKey][]int
	cellSize float64
}

func newGrid() *grid {
	return &grid{cells: make(map[cellKey][]int)}
}

// rebuild re-bins all particle indices for the current tick.
func (g *grid) rebuild(particles []Particle, cohesionRadius float64) {
	g.cellSize = math.Max(cohesionRadius, minCellSize)

	// Reset slices to length 0 but keep capacity, so the underlying
	// arrays are reused and steady-state rebuilds allocate almost nothing.
	for k := range g.cells {
		g.cells[k] = g.cells[k][:0]
	}

	for i := range particles {
		k := g.keyFor(particles[i].Pos.X, particles[i].Pos.Y, particles[i].Pos.Z)
		g.cells[k] = append(g.cells[k], i)
	}
}

// keyFor maps a position to its cell. Floor, not truncation: positions can
// be negative and -0.5 must land in cell -1, not share cell 0.
func (g *grid) keyFor(x, y, z float64) cellKey {
	return cellKey{
		x: int(math.Floor(x / g.cellSize)),
		y: int(math.Floor(y / g.cellSize)),
		z: int(math.Floor(z / g.cellSize)),
	}
}

// visitNeighbors calls visit with the index of every particle in the
// 3x3x3 cell block around pos, including the particle at pos itself.
func (g *grid) visitNeighbors(pos geometry.Vector3D, visit func(int)) {
	center := g.keyFor(pos.X, pos.Y, pos.Z)

	for x := center.x - 1; x <= center.x+1; x++ {
		for y := center.y - 1; y <= center.y+1; y++ {
			for z := center.z - 1; z <= center.z+1; z++ {
				for _, idx := range g.cells[cellKey{x: x, y: y, z: z}] {
					visit(idx)
				}
			}
		}
	}
}
