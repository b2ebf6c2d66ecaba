package sim

import (
	"fmt"
	"math"
)

// MinGridSize is the smallest lattice on which a 3x3 neighborhood search
// visits each cell at most once under wraparound.
const MinGridSize = 3

// MaxGridSize caps the cells per axis, and so the smallest usable radius.
const MaxGridSize = 1024

// MinRadius is the smallest interaction radius that fits in MaxGridSize.
const MinRadius float32 = 2.0 / MaxGridSize

// GridSize returns the number of cells per axis for an interaction radius.
// A cell is then at least rMax wide, so any pair closer than rMax sits in
// cells at most one apart on each axis.
func GridSize(rMax float32) int {
	return int(math.Floor(float64(2.0 / rMax)))
}

// Grid is a uniform toroidal lattice over [-1, 1)² rebuilt every step with a
// counting sort. Particles in cell c are Order()[offsets[c]:offsets[c+1]].
type Grid struct {
	size    int
	offsets []int // size*size+1 prefix sums
	cursor  []int // scatter cursors, one per cell
	cells   []int // cell index per particle
	order   []int // particle indices sorted by cell
}

// NewGrid allocates a grid for the given radius and population.
func NewGrid(rMax float32, n int) (*Grid, error) {
	g := &Grid{}
	if err := g.Resize(rMax, n); err != nil {
		return nil, err
	}
	return g, nil
}

// Resize reallocates buffers when the derived lattice size or the population
// changes. The grid is left untouched on error.
func (g *Grid) Resize(rMax float32, n int) error {
	if err := validateRadius(rMax); err != nil {
		return err
	}
	if n < 0 || n > MaxPopulation {
		return fmt.Errorf("%w: n=%d", ErrInvalidPopulation, n)
	}
	size := GridSize(rMax)
	if size != g.size {
		g.size = size
		g.offsets = make([]int, size*size+1)
		g.cursor = make([]int, size*size)
	}
	if n != len(g.order) {
		g.order = make([]int, n)
		g.cells = make([]int, n)
	}
	return nil
}

// Size returns the number of cells per axis.
func (g *Grid) Size() int { return g.size }

// Offsets exposes the prefix-sum table of the last rebuild.
func (g *Grid) Offsets() []int { return g.offsets }

// Order exposes the cell-sorted particle permutation of the last rebuild.
func (g *Grid) Order() []int { return g.order }

// Cell returns the lattice coordinates of a position.
func (g *Grid) Cell(x, y float32) (int, int) {
	return g.axis(x), g.axis(y)
}

func (g *Grid) axis(v float32) int {
	c := int(math.Floor(float64((Wrap(v) + 1) * 0.5 * float32(g.size))))
	if c < 0 {
		c = 0
	} else if c >= g.size {
		c = g.size - 1
	}
	return c
}

// Rebuild sorts the particles into cells: histogram, exclusive prefix sum,
// then a stable scatter through a separate cursor table.
func (g *Grid) Rebuild(particles []Particle) {
	cellCount := g.size * g.size
	for c := 0; c <= cellCount; c++ {
		g.offsets[c] = 0
	}

	for i := range particles {
		cx, cy := g.Cell(particles[i].X, particles[i].Y)
		c := cx + cy*g.size
		g.cells[i] = c
		g.offsets[c+1]++
	}

	for c := 0; c < cellCount; c++ {
		g.offsets[c+1] += g.offsets[c]
	}
	copy(g.cursor, g.offsets[:cellCount])

	for i, c := range g.cells {
		g.order[g.cursor[c]] = i
		g.cursor[c]++
	}
}

// CellMembers returns the particle indices assigned to cell index c.
func (g *Grid) CellMembers(c int) []int {
	return g.order[g.offsets[c]:g.offsets[c+1]]
}

// Neighborhood returns the 3x3 block of cell indices around (cx, cy),
// each axis wrapped independently.
func (g *Grid) Neighborhood(cx, cy int) [9]int {
	var block [9]int
	k := 0
	for dy := -1; dy <= 1; dy++ {
		y := cy + dy
		if y < 0 {
			y += g.size
		} else if y >= g.size {
			y -= g.size
		}
		for dx := -1; dx <= 1; dx++ {
			x := cx + dx
			if x < 0 {
				x += g.size
			} else if x >= g.size {
				x -= g.size
			}
			block[k] = x + y*g.size
			k++
		}
	}
	return block
}
