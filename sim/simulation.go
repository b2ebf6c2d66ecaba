// Package sim implements the particle-life engine: typed particles on a
// periodic [-1, 1)² domain pulling and pushing each other according to an
// asymmetric attraction matrix.
package sim

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Particle is a single typed point mass.
type Particle struct {
	Type   int     // row/column in the attraction matrix
	X, Y   float32 // position in [-1, 1)
	VX, VY float32 // velocity
}

// Simulation owns every buffer of a run: particles, attraction matrix,
// neighbor grid and density raster. It is not safe for concurrent use;
// Step parallelizes internally.
type Simulation struct {
	Particles []Particle
	Matrix    [][]float32 // attraction of Matrix[from][to]

	cfg          Config
	grid         *Grid
	raster       *DensityRaster
	rng          *rand.Rand
	positionMode PositionMode
	matrixMode   MatrixMode
}

// New validates cfg, allocates all buffers, assigns random types and seeds
// positions and matrix with the given modes.
func New(cfg Config, rng *rand.Rand, pos PositionMode, mat MatrixMode) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !pos.Valid() {
		return nil, fmt.Errorf("%w: position mode %d", ErrUnknownMode, int(pos))
	}
	if !mat.Valid() {
		return nil, fmt.Errorf("%w: matrix mode %d", ErrUnknownMode, int(mat))
	}
	grid, err := NewGrid(cfg.RMax, cfg.N)
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		cfg:          cfg,
		grid:         grid,
		rng:          rng,
		positionMode: pos,
		matrixMode:   mat,
	}
	s.populate()
	return s, nil
}

// populate allocates particles and matrix for the current n and m and seeds
// them with the remembered modes.
func (s *Simulation) populate() {
	s.Matrix = make([][]float32, s.cfg.M)
	for i := range s.Matrix {
		s.Matrix[i] = make([]float32, s.cfg.M)
	}
	FillMatrix(s.Matrix, s.matrixMode, s.rng)

	s.Particles = make([]Particle, s.cfg.N)
	for i := range s.Particles {
		s.Particles[i].Type = s.rng.Intn(s.cfg.M)
	}
	PlacePositions(s.Particles, s.positionMode, s.rng)
}

// Config returns a copy of the current parameters.
func (s *Simulation) Config() Config { return s.cfg }

// Grid exposes the neighbor index as of the last step.
func (s *Simulation) Grid() *Grid { return s.grid }

// PositionMode returns the mode last used to place particles.
func (s *Simulation) PositionMode() PositionMode { return s.positionMode }

// MatrixMode returns the mode last used to fill the attraction matrix.
func (s *Simulation) MatrixMode() MatrixMode { return s.matrixMode }

// SetRadius changes the interaction radius, reallocating the grid when the
// lattice size changes.
func (s *Simulation) SetRadius(r float32) error {
	if err := validateRadius(r); err != nil {
		return err
	}
	if err := s.grid.Resize(r, len(s.Particles)); err != nil {
		return err
	}
	s.cfg.RMax = r
	return nil
}

// SetDeltaTime changes the step length.
func (s *Simulation) SetDeltaTime(dt float32) error {
	if err := validateDeltaTime(dt); err != nil {
		return err
	}
	s.cfg.DT = dt
	return nil
}

// SetFrictionHalfLife changes the velocity damping half-life.
func (s *Simulation) SetFrictionHalfLife(h float32) error {
	if err := validateFriction(h); err != nil {
		return err
	}
	s.cfg.FrictionHalfLife = h
	return nil
}

// SetForceFactor changes the global force scale.
func (s *Simulation) SetForceFactor(f float32) error {
	if err := validateForceFactor(f); err != nil {
		return err
	}
	s.cfg.ForceFactor = f
	return nil
}

// SetWorkers sets the number of goroutines used by Step. Zero or less
// means one per available CPU.
func (s *Simulation) SetWorkers(n int) {
	s.cfg.Workers = n
}

// Resize changes population size and type count. Everything is reallocated
// and reseeded with the current modes.
func (s *Simulation) Resize(n, m int) error {
	next := s.cfg
	next.N, next.M = n, m
	if err := next.Validate(); err != nil {
		return err
	}
	if err := s.grid.Resize(next.RMax, n); err != nil {
		return err
	}
	s.cfg = next
	s.populate()
	return nil
}

// Step advances every particle by one DT.
//
// Velocities are computed from positions only, so the velocity pass can run
// across workers while positions stay frozen; positions are advanced in a
// second pass once all velocities are final.
func (s *Simulation) Step() error {
	if err := s.grid.Resize(s.cfg.RMax, len(s.Particles)); err != nil {
		return err
	}
	s.grid.Rebuild(s.Particles)

	friction := float32(math.Pow(0.5, float64(s.cfg.DT/s.cfg.FrictionHalfLife)))
	scale := s.cfg.RMax * s.cfg.ForceFactor
	dt := s.cfg.DT

	size := s.grid.Size()
	row := func(cy int) {
		for cx := 0; cx < size; cx++ {
			block := s.grid.Neighborhood(cx, cy)
			for _, i := range s.grid.CellMembers(cx + cy*size) {
				fx, fy := s.netForce(i, &block)
				p := &s.Particles[i]
				p.VX = p.VX*friction + fx*scale*dt
				p.VY = p.VY*friction + fy*scale*dt
			}
		}
	}

	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 {
		for cy := 0; cy < size; cy++ {
			row(cy)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(workers)
		for cy := 0; cy < size; cy++ {
			g.Go(func() error {
				row(cy)
				return nil
			})
		}
		_ = g.Wait()
	}

	for i := range s.Particles {
		p := &s.Particles[i]
		p.X = Wrap(p.X + p.VX*dt)
		p.Y = Wrap(p.Y + p.VY*dt)
	}
	return nil
}

// netForce sums the unscaled force on particle i from every other particle
// in the given cell block. Coincident particles contribute nothing.
func (s *Simulation) netForce(i int, block *[9]int) (float32, float32) {
	p := &s.Particles[i]
	attraction := s.Matrix[p.Type]
	rMax := s.cfg.RMax

	var fx, fy float32
	for _, c := range block {
		for _, j := range s.grid.CellMembers(c) {
			if j == i {
				continue
			}
			q := &s.Particles[j]
			rx := Wrap(q.X - p.X)
			ry := Wrap(q.Y - p.Y)
			r := float32(math.Sqrt(float64(rx*rx + ry*ry)))
			if r > 0 && r < rMax {
				f := Force(r/rMax, attraction[q.Type])
				fx += rx / r * f
				fy += ry / r * f
			}
		}
	}
	return fx, fy
}
