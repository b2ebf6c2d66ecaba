package sim

import (
	"errors"
	"math/rand"
	"testing"
)

func TestGridSize(t *testing.T) {
	tests := []struct {
		rMax float32
		want int
	}{
		{0.5, 4},
		{0.25, 8},
		{0.6, 3},
		{0.7, 2},
		{1, 2},
	}

	for _, tt := range tests {
		if got := GridSize(tt.rMax); got != tt.want {
			t.Errorf("GridSize(%v) = %d, want %d", tt.rMax, got, tt.want)
		}
	}
}

func TestNewGridRejectsSmallLattice(t *testing.T) {
	if _, err := NewGrid(0.7, 10); !errors.Is(err, ErrGridTooSmall) {
		t.Errorf("NewGrid(0.7) error = %v, want ErrGridTooSmall", err)
	}
	if _, err := NewGrid(0, 10); !errors.Is(err, ErrInvalidRadius) {
		t.Errorf("NewGrid(0) error = %v, want ErrInvalidRadius", err)
	}
	if _, err := NewGrid(0.6, 10); err != nil {
		t.Errorf("NewGrid(0.6) unexpected error: %v", err)
	}
}

func randomParticles(rng *rand.Rand, n, m int) []Particle {
	particles := make([]Particle, n)
	for i := range particles {
		particles[i] = Particle{
			Type: rng.Intn(m),
			X:    rng.Float32()*2 - 1,
			Y:    rng.Float32()*2 - 1,
		}
	}
	return particles
}

func TestGridRebuildPartition(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	particles := randomParticles(rng, 1000, 3)

	g, err := NewGrid(0.1, len(particles))
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	g.Rebuild(particles)

	offsets := g.Offsets()
	cells := g.Size() * g.Size()
	if len(offsets) != cells+1 {
		t.Fatalf("offset table has %d entries, want %d", len(offsets), cells+1)
	}
	if offsets[0] != 0 || offsets[cells] != len(particles) {
		t.Fatalf("offsets span [%d, %d], want [0, %d]", offsets[0], offsets[cells], len(particles))
	}

	seen := make([]int, len(particles))
	for c := 0; c < cells; c++ {
		if offsets[c] > offsets[c+1] {
			t.Fatalf("offsets not monotonic at cell %d", c)
		}
		for _, i := range g.CellMembers(c) {
			seen[i]++
			cx, cy := g.Cell(particles[i].X, particles[i].Y)
			if cx+cy*g.Size() != c {
				t.Errorf("particle %d listed in cell %d but belongs to %d", i, c, cx+cy*g.Size())
			}
		}
	}
	for i, n := range seen {
		if n != 1 {
			t.Errorf("particle %d appears %d times", i, n)
		}
	}
}

func TestGridRebuildIsStable(t *testing.T) {
	particles := []Particle{
		{X: 0.1, Y: 0.1},
		{X: -0.9, Y: -0.9},
		{X: 0.11, Y: 0.12},
		{X: 0.12, Y: 0.11},
	}
	g, err := NewGrid(0.5, len(particles))
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	g.Rebuild(particles)

	cx, cy := g.Cell(0.1, 0.1)
	got := g.CellMembers(cx + cy*g.Size())
	want := []int{0, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("cell members = %v, want %v", got, want)
	}
	for k := range want {
		if got[k] != want[k] {
			t.Errorf("cell members = %v, want %v", got, want)
			break
		}
	}
}

func TestGridCellAtSeam(t *testing.T) {
	g, err := NewGrid(0.1, 0)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	right, _ := g.Cell(0.999, 0)
	left, _ := g.Cell(-0.999, 0)
	if right != g.Size()-1 || left != 0 {
		t.Fatalf("seam cells = %d, %d, want %d, 0", right, left, g.Size()-1)
	}

	block := g.Neighborhood(right, 0)
	found := false
	for _, c := range block {
		if c == left {
			found = true
		}
	}
	if !found {
		t.Errorf("neighborhood of cell %d does not wrap to cell %d: %v", right, left, block)
	}
}

func TestGridNeighborhoodWraps(t *testing.T) {
	g, err := NewGrid(0.5, 0)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	// size 4: corner (0, 0) sees columns and rows {3, 0, 1}
	want := [9]int{
		3 + 3*4, 0 + 3*4, 1 + 3*4,
		3 + 0*4, 0 + 0*4, 1 + 0*4,
		3 + 1*4, 0 + 1*4, 1 + 1*4,
	}
	if got := g.Neighborhood(0, 0); got != want {
		t.Errorf("Neighborhood(0, 0) = %v, want %v", got, want)
	}
}

func TestGridNeighborhoodMinimalLattice(t *testing.T) {
	g, err := NewGrid(0.6, 0)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	if g.Size() != 3 {
		t.Fatalf("size = %d, want 3", g.Size())
	}
	for cy := 0; cy < 3; cy++ {
		for cx := 0; cx < 3; cx++ {
			seen := map[int]bool{}
			for _, c := range g.Neighborhood(cx, cy) {
				if seen[c] {
					t.Fatalf("cell %d visited twice around (%d, %d)", c, cx, cy)
				}
				seen[c] = true
			}
			if len(seen) != 9 {
				t.Errorf("neighborhood of (%d, %d) covers %d cells, want 9", cx, cy, len(seen))
			}
		}
	}
}

func TestGridResizeKeepsBuffersOnError(t *testing.T) {
	g, err := NewGrid(0.1, 5)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	if err := g.Resize(0.9, 5); !errors.Is(err, ErrGridTooSmall) {
		t.Fatalf("Resize(0.9) error = %v, want ErrGridTooSmall", err)
	}
	if g.Size() != 20 {
		t.Errorf("size changed to %d after failed resize", g.Size())
	}
}
