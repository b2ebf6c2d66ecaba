package sim

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestFillMatrixSnakes(t *testing.T) {
	const m = 4
	matrix := make([][]float32, m)
	for i := range matrix {
		matrix[i] = make([]float32, m)
		for j := range matrix[i] {
			matrix[i][j] = 9 // must be overwritten
		}
	}
	FillMatrix(matrix, MatrixSnakes, rand.New(rand.NewSource(1)))

	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			var want float32
			switch j {
			case i:
				want = 1
			case (i + 1) % m:
				want = 0.5
			}
			if matrix[i][j] != want {
				t.Errorf("matrix[%d][%d] = %v, want %v", i, j, matrix[i][j], want)
			}
		}
	}
}

func TestFillMatrixRandomRange(t *testing.T) {
	matrix := make([][]float32, 8)
	for i := range matrix {
		matrix[i] = make([]float32, 8)
	}
	FillMatrix(matrix, MatrixRandom, rand.New(rand.NewSource(3)))

	distinct := map[float32]bool{}
	for i := range matrix {
		for j := range matrix[i] {
			v := matrix[i][j]
			if v < -1 || v > 1 {
				t.Fatalf("matrix[%d][%d] = %v out of [-1, 1]", i, j, v)
			}
			distinct[v] = true
		}
	}
	if len(distinct) < 32 {
		t.Errorf("only %d distinct coefficients in a random 8x8 matrix", len(distinct))
	}
}

func TestPlacePositionsModes(t *testing.T) {
	tests := []struct {
		mode  PositionMode
		check func(p Particle) bool
	}{
		{PositionUniform, func(p Particle) bool { return true }},
		{PositionCentered, func(p Particle) bool {
			return math.Hypot(float64(p.X), float64(p.Y)) <= 0.3+1e-6
		}},
		{PositionHorizontal, func(p Particle) bool { return math.Abs(float64(p.Y)) <= 0.1+1e-6 }},
		{PositionSpiral, func(p Particle) bool {
			r := math.Hypot(float64(p.X), float64(p.Y))
			return r >= 0.1-1e-6 && r <= 0.1+0.2*math.Pi+1e-6
		}},
		{PositionNoise, func(p Particle) bool { return true }},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			particles := make([]Particle, 500)
			for i := range particles {
				particles[i].VX = 0.25
				particles[i].X = 5 // out of range sentinel
			}
			PlacePositions(particles, tt.mode, rand.New(rand.NewSource(11)))

			for i, p := range particles {
				if p.X < -1 || p.X >= 1 || p.Y < -1 || p.Y >= 1 {
					t.Fatalf("particle %d outside domain: %+v", i, p)
				}
				if !tt.check(p) {
					t.Fatalf("particle %d violates %s layout: %+v", i, tt.mode, p)
				}
				if p.VX != 0.25 {
					t.Fatalf("particle %d velocity touched: %+v", i, p)
				}
			}
		})
	}
}

func TestPlacePositionsDeterministic(t *testing.T) {
	for mode := PositionUniform; int(mode) <= NumPositionModes; mode++ {
		a := make([]Particle, 100)
		b := make([]Particle, 100)
		PlacePositions(a, mode, rand.New(rand.NewSource(5)))
		PlacePositions(b, mode, rand.New(rand.NewSource(5)))
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("%s: particle %d differs for equal seeds", mode, i)
			}
		}
	}
}

func TestParseModes(t *testing.T) {
	positions := []struct {
		in   string
		want PositionMode
	}{
		{"uniform", PositionUniform},
		{"2", PositionCentered},
		{" Horizontal ", PositionHorizontal},
		{"spiral", PositionSpiral},
		{"5", PositionNoise},
	}
	for _, tt := range positions {
		got, err := ParsePositionMode(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParsePositionMode(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}

	for _, in := range []string{"0", "6", "circle", ""} {
		if _, err := ParsePositionMode(in); !errors.Is(err, ErrUnknownMode) {
			t.Errorf("ParsePositionMode(%q) error = %v, want ErrUnknownMode", in, err)
		}
	}

	if got, err := ParseMatrixMode("snakes"); err != nil || got != MatrixSnakes {
		t.Errorf("ParseMatrixMode(snakes) = %v, %v", got, err)
	}
	if got, err := ParseMatrixMode("1"); err != nil || got != MatrixRandom {
		t.Errorf("ParseMatrixMode(1) = %v, %v", got, err)
	}
	if _, err := ParseMatrixMode("3"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("ParseMatrixMode(3) error = %v, want ErrUnknownMode", err)
	}
}

func TestReinitializeRejectsUnknownMode(t *testing.T) {
	s := newTestSim(t, DefaultConfig())
	before := append([]Particle(nil), s.Particles...)
	first := s.Matrix[0][0]

	if err := s.InitPositions(PositionMode(42)); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("InitPositions(42) error = %v", err)
	}
	if err := s.RandomizeMatrix(MatrixMode(-1)); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("RandomizeMatrix(-1) error = %v", err)
	}
	for i := range before {
		if s.Particles[i] != before[i] {
			t.Fatalf("particle %d changed by rejected reinitialization", i)
		}
	}
	if s.Matrix[0][0] != first || s.PositionMode() != PositionUniform || s.MatrixMode() != MatrixRandom {
		t.Errorf("state changed by rejected reinitialization")
	}
}

func TestReinitializeBetweenSteps(t *testing.T) {
	s := newTestSim(t, DefaultConfig())
	for i := 0; i < 3; i++ {
		if err := s.Step(); err != nil {
			t.Fatalf("Step failed: %v", err)
		}
	}
	if err := s.InitPositions(PositionCentered); err != nil {
		t.Fatalf("InitPositions failed: %v", err)
	}
	if err := s.RandomizeMatrix(MatrixSnakes); err != nil {
		t.Fatalf("RandomizeMatrix failed: %v", err)
	}
	for i, p := range s.Particles {
		if math.Hypot(float64(p.X), float64(p.Y)) > 0.3+1e-6 {
			t.Fatalf("particle %d not recentered: %+v", i, p)
		}
	}
	if s.PositionMode() != PositionCentered || s.MatrixMode() != MatrixSnakes {
		t.Errorf("modes not recorded: %v, %v", s.PositionMode(), s.MatrixMode())
	}
	if err := s.Step(); err != nil {
		t.Fatalf("Step after reinitialization failed: %v", err)
	}
}
