package sim

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/aquilax/go-perlin"
)

// PositionMode selects how particles are placed on (re)initialization.
type PositionMode int

const (
	PositionUniform PositionMode = iota + 1
	PositionCentered
	PositionHorizontal
	PositionSpiral
	PositionNoise
)

// NumPositionModes is the highest valid PositionMode.
const NumPositionModes = int(PositionNoise)

var positionNames = map[PositionMode]string{
	PositionUniform:    "uniform",
	PositionCentered:   "centered",
	PositionHorizontal: "horizontal",
	PositionSpiral:     "spiral",
	PositionNoise:      "noise",
}

func (m PositionMode) String() string {
	if name, ok := positionNames[m]; ok {
		return name
	}
	return "PositionMode(" + strconv.Itoa(int(m)) + ")"
}

// Valid reports whether m names a known mode.
func (m PositionMode) Valid() bool {
	_, ok := positionNames[m]
	return ok
}

// ParsePositionMode accepts a mode name or its number.
func ParsePositionMode(s string) (PositionMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if m := PositionMode(n); m.Valid() {
			return m, nil
		}
	}
	for m, name := range positionNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: position mode %q", ErrUnknownMode, s)
}

// MatrixMode selects how the attraction matrix is filled.
type MatrixMode int

const (
	MatrixRandom MatrixMode = iota + 1
	MatrixSnakes
)

// NumMatrixModes is the highest valid MatrixMode.
const NumMatrixModes = int(MatrixSnakes)

var matrixNames = map[MatrixMode]string{
	MatrixRandom: "random",
	MatrixSnakes: "snakes",
}

func (m MatrixMode) String() string {
	if name, ok := matrixNames[m]; ok {
		return name
	}
	return "MatrixMode(" + strconv.Itoa(int(m)) + ")"
}

// Valid reports whether m names a known mode.
func (m MatrixMode) Valid() bool {
	_, ok := matrixNames[m]
	return ok
}

// ParseMatrixMode accepts a mode name or its number.
func ParseMatrixMode(s string) (MatrixMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if m := MatrixMode(n); m.Valid() {
			return m, nil
		}
	}
	for m, name := range matrixNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: matrix mode %q", ErrUnknownMode, s)
}

// InitPositions overwrites every particle position. Velocities are kept.
func (s *Simulation) InitPositions(mode PositionMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: position mode %d", ErrUnknownMode, int(mode))
	}
	s.positionMode = mode
	PlacePositions(s.Particles, mode, s.rng)
	return nil
}

// RandomizeMatrix refills the whole attraction matrix.
func (s *Simulation) RandomizeMatrix(mode MatrixMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: matrix mode %d", ErrUnknownMode, int(mode))
	}
	s.matrixMode = mode
	FillMatrix(s.Matrix, mode, s.rng)
	return nil
}

// PlacePositions sets X and Y of every particle according to mode.
// Unknown modes leave the particles untouched.
func PlacePositions(particles []Particle, mode PositionMode, rng *rand.Rand) {
	switch mode {
	case PositionUniform:
		for i := range particles {
			particles[i].X = rng.Float32()*2 - 1
			particles[i].Y = rng.Float32()*2 - 1
		}
	case PositionCentered:
		for i := range particles {
			angle := rng.Float64() * 2 * math.Pi
			radius := rng.Float64() * rng.Float64() * 0.3
			particles[i].X = float32(math.Cos(angle) * radius)
			particles[i].Y = float32(math.Sin(angle) * radius)
		}
	case PositionHorizontal:
		for i := range particles {
			particles[i].X = rng.Float32()*2 - 1
			particles[i].Y = (rng.Float32() - 0.5) * 0.2 * rng.Float32()
		}
	case PositionSpiral:
		for i := range particles {
			angle := rng.Float64() * 2 * math.Pi
			radius := 0.1 + angle*0.1
			particles[i].X = float32(math.Cos(angle) * radius)
			particles[i].Y = float32(math.Sin(angle) * radius)
		}
	case PositionNoise:
		placeNoise(particles, rng)
	}
}

const (
	noiseScale    = 2.5
	noiseAttempts = 32
)

// placeNoise rejection-samples positions so that density follows the
// positive lobes of a Perlin field seeded from rng.
func placeNoise(particles []Particle, rng *rand.Rand) {
	field := perlin.NewPerlin(2, 2, 3, rng.Int63())
	for i := range particles {
		var x, y float64
		for attempt := 0; attempt < noiseAttempts; attempt++ {
			x = rng.Float64()*2 - 1
			y = rng.Float64()*2 - 1
			if rng.Float64() < field.Noise2D(x*noiseScale, y*noiseScale)*2 {
				break
			}
		}
		particles[i].X = Wrap(float32(x))
		particles[i].Y = Wrap(float32(y))
	}
}

// FillMatrix overwrites every coefficient according to mode.
// Unknown modes leave the matrix untouched.
func FillMatrix(matrix [][]float32, mode MatrixMode, rng *rand.Rand) {
	m := len(matrix)
	switch mode {
	case MatrixRandom:
		for i := range matrix {
			for j := range matrix[i] {
				matrix[i][j] = rng.Float32()*2 - 1
			}
		}
	case MatrixSnakes:
		for i := range matrix {
			for j := range matrix[i] {
				var v float32
				if i == j {
					v = 1
				}
				if j == (i+1)%m {
					v = 0.5
				}
				matrix[i][j] = v
			}
		}
	}
}
