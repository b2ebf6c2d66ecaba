package sim

import (
	"fmt"
	"math"
)

// Config holds the physical parameters of a run.
type Config struct {
	RMax             float32 // interaction radius in domain units
	FrictionHalfLife float32 // seconds for velocity to halve under damping alone
	ForceFactor      float32 // global force scale
	DT               float32 // seconds per step
	N                int     // population size
	M                int     // number of particle types
	Workers          int     // parallel force workers, 0 = GOMAXPROCS
}

// DefaultConfig returns the parameters the simulation starts with when
// nothing is configured.
func DefaultConfig() Config {
	return Config{
		RMax:             0.04,
		FrictionHalfLife: 0.04,
		ForceFactor:      10,
		DT:               0.02,
		N:                400,
		M:                6,
	}
}

// MaxPopulation bounds N so a mistyped count fails validation instead of
// exhausting memory.
const MaxPopulation = 1 << 22

// Validate reports the first configuration error, if any.
func (c Config) Validate() error {
	if c.N <= 0 || c.N > MaxPopulation {
		return fmt.Errorf("%w: n=%d", ErrInvalidPopulation, c.N)
	}
	if c.M <= 0 {
		return fmt.Errorf("%w: m=%d", ErrInvalidTypes, c.M)
	}
	if err := validateRadius(c.RMax); err != nil {
		return err
	}
	if err := validateDeltaTime(c.DT); err != nil {
		return err
	}
	if err := validateFriction(c.FrictionHalfLife); err != nil {
		return err
	}
	return validateForceFactor(c.ForceFactor)
}

func validateRadius(r float32) error {
	if !(r > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidRadius, r)
	}
	if 2/float64(r) >= MaxGridSize+1 {
		return fmt.Errorf("%w: radius %v, minimum %v", ErrGridTooLarge, r, MinRadius)
	}
	if size := GridSize(r); size < MinGridSize {
		return fmt.Errorf("%w: radius %v gives %d cells per axis", ErrGridTooSmall, r, size)
	}
	return nil
}

func validateDeltaTime(dt float32) error {
	if !(dt >= 0) || math.IsInf(float64(dt), 0) {
		return fmt.Errorf("%w: %v", ErrInvalidDeltaTime, dt)
	}
	return nil
}

func validateFriction(h float32) error {
	if !(h > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidFriction, h)
	}
	return nil
}

func validateForceFactor(f float32) error {
	if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
		return fmt.Errorf("%w: %v", ErrInvalidForce, f)
	}
	return nil
}
