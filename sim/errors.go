package sim

import "errors"

// Configuration errors. Operations return them wrapped and leave the
// simulation unchanged.
var (
	ErrInvalidPopulation = errors.New("particle count out of range")
	ErrInvalidTypes      = errors.New("type count must be positive")
	ErrInvalidRadius     = errors.New("interaction radius must be positive")
	ErrInvalidDeltaTime  = errors.New("delta time must be non-negative")
	ErrInvalidFriction   = errors.New("friction half-life must be positive")
	ErrInvalidForce      = errors.New("force factor must be finite")
	ErrGridTooSmall      = errors.New("interaction radius too large for a 3x3 neighbor grid")
	ErrGridTooLarge      = errors.New("interaction radius too small for the neighbor grid")
	ErrUnknownMode       = errors.New("unknown mode")
)
