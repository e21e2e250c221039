package growth

import "errors"

var (
	// ErrInvalidSize indicates a width or height below 1.
	ErrInvalidSize = errors.New("growth: width and height must be at least 1")
	// ErrNoSeeds indicates an empty seed list.
	ErrNoSeeds = errors.New("growth: at least one seed point is required")
	// ErrInvalidDelta indicates a colour delta below 1.
	ErrInvalidDelta = errors.New("growth: delta must be at least 1")
	// ErrSeedOutOfBounds indicates a seed outside [0,width) x [0,height).
	ErrSeedOutOfBounds = errors.New("growth: seed outside grid")
	// ErrInvalidKind indicates an unknown queue policy or a bad shuffle chance.
	ErrInvalidKind = errors.New("growth: invalid queue kind")
)
