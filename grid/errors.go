package grid

import "errors"

// Sentinel errors for the grid package.
var (
	// ErrEmptyGrid indicates a grid with zero width, height, or layers.
	ErrEmptyGrid = errors.New("grid: width, height, and layer count must all be positive")

	// ErrOutOfBounds indicates a cell coordinate outside the grid extent.
	ErrOutOfBounds = errors.New("grid: coordinate out of bounds")

	// ErrInvariantViolation indicates an internal consistency check failed:
	// usage_count disagreeing with the set of routes actually committed.
	// Realizes spec.md §7's invariant_violation kind. Checked only via
	// CheckInvariants, which only tests call; the congestion driver does
	// not call it.
	ErrInvariantViolation = errors.New("grid: invariant violation")
)
