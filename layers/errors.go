package layers

import "errors"

// Sentinel errors for the layers package.
var (
	// ErrNonSequentialLayers indicates the supplied layer definitions do not
	// form a gap-free 0..N-1 index sequence.
	ErrNonSequentialLayers = errors.New("layers: layer indices must be sequential starting at 0")

	// ErrNoLayers indicates an empty layer stack was requested.
	ErrNoLayers = errors.New("layers: stack must contain at least one layer")

	// ErrNoViaForTransition indicates no via definition (under current
	// allow-flags) spans the requested layer transition. This realizes
	// spec.md §7's via_rule_violation error kind.
	ErrNoViaForTransition = errors.New("layers: no via spans the requested layer transition")
)
