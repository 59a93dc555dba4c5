package model

import "errors"

// Sentinel errors shared by packages that operate on model types directly.
// Package-specific errors (grid, search, subgrid, layers) live in those
// packages; these cover validation of the data model itself.
var (
	// ErrEmptyBoard indicates a Board with no outline.
	ErrEmptyBoard = errors.New("model: board has no outline")

	// ErrNetNotFound indicates a reference to a net-id absent from the board.
	ErrNetNotFound = errors.New("model: net not found")

	// ErrPadNotFound indicates a (component, pin) reference that does not
	// resolve to any pad on the board.
	ErrPadNotFound = errors.New("model: pad not found")

	// ErrNonSequentialLayers indicates a layer stack whose indices are not
	// 0..N-1 without gaps.
	ErrNonSequentialLayers = errors.New("model: layer indices must be sequential")
)
