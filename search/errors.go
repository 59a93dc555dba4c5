package search

import "errors"

// ErrUnreachable is returned when the priority queue empties before the
// goal is popped: no legal path exists on the current grid.
var ErrUnreachable = errors.New("search: goal unreachable")

// ErrBlockedByForeignNet is returned when the priority queue empties
// before the goal is popped and at least one expanded cell borders a cell
// owned by another net, distinguishing a failure that involves congestion
// from a purely geometric dead end.
var ErrBlockedByForeignNet = errors.New("search: path blocked by foreign net")

// ErrNodeBudgetExceeded is returned when the search expands more than the
// configured node budget without reaching the goal.
var ErrNodeBudgetExceeded = errors.New("search: node expansion budget exceeded")
