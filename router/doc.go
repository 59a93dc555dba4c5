// Package router is the top-level entry point: Route(ctx, board, opts...)
// ties grid construction, the subgrid escape pre-pass, strategy
// selection, the negotiated-congestion search driver, and the geometric
// optimizer into the single call a caller makes to turn a parsed board
// into a *model.Result.
//
// The shape follows dijkstra.Dijkstra: one exported function taking a
// context, the problem input, and functional options (Option) that fill
// in a Config, returning a result value and an error — rather than a
// multi-step builder a caller has to sequence by hand.
package router
