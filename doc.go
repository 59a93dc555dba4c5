// Package gridroute is a grid-based, multi-layer PCB autorouter: it turns
// a parsed board (outline, components, nets, design rules) into copper
// traces and vias for every net.
//
// The router is organized as a short pipeline, one package per stage:
//
//	model/      — shared data types: Point, Pad, Segment, Via, Route, Board
//	geom/       — 2D vector/rectangle primitives (rotation, clearance)
//	layers/     — copper layer stacks and via catalogs
//	rules/      — design rules and per-net-class overrides
//	grid/       — the dense (x, y, layer) cell array routes are searched over
//	search/     — A* path search and per-net Steiner-style fan-out
//	congestion/ — negotiated-congestion ripup/retry across all nets
//	subgrid/    — fine-pitch pad-escape pre-pass for off-grid pads
//	strategy/   — per-net routing-strategy selection
//	optimize/   — post-route geometric cleanup and length tuning
//
// router.Route is the single entry point:
//
//	result, err := router.Route(ctx, board)
//
// Everything upstream of router is usable on its own — grid and search in
// particular have no dependency on the congestion driver — but router.Route
// is the supported way to turn a Board into a routed Result.
package gridroute
