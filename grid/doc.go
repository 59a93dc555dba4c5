// Package grid implements the routing grid: a dense (x, y, layer) cell
// array with obstacle stamping, pad-anchor stamping, and via-aware
// neighbor iteration. It is the shared-mutable structure every A* search
// (package search) reads and writes, and the only mutable shared resource
// in the router per spec.md §5.
//
// grid.Grid is adapted from gridgraph.GridGraph: both treat a 2D array of
// cells as a graph with 4- or 8-connectivity and precomputed neighbor
// offsets, but Grid adds a third (layer) dimension, per-cell congestion
// bookkeeping (usage count, history cost), and via-gated cross-layer
// neighbors — the extensions spec.md §4.2 calls for that a flat 2D island
// grid has no use for.
package grid
