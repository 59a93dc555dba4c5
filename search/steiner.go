package search

import (
	"context"

	"github.com/oriole-pcb/gridroute/grid"
	"github.com/oriole-pcb/gridroute/model"
)

// NetResult is the outcome of routing one multi-pin net: every path found
// and every pin that could not be reached (so callers can mark the grid
// and report partial coverage).
type NetResult struct {
	Paths     []Path
	Unreached []model.Point
}

// RouteNet routes a multi-pin net by growing a virtual source set one pad
// at a time, always searching from the nearest cell already in the set to
// the nearest unconnected pin. This is prim_kruskal.Prim's MST growth
// adapted from "extend a spanning tree over a graph's edges, cheapest
// frontier edge first" to "extend a tree of committed traces over the
// grid, cheapest A* search to the nearest unconnected pin first": the
// first pin seeds the set, and each subsequent round picks whichever
// remaining pin has the shortest Manhattan distance to any cell already
// claimed, then runs a full A* search to it (rather than a single graph
// edge) and adds every cell on the resulting path to the set.
//
// A pin that already lies in the set is not skipped: it is searched for
// like any other pin. A pin A* cannot reach is recorded in Unreached and routing
// continues with the rest, matching spec.md §4.1's partial-success model
// for multi-pin nets.
func RouteNet(ctx context.Context, g *grid.Grid, pins []GridCell, p Params) NetResult {
	var result NetResult
	if len(pins) == 0 {
		return result
	}

	inSet := map[GridCell]bool{pins[0]: true}
	remaining := make([]GridCell, len(pins)-1)
	copy(remaining, pins[1:])

	for len(remaining) > 0 {
		if err := ctx.Err(); err != nil {
			for _, r := range remaining {
				result.Unreached = append(result.Unreached, cellPoint(g, r))
			}
			return result
		}

		idx, target, source := nearestFrontier(remaining, inSet)
		path, err := Run(ctx, g, source, target, p)
		if err != nil {
			result.Unreached = append(result.Unreached, cellPoint(g, target))
			remaining = append(remaining[:idx], remaining[idx+1:]...)
			continue
		}
		result.Paths = append(result.Paths, path)
		for _, c := range path.Cells {
			inSet[c] = true
		}
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return result
}

// nearestFrontier picks, from remaining, the pin with the smallest
// Manhattan distance to any cell already in inSet, and returns its index,
// the pin itself (the search target), and the closest in-set cell (the
// search source). Grounded on Prim's "smallest candidate edge out of the
// frontier" selection, generalized from one edge weight per candidate to a
// cheapest-of-many-in-set-cells distance per candidate pin.
func nearestFrontier(remaining []GridCell, inSet map[GridCell]bool) (idx int, target, source GridCell) {
	bestDist := -1
	for i, r := range remaining {
		for s := range inSet {
			d := manhattan3(r, s)
			if bestDist == -1 || d < bestDist {
				bestDist = d
				idx = i
				target = r
				source = s
			}
		}
	}
	return idx, target, source
}

func manhattan3(a, b GridCell) int {
	d := a[0] - b[0]
	if d < 0 {
		d = -d
	}
	d2 := a[1] - b[1]
	if d2 < 0 {
		d2 = -d2
	}
	d3 := a[2] - b[2]
	if d3 < 0 {
		d3 = -d3
	}
	return d + d2 + d3
}

func cellPoint(g *grid.Grid, c GridCell) model.Point {
	x, y := g.GridToWorld(c[0], c[1])
	return model.Point{X: x, Y: y, Layer: c[2]}
}
