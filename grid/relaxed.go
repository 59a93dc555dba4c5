package grid

// RelaxedNeighbors returns every neighbor of (i, j, k) that is not
// permanently blocked, regardless of which net currently owns it. Used
// only by congestion.Driver to diagnose why a net's search failed — to
// trace the region actually in the way, not to find a path a net may
// legally use. Never call this when computing a path to commit.
func (g *Grid) RelaxedNeighbors(i, j, k int, conn8 bool) []Neighbor {
	offsets := conn4Offsets
	if conn8 {
		offsets = conn8Offsets
	}
	out := make([]Neighbor, 0, len(offsets)+4)
	for idx, d := range offsets {
		ni, nj := i+d[0], j+d[1]
		if !g.InBounds(ni, nj, k) {
			continue
		}
		if c := g.At(ni, nj, k); c == nil || c.Blocked {
			continue
		}
		kind := Straight
		if conn8 && idx%2 == 1 {
			kind = Diagonal
		}
		out = append(out, Neighbor{I: ni, J: nj, K: k, Kind: kind})
	}
	if g.vias == nil || g.stack == nil {
		return out
	}
	for _, k2 := range g.stack.RoutableIndices() {
		if k2 == k {
			continue
		}
		via, ok := g.vias.BestVia(k, k2)
		if !ok {
			continue
		}
		blocked := false
		for _, bk := range via.BlockedLayers() {
			if c := g.At(i, j, bk); c == nil || c.Blocked {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}
		if c := g.At(i, j, k2); c == nil || c.Blocked {
			continue
		}
		out = append(out, Neighbor{I: i, J: j, K: k2, Kind: ViaStep, ViaCost: via.Cost})
	}
	return out
}

// ResetIteration clears net ownership, usage counts, and blocked flags
// from every cell, while preserving accumulated history cost. Called
// between negotiated-congestion rounds: obstacles and committed routes are
// re-derived from scratch each round, but the cost memory that steers
// nets away from repeatedly-contested cells must persist (spec.md §4.4).
func (g *Grid) ResetIteration() {
	for i := range g.cells {
		g.cells[i].Net = 0
		g.cells[i].UsageCount = 0
		g.cells[i].Blocked = false
	}
}
