package grid

// StepKind classifies a single A* expansion step.
type StepKind int

const (
	// Straight is a single orthogonal step (N/E/S/W).
	Straight StepKind = iota
	// Diagonal is a single 45-degree step.
	Diagonal
	// ViaStep changes layer at the same (i, j) through a via.
	ViaStep
)

// Neighbor describes one candidate expansion target from a cell.
type Neighbor struct {
	I, J, K int
	Kind    StepKind
	ViaCost float64 // populated only for Kind == ViaStep
}

// conn4Offsets and conn8Offsets are the in-plane neighbor offsets, ordered
// the same way gridgraph orders them (Conn4: N, E, S, W; Conn8 walks
// clockwise from N: N, NE, E, SE, S, SW, W, NW): deterministic iteration
// order feeds directly into A*'s
// deterministic tie-breaking (spec.md §4.3).
var conn4Offsets = [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
var conn8Offsets = [][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}

// InPlaneNeighbors returns the in-plane neighbor offsets for (i, j, k):
// 4- or 8-connected depending on conn8, filtered to cells inside the grid
// and not permanently blocked or owned by a foreign net.
func (g *Grid) InPlaneNeighbors(i, j, k int, conn8 bool, netID int32) []Neighbor {
	offsets := conn4Offsets
	if conn8 {
		offsets = conn8Offsets
	}
	out := make([]Neighbor, 0, len(offsets))
	for idx, d := range offsets {
		ni, nj := i+d[0], j+d[1]
		if !g.InBounds(ni, nj, k) {
			continue
		}
		if g.IsBlockedForNet(ni, nj, k, netID) {
			continue
		}
		kind := Straight
		if conn8 && idx%2 == 1 {
			kind = Diagonal
		}
		out = append(out, Neighbor{I: ni, J: nj, K: k, Kind: kind})
	}
	return out
}

// CrossLayerNeighbors returns the via-gated cross-layer neighbors from
// (i, j, k): one candidate per other routable layer reachable by the
// cheapest via spanning the transition, provided every layer the via's
// barrel passes through is clear for this net at (i, j) — spec.md §4.2's
// cross-layer neighbor rule.
func (g *Grid) CrossLayerNeighbors(i, j, k int, netID int32) []Neighbor {
	if g.vias == nil || g.stack == nil {
		return nil
	}
	var out []Neighbor
	for _, k2 := range g.stack.RoutableIndices() {
		if k2 == k {
			continue
		}
		via, ok := g.vias.BestVia(k, k2)
		if !ok {
			continue
		}
		if !g.viaBarrelClear(i, j, via.BlockedLayers(), netID) {
			continue
		}
		if !g.InBounds(i, j, k2) || g.IsBlockedForNet(i, j, k2, netID) {
			continue
		}
		out = append(out, Neighbor{I: i, J: j, K: k2, Kind: ViaStep, ViaCost: via.Cost})
	}
	return out
}

// viaBarrelClear reports whether every blocked (pass-through) layer of a
// candidate via is either empty, owned by netID, or a pad of netID at
// (i, j).
func (g *Grid) viaBarrelClear(i, j int, blockedLayers []int, netID int32) bool {
	for _, k := range blockedLayers {
		c := g.At(i, j, k)
		if c == nil {
			return false
		}
		if c.Blocked {
			return false
		}
		if c.Net != 0 && c.Net != netID {
			return false
		}
	}
	return true
}

// Neighbors returns every legal expansion target from (i, j, k) for netID:
// in-plane neighbors (conn8 when useDiagonals) plus via-gated cross-layer
// neighbors.
func (g *Grid) Neighbors(i, j, k int, useDiagonals bool, netID int32) []Neighbor {
	out := g.InPlaneNeighbors(i, j, k, useDiagonals, netID)
	out = append(out, g.CrossLayerNeighbors(i, j, k, netID)...)
	return out
}
