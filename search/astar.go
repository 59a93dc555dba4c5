package search

import (
	"container/heap"
	"context"

	"github.com/oriole-pcb/gridroute/grid"
	"github.com/oriole-pcb/gridroute/model"
	"github.com/oriole-pcb/gridroute/rules"
)

// GridCell identifies a search node by its grid coordinates.
type GridCell [3]int

// nodeItem is one entry in the A* open set: a grid cell reached with cost g
// from the start and an admissible-ish estimate h to the goal, ordered by
// f = g + h. Adapted from dijkstra's nodeItem/nodePQ: the same
// lazy-decrease-key discipline (push a fresh, cheaper entry rather than
// mutate one in place; ignore stale pops against a closed set) generalized
// from plain dist to g+h and from a string vertex ID to a (i, j, k) grid
// key.
//
// viaCount and turnCount accumulate along the path to this node and exist
// only to break ties among equal-f candidates (spec.md §4.3: prefer fewer
// vias, then fewer turns, then the lower grid coordinate), so two
// equal-cost frontiers still expand in a fixed order.
type nodeItem struct {
	key       GridCell
	g         float64
	f         float64
	dir       [2]int // step direction that produced this node, for DirectionBias
	viaCount  int
	turnCount int
	index     int // heap bookkeeping, unused by comparisons
}

type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }
func (pq nodePQ) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.viaCount != b.viaCount {
		return a.viaCount < b.viaCount
	}
	if a.turnCount != b.turnCount {
		return a.turnCount < b.turnCount
	}
	return lessGridCell(a.key, b.key)
}
func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// lessGridCell orders cells lexicographically by (i, j, k), the final tie
// break once f, via count, and turn count all match.
func lessGridCell(a, b GridCell) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	if a[1] != b[1] {
		return a[1] < b[1]
	}
	return a[2] < b[2]
}

// isTurn reports whether moving in newDir after having arrived via dir
// constitutes a direction change — i.e. a turn, per spec.md §4.3. A
// start node (dir == {0,0}) never counts as a turn.
func isTurn(dir, newDir [2]int) bool {
	return dir != [2]int{0, 0} && dir != newDir
}

// Params bundles the tunables a single A* search needs beyond the grid
// itself: the net being routed, its effective design rules, the heuristic
// to use, and the node expansion budget before giving up.
type Params struct {
	NetID      int32
	Rules      rules.EffectiveRules
	Heuristic  Heuristic
	NodeBudget int
	UseConn8   bool

	// CongestionAt, when non-nil, is forwarded into the heuristic Context
	// verbatim so CongestionAware/WeightedCongestion can sample it.
	CongestionAt func(x, y float64, layer int) float64
}

// Path is the result of a single two-terminal search: the sequence of grid
// cells visited, start to goal inclusive, and its total accumulated cost.
type Path struct {
	Cells []GridCell
	Cost  float64
}

// cancelCheckInterval is how many node expansions pass between polls of
// ctx.Err(), per spec.md §5.
const cancelCheckInterval = 10000

// Run finds the cheapest path from start to goal on g for the net and
// rules described by p, expanding nodes in f = g + h order. It polls ctx
// for cancellation every cancelCheckInterval expansions, returning
// ctx.Err() immediately when set.
func Run(ctx context.Context, g *grid.Grid, start, goal GridCell, p Params) (Path, error) {
	h := p.Heuristic
	if h == nil {
		h = Default
	}
	budget := p.NodeBudget
	if budget <= 0 {
		budget = 200000
	}

	startX, startY := g.GridToWorld(start[0], start[1])
	goalX, goalY := g.GridToWorld(goal[0], goal[1])
	hctx := Context{
		GoalX: goalX, GoalY: goalY, GoalLayer: goal[2],
		Rules:        p.Rules,
		CongestionAt: p.CongestionAt,
	}

	gScore := map[GridCell]float64{start: 0}
	cameFrom := map[GridCell]GridCell{}
	closed := map[GridCell]bool{}

	pq := make(nodePQ, 0, 256)
	heap.Push(&pq, &nodeItem{key: start, g: 0, f: h.Estimate(startX, startY, start[2], [2]int{0, 0}, hctx)})
	viaCounts := map[GridCell]int{start: 0}
	turnCounts := map[GridCell]int{start: 0}

	expansions := 0
	foundForeignBlock := false

	for pq.Len() > 0 {
		expansions++
		if expansions%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Path{}, err
			}
		}
		if expansions > budget {
			return Path{}, ErrNodeBudgetExceeded
		}

		cur := heap.Pop(&pq).(*nodeItem)
		if closed[cur.key] {
			continue
		}
		if cur.key == goal {
			return reconstruct(cameFrom, start, goal, cur.g), nil
		}
		closed[cur.key] = true

		for _, nb := range g.Neighbors(cur.key[0], cur.key[1], cur.key[2], p.UseConn8, p.NetID) {
			nk := GridCell{nb.I, nb.J, nb.K}
			if closed[nk] {
				continue
			}
			step := stepCost(cur, nb, p.Rules)
			if p.CongestionAt != nil {
				wx, wy := g.GridToWorld(nb.I, nb.J)
				step += p.CongestionAt(wx, wy, nb.K)
			}
			cand := cur.g + step
			if prev, ok := gScore[nk]; ok && cand >= prev {
				continue
			}
			gScore[nk] = cand
			cameFrom[nk] = cur.key
			dir := [2]int{nb.I - cur.key[0], nb.J - cur.key[1]}
			nVias := viaCounts[cur.key]
			if nb.Kind == grid.ViaStep {
				nVias++
			}
			nTurns := turnCounts[cur.key]
			if isTurn(cur.dir, dir) {
				nTurns++
			}
			viaCounts[nk] = nVias
			turnCounts[nk] = nTurns
			wx, wy := g.GridToWorld(nb.I, nb.J)
			est := h.Estimate(wx, wy, nb.K, dir, hctx)
			heap.Push(&pq, &nodeItem{key: nk, g: cand, f: cand + est, dir: dir, viaCount: nVias, turnCount: nTurns})
		}

		if hasForeignNeighbor(g, cur.key, p.UseConn8, p.NetID) {
			foundForeignBlock = true
		}
	}

	if foundForeignBlock {
		return Path{}, ErrBlockedByForeignNet
	}
	return Path{}, ErrUnreachable
}

// stepCost computes the per-step cost of moving from cur to nb: the base
// straight/diagonal/via step cost, plus a turn penalty when the step
// direction changes from the predecessor's, per spec.md §4.3.
func stepCost(cur *nodeItem, nb grid.Neighbor, er rules.EffectiveRules) float64 {
	var base float64
	switch nb.Kind {
	case grid.ViaStep:
		return nb.ViaCost
	case grid.Diagonal:
		base = er.CostDiagonal
	default:
		base = er.CostStraight
	}
	newDir := [2]int{nb.I - cur.key[0], nb.J - cur.key[1]}
	if isTurn(cur.dir, newDir) {
		base += er.CostTurn
	}
	return base * er.CostMultiplier
}

// hasForeignNeighbor reports whether cur has at least one in-plane neighbor
// cell that exists on the grid but is owned by a different net, so a
// dead-end search can be attributed to congestion rather than geometry.
func hasForeignNeighbor(g *grid.Grid, k GridCell, conn8 bool, netID int32) bool {
	offsets := [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	if conn8 {
		offsets = append(offsets, [][2]int{{1, -1}, {1, 1}, {-1, 1}, {-1, -1}}...)
	}
	for _, d := range offsets {
		ni, nj := k[0]+d[0], k[1]+d[1]
		if !g.InBounds(ni, nj, k[2]) {
			continue
		}
		net := g.CellNet(ni, nj, k[2])
		if net != 0 && net != netID {
			return true
		}
	}
	return false
}

func reconstruct(cameFrom map[GridCell]GridCell, start, goal GridCell, cost float64) Path {
	cells := []GridCell{goal}
	for cells[len(cells)-1] != start {
		prev := cameFrom[cells[len(cells)-1]]
		cells = append(cells, prev)
	}
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	return Path{Cells: cells, Cost: cost}
}

// CellsToSegments converts a Path's grid-cell sequence into world-space
// Segments and ViaInstances for a net, merging consecutive same-layer steps
// into runs and emitting a ViaInstance wherever the layer changes.
func CellsToSegments(g *grid.Grid, path Path, netID int, traceWidth float64, viaDrill, viaDiameter float64) ([]model.Segment, []model.ViaInstance) {
	var segments []model.Segment
	var vias []model.ViaInstance
	if len(path.Cells) == 0 {
		return nil, nil
	}
	runStart := path.Cells[0]
	for i := 1; i < len(path.Cells); i++ {
		prev := path.Cells[i-1]
		cur := path.Cells[i]
		if cur[2] != prev[2] {
			x1, y1 := g.GridToWorld(runStart[0], runStart[1])
			x2, y2 := g.GridToWorld(prev[0], prev[1])
			if runStart != prev {
				segments = append(segments, model.Segment{X1: x1, Y1: y1, X2: x2, Y2: y2, Width: traceWidth, Layer: runStart[2], NetID: netID})
			}
			vx, vy := g.GridToWorld(prev[0], prev[1])
			vias = append(vias, model.ViaInstance{X: vx, Y: vy, Drill: viaDrill, Diameter: viaDiameter, LayerFrom: prev[2], LayerTo: cur[2], NetID: netID})
			runStart = cur
		}
	}
	last := path.Cells[len(path.Cells)-1]
	if runStart != last {
		x1, y1 := g.GridToWorld(runStart[0], runStart[1])
		x2, y2 := g.GridToWorld(last[0], last[1])
		segments = append(segments, model.Segment{X1: x1, Y1: y1, X2: x2, Y2: y2, Width: traceWidth, Layer: runStart[2], NetID: netID})
	}
	return segments, vias
}
