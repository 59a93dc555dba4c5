package congestion

import (
	"github.com/oriole-pcb/gridroute/grid"
	"github.com/oriole-pcb/gridroute/search"
)

// bfsFrame records how a cell was reached during diagnoseBlockage's walk.
type bfsFrame struct {
	parent search.GridCell
}

// diagnoseBlockage runs a plain breadth-first search from start to goal
// over g.RelaxedNeighbors — ignoring which net owns each cell, respecting
// only permanent blockage — to find the region actually standing in a
// failed net's way. Grounded on bfs's queue-of-frontier-nodes traversal,
// adapted from a general graph walk to a fixed 6-connected (or
// 10-connected with diagonals/vias) grid walk. Returns nil if no path
// exists even ignoring ownership, meaning the failure is geometric, not
// congestion.
func diagnoseBlockage(g *grid.Grid, start, goal search.GridCell, conn8 bool) []search.GridCell {
	visited := map[search.GridCell]bfsFrame{start: {parent: start}}
	queue := []search.GridCell{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == goal {
			return reconstructPath(visited, start, goal)
		}
		for _, nb := range g.RelaxedNeighbors(cur[0], cur[1], cur[2], conn8) {
			nk := search.GridCell{nb.I, nb.J, nb.K}
			if _, seen := visited[nk]; seen {
				continue
			}
			visited[nk] = bfsFrame{parent: cur}
			queue = append(queue, nk)
		}
	}
	return nil
}

func reconstructPath(visited map[search.GridCell]bfsFrame, start, goal search.GridCell) []search.GridCell {
	path := []search.GridCell{goal}
	cur := goal
	for cur != start {
		cur = visited[cur].parent
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
