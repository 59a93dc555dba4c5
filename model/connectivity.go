package model

// pointKey returns a hashable key for p at the 4-decimal-place tolerance
// Point.Equal uses, so two coordinates that compare Equal always collide
// to the same map key.
func pointKey(p Point) [3]int64 {
	return [3]int64{int64(RoundAwayFromZero(p.X * 1e4)), int64(RoundAwayFromZero(p.Y * 1e4)), int64(p.Layer)}
}

// Connected reports whether segments and vias, read as undirected edges
// joined at shared endpoints or via positions, form a single connected
// component covering every point in required. This realizes spec.md §8's
// invariant 4: "the segment+via graph is connected and covers every pad of
// the net." The traversal itself is a plain breadth-first walk over an
// adjacency map built from segment/via endpoints — the same shape as
// algorithms.BFS, specialized to a point-keyed graph instead of core.Graph
// since route endpoints, not named vertices, are what need to be walked.
func Connected(segments []Segment, vias []ViaInstance, required []Point) bool {
	if len(required) <= 1 {
		return true
	}

	adj := make(map[[3]int64][][3]int64)
	addEdge := func(a, b [3]int64) {
		adj[a] = append(adj[a], b)
		adj[b] = append(adj[b], a)
	}
	for _, s := range segments {
		a := pointKey(Point{X: s.X1, Y: s.Y1, Layer: s.Layer})
		b := pointKey(Point{X: s.X2, Y: s.Y2, Layer: s.Layer})
		addEdge(a, b)
	}
	for _, v := range vias {
		a := pointKey(Point{X: v.X, Y: v.Y, Layer: v.LayerFrom})
		b := pointKey(Point{X: v.X, Y: v.Y, Layer: v.LayerTo})
		addEdge(a, b)
	}

	start := pointKey(required[0])
	visited := map[[3]int64]bool{start: true}
	queue := [][3]int64{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nbr := range adj[cur] {
			if !visited[nbr] {
				visited[nbr] = true
				queue = append(queue, nbr)
			}
		}
	}

	for _, p := range required {
		if !visited[pointKey(p)] {
			return false
		}
	}
	return true
}
