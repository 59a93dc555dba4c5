package optimize

import "github.com/oriole-pcb/gridroute/model"

// MinimizeVias removes a via pair that hops down to another layer and
// immediately back up again with no intervening same-layer routing of any
// length, dropping both vias of the pair and any near-zero-length segment
// stub left at the via position. This is the common artifact of A*
// occasionally favoring a one-cell detour through a layer with lower
// present congestion even though the origin layer was clear the whole
// time.
func MinimizeVias(route model.Route, _ Context) model.Route {
	if len(route.Vias) == 0 || len(route.Segments) < 3 {
		return route
	}
	redundant := redundantViaPairs(route)
	if len(redundant) == 0 {
		return route
	}
	segs := make([]model.Segment, 0, len(route.Segments))
	vias := make([]model.ViaInstance, 0, len(route.Vias))
	skipVia := make(map[int]bool, len(redundant)*2)
	for _, pair := range redundant {
		skipVia[pair[0]] = true
		skipVia[pair[1]] = true
	}
	for idx, v := range route.Vias {
		if !skipVia[idx] {
			vias = append(vias, v)
		}
	}
	droppedLayers := make(map[[2]float64]bool, len(redundant))
	for _, pair := range redundant {
		v := route.Vias[pair[0]]
		droppedLayers[[2]float64{v.X, v.Y}] = true
	}
	for _, s := range route.Segments {
		if droppedLayers[[2]float64{s.X1, s.Y1}] && droppedLayers[[2]float64{s.X2, s.Y2}] && s.Length() < mergeEpsilon*1000 {
			continue
		}
		segs = append(segs, s)
	}
	out := route
	out.Segments = segs
	out.Vias = vias
	return out
}

// redundantViaPairs finds consecutive via pairs (by board position) where
// the first via drops from layer L to layer M and the second, at the same
// (x, y), returns from M back to L with no routed segment on M in
// between — a pure round trip worth deleting.
func redundantViaPairs(route model.Route) [][2]int {
	var pairs [][2]int
	for i := 0; i < len(route.Vias); i++ {
		for j := i + 1; j < len(route.Vias); j++ {
			a, b := route.Vias[i], route.Vias[j]
			if absf(a.X-b.X) > mergeEpsilon || absf(a.Y-b.Y) > mergeEpsilon {
				continue
			}
			if !viasFormRoundTrip(a, b) {
				continue
			}
			if midLayerHasRouting(route, a.X, a.Y, a.LayerTo) {
				continue
			}
			pairs = append(pairs, [2]int{i, j})
		}
	}
	return pairs
}

// viasFormRoundTrip reports whether b undoes a: a goes from LayerFrom to
// LayerTo and b returns from that same LayerTo back to a's LayerFrom.
func viasFormRoundTrip(a, b model.ViaInstance) bool {
	return a.LayerTo == b.LayerFrom && b.LayerTo == a.LayerFrom
}

// midLayerHasRouting reports whether any segment of the route actually
// uses the intermediate layer at (x, y) for more than a zero-length stub,
// meaning the via pair is load-bearing rather than redundant.
func midLayerHasRouting(route model.Route, x, y float64, layer int) bool {
	for _, s := range route.Segments {
		if s.Layer != layer {
			continue
		}
		if s.Length() > mergeEpsilon*1000 {
			touchesA := absf(s.X1-x) < mergeEpsilon && absf(s.Y1-y) < mergeEpsilon
			touchesB := absf(s.X2-x) < mergeEpsilon && absf(s.Y2-y) < mergeEpsilon
			if touchesA || touchesB {
				return true
			}
		}
	}
	return false
}
