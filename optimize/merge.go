package optimize

import "github.com/oriole-pcb/gridroute/model"

const mergeEpsilon = 1e-6

// MergeCollinear fuses consecutive same-layer segments that share an
// endpoint and point the same direction into a single longer segment,
// removing the redundant waypoint A* leaves behind whenever a grid-aligned
// path happens to continue straight across a cell boundary.
func MergeCollinear(route model.Route, _ Context) model.Route {
	if len(route.Segments) < 2 {
		return route
	}
	merged := make([]model.Segment, 0, len(route.Segments))
	cur := route.Segments[0]
	for _, next := range route.Segments[1:] {
		if collinearChain(cur, next) {
			cur = model.Segment{
				X1: cur.X1, Y1: cur.Y1, X2: next.X2, Y2: next.Y2,
				Width: cur.Width, Layer: cur.Layer, NetID: cur.NetID,
			}
			continue
		}
		merged = append(merged, cur)
		cur = next
	}
	merged = append(merged, cur)
	out := route
	out.Segments = merged
	return out
}

// collinearChain reports whether b continues a in a straight line: b
// starts where a ends, on the same layer, with the same direction vector.
func collinearChain(a, b model.Segment) bool {
	if a.Layer != b.Layer {
		return false
	}
	if absf(a.X2-b.X1) > mergeEpsilon || absf(a.Y2-b.Y1) > mergeEpsilon {
		return false
	}
	adx, ady := a.Direction()
	bdx, bdy := b.Direction()
	return absf(adx-bdx) <= mergeEpsilon && absf(ady-bdy) <= mergeEpsilon
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
