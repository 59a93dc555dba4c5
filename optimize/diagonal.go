package optimize

import "github.com/oriole-pcb/gridroute/model"

// ConvertCorners replaces a right-angle corner (a horizontal-then-vertical
// or vertical-then-horizontal segment pair on the same layer) with a pair
// of 45-degree segments that cut the corner, shortening total trace length
// whenever both legs are longer than twice the chamfer size.
func ConvertCorners(route model.Route, ctx Context) model.Route {
	segs := route.Segments
	if len(segs) < 2 {
		return route
	}
	chamfer := cornerChamferSize(ctx)
	out := make([]model.Segment, 0, len(segs)+2)
	i := 0
	for i < len(segs)-1 {
		a, b := segs[i], segs[i+1]
		na, nc, nb, ok := chamferCorner(a, b, chamfer)
		if !ok {
			out = append(out, a)
			i++
			continue
		}
		out = append(out, na, nc, nb)
		i += 2
	}
	if i < len(segs) {
		out = append(out, segs[i])
	}
	result := route
	result.Segments = out
	return result
}

// cornerChamferSize picks how far back from the corner vertex each leg is
// cut: twice the net's trace width, capped at 0.2mm (0.2mm when no trace
// width is set).
func cornerChamferSize(ctx Context) float64 {
	const defaultChamfer = 0.2
	if ctx.Rules.TraceWidth > 0 {
		c := ctx.Rules.TraceWidth * 2
		if c < defaultChamfer {
			return c
		}
	}
	return defaultChamfer
}

// chamferCorner attempts to cut the right-angle corner between a and b
// (which must share an endpoint, lie on the same layer, and be mutually
// perpendicular) with a 45-degree diagonal of length chamfer*sqrt2. It
// returns the three replacement segments (shortened a, the diagonal, and
// shortened b) and ok=false when the corner isn't a right angle or either
// leg is too short to shorten.
func chamferCorner(a, b model.Segment, chamfer float64) (na, nc, nb model.Segment, ok bool) {
	if a.Layer != b.Layer {
		return a, model.Segment{}, b, false
	}
	if absf(a.X2-b.X1) > mergeEpsilon || absf(a.Y2-b.Y1) > mergeEpsilon {
		return a, model.Segment{}, b, false
	}
	adx, ady := a.Direction()
	bdx, bdy := b.Direction()
	if absf(adx*bdx+ady*bdy) > angleTolerance {
		return a, model.Segment{}, b, false // not perpendicular
	}
	if a.Length() <= chamfer*2 || b.Length() <= chamfer*2 {
		return a, model.Segment{}, b, false
	}
	cx, cy := a.X2, a.Y2
	p1x, p1y := cx-adx*chamfer, cy-ady*chamfer
	p2x, p2y := cx+bdx*chamfer, cy+bdy*chamfer
	na = model.Segment{X1: a.X1, Y1: a.Y1, X2: p1x, Y2: p1y, Width: a.Width, Layer: a.Layer, NetID: a.NetID}
	nc = model.Segment{X1: p1x, Y1: p1y, X2: p2x, Y2: p2y, Width: a.Width, Layer: a.Layer, NetID: a.NetID}
	nb = model.Segment{X1: p2x, Y1: p2y, X2: b.X2, Y2: b.Y2, Width: b.Width, Layer: b.Layer, NetID: b.NetID}
	return na, nc, nb, true
}
