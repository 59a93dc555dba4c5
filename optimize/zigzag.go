package optimize

import "github.com/oriole-pcb/gridroute/model"

// EliminateZigzag collapses a "staircase" of alternating short horizontal
// and vertical segments — the signature of an A* path that took
// individual grid steps in a straight-line diagonal region — into a
// single 45-degree segment spanning the same two endpoints, whenever that
// chord doesn't change the segment count's parity in a way that loses
// information (a chain must be at least four segments long before
// collapsing pays for itself over a plain corner).
func EliminateZigzag(route model.Route, _ Context) model.Route {
	segs := route.Segments
	if len(segs) < 4 {
		return route
	}
	out := make([]model.Segment, 0, len(segs))
	i := 0
	for i < len(segs) {
		run := staircaseRun(segs, i)
		if run <= i+1 {
			out = append(out, segs[i])
			i++
			continue
		}
		first, last := segs[i], segs[run-1]
		chord := model.Segment{
			X1: first.X1, Y1: first.Y1, X2: last.X2, Y2: last.Y2,
			Width: first.Width, Layer: first.Layer, NetID: first.NetID,
		}
		if !chord.Is45() {
			out = append(out, segs[i])
			i++
			continue
		}
		out = append(out, chord)
		i = run
	}
	result := route
	result.Segments = out
	return result
}

// staircaseRun returns the exclusive end index of the longest run starting
// at i of alternating axis-aligned segments (all on one layer, each
// perpendicular to the one before it) that together trace a staircase: at
// least 4 segments, so collapsing to one diagonal chord is worth the loss
// of the exact step shape.
func staircaseRun(segs []model.Segment, i int) int {
	if !segs[i].IsAxisAligned() {
		return i
	}
	layer := segs[i].Layer
	j := i + 1
	for j < len(segs) {
		s := segs[j]
		if s.Layer != layer || !s.IsAxisAligned() {
			break
		}
		prevDX, prevDY := segs[j-1].Direction()
		dx, dy := s.Direction()
		// perpendicular: dot product is ~0
		if absf(prevDX*dx+prevDY*dy) > angleTolerance {
			break
		}
		if x1, y1 := segs[j-1].X2, segs[j-1].Y2; absf(x1-s.X1) > mergeEpsilon || absf(y1-s.Y1) > mergeEpsilon {
			break
		}
		j++
	}
	if j-i < 4 {
		return i
	}
	return j
}

const angleTolerance = 1e-6
