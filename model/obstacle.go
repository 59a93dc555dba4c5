package model

import "github.com/oriole-pcb/gridroute/geom"

// Obstacle is a rectangular keep-out footprint on one layer, with a
// clearance margin already folded in — derived from a foreign-net pad or
// an already-committed route segment, per spec.md §3.
type Obstacle struct {
	Rect    geom.Rect
	Layer   int
	NetID   int // the net this obstacle belongs to; foreign to every other net
}

// PadObstacle builds the keep-out rectangle for pad p on layer k, expanded
// by clearance + half the routing trace width, per spec.md §4.2's
// "shape ⊕ (clearance + trace_width/2)" stamping rule.
func PadObstacle(p Pad, k int, clearance, traceWidth float64) Obstacle {
	base := geom.Rect{CX: p.Position.X, CY: p.Position.Y, W: p.Width, H: p.Height}
	return Obstacle{
		Rect:  base.Expanded(clearance + traceWidth/2),
		Layer: k,
		NetID: p.NetID,
	}
}

// SegmentObstacle builds the keep-out rectangle for a committed segment on
// its own layer, expanded by clearance + half the routing trace width.
func SegmentObstacle(s Segment, clearance float64) Obstacle {
	minX, maxX := s.X1, s.X2
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := s.Y1, s.Y2
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	w, h := maxX-minX, maxY-minY
	base := geom.Rect{CX: cx, CY: cy, W: w, H: h}
	return Obstacle{
		Rect:  base.Expanded(clearance + s.Width/2),
		Layer: s.Layer,
		NetID: s.NetID,
	}
}
