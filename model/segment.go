package model

import "math"

// Segment is a straight copper edge on one layer. After the geometric
// optimizer runs, every Segment must be axis-aligned or exactly 45°
// (spec.md §3).
type Segment struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	Layer          int
	NetID          int
}

// Length returns the Euclidean length of the segment in mm.
func (s Segment) Length() float64 {
	dx, dy := s.X2-s.X1, s.Y2-s.Y1
	return math.Sqrt(dx*dx + dy*dy)
}

// Direction returns the segment's unit direction vector (x2-x1, y2-y1)
// normalized; (0, 0) for a degenerate zero-length segment.
func (s Segment) Direction() (dx, dy float64) {
	l := s.Length()
	if l == 0 {
		return 0, 0
	}
	return (s.X2 - s.X1) / l, (s.Y2 - s.Y1) / l
}

// angleEpsilon is the tolerance, in the dot-product sense, for deciding two
// directions are colinear or perpendicular when comparing rounded unit
// vectors.
const angleEpsilon = 1e-6

// IsAxisAligned reports whether the segment runs purely horizontally or
// vertically.
func (s Segment) IsAxisAligned() bool {
	return math.Abs(s.X1-s.X2) < angleEpsilon || math.Abs(s.Y1-s.Y2) < angleEpsilon
}

// Is45 reports whether the segment runs at exactly +/-45 degrees.
func (s Segment) Is45() bool {
	return math.Abs(math.Abs(s.X2-s.X1)-math.Abs(s.Y2-s.Y1)) < angleEpsilon
}

// Legal reports whether the segment satisfies spec.md §3's shape
// requirement: axis-aligned or exactly 45°.
func (s Segment) Legal() bool {
	return s.IsAxisAligned() || s.Is45()
}

// RoundTo001 rounds both endpoints to 0.001 mm, the wire-representation
// precision spec.md §6 requires on emission.
func (s Segment) RoundTo001() Segment {
	s.X1, s.Y1 = roundTo(s.X1, 3), roundTo(s.Y1, 3)
	s.X2, s.Y2 = roundTo(s.X2, 3), roundTo(s.Y2, 3)
	return s
}

// SharesEndpoint reports whether s and o touch at a common point (within
// coordinate tolerance), and returns that point.
func (s Segment) SharesEndpoint(o Segment) (Point, bool) {
	a1 := Point{X: s.X1, Y: s.Y1, Layer: s.Layer}
	a2 := Point{X: s.X2, Y: s.Y2, Layer: s.Layer}
	b1 := Point{X: o.X1, Y: o.Y1, Layer: o.Layer}
	b2 := Point{X: o.X2, Y: o.Y2, Layer: o.Layer}
	for _, a := range []Point{a1, a2} {
		for _, b := range []Point{b1, b2} {
			if a.Equal(b) {
				return a, true
			}
		}
	}
	return Point{}, false
}

// ViaInstance is a placed via: its board position, drill/diameter, the
// layer span it connects, and owning net.
type ViaInstance struct {
	X, Y           float64
	Drill          float64
	Diameter       float64
	LayerFrom      int
	LayerTo        int
	NetID          int
}

// RoundTo001 rounds the via's position to 0.001 mm.
func (v ViaInstance) RoundTo001() ViaInstance {
	v.X, v.Y = roundTo(v.X, 3), roundTo(v.Y, 3)
	return v
}
