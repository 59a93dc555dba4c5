package model

import "math"

// coordEpsilon is the millimeter tolerance (4 decimal places) at which two
// Points are considered the same physical location, per spec: "Two points
// compare equal when their millimeter coordinates agree to four decimal
// places and layer matches."
const coordEpsilon = 1e-4

// Point is a position on a specific copper layer, in millimeters.
type Point struct {
	X, Y  float64
	Layer int
}

// Equal reports whether p and o refer to the same location: mm coordinates
// agree to four decimal places and the layer matches exactly.
func (p Point) Equal(o Point) bool {
	return p.Layer == o.Layer &&
		roundTo(p.X, 4) == roundTo(o.X, 4) &&
		roundTo(p.Y, 4) == roundTo(o.Y, 4)
}

// roundTo rounds v to n decimal places, ties away from zero (matches the
// world<->grid rounding convention used throughout the router).
func roundTo(v float64, n int) float64 {
	scale := math.Pow(10, float64(n))
	return RoundAwayFromZero(v*scale) / scale
}

// RoundAwayFromZero rounds v to the nearest integer, breaking .5 ties away
// from zero rather than toward even (Go's math.Round already does this,
// exposed here under the router's own name since every grid conversion in
// this module routes through it).
func RoundAwayFromZero(v float64) float64 {
	return math.Round(v)
}

// GridKey maps p onto the canonical integer hash domain for a grid of the
// given resolution: (round(x/res), round(y/res), layer). This is the fixed
// rounding rule spec.md §5 requires for deterministic, locale-independent
// cell keys.
func (p Point) GridKey(res float64) [3]int {
	return [3]int{
		int(RoundAwayFromZero(p.X / res)),
		int(RoundAwayFromZero(p.Y / res)),
		p.Layer,
	}
}

// ManhattanTo returns the in-plane Manhattan distance to o, ignoring layer.
func (p Point) ManhattanTo(o Point) float64 {
	return math.Abs(p.X-o.X) + math.Abs(p.Y-o.Y)
}

// EuclideanTo returns the in-plane Euclidean distance to o, ignoring layer.
func (p Point) EuclideanTo(o Point) float64 {
	dx, dy := p.X-o.X, p.Y-o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceTo estimates total routing distance to o: Manhattan distance in
// the plane, plus costVia once per layer crossed. Used by heuristics that
// need a quick admissible estimate without consulting the via catalog.
func (p Point) DistanceTo(o Point, costVia float64) float64 {
	d := p.ManhattanTo(o)
	if p.Layer != o.Layer {
		d += costVia
	}
	return d
}
