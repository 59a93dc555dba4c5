package geom

import "math"

// Vec2 is a 2D vector or point in millimeters.
type Vec2 struct{ X, Y float64 }

// Rotate returns v rotated by degrees counter-clockwise about the origin.
// This is the fixed 2x2 rotation-matrix kernel matrix.MatVec generalizes;
// specialized here since every caller rotates exactly one 2-vector by one
// component's placement angle.
func (v Vec2) Rotate(degrees float64) Vec2 {
	if degrees == 0 {
		return v
	}
	rad := degrees * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Add returns the vector sum v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Rect is an axis-aligned rectangle in millimeters, (CX, CY) center, (W, H)
// full width/height.
type Rect struct {
	CX, CY, W, H float64
}

// Expanded returns r grown by margin on every side — the rectangle an
// obstacle's keep-out footprint occupies once clearance is added.
func (r Rect) Expanded(margin float64) Rect {
	return Rect{CX: r.CX, CY: r.CY, W: r.W + 2*margin, H: r.H + 2*margin}
}

// Contains reports whether point (x, y) lies within r (inclusive).
func (r Rect) Contains(x, y float64) bool {
	halfW, halfH := r.W/2, r.H/2
	return x >= r.CX-halfW && x <= r.CX+halfW && y >= r.CY-halfH && y <= r.CY+halfH
}

// Bounds returns the rectangle's (minX, minY, maxX, maxY) corners.
func (r Rect) Bounds() (minX, minY, maxX, maxY float64) {
	halfW, halfH := r.W/2, r.H/2
	return r.CX - halfW, r.CY - halfH, r.CX + halfW, r.CY + halfH
}

// DiskIntersectsRect reports whether a disk of the given radius centered at
// (cx, cy) intersects rectangle r — used to stamp a via's clearance disk
// onto the grid.
func DiskIntersectsRect(cx, cy, radius float64, r Rect) bool {
	minX, minY, maxX, maxY := r.Bounds()
	nearestX := clamp(cx, minX, maxX)
	nearestY := clamp(cy, minY, maxY)
	dx, dy := cx-nearestX, cy-nearestY
	return dx*dx+dy*dy <= radius*radius
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
