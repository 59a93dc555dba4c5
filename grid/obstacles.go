package grid

import (
	"github.com/oriole-pcb/gridroute/geom"
	"github.com/oriole-pcb/gridroute/model"
)

// StampObstacle marks every cell whose center falls inside o.Rect, on
// o.Layer, as permanently blocked for this routing pass. Realizes
// spec.md §4.2's obstacle-stamping rule for foreign pads and committed
// segments.
func (g *Grid) StampObstacle(o model.Obstacle) {
	minX, minY, maxX, maxY := o.Rect.Bounds()
	iMin, jMin := g.WorldToGrid(minX, minY)
	iMax, jMax := g.WorldToGrid(maxX, maxY)
	for i := iMin; i <= iMax; i++ {
		for j := jMin; j <= jMax; j++ {
			if !g.InBounds(i, j, o.Layer) {
				continue
			}
			x, y := g.GridToWorld(i, j)
			if o.Rect.Contains(x, y) {
				g.At(i, j, o.Layer).Blocked = true
			}
		}
	}
}

// StampForeignPads stamps obstacles for every pad not belonging to netID,
// one obstacle per layer the pad occupies, expanded by clearance and the
// routing trace width.
func (g *Grid) StampForeignPads(pads []model.Pad, netID int32, clearance, traceWidth float64) {
	for _, p := range pads {
		if int32(p.NetID) == netID {
			continue
		}
		for _, k := range p.Layers {
			g.StampObstacle(model.PadObstacle(p, k, clearance, traceWidth))
		}
	}
}

// StampCommittedRoute stamps obstacles for every segment of a route already
// committed for a different net, so later nets treat it as foreign copper.
func (g *Grid) StampCommittedRoute(segments []model.Segment, exceptNetID int32, clearance float64) {
	for _, s := range segments {
		if int32(s.NetID) == exceptNetID {
			continue
		}
		g.StampObstacle(model.SegmentObstacle(s, clearance))
	}
}

// StampViaClearance blocks, for any net other than netID, every cell on
// layer whose footprint intersects the clearance disk of a via barrel
// centered at (x, y) with the given pad diameter and clearance margin.
// A committed via occupies more than the single barrel cell claimPath
// marks as owned — spec.md §4.2 requires foreign nets to honor its full
// clearance disk, not just that one cell.
func (g *Grid) StampViaClearance(x, y float64, layer int, diameter, clearance float64, netID int32) {
	radius := diameter/2 + clearance
	disk := geom.Rect{CX: x, CY: y, W: 2 * radius, H: 2 * radius}
	minX, minY, maxX, maxY := disk.Bounds()
	iMin, jMin := g.WorldToGrid(minX, minY)
	iMax, jMax := g.WorldToGrid(maxX, maxY)
	for i := iMin; i <= iMax; i++ {
		for j := jMin; j <= jMax; j++ {
			c := g.At(i, j, layer)
			if c == nil || c.Net == netID {
				continue
			}
			cx, cy := g.GridToWorld(i, j)
			if geom.DiskIntersectsRect(x, y, radius, geom.Rect{CX: cx, CY: cy, W: g.Resolution, H: g.Resolution}) {
				c.Blocked = true
			}
		}
	}
}

// StampPadAnchor marks the cell nearest to pad p's center as owned by
// netID and explicitly unblocked, plus its immediate ring of neighbors, so
// the router can always approach the pad. When the pad is through-hole,
// every layer it lists is anchored; otherwise only the pad's own layer.
func (g *Grid) StampPadAnchor(p model.Pad, netID int32) (i, j int) {
	i, j = g.WorldToGrid(p.Position.X, p.Position.Y)
	layersToAnchor := p.Layers
	if !p.ThroughHole {
		layersToAnchor = []int{p.Position.Layer}
	}
	for _, k := range layersToAnchor {
		if c := g.At(i, j, k); c != nil {
			c.Blocked = false
			c.Net = netID
		}
		for _, d := range conn8Offsets {
			ni, nj := i+d[0], j+d[1]
			if c := g.At(ni, nj, k); c != nil && c.Net == 0 {
				c.Blocked = false
			}
		}
	}
	return i, j
}
