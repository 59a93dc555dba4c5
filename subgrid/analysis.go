package subgrid

import (
	"fmt"
	"math"

	"github.com/oriole-pcb/gridroute/model"
)

// OffGridPad describes one pad whose center does not fall on a grid
// intersection within tolerance: its nearest grid cell, the offset from
// that cell's world-space center, and the direction pointing away from
// its component's centroid (the natural escape direction).
type OffGridPad struct {
	Pad             model.Pad
	GridX, GridY    int
	OffsetX, OffsetY float64
	SnapX, SnapY    float64
	EscapeDirection [2]float64
}

// Analysis is the result of scanning a component's (or a whole board's)
// pads for grid alignment.
type Analysis struct {
	OffGridPads      []OffGridPad
	OnGridPads       []model.Pad
	GridResolution   float64
	GridTolerance    float64
	ComponentCenters map[string]model.Point
}

// HasOffGridPads reports whether any pad needs an escape segment.
func (a Analysis) HasOffGridPads() bool { return len(a.OffGridPads) > 0 }

// OffGridCount is the number of off-grid pads found.
func (a Analysis) OffGridCount() int { return len(a.OffGridPads) }

// TotalPads is the number of pads scanned.
func (a Analysis) TotalPads() int { return len(a.OffGridPads) + len(a.OnGridPads) }

// OffGridPercentage is the share of scanned pads that are off-grid, 0-100.
func (a Analysis) OffGridPercentage() float64 {
	total := a.TotalPads()
	if total == 0 {
		return 0
	}
	return 100 * float64(a.OffGridCount()) / float64(total)
}

// FormatSummary renders a one-line human-readable summary.
func (a Analysis) FormatSummary() string {
	return fmt.Sprintf("%d/%d pads off-grid (%.1f%%), tolerance=%.3fmm",
		a.OffGridCount(), a.TotalPads(), a.OffGridPercentage(), a.GridTolerance)
}

// analyzePads scans pads for grid alignment against resolution, flagging
// any pad whose offset from its nearest grid point exceeds tolerance on
// either axis.
func analyzePads(pads []model.Pad, resolution, tolerance float64, worldToGrid func(x, y float64) (int, int), gridToWorld func(i, j int) (float64, float64)) Analysis {
	a := Analysis{
		GridResolution:   resolution,
		GridTolerance:    tolerance,
		ComponentCenters: map[string]model.Point{},
	}

	sums := map[string][2]float64{}
	counts := map[string]int{}
	for _, p := range pads {
		s := sums[p.Component]
		s[0] += p.Position.X
		s[1] += p.Position.Y
		sums[p.Component] = s
		counts[p.Component]++
	}
	for ref, s := range sums {
		n := float64(counts[ref])
		a.ComponentCenters[ref] = model.Point{X: s[0] / n, Y: s[1] / n}
	}

	for _, p := range pads {
		gi, gj := worldToGrid(p.Position.X, p.Position.Y)
		sx, sy := gridToWorld(gi, gj)
		ox, oy := p.Position.X-sx, p.Position.Y-sy
		if math.Abs(ox) <= tolerance && math.Abs(oy) <= tolerance {
			a.OnGridPads = append(a.OnGridPads, p)
			continue
		}
		center := a.ComponentCenters[p.Component]
		dx, dy := p.Position.X-center.X, p.Position.Y-center.Y
		dir := normalizeOrZero(dx, dy)
		a.OffGridPads = append(a.OffGridPads, OffGridPad{
			Pad: p, GridX: gi, GridY: gj,
			OffsetX: ox, OffsetY: oy, SnapX: sx, SnapY: sy,
			EscapeDirection: dir,
		})
	}
	return a
}

func normalizeOrZero(x, y float64) [2]float64 {
	l := math.Hypot(x, y)
	if l < 1e-9 {
		return [2]float64{0, 0}
	}
	return [2]float64{x / l, y / l}
}
