package subgrid

import (
	"fmt"

	"github.com/oriole-pcb/gridroute/grid"
	"github.com/oriole-pcb/gridroute/model"
	"github.com/oriole-pcb/gridroute/rules"
)

// defaultGridTolerance is spec.md §4.5's default off-grid detection
// tolerance: a pad within 0.025mm of a grid intersection is treated as
// on-grid.
const defaultGridTolerance = 0.025

const defaultEscapeSearchRadius = 5

// Escape is one generated escape segment: a short trace from an off-grid
// pad's center to its landing cell.
type Escape struct {
	Pad       model.Pad
	Segment   model.Segment
	GridPoint [2]int
	SnapPoint [2]float64
}

// Result is the outcome of generating (and optionally applying) escape
// segments for an Analysis.
type Result struct {
	Analysis       Analysis
	Escapes        []Escape
	FailedPads     []model.Pad
	UnblockedCount int
}

// SuccessCount is the number of off-grid pads successfully escaped.
func (r Result) SuccessCount() int { return len(r.Escapes) }

// TotalAttempted is the number of off-grid pads an escape was attempted
// for.
func (r Result) TotalAttempted() int { return len(r.Escapes) + len(r.FailedPads) }

// FormatSummary renders a one-line human-readable summary.
func (r Result) FormatSummary() string {
	return fmt.Sprintf("%d/%d escapes succeeded, %d cells unblocked",
		r.SuccessCount(), r.TotalAttempted(), r.UnblockedCount)
}

// Option configures a Router.
type Option func(*Router)

// WithGridTolerance overrides the default off-grid detection tolerance.
func WithGridTolerance(tol float64) Option {
	return func(r *Router) { r.GridTolerance = tol }
}

// WithEscapeSearchRadius overrides how many rings of neighboring cells a
// failed landing-cell lookup widens to before giving up.
func WithEscapeSearchRadius(radius int) Option {
	return func(r *Router) { r.EscapeSearchRadius = radius }
}

// Router analyzes a board's pads for grid misalignment and generates the
// short escape segments fine-pitch components need before the main
// search.RouteNet machinery can route them.
type Router struct {
	Grid               *grid.Grid
	Rules              *rules.DesignRules
	GridTolerance      float64
	EscapeSearchRadius int
}

// NewRouter builds a Router over g using designRules' grid resolution and
// trace geometry, with spec.md §4.5's defaults unless overridden by opts.
func NewRouter(g *grid.Grid, designRules *rules.DesignRules, opts ...Option) *Router {
	r := &Router{
		Grid: g, Rules: designRules,
		GridTolerance:      defaultGridTolerance,
		EscapeSearchRadius: defaultEscapeSearchRadius,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AnalyzePads scans pads for grid alignment using the router's grid and
// tolerance.
func (r *Router) AnalyzePads(pads []model.Pad) Analysis {
	return analyzePads(pads, r.Rules.GridResolution, r.GridTolerance, r.Grid.WorldToGrid, r.Grid.GridToWorld)
}

// pitchForComponent returns the smallest center-to-center distance between
// any two pads sharing analysis's component, used to decide whether an
// escape segment should use the neck-down trace width.
func pitchForComponent(ref string, analysis Analysis) float64 {
	var pts []model.Point
	for _, p := range analysis.OnGridPads {
		if p.Component == ref {
			pts = append(pts, p.Position)
		}
	}
	for _, sg := range analysis.OffGridPads {
		if sg.Pad.Component == ref {
			pts = append(pts, sg.Pad.Position)
		}
	}
	best := -1.0
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			d := pts[i].EuclideanTo(pts[j])
			if best < 0 || d < best {
				best = d
			}
		}
	}
	if best < 0 {
		return 0
	}
	return best
}

// GenerateEscapeSegments builds one Escape per off-grid pad in analysis,
// landing on the nearest unblocked grid cell (widening outward up to
// EscapeSearchRadius rings if the nearest cell is occupied by a foreign
// net). Pads with no reachable landing cell within the radius are
// recorded in Result.FailedPads rather than aborting the whole batch.
func (r *Router) GenerateEscapeSegments(analysis Analysis) Result {
	result := Result{Analysis: analysis}
	for _, sg := range analysis.OffGridPads {
		gi, gj, ok := r.findLandingCell(sg, int32(sg.Pad.NetID))
		if !ok {
			result.FailedPads = append(result.FailedPads, sg.Pad)
			continue
		}
		width := r.escapeWidth(sg.Pad.Component, analysis)
		sx, sy := r.Grid.GridToWorld(gi, gj)
		result.Escapes = append(result.Escapes, Escape{
			Pad: sg.Pad,
			Segment: model.Segment{
				X1: sg.Pad.Position.X, Y1: sg.Pad.Position.Y,
				X2: sx, Y2: sy,
				Width: width, Layer: sg.Pad.Position.Layer, NetID: sg.Pad.NetID,
			},
			GridPoint: [2]int{gi, gj},
			SnapPoint: [2]float64{sx, sy},
		})
	}
	return result
}

// escapeWidth returns the neck-down trace width for ref's escape segments
// when its pad pitch is finer than the neck-down threshold, else the
// ordinary trace width.
func (r *Router) escapeWidth(ref string, analysis Analysis) float64 {
	pitch := pitchForComponent(ref, analysis)
	if pitch > 0 && pitch < r.Rules.NeckDownThresh {
		return r.Rules.MinTraceWidth
	}
	return r.Rules.TraceWidth
}

// findLandingCell returns the nearest grid cell to sg's snap point that is
// either empty or already owned by netID, searching outward ring by ring
// (each ring scanned by dx, then dy, both ascending) up to
// EscapeSearchRadius cells.
func (r *Router) findLandingCell(sg OffGridPad, netID int32) (int, int, bool) {
	if !r.Grid.IsBlockedForNet(sg.GridX, sg.GridY, sg.Pad.Position.Layer, netID) {
		return sg.GridX, sg.GridY, true
	}
	for radius := 1; radius <= r.EscapeSearchRadius; radius++ {
		for dx := -radius; dx <= radius; dx++ {
			for dy := -radius; dy <= radius; dy++ {
				if abs(dx) != radius && abs(dy) != radius {
					continue // only the current ring, not its interior (already checked)
				}
				i, j := sg.GridX+dx, sg.GridY+dy
				if !r.Grid.InBounds(i, j, sg.Pad.Position.Layer) {
					continue
				}
				if !r.Grid.IsBlockedForNet(i, j, sg.Pad.Position.Layer, netID) {
					return i, j, true
				}
			}
		}
	}
	return 0, 0, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ApplyEscapeSegments unblocks and claims, for each escape's net, the
// grid cell it lands on plus its immediate ring, mirroring
// grid.StampPadAnchor for a landing point instead of a pad center. Returns
// result with UnblockedCount filled in.
func (r *Router) ApplyEscapeSegments(result Result) Result {
	unblocked := 0
	for _, e := range result.Escapes {
		i, j := e.GridPoint[0], e.GridPoint[1]
		landingPad := model.Pad{
			Position:  model.Point{X: e.SnapPoint[0], Y: e.SnapPoint[1], Layer: e.Pad.Position.Layer},
			NetID:     e.Pad.NetID,
			Layers:    []int{e.Pad.Position.Layer},
			Component: e.Pad.Component,
		}
		before := r.Grid.At(i, j, e.Pad.Position.Layer)
		wasBlocked := before != nil && before.Blocked
		r.Grid.StampPadAnchor(landingPad, int32(e.Pad.NetID))
		if wasBlocked {
			unblocked++
		}
	}
	result.UnblockedCount = unblocked
	return result
}

// RouteWithSubgrid is the convenience entrypoint combining analysis,
// escape generation, and application into one call.
func (r *Router) RouteWithSubgrid(pads []model.Pad) Result {
	analysis := r.AnalyzePads(pads)
	result := r.GenerateEscapeSegments(analysis)
	return r.ApplyEscapeSegments(result)
}

// GetEscapeRoutes converts a Result's escapes into single-segment Route
// values, one per escape, suitable for merging into the board's final
// routed-net list before the main search stage picks up from each
// landing cell.
func (r *Router) GetEscapeRoutes(result Result) []model.Route {
	routes := make([]model.Route, 0, len(result.Escapes))
	for _, e := range result.Escapes {
		routes = append(routes, model.Route{
			NetID: e.Pad.NetID, NetName: e.Pad.NetName,
			Status:   model.Routed,
			Segments: []model.Segment{e.Segment},
		})
	}
	return routes
}
