package optimize

import (
	"github.com/oriole-pcb/gridroute/grid"
	"github.com/oriole-pcb/gridroute/model"
	"github.com/oriole-pcb/gridroute/rules"
)

// Context carries the shared state a Pass may need: the grid to validate
// candidate geometry against (so a pass never routes a trace through a
// foreign obstacle) and the effective rules for the net being optimized.
type Context struct {
	Grid  *grid.Grid
	Rules rules.EffectiveRules
}

// Pass transforms a route, returning the candidate result. A Pass must
// not mutate route's slices in place — RunPipeline needs the pre-pass
// value intact to fall back to if the candidate doesn't validate.
type Pass func(route model.Route, ctx Context) model.Route

// RunPipeline applies passes to route in order, keeping a pass's output
// only when it still connects every point in required and its segments
// don't cross foreign copper on ctx.Grid. A pass whose output fails
// validation is skipped entirely — the route carries forward unchanged —
// so one overzealous pass can never regress a net from routed to broken.
func RunPipeline(route model.Route, required []model.Point, ctx Context, passes ...Pass) model.Route {
	cur := route
	for _, p := range passes {
		candidate := p(cur, ctx)
		if !validate(candidate, required, ctx) {
			continue
		}
		cur = candidate
	}
	return cur
}

// validate reports whether candidate still connects every required point
// and every segment stays clear of cells owned by a foreign net.
func validate(candidate model.Route, required []model.Point, ctx Context) bool {
	if !model.Connected(candidate.Segments, candidate.Vias, required) {
		return false
	}
	if ctx.Grid == nil {
		return true
	}
	for _, s := range candidate.Segments {
		if segmentCrossesForeign(ctx.Grid, s, int32(candidate.NetID)) {
			return false
		}
	}
	return true
}

// segmentCrossesForeign samples s at half-cell steps and reports whether
// any sampled cell is permanently blocked or owned by a net other than
// netID.
func segmentCrossesForeign(g *grid.Grid, s model.Segment, netID int32) bool {
	length := s.Length()
	steps := int(length/(g.Resolution/2)) + 1
	for n := 0; n <= steps; n++ {
		t := float64(n) / float64(steps)
		x := s.X1 + t*(s.X2-s.X1)
		y := s.Y1 + t*(s.Y2-s.Y1)
		i, j := g.WorldToGrid(x, y)
		if g.IsBlockedForNet(i, j, s.Layer, netID) {
			return true
		}
	}
	return false
}
