package search

import (
	"fmt"
	"math"

	"github.com/oriole-pcb/gridroute/rules"
)

// Context carries the per-search parameters a Heuristic needs to estimate
// the remaining cost from a cell to the goal: the goal itself, the
// effective design rules for the net being routed, and an optional sampler
// for congestion-aware variants.
type Context struct {
	GoalX, GoalY float64
	GoalLayer    int
	Rules        rules.EffectiveRules

	// CongestionAt samples the present-plus-history congestion cost at a
	// world-space point on a given layer. Nil means "assume zero" —
	// Manhattan, DirectionBias, and Greedy never call it.
	CongestionAt func(x, y float64, layer int) float64
}

// Heuristic estimates the remaining cost from (x, y, layer) to the goal
// described by ctx, having just arrived via predDir (the (dx, dy) of the
// last step taken, zero for the start cell). Estimates must stay
// admissible enough in practice to keep A* productive; exactness is not
// required — spec.md §4.3 treats the heuristic as a pluggable strategy
// knob, not a correctness invariant.
type Heuristic interface {
	Estimate(x, y float64, layer int, predDir [2]int, ctx Context) float64
	Name() string
}

func viaTerm(layer int, ctx Context) float64 {
	if layer != ctx.GoalLayer {
		return ctx.Rules.CostVia
	}
	return 0
}

func manhattanOf(x, y float64, ctx Context) float64 {
	return math.Abs(ctx.GoalX-x) + math.Abs(ctx.GoalY-y)
}

// Manhattan estimates pure grid (Manhattan) distance to the goal, scaled
// by the straight-step cost and the net's cost multiplier, plus a via cost
// if the goal is on a different layer. The unweighted baseline.
type Manhattan struct{}

func (Manhattan) Estimate(x, y float64, layer int, _ [2]int, ctx Context) float64 {
	base := manhattanOf(x, y, ctx)*ctx.Rules.CostStraight + viaTerm(layer, ctx)
	return base * ctx.Rules.CostMultiplier
}

func (Manhattan) Name() string { return "Manhattan" }

// DirectionBias extends Manhattan with a penalty proportional to how far
// the last step taken (predDir) deviates from the direction to the goal:
// continuing straight toward the goal is cheapest, stepping perpendicular
// or backward costs progressively more. TurnPenaltyFactor scales the
// penalty; 0 degenerates to plain Manhattan.
type DirectionBias struct {
	TurnPenaltyFactor float64
}

func (h DirectionBias) Estimate(x, y float64, layer int, predDir [2]int, ctx Context) float64 {
	base := manhattanOf(x, y, ctx) * ctx.Rules.CostStraight
	if predDir != [2]int{0, 0} {
		dx, dy := ctx.GoalX-x, ctx.GoalY-y
		goalLen := math.Hypot(dx, dy)
		predLen := math.Hypot(float64(predDir[0]), float64(predDir[1]))
		if goalLen > 1e-9 && predLen > 1e-9 {
			dot := (dx*float64(predDir[0]) + dy*float64(predDir[1])) / (goalLen * predLen)
			misalignment := 1 - dot // 0 when aligned, up to 2 when opposite
			base *= 1 + h.TurnPenaltyFactor*misalignment
		}
	}
	return (base + viaTerm(layer, ctx)) * ctx.Rules.CostMultiplier
}

func (h DirectionBias) Name() string {
	return fmt.Sprintf("DirectionBias(%.1f)", h.TurnPenaltyFactor)
}

// congestionSamples walks numSamples interior points on the straight line
// from (x, y, layer) to the goal and averages ctx.CongestionAt over them.
// Returns 0 if ctx.CongestionAt is nil.
func congestionSamples(x, y float64, layer int, ctx Context, numSamples int) float64 {
	if ctx.CongestionAt == nil || numSamples <= 0 {
		return 0
	}
	total := 0.0
	for s := 1; s <= numSamples; s++ {
		t := float64(s) / float64(numSamples+1)
		sx := x + t*(ctx.GoalX-x)
		sy := y + t*(ctx.GoalY-y)
		total += ctx.CongestionAt(sx, sy, layer)
	}
	return total / float64(numSamples)
}

// CongestionAware is the default heuristic: Manhattan distance plus the
// average sampled congestion cost along the straight line to the goal, so
// A* prefers directions that avoid already-crowded territory even before
// actually stepping into it.
type CongestionAware struct{}

const defaultCongestionSamples = 5

func (CongestionAware) Estimate(x, y float64, layer int, _ [2]int, ctx Context) float64 {
	base := (manhattanOf(x, y, ctx)*ctx.Rules.CostStraight + viaTerm(layer, ctx)) * ctx.Rules.CostMultiplier
	return base + congestionSamples(x, y, layer, ctx, defaultCongestionSamples)
}

func (CongestionAware) Name() string { return "CongestionAware" }

// WeightedCongestion generalizes CongestionAware with a configurable
// sample count and an explicit multiplier on the sampled congestion term,
// for strategies that want to lean harder (or softer) on congestion
// avoidance than the default.
type WeightedCongestion struct {
	NumSamples           int
	CongestionMultiplier float64
}

func (h WeightedCongestion) Estimate(x, y float64, layer int, _ [2]int, ctx Context) float64 {
	base := (manhattanOf(x, y, ctx)*ctx.Rules.CostStraight + viaTerm(layer, ctx)) * ctx.Rules.CostMultiplier
	return base + h.CongestionMultiplier*congestionSamples(x, y, layer, ctx, h.NumSamples)
}

func (h WeightedCongestion) Name() string {
	return fmt.Sprintf("WeightedCongestion(samples=%d,mult=%.1f)", h.NumSamples, h.CongestionMultiplier)
}

// Greedy scales the full Manhattan-plus-via estimate by GreedFactor > 1,
// trading optimality for speed: the search commits harder to moving toward
// the goal and expands fewer nodes, at the cost of sometimes missing a
// cheaper path around congestion. Callers select it through
// Params.Heuristic; no strategy picks it on its own.
type Greedy struct {
	GreedFactor float64
}

func (h Greedy) Estimate(x, y float64, layer int, _ [2]int, ctx Context) float64 {
	base := (manhattanOf(x, y, ctx)*ctx.Rules.CostStraight + viaTerm(layer, ctx)) * ctx.Rules.CostMultiplier
	return base * h.GreedFactor
}

func (h Greedy) Name() string { return fmt.Sprintf("Greedy(%.1f)", h.GreedFactor) }

// Default is the heuristic used when a strategy does not override it.
var Default Heuristic = CongestionAware{}
