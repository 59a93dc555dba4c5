package search_test

import (
	"testing"

	"github.com/oriole-pcb/gridroute/rules"
	"github.com/oriole-pcb/gridroute/search"
	"github.com/stretchr/testify/assert"
)

func baseCtx() search.Context {
	r := rules.NewDesignRules()
	return search.Context{
		GoalX: 10, GoalY: 10, GoalLayer: 0,
		Rules: rules.For(r, "NET1", nil),
	}
}

func TestManhattan_SameLayerNoVia(t *testing.T) {
	ctx := baseCtx()
	got := search.Manhattan{}.Estimate(0, 0, 0, [2]int{0, 0}, ctx)
	assert.InDelta(t, 20.0, got, 1e-9) // |10-0|+|10-0| * CostStraight(1.0)
}

func TestManhattan_CrossLayerAddsViaCost(t *testing.T) {
	ctx := baseCtx()
	got := search.Manhattan{}.Estimate(0, 0, 1, [2]int{0, 0}, ctx)
	assert.InDelta(t, 20.0+ctx.Rules.CostVia, got, 1e-9)
}

func TestDirectionBias_AlignedCheaperThanPerpendicular(t *testing.T) {
	ctx := baseCtx()
	h := search.DirectionBias{TurnPenaltyFactor: 0.5}
	aligned := h.Estimate(0, 0, 0, [2]int{1, 1}, ctx)
	perpendicular := h.Estimate(0, 0, 0, [2]int{1, -1}, ctx)
	assert.Less(t, aligned, perpendicular)
}

func TestGreedy_ScalesBaseEstimate(t *testing.T) {
	ctx := baseCtx()
	base := search.Manhattan{}.Estimate(0, 0, 0, [2]int{0, 0}, ctx)
	greedy := search.Greedy{GreedFactor: 2.0}.Estimate(0, 0, 0, [2]int{0, 0}, ctx)
	assert.InDelta(t, base*2.0, greedy, 1e-9)
}

func TestCongestionAware_AddsSampledCongestion(t *testing.T) {
	ctx := baseCtx()
	ctx.CongestionAt = func(x, y float64, layer int) float64 { return 3.0 }
	base := search.Manhattan{}.Estimate(0, 0, 0, [2]int{0, 0}, ctx)
	got := search.CongestionAware{}.Estimate(0, 0, 0, [2]int{0, 0}, ctx)
	assert.InDelta(t, base+3.0, got, 1e-9)
}

func TestCongestionAware_ZeroWhenNoSampler(t *testing.T) {
	ctx := baseCtx()
	base := search.Manhattan{}.Estimate(0, 0, 0, [2]int{0, 0}, ctx)
	got := search.CongestionAware{}.Estimate(0, 0, 0, [2]int{0, 0}, ctx)
	assert.InDelta(t, base, got, 1e-9)
}

func TestWeightedCongestion_MultiplierScalesSampledTerm(t *testing.T) {
	ctx := baseCtx()
	ctx.CongestionAt = func(x, y float64, layer int) float64 { return 2.0 }
	base := search.Manhattan{}.Estimate(0, 0, 0, [2]int{0, 0}, ctx)
	h := search.WeightedCongestion{NumSamples: 4, CongestionMultiplier: 3.0}
	got := h.Estimate(0, 0, 0, [2]int{0, 0}, ctx)
	assert.InDelta(t, base+6.0, got, 1e-9)
}

func TestNames(t *testing.T) {
	assert.Equal(t, "Manhattan", search.Manhattan{}.Name())
	assert.Contains(t, search.Greedy{GreedFactor: 1.5}.Name(), "1.5")
	assert.Contains(t, search.DirectionBias{TurnPenaltyFactor: 0.5}.Name(), "0.5")
}
