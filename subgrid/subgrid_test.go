package subgrid_test

import (
	"testing"

	"github.com/oriole-pcb/gridroute/grid"
	"github.com/oriole-pcb/gridroute/layers"
	"github.com/oriole-pcb/gridroute/model"
	"github.com/oriole-pcb/gridroute/rules"
	"github.com/oriole-pcb/gridroute/subgrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.New(0, 0, 40, 40, 2, 0.5, layers.TwoLayer(), layers.Standard2Layer())
	require.NoError(t, err)
	return g
}

func TestResolveSubResolution_HalvesUntilBelowMain(t *testing.T) {
	got := subgrid.ResolveSubResolution(0.8, 0.5)
	assert.InDelta(t, 0.4, got, 1e-9)
}

func TestResolveSubResolution_NonPositivePitchReturnsMain(t *testing.T) {
	assert.Equal(t, 0.5, subgrid.ResolveSubResolution(0, 0.5))
	assert.Equal(t, 0.5, subgrid.ResolveSubResolution(-1, 0.5))
}

func TestResolveSubResolution_FloorsAtMinimum(t *testing.T) {
	got := subgrid.ResolveSubResolution(0.0001, 0.5)
	assert.GreaterOrEqual(t, got, 0.005)
}

func onGridPad(x, y float64, netID int, comp string) model.Pad {
	return model.Pad{
		Position: model.Point{X: x, Y: y, Layer: 0},
		Width:    0.3, Height: 0.3,
		Layers: []int{0}, NetID: netID, Component: comp, Pin: "1",
	}
}

func TestRouter_AnalyzePads_FlagsOffGridPad(t *testing.T) {
	g := testGrid(t)
	r := subgrid.NewRouter(g, rules.NewDesignRules(rules.WithGridResolution(0.5)))

	pads := []model.Pad{
		onGridPad(1.0, 1.0, 1, "U1"),
		onGridPad(1.1, 1.0, 1, "U1"), // 0.1mm off the 0.5mm grid
	}
	analysis := r.AnalyzePads(pads)
	require.Len(t, analysis.OnGridPads, 1)
	require.Len(t, analysis.OffGridPads, 1)
	assert.Equal(t, "U1", analysis.OffGridPads[0].Pad.Component)
	assert.True(t, analysis.HasOffGridPads())
	assert.Equal(t, 2, analysis.TotalPads())
}

func TestRouter_AnalyzePads_NoneOffGrid(t *testing.T) {
	g := testGrid(t)
	r := subgrid.NewRouter(g, rules.NewDesignRules(rules.WithGridResolution(0.5)))

	pads := []model.Pad{onGridPad(1.0, 1.0, 1, "U1"), onGridPad(1.5, 1.0, 1, "U1")}
	analysis := r.AnalyzePads(pads)
	assert.False(t, analysis.HasOffGridPads())
	assert.Equal(t, 0.0, analysis.OffGridPercentage())
}

func TestRouter_GenerateAndApplyEscapeSegments(t *testing.T) {
	g := testGrid(t)
	r := subgrid.NewRouter(g, rules.NewDesignRules(rules.WithGridResolution(0.5)))

	pads := []model.Pad{
		onGridPad(1.1, 1.0, 1, "U1"),
		onGridPad(1.5, 1.0, 1, "U1"),
	}
	analysis := r.AnalyzePads(pads)
	require.True(t, analysis.HasOffGridPads())

	genResult := r.GenerateEscapeSegments(analysis)
	require.Len(t, genResult.Escapes, 1)
	assert.Empty(t, genResult.FailedPads)
	assert.Equal(t, 1, genResult.SuccessCount())

	applied := r.ApplyEscapeSegments(genResult)
	routes := r.GetEscapeRoutes(applied)
	require.Len(t, routes, 1)
	assert.Equal(t, 1, routes[0].NetID)
	assert.Equal(t, model.Routed, routes[0].Status)
	require.Len(t, routes[0].Segments, 1)
}

func TestRouter_RouteWithSubgrid_EndToEnd(t *testing.T) {
	g := testGrid(t)
	r := subgrid.NewRouter(g, rules.NewDesignRules(rules.WithGridResolution(0.5)))

	pads := []model.Pad{onGridPad(2.05, 2.0, 3, "U2")}
	result := r.RouteWithSubgrid(pads)
	assert.Equal(t, 1, result.SuccessCount())
	assert.NotEmpty(t, result.FormatSummary())
}
