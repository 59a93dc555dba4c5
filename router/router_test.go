package router_test

import (
	"context"
	"testing"
	"time"

	"github.com/oriole-pcb/gridroute/geom"
	"github.com/oriole-pcb/gridroute/layers"
	"github.com/oriole-pcb/gridroute/model"
	"github.com/oriole-pcb/gridroute/router"
	"github.com/oriole-pcb/gridroute/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoPadBoard builds a minimal single-net board between two headers for
// end-to-end Route tests.
func twoPadBoard(t *testing.T) *model.Board {
	t.Helper()
	return &model.Board{
		Outline: []geom.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		Components: []model.Component{
			{Ref: "J1", X: 1, Y: 5, Layer: 0, Pads: []model.PadTemplate{{Pin: "1", Width: 0.5, Height: 0.5, Layers: []int{0}}}},
			{Ref: "J2", X: 8, Y: 5, Layer: 0, Pads: []model.PadTemplate{{Pin: "1", Width: 0.5, Height: 0.5, Layers: []int{0}}}},
		},
		Nets: []model.Net{
			{ID: 1, Name: "NET1", Pins: []model.PinRef{{Component: "J1", Pin: "1"}, {Component: "J2", Pin: "1"}}},
		},
		Rules:   rules.NewDesignRules(rules.WithGridResolution(0.5)),
		Stack:   layers.TwoLayer(),
		Vias:    layers.Standard2Layer(),
		Classes: rules.DefaultNetClassMap,
	}
}

func TestRoute_RoutesSimpleBoard(t *testing.T) {
	board := twoPadBoard(t)
	result, err := router.Route(context.Background(), board, router.WithMaxIterations(3))
	require.NoError(t, err)
	require.Len(t, result.Routes, 1)
	assert.Equal(t, model.Routed, result.Routes[0].Status)
	assert.NotZero(t, result.Stats.ElapsedWallTime)
}

func TestRoute_WithoutOptimizerSkipsPostProcessing(t *testing.T) {
	board := twoPadBoard(t)
	result, err := router.Route(context.Background(), board,
		router.WithMaxIterations(3), router.WithoutOptimizer())
	require.NoError(t, err)
	require.Len(t, result.Routes, 1)
	assert.Equal(t, model.Routed, result.Routes[0].Status)
}

func TestRoute_WithoutSubgridEscapeStillRoutes(t *testing.T) {
	board := twoPadBoard(t)
	result, err := router.Route(context.Background(), board,
		router.WithMaxIterations(3), router.WithoutSubgridEscape())
	require.NoError(t, err)
	require.Len(t, result.Routes, 1)
	assert.Equal(t, model.Routed, result.Routes[0].Status)
}

func TestRoute_CancelledContextSurfacesError(t *testing.T) {
	board := twoPadBoard(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := router.Route(ctx, board, router.WithMaxIterations(3))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRoute_RoundsFinalCoordinatesToThreeDecimals(t *testing.T) {
	board := twoPadBoard(t)
	result, err := router.Route(context.Background(), board, router.WithMaxIterations(3))
	require.NoError(t, err)
	for _, seg := range result.Routes[0].Segments {
		assert.Equal(t, seg.X1, float64(int(seg.X1*1000))/1000)
	}
}

// threePinBoard is a single net with three pads (a "simple LED"-shaped
// star: two endpoints plus a branch off to one side), exercising
// search.RouteNet's Steiner-style multi-pin fan-out and the shared-junction
// usage-count path end to end.
func threePinBoard(t *testing.T) *model.Board {
	t.Helper()
	return &model.Board{
		Outline: []geom.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		Components: []model.Component{
			{Ref: "J1", X: 1, Y: 5, Layer: 0, Pads: []model.PadTemplate{{Pin: "1", Width: 0.5, Height: 0.5, Layers: []int{0}}}},
			{Ref: "J2", X: 8, Y: 5, Layer: 0, Pads: []model.PadTemplate{{Pin: "1", Width: 0.5, Height: 0.5, Layers: []int{0}}}},
			{Ref: "J3", X: 5, Y: 9, Layer: 0, Pads: []model.PadTemplate{{Pin: "1", Width: 0.5, Height: 0.5, Layers: []int{0}}}},
		},
		Nets: []model.Net{
			{ID: 1, Name: "NET1", Pins: []model.PinRef{
				{Component: "J1", Pin: "1"}, {Component: "J2", Pin: "1"}, {Component: "J3", Pin: "1"},
			}},
		},
		Rules:   rules.NewDesignRules(rules.WithGridResolution(0.5)),
		Stack:   layers.TwoLayer(),
		Vias:    layers.Standard2Layer(),
		Classes: rules.DefaultNetClassMap,
	}
}

// viaCrossingBoard places its two pads on opposite layers of a 2-layer
// stack, forcing the search to cross with a via.
func viaCrossingBoard(t *testing.T) *model.Board {
	t.Helper()
	return &model.Board{
		Outline: []geom.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		Components: []model.Component{
			{Ref: "J1", X: 1, Y: 5, Layer: 0, Pads: []model.PadTemplate{{Pin: "1", Width: 0.5, Height: 0.5, Layers: []int{0}}}},
			{Ref: "J2", X: 8, Y: 5, Layer: 1, Pads: []model.PadTemplate{{Pin: "1", Width: 0.5, Height: 0.5, Layers: []int{1}}}},
		},
		Nets: []model.Net{
			{ID: 1, Name: "NET1", Pins: []model.PinRef{{Component: "J1", Pin: "1"}, {Component: "J2", Pin: "1"}}},
		},
		Rules:   rules.NewDesignRules(rules.WithGridResolution(0.5)),
		Stack:   layers.TwoLayer(),
		Vias:    layers.Standard2Layer(),
		Classes: rules.DefaultNetClassMap,
	}
}

// crossingNetsBoard places two 2-pin nets on diagonally opposite corners so
// their straight-line paths cross near the board center, so the net
// routed second has to get around the cells the first one claimed.
func crossingNetsBoard(t *testing.T) *model.Board {
	t.Helper()
	return &model.Board{
		Outline: []geom.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		Components: []model.Component{
			{Ref: "J1", X: 1, Y: 1, Layer: 0, Pads: []model.PadTemplate{{Pin: "1", Width: 0.5, Height: 0.5, Layers: []int{0}}}},
			{Ref: "J2", X: 8, Y: 8, Layer: 0, Pads: []model.PadTemplate{{Pin: "1", Width: 0.5, Height: 0.5, Layers: []int{0}}}},
			{Ref: "J3", X: 1, Y: 8, Layer: 0, Pads: []model.PadTemplate{{Pin: "1", Width: 0.5, Height: 0.5, Layers: []int{0}}}},
			{Ref: "J4", X: 8, Y: 1, Layer: 0, Pads: []model.PadTemplate{{Pin: "1", Width: 0.5, Height: 0.5, Layers: []int{0}}}},
		},
		Nets: []model.Net{
			{ID: 1, Name: "NETA", Pins: []model.PinRef{{Component: "J1", Pin: "1"}, {Component: "J2", Pin: "1"}}},
			{ID: 2, Name: "NETB", Pins: []model.PinRef{{Component: "J3", Pin: "1"}, {Component: "J4", Pin: "1"}}},
		},
		Rules:   rules.NewDesignRules(rules.WithGridResolution(0.5)),
		Stack:   layers.TwoLayer(),
		Vias:    layers.Standard2Layer(),
		Classes: rules.DefaultNetClassMap,
	}
}

// offGridPadBoard offsets J2's pad by a fraction of the grid resolution so
// it lands between grid cells, requiring the subgrid escape pre-pass.
func offGridPadBoard(t *testing.T) *model.Board {
	t.Helper()
	return &model.Board{
		Outline: []geom.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		Components: []model.Component{
			{Ref: "J1", X: 1, Y: 5, Layer: 0, Pads: []model.PadTemplate{{Pin: "1", Width: 0.5, Height: 0.5, Layers: []int{0}}}},
			{Ref: "J2", X: 8.15, Y: 5.15, Layer: 0, Pads: []model.PadTemplate{{Pin: "1", Width: 0.5, Height: 0.5, Layers: []int{0}}}},
		},
		Nets: []model.Net{
			{ID: 1, Name: "NET1", Pins: []model.PinRef{{Component: "J1", Pin: "1"}, {Component: "J2", Pin: "1"}}},
		},
		Rules:   rules.NewDesignRules(rules.WithGridResolution(0.5)),
		Stack:   layers.TwoLayer(),
		Vias:    layers.Standard2Layer(),
		Classes: rules.DefaultNetClassMap,
	}
}

// TestRoute_EndToEndScenarios table-drives the scenario shapes of
// SPEC_FULL.md §8: a plain two-pad net, a multi-pin Steiner net, a
// cross-layer via, and a pair of nets forced to negotiate a crossing.
func TestRoute_EndToEndScenarios(t *testing.T) {
	tests := []struct {
		name       string
		board      func(t *testing.T) *model.Board
		wantNetIDs []int
	}{
		{"simple two-pad net", twoPadBoard, []int{1}},
		{"multi-pin Steiner net", threePinBoard, []int{1}},
		{"cross-layer via", viaCrossingBoard, []int{1}},
		{"crossing nets negotiate successfully", crossingNetsBoard, []int{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := tt.board(t)
			result, err := router.Route(context.Background(), board, router.WithMaxIterations(10))
			require.NoError(t, err)
			require.Len(t, result.Routes, len(tt.wantNetIDs))
			for _, route := range result.Routes {
				assert.Equal(t, model.Routed, route.Status, "net %s", route.NetName)
				pads, err := board.Pads(route.NetID)
				require.NoError(t, err)
				required := make([]model.Point, len(pads))
				for i, p := range pads {
					required[i] = p.Position
				}
				assert.True(t, model.Connected(route.Segments, route.Vias, required),
					"net %s: routed segments/vias must connect every pad", route.NetName)
			}
		})
	}
}

func TestRoute_FinePitchEscape_RoutesOffGridPad(t *testing.T) {
	board := offGridPadBoard(t)
	result, err := router.Route(context.Background(), board, router.WithMaxIterations(10))
	require.NoError(t, err)
	require.Len(t, result.Routes, 1)
	assert.Equal(t, model.Routed, result.Routes[0].Status)
	assert.NotEmpty(t, result.Routes[0].Segments)
}

func TestRoute_CancellationMidRoute_SurfacesPartialOrDeadline(t *testing.T) {
	board := crossingNetsBoard(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Microsecond)
	defer cancel()
	result, err := router.Route(ctx, board, router.WithMaxIterations(10))
	if err != nil {
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		return
	}
	require.NotNil(t, result)
}

// TestRoute_DeterministicAcrossRepeatedRuns re-runs Route on the same board
// and config and requires byte-equal output, modulo the wall-clock stat
// that necessarily differs between runs.
func TestRoute_DeterministicAcrossRepeatedRuns(t *testing.T) {
	board := crossingNetsBoard(t)
	first, err := router.Route(context.Background(), board, router.WithMaxIterations(10))
	require.NoError(t, err)
	second, err := router.Route(context.Background(), board, router.WithMaxIterations(10))
	require.NoError(t, err)

	first.Stats.ElapsedWallTime = 0
	second.Stats.ElapsedWallTime = 0
	assert.Equal(t, first, second)
}
