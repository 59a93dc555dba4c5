package optimize_test

import (
	"testing"

	"github.com/oriole-pcb/gridroute/model"
	"github.com/oriole-pcb/gridroute/optimize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seg(x1, y1, x2, y2 float64) model.Segment {
	return model.Segment{X1: x1, Y1: y1, X2: x2, Y2: y2, Width: 0.2, Layer: 0, NetID: 1}
}

func TestMergeCollinear_FusesStraightRun(t *testing.T) {
	route := model.Route{NetID: 1, Segments: []model.Segment{
		seg(0, 0, 1, 0),
		seg(1, 0, 2, 0),
		seg(2, 0, 2, 1),
	}}
	out := optimize.MergeCollinear(route, optimize.Context{})
	require.Len(t, out.Segments, 2)
	assert.Equal(t, 0.0, out.Segments[0].X1)
	assert.Equal(t, 2.0, out.Segments[0].X2)
}

func TestMergeCollinear_LeavesNonCollinearAlone(t *testing.T) {
	route := model.Route{NetID: 1, Segments: []model.Segment{seg(0, 0, 1, 0), seg(1, 0, 1, 1)}}
	out := optimize.MergeCollinear(route, optimize.Context{})
	assert.Len(t, out.Segments, 2)
}

func TestEliminateZigzag_CollapsesStaircase(t *testing.T) {
	route := model.Route{NetID: 1, Segments: []model.Segment{
		seg(0, 0, 1, 0),
		seg(1, 0, 1, 1),
		seg(1, 1, 2, 1),
		seg(2, 1, 2, 2),
	}}
	out := optimize.EliminateZigzag(route, optimize.Context{})
	require.Len(t, out.Segments, 1)
	assert.Equal(t, 0.0, out.Segments[0].X1)
	assert.Equal(t, 2.0, out.Segments[0].X2)
	assert.Equal(t, 2.0, out.Segments[0].Y2)
}

func TestEliminateZigzag_ShortRunUntouched(t *testing.T) {
	route := model.Route{NetID: 1, Segments: []model.Segment{seg(0, 0, 1, 0), seg(1, 0, 1, 1)}}
	out := optimize.EliminateZigzag(route, optimize.Context{})
	assert.Len(t, out.Segments, 2)
}

func TestConvertCorners_ChamfersRightAngle(t *testing.T) {
	route := model.Route{NetID: 1, Segments: []model.Segment{seg(0, 0, 1, 0), seg(1, 0, 1, 1)}}
	out := optimize.ConvertCorners(route, optimize.Context{})
	require.Len(t, out.Segments, 3)
	assert.True(t, out.Segments[1].Is45())
}

func TestConvertCorners_SkipsSegmentsTooShortToChamfer(t *testing.T) {
	route := model.Route{NetID: 1, Segments: []model.Segment{seg(0, 0, 0.1, 0), seg(0.1, 0, 0.1, 0.1)}}
	out := optimize.ConvertCorners(route, optimize.Context{})
	assert.Len(t, out.Segments, 2)
}

func TestMinimizeVias_RemovesRoundTripPair(t *testing.T) {
	route := model.Route{NetID: 1,
		Segments: []model.Segment{
			seg(0, 0, 1, 0),
			{X1: 1, Y1: 0, X2: 1, Y2: 0, Width: 0.2, Layer: 1, NetID: 1},
			seg(1, 0, 2, 0),
		},
		Vias: []model.ViaInstance{
			{X: 1, Y: 0, LayerFrom: 0, LayerTo: 1, NetID: 1},
			{X: 1, Y: 0, LayerFrom: 1, LayerTo: 0, NetID: 1},
		},
	}
	out := optimize.MinimizeVias(route, optimize.Context{})
	assert.Empty(t, out.Vias)
}

func TestMinimizeVias_KeepsLoadBearingVias(t *testing.T) {
	route := model.Route{NetID: 1,
		Segments: []model.Segment{seg(0, 0, 1, 0)},
		Vias:     []model.ViaInstance{{X: 1, Y: 0, LayerFrom: 0, LayerTo: 1, NetID: 1}},
	}
	out := optimize.MinimizeVias(route, optimize.Context{})
	assert.Len(t, out.Vias, 1)
}

func TestGenerateTrombone_AddsApproximateLength(t *testing.T) {
	s := seg(0, 0, 20, 0)
	segs, added, loops, ok, _ := optimize.GenerateTrombone(s, 8, 0.5, 0.3, 2.0)
	require.True(t, ok)
	assert.Greater(t, loops, 0)
	assert.Greater(t, added, 0.0)
	assert.NotEmpty(t, segs)
}

func TestGenerateTrombone_TooShortFails(t *testing.T) {
	s := seg(0, 0, 1, 0)
	_, _, _, ok, msg := optimize.GenerateTrombone(s, 8, 0.5, 0.3, 2.0)
	assert.False(t, ok)
	assert.NotEmpty(t, msg)
}

func TestTuneLength_ExpandsLongestInteriorSegment(t *testing.T) {
	route := model.Route{NetID: 1, Segments: []model.Segment{
		seg(0, 0, 1, 0),
		seg(1, 0, 21, 0),
		seg(21, 0, 22, 0),
	}}
	before := route.TotalLength()
	out := optimize.TuneLength(route, before+8, 0.5, 0.3, 2.0)
	assert.Greater(t, out.TotalLength(), before)
}

func TestTuneLength_NoOpWhenAlreadyLongEnough(t *testing.T) {
	route := model.Route{NetID: 1, Segments: []model.Segment{seg(0, 0, 10, 0)}}
	out := optimize.TuneLength(route, 5, 0.5, 0.3, 2.0)
	assert.Equal(t, route.TotalLength(), out.TotalLength())
}

func TestRunPipeline_RollsBackFailingPass(t *testing.T) {
	route := model.Route{NetID: 1, Segments: []model.Segment{seg(0, 0, 1, 0)}}
	breakIt := func(r model.Route, _ optimize.Context) model.Route {
		r.Segments = []model.Segment{seg(5, 5, 6, 5)} // no longer connects required points
		return r
	}
	required := []model.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}
	out := optimize.RunPipeline(route, required, optimize.Context{}, breakIt)
	assert.Equal(t, route.Segments, out.Segments)
}

func TestRunPipeline_KeepsValidPassOutput(t *testing.T) {
	route := model.Route{NetID: 1, Segments: []model.Segment{seg(0, 0, 1, 0), seg(1, 0, 2, 0)}}
	required := []model.Point{{X: 0, Y: 0}, {X: 2, Y: 0}}
	out := optimize.RunPipeline(route, required, optimize.Context{}, optimize.MergeCollinear)
	assert.Len(t, out.Segments, 1)
}
