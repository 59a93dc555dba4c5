package model_test

import (
	"testing"

	"github.com/oriole-pcb/gridroute/model"
	"github.com/stretchr/testify/assert"
)

func TestPoint_EqualWithinTolerance(t *testing.T) {
	a := model.Point{X: 1.00001, Y: 2, Layer: 0}
	b := model.Point{X: 1.00002, Y: 2, Layer: 0}
	assert.True(t, a.Equal(b))
}

func TestPoint_NotEqualDifferentLayer(t *testing.T) {
	a := model.Point{X: 1, Y: 2, Layer: 0}
	b := model.Point{X: 1, Y: 2, Layer: 1}
	assert.False(t, a.Equal(b))
}

func TestPoint_GridKey(t *testing.T) {
	p := model.Point{X: 1.05, Y: -0.95, Layer: 0}
	key := p.GridKey(0.5)
	assert.Equal(t, [3]int{2, -2, 0}, key)
}

func TestPoint_ManhattanAndEuclidean(t *testing.T) {
	a := model.Point{X: 0, Y: 0}
	b := model.Point{X: 3, Y: 4}
	assert.Equal(t, 7.0, a.ManhattanTo(b))
	assert.Equal(t, 5.0, a.EuclideanTo(b))
}

func TestPoint_DistanceToAddsViaCostAcrossLayers(t *testing.T) {
	a := model.Point{X: 0, Y: 0, Layer: 0}
	b := model.Point{X: 3, Y: 4, Layer: 1}
	assert.Equal(t, 7.0+10.0, a.DistanceTo(b, 10.0))
}

func TestSegment_LengthAndDirection(t *testing.T) {
	s := model.Segment{X1: 0, Y1: 0, X2: 3, Y2: 4}
	assert.Equal(t, 5.0, s.Length())
	dx, dy := s.Direction()
	assert.InDelta(t, 0.6, dx, 1e-9)
	assert.InDelta(t, 0.8, dy, 1e-9)
}

func TestSegment_IsAxisAlignedAndIs45(t *testing.T) {
	h := model.Segment{X1: 0, Y1: 0, X2: 2, Y2: 0}
	d := model.Segment{X1: 0, Y1: 0, X2: 2, Y2: 2}
	diag := model.Segment{X1: 0, Y1: 0, X2: 2, Y2: 3}
	assert.True(t, h.IsAxisAligned())
	assert.True(t, h.Legal())
	assert.True(t, d.Is45())
	assert.True(t, d.Legal())
	assert.False(t, diag.Legal())
}

func TestSegment_SharesEndpoint(t *testing.T) {
	a := model.Segment{X1: 0, Y1: 0, X2: 1, Y2: 0}
	b := model.Segment{X1: 1, Y1: 0, X2: 1, Y2: 1}
	pt, ok := a.SharesEndpoint(b)
	assert.True(t, ok)
	assert.Equal(t, 1.0, pt.X)
}

func TestSegment_RoundTo001(t *testing.T) {
	s := model.Segment{X1: 1.23456, Y1: 0, X2: 0, Y2: 0}
	got := s.RoundTo001()
	assert.Equal(t, 1.235, got.X1)
}

func TestConnected_LinearChainIsConnected(t *testing.T) {
	segs := []model.Segment{
		{X1: 0, Y1: 0, X2: 1, Y2: 0, Layer: 0},
		{X1: 1, Y1: 0, X2: 1, Y2: 1, Layer: 0},
	}
	required := []model.Point{{X: 0, Y: 0, Layer: 0}, {X: 1, Y: 1, Layer: 0}}
	assert.True(t, model.Connected(segs, nil, required))
}

func TestConnected_DisjointSegmentsNotConnected(t *testing.T) {
	segs := []model.Segment{
		{X1: 0, Y1: 0, X2: 1, Y2: 0, Layer: 0},
		{X1: 5, Y1: 5, X2: 6, Y2: 5, Layer: 0},
	}
	required := []model.Point{{X: 0, Y: 0, Layer: 0}, {X: 6, Y: 5, Layer: 0}}
	assert.False(t, model.Connected(segs, nil, required))
}

func TestConnected_ViaBridgesLayers(t *testing.T) {
	segs := []model.Segment{{X1: 0, Y1: 0, X2: 1, Y2: 0, Layer: 0}}
	vias := []model.ViaInstance{{X: 1, Y: 0, LayerFrom: 0, LayerTo: 1}}
	segs = append(segs, model.Segment{X1: 1, Y1: 0, X2: 2, Y2: 0, Layer: 1})
	required := []model.Point{{X: 0, Y: 0, Layer: 0}, {X: 2, Y: 0, Layer: 1}}
	assert.True(t, model.Connected(segs, vias, required))
}

func TestConnected_SinglePointTriviallyConnected(t *testing.T) {
	assert.True(t, model.Connected(nil, nil, []model.Point{{X: 0, Y: 0}}))
}

func TestRoute_TotalLengthAndViaCount(t *testing.T) {
	r := model.Route{
		Segments: []model.Segment{{X1: 0, Y1: 0, X2: 3, Y2: 4}},
		Vias:     []model.ViaInstance{{}, {}},
	}
	assert.Equal(t, 5.0, r.TotalLength())
	assert.Equal(t, 2, r.ViaCount())
}

func TestPadObstacle_ExpandsByClearanceAndHalfTraceWidth(t *testing.T) {
	p := model.Pad{Position: model.Point{X: 1, Y: 1}, Width: 1, Height: 1, NetID: 3}
	ob := model.PadObstacle(p, 0, 0.2, 0.2)
	assert.Equal(t, 1.6, ob.Rect.W) // 1 + 2*(0.2+0.1)
	assert.Equal(t, 3, ob.NetID)
}

func TestSegmentObstacle_NormalizesReversedCoordinates(t *testing.T) {
	s := model.Segment{X1: 2, Y1: 2, X2: 0, Y2: 0, Width: 0.2, Layer: 0, NetID: 1}
	ob := model.SegmentObstacle(s, 0.1)
	minX, minY, maxX, maxY := ob.Rect.Bounds()
	assert.InDelta(t, -0.2, minX, 1e-9)
	assert.InDelta(t, -0.2, minY, 1e-9)
	assert.InDelta(t, 2.2, maxX, 1e-9)
	assert.InDelta(t, 2.2, maxY, 1e-9)
}
