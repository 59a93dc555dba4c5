package rules

import "math"

// DesignRules bundles the trace geometry and A* cost weights shared by an
// entire routing session. It is immutable after construction; per-net
// overrides are applied separately via NetClass and captured in an
// EffectiveRules snapshot (see For).
type DesignRules struct {
	// Geometry, in millimeters.
	TraceWidth      float64
	TraceClearance  float64
	ViaDrill        float64
	ViaDiameter     float64
	GridResolution  float64
	MinTraceWidth   float64 // floor for neck-down traces
	NeckDownThresh  float64 // pitch below which neck-down applies

	// A* cost weights.
	CostStraight float64
	CostDiagonal float64
	CostTurn     float64
	CostVia      float64

	// Congestion multipliers. The negotiated-congestion driver reads them
	// but does not change them; it escalates the present-congestion term
	// with its own per-round multiplier.
	HistoryWeight           float64
	PresentCongestionWeight float64
}

// Option configures a DesignRules during construction.
type Option func(*DesignRules)

// WithTraceWidth overrides the default trace width (mm).
func WithTraceWidth(w float64) Option { return func(r *DesignRules) { r.TraceWidth = w } }

// WithTraceClearance overrides the default trace clearance (mm).
func WithTraceClearance(c float64) Option { return func(r *DesignRules) { r.TraceClearance = c } }

// WithGridResolution overrides the default grid resolution (mm).
func WithGridResolution(res float64) Option { return func(r *DesignRules) { r.GridResolution = res } }

// WithViaGeometry overrides via drill and diameter (mm).
func WithViaGeometry(drill, diameter float64) Option {
	return func(r *DesignRules) { r.ViaDrill, r.ViaDiameter = drill, diameter }
}

// WithCostWeights overrides the four A* step-cost weights.
func WithCostWeights(straight, diagonal, turn, via float64) Option {
	return func(r *DesignRules) { r.CostStraight, r.CostDiagonal, r.CostTurn, r.CostVia = straight, diagonal, turn, via }
}

// WithCongestionWeights overrides the history and present-congestion
// multipliers.
func WithCongestionWeights(history, present float64) Option {
	return func(r *DesignRules) { r.HistoryWeight, r.PresentCongestionWeight = history, present }
}

// NewDesignRules returns a DesignRules seeded with the defaults recorded in
// spec.md §4 (cross-checked against the original implementation's test
// suite for exact constants) and then applies opts in order.
func NewDesignRules(opts ...Option) *DesignRules {
	r := &DesignRules{
		TraceWidth:              0.2,
		TraceClearance:          0.2,
		ViaDrill:                0.35,
		ViaDiameter:             0.7,
		GridResolution:          0.1,
		MinTraceWidth:           0.1,
		NeckDownThresh:          0.5,
		CostStraight:            1.0,
		CostDiagonal:            math.Sqrt2,
		CostTurn:                5.0,
		CostVia:                 10.0,
		HistoryWeight:           1.0,
		PresentCongestionWeight: 1.0,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
