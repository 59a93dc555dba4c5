package rules

// NetClass overrides the global DesignRules for a named set of nets:
// priority (lower routes first), trace width, clearance, cost multiplier
// (below 1 raises effective priority in the A* cost function, above 1
// deprioritizes), and a length-critical flag consumed by the optimizer's
// serpentine tuning pass.
type NetClass struct {
	Name           string
	Priority       int
	TraceWidth     float64
	TraceClearance float64
	CostMultiplier float64
	LengthCritical bool
}

// defaultNetClass returns the baseline NetClass used when a net has no
// explicit class assignment.
func defaultNetClass(name string) NetClass {
	return NetClass{
		Name:           name,
		Priority:       5,
		TraceWidth:     0.2,
		TraceClearance: 0.2,
		CostMultiplier: 1.0,
	}
}

// NewNetClass returns the default NetClass named name; override fields on
// the returned value as needed.
func NewNetClass(name string) NetClass { return defaultNetClass(name) }

// Preset net classes, matching spec.md §3's table.
var (
	// Power is priority 1 (routed first), wide traces, and a cost
	// multiplier below 1 so the A* cost function favors it further.
	Power = NetClass{Name: "Power", Priority: 1, TraceWidth: 0.5, TraceClearance: 0.25, CostMultiplier: 0.8}

	// Clock is priority 2 and length-critical, enabling the optimizer's
	// serpentine length-tuning pass.
	Clock = NetClass{Name: "Clock", Priority: 2, TraceWidth: 0.2, TraceClearance: 0.2, CostMultiplier: 1.0, LengthCritical: true}

	// Default is the fallback class: priority 5, standard geometry,
	// neutral cost multiplier.
	Default = NetClass{Name: "Default", Priority: 5, TraceWidth: 0.2, TraceClearance: 0.2, CostMultiplier: 1.0}
)

// NetClassMap assigns a NetClass to each net by name.
type NetClassMap map[string]NetClass

// NewNetClassMap builds a NetClassMap assigning Power to powerNets and
// Clock to clockNets; any net absent from both lists falls back to Default
// when looked up via ClassFor.
func NewNetClassMap(powerNets, clockNets []string) NetClassMap {
	m := make(NetClassMap, len(powerNets)+len(clockNets))
	for _, n := range powerNets {
		m[n] = Power
	}
	for _, n := range clockNets {
		m[n] = Clock
	}
	return m
}

// ClassFor returns the NetClass assigned to netName, or Default if absent.
func (m NetClassMap) ClassFor(netName string) NetClass {
	if c, ok := m[netName]; ok {
		return c
	}
	return Default
}

// DefaultNetClassMap is a starter map covering the common power and clock
// net names found on typical hobbyist boards; callers extend or replace it
// via NewNetClassMap for project-specific net naming.
var DefaultNetClassMap = NewNetClassMap(
	[]string{"+5V", "+3V3", "+12V", "VCC", "VDD", "GND", "VSS"},
	[]string{"CLK", "MCLK", "SCLK", "XTAL"},
)

// EffectiveRules is the per-net cache produced by merging DesignRules with
// a NetClass override: one pass of routing reads this instead of
// re-resolving the net class on every A* step.
type EffectiveRules struct {
	TraceWidth     float64
	TraceClearance float64
	CostMultiplier float64
	LengthCritical bool
	Priority       int

	CostStraight            float64
	CostDiagonal             float64
	CostTurn                 float64
	CostVia                  float64
	HistoryWeight            float64
	PresentCongestionWeight  float64
	GridResolution           float64
	MinTraceWidth            float64
	NeckDownThresh           float64
	ViaDrill                 float64
	ViaDiameter              float64
}

// For merges global DesignRules with the NetClass assigned to netName under
// classes, returning a cached EffectiveRules for one net's routing pass —
// spec.md §4.1's design_rules.for_net.
func For(global *DesignRules, netName string, classes NetClassMap) EffectiveRules {
	nc := Default
	if classes != nil {
		nc = classes.ClassFor(netName)
	}
	return EffectiveRules{
		TraceWidth:              nc.TraceWidth,
		TraceClearance:          nc.TraceClearance,
		CostMultiplier:          nc.CostMultiplier,
		LengthCritical:          nc.LengthCritical,
		Priority:                nc.Priority,
		CostStraight:            global.CostStraight,
		CostDiagonal:            global.CostDiagonal,
		CostTurn:                global.CostTurn,
		CostVia:                 global.CostVia,
		HistoryWeight:           global.HistoryWeight,
		PresentCongestionWeight: global.PresentCongestionWeight,
		GridResolution:          global.GridResolution,
		MinTraceWidth:           global.MinTraceWidth,
		NeckDownThresh:          global.NeckDownThresh,
		ViaDrill:                global.ViaDrill,
		ViaDiameter:             global.ViaDiameter,
	}
}
