package strategy

import (
	"strings"

	"github.com/oriole-pcb/gridroute/model"
	"github.com/oriole-pcb/gridroute/subgrid"
)

// Kind names one of the five routing strategies.
type Kind string

const (
	HierarchicalDiffPair  Kind = "hierarchical_diff_pair"
	SubgridAdaptive       Kind = "subgrid_adaptive"
	ViaConflictResolution Kind = "via_conflict_resolution"
	EscapeThenGlobal      Kind = "escape_then_global"
	GlobalWithRepair      Kind = "global_with_repair"
)

// defaultViaConflictThreshold is the number of via conflicts against a
// net in the previous congestion-driver round above which the net is
// re-routed preferring a same-layer detour instead.
const defaultViaConflictThreshold = 3

// defaultCourtyardDensityThreshold is pads per square mm above which a
// component's footprint is treated as a high-density IC courtyard.
const defaultCourtyardDensityThreshold = 4.0

// Params is the resolved strategy for one net: which Kind matched, plus
// the concrete parameters that Kind implies for the search and
// congestion stages.
type Params struct {
	Kind Kind

	// DiffPairPartner is the paired net's name, set only for
	// HierarchicalDiffPair.
	DiffPairPartner string

	// RunSubgridFirst requests a subgrid escape pre-pass before the
	// global A* search, set for SubgridAdaptive and EscapeThenGlobal.
	RunSubgridFirst bool

	// PreferSameLayer biases the search away from vias, set for
	// ViaConflictResolution.
	PreferSameLayer bool

	// ViaCostMultiplier scales the effective via cost; 1.0 means
	// unchanged.
	ViaCostMultiplier float64
}

// defaultParams is GlobalWithRepair with no special handling.
func defaultParams() Params {
	return Params{Kind: GlobalWithRepair, ViaCostMultiplier: 1.0}
}

// Inspector bundles the board/grid context Select needs to evaluate the
// condition table.
type Inspector struct {
	Board *model.Board

	// SubgridAnalysis is the off-grid-pad analysis for the whole board,
	// used to test whether any pad of a given net landed off-grid.
	SubgridAnalysis subgrid.Analysis

	// PreviousViaConflicts maps net ID to the via-conflict count observed
	// in the previous congestion-driver round; nil or absent entries mean
	// zero conflicts (e.g. the first round).
	PreviousViaConflicts map[int]int

	// ViaConflictThreshold overrides defaultViaConflictThreshold when
	// positive.
	ViaConflictThreshold int

	// CourtyardDensityThreshold overrides defaultCourtyardDensityThreshold
	// when positive.
	CourtyardDensityThreshold float64
}

// Select resolves the strategy for net given its resolved pads, checking
// conditions in the fixed order: differential pair, off-grid pad, via
// conflict history, high-density courtyard start, default. The first
// matching condition wins; later ones are not considered once one
// matches.
func Select(net model.Net, pads []model.Pad, insp Inspector) Params {
	if partner, ok := diffPairPartner(net, insp.Board); ok {
		return Params{Kind: HierarchicalDiffPair, DiffPairPartner: partner, ViaCostMultiplier: 1.0}
	}
	if anyPadOffGrid(net.ID, insp.SubgridAnalysis) {
		return Params{Kind: SubgridAdaptive, RunSubgridFirst: true, ViaCostMultiplier: 1.0}
	}
	threshold := insp.ViaConflictThreshold
	if threshold <= 0 {
		threshold = defaultViaConflictThreshold
	}
	if insp.PreviousViaConflicts[net.ID] > threshold {
		return Params{Kind: ViaConflictResolution, PreferSameLayer: true, ViaCostMultiplier: 10.0}
	}
	density := insp.CourtyardDensityThreshold
	if density <= 0 {
		density = defaultCourtyardDensityThreshold
	}
	if startsInHighDensityCourtyard(pads, insp.Board, density) {
		return Params{Kind: EscapeThenGlobal, RunSubgridFirst: true, ViaCostMultiplier: 1.0}
	}
	return defaultParams()
}

// diffPairSuffixes pairs each polarity suffix with its opposite.
var diffPairSuffixes = map[string]string{
	"+": "-", "-": "+",
	"_P": "_N", "_N": "_P",
}

// diffPairPartner reports whether net's name ends in a recognized
// differential-pair suffix and a sibling net exists on board whose name
// is the same base with the opposite suffix.
func diffPairPartner(net model.Net, board *model.Board) (string, bool) {
	if board == nil {
		return "", false
	}
	for suffix, opposite := range diffPairSuffixes {
		if !strings.HasSuffix(net.Name, suffix) {
			continue
		}
		base := strings.TrimSuffix(net.Name, suffix)
		wantName := base + opposite
		for _, other := range board.Nets {
			if other.Name == wantName {
				return other.Name, true
			}
		}
	}
	return "", false
}

// anyPadOffGrid reports whether any off-grid pad recorded in analysis
// belongs to netID.
func anyPadOffGrid(netID int, analysis subgrid.Analysis) bool {
	for _, sg := range analysis.OffGridPads {
		if sg.Pad.NetID == netID {
			return true
		}
	}
	return false
}

// startsInHighDensityCourtyard reports whether any of net's pads sits on
// a component whose own pad density exceeds densityThreshold pads per
// square mm of footprint bounding box — a fine-pitch IC courtyard where
// escaping outward before the global search avoids early congestion.
func startsInHighDensityCourtyard(pads []model.Pad, board *model.Board, densityThreshold float64) bool {
	if board == nil {
		return false
	}
	seen := make(map[string]bool, len(pads))
	for _, p := range pads {
		if seen[p.Component] {
			continue
		}
		seen[p.Component] = true
		if componentPadDensity(p.Component, board) > densityThreshold {
			return true
		}
	}
	return false
}

// componentPadDensity returns ref's pad count divided by its footprint
// bounding-box area in square mm, or 0 if ref has fewer than two pads (no
// meaningful area) or isn't found.
func componentPadDensity(ref string, board *model.Board) float64 {
	for _, c := range board.Components {
		if c.Ref != ref {
			continue
		}
		if len(c.Pads) < 2 {
			return 0
		}
		minX, minY := c.Pads[0].OffsetX, c.Pads[0].OffsetY
		maxX, maxY := minX, minY
		for _, pad := range c.Pads[1:] {
			if pad.OffsetX < minX {
				minX = pad.OffsetX
			}
			if pad.OffsetX > maxX {
				maxX = pad.OffsetX
			}
			if pad.OffsetY < minY {
				minY = pad.OffsetY
			}
			if pad.OffsetY > maxY {
				maxY = pad.OffsetY
			}
		}
		area := (maxX - minX) * (maxY - minY)
		if area <= 0 {
			return 0
		}
		return float64(len(c.Pads)) / area
	}
	return 0
}
