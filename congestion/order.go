package congestion

import (
	"math"
	"sort"

	"github.com/oriole-pcb/gridroute/model"
	"github.com/oriole-pcb/gridroute/rules"
)

// job bundles everything the driver needs to route one net: its pads, its
// resolved net class, and the design rules in effect once that class's
// overrides are applied.
type job struct {
	Net       model.Net
	Pads      []model.Pad
	Class     rules.NetClass
	Effective rules.EffectiveRules
}

// EffectiveOverride lets a caller (the router package's strategy wiring)
// adjust one net's resolved EffectiveRules before routing — raising its
// via cost for via-conflict avoidance, for instance — without touching
// the board's shared NetClassMap. A nil override leaves rules.For's
// result untouched.
type EffectiveOverride func(net model.Net, base rules.EffectiveRules) rules.EffectiveRules

func buildJobs(board *model.Board, global *rules.DesignRules, override EffectiveOverride) ([]job, error) {
	jobs := make([]job, 0, len(board.Nets))
	for _, n := range board.Nets {
		pads, err := board.Pads(n.ID)
		if err != nil {
			return nil, err
		}
		class := board.Classes.ClassFor(n.Name)
		effective := rules.For(global, n.Name, board.Classes)
		if override != nil {
			effective = override(n, effective)
		}
		jobs = append(jobs, job{
			Net:       n,
			Pads:      pads,
			Class:     class,
			Effective: effective,
		})
	}
	return jobs, nil
}

func bboxArea(pads []model.Pad) float64 {
	if len(pads) == 0 {
		return 0
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pads {
		minX = math.Min(minX, p.Position.X)
		minY = math.Min(minY, p.Position.Y)
		maxX = math.Max(maxX, p.Position.X)
		maxY = math.Max(maxY, p.Position.Y)
	}
	return (maxX - minX) * (maxY - minY)
}

// orderJobs sorts nets for each negotiated-congestion round: higher
// net-class priority (smaller Priority value) first, then larger nets
// (more pads, then larger bounding box) first since they have fewer
// alternative routes, with the net ID as a final deterministic tiebreak.
// This is an explicit design decision (spec.md's Open Question on net
// ordering) — see DESIGN.md.
func orderJobs(jobs []job) []job {
	out := make([]job, len(jobs))
	copy(out, jobs)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Class.Priority != b.Class.Priority {
			return a.Class.Priority < b.Class.Priority
		}
		if len(a.Pads) != len(b.Pads) {
			return len(a.Pads) > len(b.Pads)
		}
		aArea, bArea := bboxArea(a.Pads), bboxArea(b.Pads)
		if aArea != bArea {
			return aArea > bArea
		}
		return a.Net.ID < b.Net.ID
	})
	return out
}
