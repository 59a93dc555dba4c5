package layers

// ViaType categorizes a via by which part of the stack it spans.
type ViaType int

const (
	// Through vias span the entire layer stack.
	Through ViaType = iota
	// BlindTop vias span from an outer layer to an inner layer.
	BlindTop
	// BlindBottom vias span from an inner layer to an outer layer.
	BlindBottom
	// Buried vias span between two inner layers only.
	Buried
	// Micro vias span one adjacent layer pair.
	Micro
)

// String names the via type.
func (t ViaType) String() string {
	switch t {
	case Through:
		return "through"
	case BlindTop:
		return "blind_top"
	case BlindBottom:
		return "blind_bottom"
	case Buried:
		return "buried"
	case Micro:
		return "micro"
	default:
		return "unknown"
	}
}

// ViaDef is one via definition: its type, drill/annular geometry, the
// layer span it connects, and its routing cost.
type ViaDef struct {
	Type           ViaType
	DrillMM        float64
	AnnularRingMM  float64
	StartLayer     int
	EndLayer       int
	Cost           float64
}

// Diameter returns the pad diameter: drill plus two annular rings.
func (v ViaDef) Diameter() float64 {
	return v.DrillMM + 2*v.AnnularRingMM
}

// normalizedSpan returns (min, max) of StartLayer/EndLayer regardless of
// declaration order.
func (v ViaDef) normalizedSpan() (int, int) {
	if v.StartLayer <= v.EndLayer {
		return v.StartLayer, v.EndLayer
	}
	return v.EndLayer, v.StartLayer
}

// Spans reports whether v's layer interval covers both endpoints of the
// requested transition from/to (in either order).
func (v ViaDef) Spans(from, to int) bool {
	lo, hi := v.normalizedSpan()
	if from > to {
		from, to = to, from
	}
	return lo <= from && to <= hi
}

// BlockedLayers returns every layer index strictly between v's endpoints:
// the layers a via's barrel passes through without making contact, whose
// cells are unusable by a foreign net's route at this (x,y) per spec.md
// §4.2's cross-layer neighbor rule.
func (v ViaDef) BlockedLayers() []int {
	lo, hi := v.normalizedSpan()
	if hi-lo < 2 {
		return nil
	}
	out := make([]int, 0, hi-lo-1)
	for l := lo + 1; l < hi; l++ {
		out = append(out, l)
	}
	return out
}

// ViaRules is the set of via definitions available to a routing session,
// gated by feature flags. A nil *ViaDef field means that via category is
// not defined even if its allow-flag were set.
type ViaRules struct {
	ThroughVia *ViaDef
	BlindVia   *ViaDef
	BuriedVia  *ViaDef
	MicroVia   *ViaDef

	AllowBlind  bool
	AllowBuried bool
	AllowMicro  bool
}

// AvailableVias returns every via definition currently usable, honoring
// the allow-flags. ThroughVia, when present, is always available.
func (r *ViaRules) AvailableVias() []*ViaDef {
	var out []*ViaDef
	if r.ThroughVia != nil {
		out = append(out, r.ThroughVia)
	}
	if r.AllowBlind && r.BlindVia != nil {
		out = append(out, r.BlindVia)
	}
	if r.AllowBuried && r.BuriedVia != nil {
		out = append(out, r.BuriedVia)
	}
	if r.AllowMicro && r.MicroVia != nil {
		out = append(out, r.MicroVia)
	}
	return out
}

// BestVia returns the minimum-cost via definition whose span covers the
// requested from/to transition, or (nil, false) if none is eligible —
// spec.md §4.1's via_rules.best_via.
func (r *ViaRules) BestVia(from, to int) (*ViaDef, bool) {
	var best *ViaDef
	for _, v := range r.AvailableVias() {
		if !v.Spans(from, to) {
			continue
		}
		if best == nil || v.Cost < best.Cost {
			best = v
		}
	}
	return best, best != nil
}

// DefaultViaRules returns a ViaRules with only a through via defined,
// spanning layers 0..n-1, at the default cost.
func DefaultViaRules(numLayers int) *ViaRules {
	return &ViaRules{
		ThroughVia: &ViaDef{
			Type: Through, DrillMM: 0.3, AnnularRingMM: 0.15,
			StartLayer: 0, EndLayer: numLayers - 1, Cost: 10.0,
		},
	}
}

// Standard2Layer returns via rules for a 2-layer board: one through via
// spanning layers 0-1.
func Standard2Layer() *ViaRules { return DefaultViaRules(2) }

// Standard4Layer returns via rules for a 4-layer board: one through via
// spanning layers 0-3.
func Standard4Layer() *ViaRules { return DefaultViaRules(4) }

// HDI4Layer returns via rules for a 4-layer HDI board: a through via plus
// a blind via (outer-to-first-inner) and a micro via (adjacent outer pair),
// both enabled, cheaper than the through via so BestVia prefers them when
// they can reach the requested transition.
func HDI4Layer() *ViaRules {
	r := DefaultViaRules(4)
	r.BlindVia = &ViaDef{Type: BlindTop, DrillMM: 0.2, AnnularRingMM: 0.1, StartLayer: 0, EndLayer: 1, Cost: 6.0}
	r.MicroVia = &ViaDef{Type: Micro, DrillMM: 0.1, AnnularRingMM: 0.075, StartLayer: 0, EndLayer: 1, Cost: 3.0}
	r.AllowBlind = true
	r.AllowMicro = true
	return r
}
