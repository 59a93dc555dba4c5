package layers

import "fmt"

// LayerType tags what a copper layer may be used for.
type LayerType int

const (
	// Signal layers carry routed traces.
	Signal LayerType = iota
	// Plane layers are solid copper pours (ground/power) and are never
	// routable by the grid router.
	Plane
	// Mixed layers carry both a partial pour and routed traces; they are
	// routable.
	Mixed
)

// String renders the layer type the way board-editor tooling names it.
func (t LayerType) String() string {
	switch t {
	case Signal:
		return "signal"
	case Plane:
		return "plane"
	case Mixed:
		return "mixed"
	default:
		return "unknown"
	}
}

// LayerDef describes one copper layer in a stack.
type LayerDef struct {
	Name    string
	Index   int
	Type    LayerType
	IsOuter bool
}

// IsRoutable reports whether the A* grid may expand cells on this layer.
// Only Signal and Mixed layers are routable; Plane layers are skipped
// during neighbor expansion per spec.md §4.1.
func (l LayerDef) IsRoutable() bool {
	return l.Type != Plane
}

// LayerStack is an ordered, gap-free sequence of copper layers. It is
// immutable once built.
type LayerStack struct {
	Name       string
	layerDefs  []LayerDef
	routableIx []int
}

// NewLayerStack validates defs (sequential indices starting at 0, at least
// one layer) and returns an immutable LayerStack.
func NewLayerStack(name string, defs []LayerDef) (*LayerStack, error) {
	if len(defs) == 0 {
		return nil, ErrNoLayers
	}
	for i, d := range defs {
		if d.Index != i {
			return nil, fmt.Errorf("%w: layer %q has index %d, want %d", ErrNonSequentialLayers, d.Name, d.Index, i)
		}
	}
	cp := make([]LayerDef, len(defs))
	copy(cp, defs)
	var routable []int
	for _, d := range cp {
		if d.IsRoutable() {
			routable = append(routable, d.Index)
		}
	}
	return &LayerStack{Name: name, layerDefs: cp, routableIx: routable}, nil
}

// NumLayers returns the number of layers in the stack.
func (s *LayerStack) NumLayers() int { return len(s.layerDefs) }

// GetLayer returns the layer at idx, or (zero, false) if out of range.
func (s *LayerStack) GetLayer(idx int) (LayerDef, bool) {
	if idx < 0 || idx >= len(s.layerDefs) {
		return LayerDef{}, false
	}
	return s.layerDefs[idx], true
}

// GetLayerByName returns the layer named name, or (zero, false) if absent.
func (s *LayerStack) GetLayerByName(name string) (LayerDef, bool) {
	for _, d := range s.layerDefs {
		if d.Name == name {
			return d, true
		}
	}
	return LayerDef{}, false
}

// RoutableIndices returns the indices of every Signal or Mixed layer, in
// ascending order. Used by the grid to skip plane layers during expansion.
func (s *LayerStack) RoutableIndices() []int {
	out := make([]int, len(s.routableIx))
	copy(out, s.routableIx)
	return out
}

// IsPlane reports whether layer idx is a Plane (non-routable) layer.
func (s *LayerStack) IsPlane(idx int) bool {
	d, ok := s.GetLayer(idx)
	return ok && d.Type == Plane
}

// SignalLayers returns every layer tagged Signal.
func (s *LayerStack) SignalLayers() []LayerDef {
	return s.layersOfType(Signal)
}

// PlaneLayers returns every layer tagged Plane.
func (s *LayerStack) PlaneLayers() []LayerDef {
	return s.layersOfType(Plane)
}

func (s *LayerStack) layersOfType(t LayerType) []LayerDef {
	var out []LayerDef
	for _, d := range s.layerDefs {
		if d.Type == t {
			out = append(out, d)
		}
	}
	return out
}

// KiCadName returns the board-editor-convention name for layer idx:
// "F.Cu" for the top layer, "B.Cu" for the bottom layer, "InK.Cu" for
// inner layer K (1-based), matching spec.md §6's wire convention.
func (s *LayerStack) KiCadName(idx int) string {
	n := s.NumLayers()
	switch {
	case idx == 0:
		return "F.Cu"
	case idx == n-1:
		return "B.Cu"
	default:
		return fmt.Sprintf("In%d.Cu", idx)
	}
}

// sig builds a Signal LayerDef at index i, auto-naming and auto-marking
// outer layers (i==0 or i==n-1).
func sig(i, n int) LayerDef { return def(i, n, Signal) }

// pln builds a Plane LayerDef at index i.
func pln(i, n int) LayerDef { return def(i, n, Plane) }

func def(i, n int, t LayerType) LayerDef {
	name := fmt.Sprintf("In%d.Cu", i)
	outer := i == 0 || i == n-1
	if i == 0 {
		name = "F.Cu"
	} else if i == n-1 {
		name = "B.Cu"
	}
	return LayerDef{Name: name, Index: i, Type: t, IsOuter: outer}
}

// TwoLayer builds the standard 2-layer preset: F.Cu and B.Cu, both signal.
func TwoLayer() *LayerStack {
	s, _ := NewLayerStack("2-Layer", []LayerDef{sig(0, 2), sig(1, 2)})
	return s
}

// FourLayerSigGndPwrSig builds the standard 4-layer preset:
// F.Cu (signal) / In1.Cu (GND plane) / In2.Cu (PWR plane) / B.Cu (signal).
func FourLayerSigGndPwrSig() *LayerStack {
	s, _ := NewLayerStack("4-Layer", []LayerDef{sig(0, 4), pln(1, 4), pln(2, 4), sig(3, 4)})
	return s
}

// SixLayerSigGndSigSigPwrSig builds the standard 6-layer preset:
// F.Cu(sig) / In1.Cu(GND) / In2.Cu(sig) / In3.Cu(sig) / In4.Cu(PWR) / B.Cu(sig).
func SixLayerSigGndSigSigPwrSig() *LayerStack {
	s, _ := NewLayerStack("6-Layer", []LayerDef{
		sig(0, 6), pln(1, 6), sig(2, 6), sig(3, 6), pln(4, 6), sig(5, 6),
	})
	return s
}
