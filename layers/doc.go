// Package layers defines the copper layer stack and via catalog consumed by
// the router: an ordered, gap-free sequence of layers tagged signal, plane,
// or mixed, and a set of via definitions (through, blind, buried, micro)
// each spanning a contiguous layer range at a known cost.
//
// Both LayerStack and ViaRules are immutable once built (per spec.md §3's
// lifecycle: "Layer stack and rules are immutable after construction").
// Presets (TwoLayer, FourLayerSigGndPwrSig, ...) are deterministic
// constructor functions, the same role builder.Cycle/Path/Star play for
// lvlath's graph topology presets.
package layers
