// Package rules defines the design-rule bundle and net-class overrides that
// parameterize every other stage of the router: trace geometry, clearance,
// and the A* cost weights (step cost, turn penalty, via penalty, congestion
// multipliers).
//
// DesignRules and NetClass are plain value structs; combining them for one
// net is a pure function (For), matching the "ad-hoc dictionaries become a
// struct with named fields" redesign direction of spec.md §9. Construction
// uses the same functional-option idiom as dijkstra.Option and
// builder.BuilderOption: a typed Option closure over a struct, applied in
// order, so adding a knob never changes a call site's positional arguments.
package rules
