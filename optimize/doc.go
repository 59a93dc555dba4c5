// Package optimize implements the geometric post-processing passes that
// run after a net is routed: collinear-segment merging, zigzag
// elimination, 45-degree corner conversion, via minimization, and
// serpentine length tuning for length-critical nets (spec.md §6).
//
// Passes compose the way builder.BuildGraph composes Constructors: a
// fixed, ordered sequence of independent transformations applied one
// after another, each validated before being kept. Where BuildGraph
// aborts the whole sequence on the first constructor error, RunPipeline
// instead rejects just that one pass's output (falling back to the
// pre-pass route) whenever it would break connectivity or leave the grid
// — nets must never regress from "routed" to "broken" because an
// optimizer pass got overzealous.
package optimize
