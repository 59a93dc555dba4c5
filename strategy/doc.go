// Package strategy resolves, for one net, which pre-processing and search
// parameters the router should use before handing off to search and
// congestion: differential-pair lockstep routing, a subgrid escape
// pre-pass, via-conflict avoidance, escape-finger generation, or the
// plain default.
//
// Selection is a pure function of net metadata and grid/board inspection
// evaluated as an ordered table — first match wins — the same
// Constructor-dispatch shape builder.BuildGraph uses to apply a fixed
// sequence of steps, but here only one "constructor" out of several
// candidates fires per net rather than all of them in sequence. The
// match order itself was an explicitly unresolved open question; it is
// recorded, with its rationale, in DESIGN.md.
package strategy
