// Package congestion implements the negotiated-congestion ripup-and-retry
// meta-loop that sits above search: route every net once, detect
// overlapping claims, inflate the history cost of contested cells, and
// retry until the board converges or the iteration budget is spent
// (spec.md §4.4).
//
// The loop is grounded on flow.Dinic's "repeat until no more augmenting
// paths, checking for cancellation each round" shape, adapted from
// residual-capacity augmentation to history-cost inflation: where Dinic
// rebuilds a level graph each round and keeps pushing flow until the
// residual graph admits no more, Driver re-routes every net each round and
// keeps inflating contested cells' history cost until a round produces no
// violations.
package congestion
