// Package search implements the per-net path-search engine: an A*-style
// best-first search over a grid.Grid, with a pluggable heuristic and a
// step cost that sums base step cost, turn penalty, via penalty, and a
// congestion term (spec.md §4.3).
//
// The priority-queue core (nodeItem, a min-heap ordered by f = g + h, lazy
// decrease-key via duplicate pushes, closed-set short-circuiting) is
// adapted directly from dijkstra.Dijkstra's runner/nodePQ — the same
// container/heap discipline, generalized from a single-source
// all-destinations relaxation to a single-source single-goal search with
// an admissible heuristic. Multi-pin nets are assembled by growing a
// virtual source set one pad at a time and always searching toward the
// nearest point already in that set — the same "grow a tree outward from
// what's already connected, always taking the cheapest frontier edge"
// shape as prim_kruskal.Prim, adapted from growing a spanning tree over a
// whole graph's edges to growing a Steiner-like tree over repeated
// two-terminal A* searches.
package search
