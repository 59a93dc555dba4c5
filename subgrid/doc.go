// Package subgrid implements off-grid pad detection and escape-segment
// generation for fine-pitch components (spec.md §4.5): components whose
// pad pitch does not evenly divide the main routing grid's resolution
// need a short hand-laid segment from the pad center to the nearest
// grid-aligned point before the main search.RouteNet machinery can take
// over.
//
// The obstacle-stamping style (unblock a small ring of cells around a
// landing point) is grounded on grid.StampPadAnchor; the escape-candidate
// search that widens outward ring by ring when the nearest grid point is
// already occupied scans each ring in a fixed dx-then-dy order for
// determinism.
package subgrid
