// Package geom provides the small amount of 2D affine geometry the router
// needs: rotating a component's local pad offsets into board-absolute
// coordinates, and testing rectangle/disk intersection for obstacle
// stamping. It is adapted from the teacher's general-purpose linear-algebra
// kernels (matrix.MatVec, matrix.Scale) down to the fixed 2x2/2-vector case
// the PCB domain actually exercises — a full Dense/Eigen/LU matrix
// abstraction has no consumer in this router, so only the vector-rotate and
// shape-test kernels were kept and specialized; see DESIGN.md.
package geom
