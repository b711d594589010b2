// Package field provides the halo-padded 2-D scalar field used by the
// solver.
//
// A [Grid] stores an nX-by-nY interior plus a fixed two-cell periodic
// halo on every side. The halo lets five-point stencils read across the
// domain edges without special cases, at the cost of an explicit
// [Grid.RefreshHalo] before each stencil evaluation. Halo cells are
// stale between refreshes.
//
// Elementwise arithmetic (Add, Scale, Axpy, Aypx) covers the interior
// only and rejects grids of differing interior dimensions with
// [ErrShapeMismatch].
package field
