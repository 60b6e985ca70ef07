// Package mesh implements the arena-backed 3D regular (weighted Delaunay)
// triangulation and the mesh-complex bookkeeping that the exuder operates on.
//
// What:
//
//   - Triangulation: vertices and tetrahedral cells stored in chunked arenas
//     and addressed by stable integer handles (VertexHandle, CellHandle) —
//     never by pointers. Every cell carries a revision counter that is bumped
//     whenever the cell is structurally invalidated, so stale handles are
//     detected instead of dereferenced.
//   - Facet: a (cell, local index) pair naming one of the cell's four faces;
//     MirrorFacet gives the same face seen from the neighboring cell.
//   - An infinite sentinel vertex (handle 0): cells containing it are the
//     unbounded hull cells of the triangulation.
//   - FindConflicts / InsertInHole: the conflict-zone enumeration and hole
//     star-filling that power both plain insertion and the exuder's
//     transactional vertex re-weighting.
//   - Complex: membership of cells (subdomain tags) and facets (surface-patch
//     tags) in the meshed domain, plus per-vertex boundary dimension and
//     feature index.
//
// Why:
//
//   - Sliver exudation replaces one vertex's weighted point at a time through
//     a local remove-and-refill transaction; everything here exists to make
//     that transaction cheap, local, and safe to run from several goroutines
//     under spatial locks.
//
// Concurrency:
//
//   - Arenas grow in fixed-size blocks behind an atomically swapped block
//     directory, so handle lookups from concurrent readers stay valid while
//     another goroutine allocates. Structural mutations of a region must be
//     serialized by the caller (the exuder uses spatial.Grid locks).
//
// Precision:
//
//   - Conflict predicates use float64 (see package geom); the triangulation
//     is intended for well-separated point sets, not adversarial inputs.
//
// Errors:
//
//   - ErrNoConflict:      the candidate point conflicts with no cell (it
//     would be hidden in the regular triangulation).
//   - ErrDegenerateInput: fewer than four affinely independent points.
package mesh
