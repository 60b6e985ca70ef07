// Package spatial implements the coarse 3D try-lock grid the parallel exuder
// uses to claim exclusive access to regions of a shared mesh.
//
// What:
//
//   - Grid: an n×n×n lattice of voxels over a bounding box, each voxel owned
//     by at most one Guard at a time (atomic compare-and-swap, no mutexes).
//   - Guard: a per-task token. TryLock(p) claims the voxel containing p and
//     records it; ReleaseAll frees every voxel the guard holds.
//
// Why:
//
//   - A vertex pump touches an a-priori-unknown but spatially local set of
//     cells. Locking the voxels of every touched point gives two concurrent
//     pumps disjoint regions without any global mesh lock.
//
// Concurrency:
//
//   - TryLock never blocks: on contention it returns false and the caller
//     decides whether to release everything and retry (busy-wait with
//     runtime.Gosched) or abandon the attempt.
//   - TryLock is re-entrant per guard: claiming a voxel the guard already
//     holds succeeds immediately.
//
// Errors:
//
//   - ErrBadGridSize: cells-per-axis below 1.
//   - ErrEmptyBbox:   degenerate bounding box.
package spatial
