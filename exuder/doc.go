// Package exuder removes poorly shaped tetrahedra ("slivers") from a 3D
// regular triangulation by pumping vertex weights: a vertex's power-diagram
// weight is increased until the local retriangulation around it displaces the
// sliver, without ever moving vertex positions or changing the surface and
// subdomain boundary topology of the complex.
//
// Overview:
//
//   - Complex cells below a quality bound are queued worst-first. For each
//     queued cell, the engine tries to pump one of its four vertices.
//   - Pumping a vertex grows a "pre-star" around it: the set of facets that
//     would flip at successively larger weights, ordered by critical radius
//     (the weight at which a facet degenerates). Expansion keeps a running
//     minimum quality over the tetrahedra the pump would create and records
//     the weight that maximizes it.
//   - Expansion stops at the weight guard delta² × d²(v, nearest neighbor),
//     at any facet of the complex boundary (flipping one would alter the
//     input topology), or when the pre-star empties.
//   - A successful pump re-inserts the vertex as a heavier weighted point
//     through a transactional update: conflict-zone removal, star refill,
//     and restoration of surface/subdomain tags from the captured umbrella
//     and boundary maps.
//
// Scheduling:
//
//   - Sequential (Workers == 1): strictly worst-first and fully
//     deterministic; a wall-clock budget is honored once per outer
//     iteration.
//   - Parallel (Workers > 1): cells become tasks, priority-ordered at
//     enqueue time only. Workers hold spatial locks from a coarse voxel grid
//     over the mesh bounding box while touching a zone, retry on contention
//     while the cell's revision counter is unchanged, and abandon the task
//     when it changed. The time budget is not applied in this mode.
//
// Completion is reported as a tri-state ReturnCode, never as an error:
// TimeLimitReached, BoundReached, or CantImproveAnymore.
//
// Errors (sentinel, construction time only):
//
//	– ErrNilComplex      if the complex is nil.
//	– ErrNilCriterion    if the sliver criterion is nil.
//	– ErrBadBound        if Bound lies outside (0, criterion.MaxValue()].
//	– ErrBadDelta        if Delta lies outside (0, 1].
//	– ErrBadWorkers      if Workers < 1.
//	– ErrBadGridCells    if GridCellsPerAxis < 1.
//
// Example usage:
//
//	ex, err := exuder.New(cx, exuder.MinRadiusRatio{}, exuder.DefaultOptions())
//	if err != nil { ... }
//	code := ex.Run()
//	// code == exuder.BoundReached when every complex cell now meets the bound
package exuder
