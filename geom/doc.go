// Package geom provides the small geometric kernel used by the exuder:
// 3D points, weighted points (power-diagram weights), orientation and
// power-sphere predicates, critical squared radii, and the default
// radius-ratio quality measure for tetrahedra.
//
// What:
//
//   - Point3 / WeightedPoint: a position plus a squared-length power weight.
//   - Orient3D: signed six-fold volume of a tetrahedron.
//   - Orthosphere: the sphere orthogonal to four weighted points.
//   - CriticalSquaredRadius: the weight at which a candidate weighted point
//     becomes orthogonal to a cell's orthosphere — the "critical radius" that
//     drives pre-star expansion.
//   - InConflict: the power-side predicate behind conflict-zone computation.
//   - RadiusRatio: 3·inradius/circumradius in [0,1]; lower = worse; 0 for
//     degenerate tetrahedra. The library's default sliver criterion.
//
// Why:
//
//   - Sliver exudation is driven entirely by these five primitives; keeping
//     them in one dependency-free package makes the engine testable against
//     hand-computed values.
//
// Precision:
//
//   - All predicates use plain float64 arithmetic. Exact/filtered predicates
//     are out of scope; degeneracies (coplanar point quadruples) are reported
//     via ok=false or +Inf rather than resolved symbolically.
package geom
