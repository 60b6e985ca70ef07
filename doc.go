// Package exude removes poorly shaped tetrahedra ("slivers") from a 3D
// weighted-Delaunay mesh by pumping vertex weights — without moving a single
// vertex position and without touching the surface or subdomain topology of
// the mesh complex.
//
// 🚀 What is exude?
//
//	A pure-Go library implementing sliver exudation for tetrahedral meshes:
//		• geom      — weighted points, power-sphere predicates, critical radii, tet quality
//		• mesh      — arena-backed regular triangulation + complex bookkeeping (handles, not pointers)
//		• cellqueue — worst-first cell priority store (direct & versioned erase policies)
//		• spatial   — coarse 3D try-lock grid for parallel region locking
//		• exuder    — the engine: pre-star expansion, vertex pumping, transactional
//		              local retriangulation, sequential & parallel schedulers
//
// ✨ Why choose exude?
//
//   - Deterministic – the sequential scheduler processes cells strictly worst-first,
//     heaps break ties by handle, two identical runs produce identical meshes
//   - Safe parallelism – spatial locks plus revision counters let workers pump
//     different vertices of one shared mesh with all-or-nothing local updates
//   - Pluggable quality – bring your own sliver criterion; radius-ratio ships as default
//   - Pure Go – no cgo, no hidden deps
//
// Quick ASCII picture of one pump:
//
//	     before                 after
//	   ____________          ____________
//	   \  sliver  /    =>    \    |     /
//	    \________/            \___|____/     v's weight grew, the flat
//	        v                      v         tet got retriangulated away
//
// Entry point: build an engine with exuder.New(complex, criterion, options)
// and call Run on it.
//
//	go get github.com/tetforge/exude
package exude
