// Pre-star expansion: the weight-optimization half of a pump. The pre-star
// is the boundary of the growing star of the pumped vertex, kept as a
// min-heap of facets ordered by critical radius (the weight at which the
// facet flips). Expansion absorbs the cell behind the cheapest facet, one
// flip at a time, and tracks the minimum quality of the tetrahedra the pump
// would create.
package exuder

import (
	"container/heap"
	"math"

	"github.com/tetforge/exude/geom"
	"github.com/tetforge/exude/mesh"
	"github.com/tetforge/exude/spatial"
)

// bestWeight returns the weight maximizing the minimum quality across the
// evolving star of v, or 0 when no weight improves it. The second result is
// false only in parallel mode, when some zone cell could not be locked.
func (e *Exuder) bestWeight(v mesh.VertexHandle, g *spatial.Guard) (float64, bool) {
	pre := newFacetQueue()
	cache := make(map[mesh.Facet]float64)

	if !e.initPreStar(v, pre, cache, g) {
		return 0, false
	}

	worst := minValue(cache)
	if e.onStarMin != nil {
		e.onStarMin(worst)
	}
	best := 0.0
	guard := e.sqDelta * e.tr.NearestVertexSquaredDistance(v)

	// canFlip turns false when expansion reaches a facet of the complex
	// boundary: flipping it would alter the input surface, stop pumping.
	canFlip := true
	for canFlip &&
		!pre.Empty() &&
		pre.Front().r < guard &&
		!e.cx.IsFacetInComplex(pre.Front().f) {

		criticalR := pre.Front().r
		opposite := e.tr.MirrorFacet(pre.Front().f).Cell
		if g != nil && !e.tr.TryLockCell(opposite, g) {
			return 0, false
		}

		canFlip = e.expandPreStar(opposite, v, pre, cache)
		if !canFlip {
			break
		}

		if m := minValue(cache); m > worst {
			worst = m
			if e.onStarMin != nil {
				e.onStarMin(worst)
			}

			// The optimum lies anywhere in [criticalR, next flip); take the
			// midpoint, capping the far end at the weight guard so the
			// final weight always respects it.
			next := guard
			if !pre.Empty() && pre.Front().r < next {
				next = pre.Front().r
			}
			best = (criticalR + next) / 2
		}
	}

	return best, true
}

// initPreStar seeds the pre-star with the facets of v's star and the
// criterion cache with the current quality of its complex cells. Returns
// false when the incident cells could not all be locked.
func (e *Exuder) initPreStar(
	v mesh.VertexHandle,
	pre *facetQueue,
	cache map[mesh.Facet]float64,
	g *spatial.Guard,
) bool {
	var cells []mesh.CellHandle
	if g != nil {
		var ok bool
		if cells, ok = e.tr.IncidentCellsLocked(v, g); !ok {
			return false
		}
	} else {
		cells = e.tr.IncidentCells(v)
	}

	for _, c := range cells {
		f := mesh.Facet{Cell: c, I: e.tr.VertexIndexInCell(c, v)}
		mirror := e.tr.MirrorFacet(f)

		if e.cx.IsCellInComplex(c) {
			cache[f] = e.cellQuality(c)
		}

		// A hull-facing facet has infinite critical radius; it never flips
		// and never enters the pre-star.
		if e.tr.IsInfiniteCell(mirror.Cell) {
			continue
		}
		pre.Insert(f, e.criticalRadius(v, mirror.Cell))
	}

	return true
}

// expandPreStar absorbs cellToAdd into the star of v: the front facet is
// consumed and cellToAdd's remaining facets either cancel against facets
// already in the pre-star (the star folded around them) or join it. Returns
// false when a cancelled facet lies on the complex boundary, which forbids
// the flip altogether.
func (e *Exuder) expandPreStar(
	cellToAdd mesh.CellHandle,
	v mesh.VertexHandle,
	pre *facetQueue,
	cache map[mesh.Facet]float64,
) bool {
	start := pre.PopFront()
	delete(cache, start.f)

	startMirrorIdx := e.tr.MirrorFacet(start.f).I

	for i := 0; i < 4; i++ {
		if i == startMirrorIdx {
			continue
		}

		cur := mesh.Facet{Cell: cellToAdd, I: i}
		curMirror := e.tr.MirrorFacet(cur)

		if pre.Erase(curMirror) {
			// The star already reached the other side of this facet: the two
			// copies face each other inside the star and cancel.
			if e.cx.IsFacetInComplex(curMirror) {
				return false
			}
			delete(cache, curMirror)
			continue
		}

		if !e.tr.IsInfiniteCell(curMirror.Cell) {
			pre.Insert(cur, e.criticalRadius(v, curMirror.Cell))
		}
		if e.cx.IsCellInComplex(cellToAdd) {
			fv := e.tr.FacetVertices(cur)
			cache[cur] = e.crit.Value(
				e.tr.Point(v).Point3,
				e.tr.Point(fv[0]).Point3,
				e.tr.Point(fv[1]).Point3,
				e.tr.Point(fv[2]).Point3,
			)
		}
	}

	return true
}

// criticalRadius returns the weight of v at which its power sphere becomes
// orthogonal to the orthosphere of c.
func (e *Exuder) criticalRadius(v mesh.VertexHandle, c mesh.CellHandle) float64 {
	pts := e.tr.CellPoints(c)
	return geom.CriticalSquaredRadius(pts[0], pts[1], pts[2], pts[3], e.tr.Point(v).Point3)
}

// minValue returns the smallest cached quality, or +Inf for an empty cache
// (no complex cell is tracked yet, so any value is an improvement).
func minValue(cache map[mesh.Facet]float64) float64 {
	m := math.Inf(1)
	for _, q := range cache {
		if q < m {
			m = q
		}
	}
	return m
}

// facetQueue is a min-heap of pre-star facets keyed by critical radius, with
// a membership index for the cancel-on-contact protocol. Ties break on the
// facet identity so expansion order is reproducible.
type facetQueue struct {
	h facetHeap
}

type facetEntry struct {
	f mesh.Facet
	r float64
}

func newFacetQueue() *facetQueue {
	return &facetQueue{h: facetHeap{pos: make(map[mesh.Facet]int)}}
}

func (q *facetQueue) Insert(f mesh.Facet, r float64) {
	if i, ok := q.h.pos[f]; ok {
		q.h.items[i].r = r
		heap.Fix(&q.h, i)
		return
	}
	heap.Push(&q.h, facetEntry{f: f, r: r})
}

// Erase removes f if present, reporting whether it was.
func (q *facetQueue) Erase(f mesh.Facet) bool {
	i, ok := q.h.pos[f]
	if ok {
		heap.Remove(&q.h, i)
	}
	return ok
}

func (q *facetQueue) Front() facetEntry    { return q.h.items[0] }
func (q *facetQueue) PopFront() facetEntry { return heap.Pop(&q.h).(facetEntry) }
func (q *facetQueue) Empty() bool          { return len(q.h.items) == 0 }
func (q *facetQueue) Len() int             { return len(q.h.items) }

type facetHeap struct {
	items []facetEntry
	pos   map[mesh.Facet]int
}

func (h *facetHeap) Len() int { return len(h.items) }

func (h *facetHeap) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.r != b.r {
		return a.r < b.r
	}
	if a.f.Cell != b.f.Cell {
		return a.f.Cell < b.f.Cell
	}
	return a.f.I < b.f.I
}

func (h *facetHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.pos[h.items[i].f] = i
	h.pos[h.items[j].f] = j
}

func (h *facetHeap) Push(x any) {
	e := x.(facetEntry)
	h.pos[e.f] = len(h.items)
	h.items = append(h.items, e)
}

func (h *facetHeap) Pop() any {
	n := len(h.items) - 1
	e := h.items[n]
	h.items = h.items[:n]
	delete(h.pos, e.f)
	return e
}
