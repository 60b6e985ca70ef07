package mesh

import (
	"math"
	"sync/atomic"

	"github.com/tetforge/exude/geom"
	"github.com/tetforge/exude/spatial"
)

// Triangulation is a 3D regular (weighted Delaunay) triangulation closed at
// its convex hull by cells incident to the infinite sentinel vertex.
//
// All references between entities are handles into chunked arenas; freed
// slots are recycled and cell revision counters are bumped on invalidation.
type Triangulation struct {
	a      *arena
	nVerts atomic.Int64 // finite vertices
	nCells atomic.Int64 // alive cells (finite and infinite)
	grid   *spatial.Grid
}

// NewTriangulation creates an empty triangulation holding only the infinite
// sentinel vertex.
func NewTriangulation() *Triangulation {
	t := &Triangulation{a: newArena()}

	inf := t.a.allocVert() // slot 0
	*t.a.vert(inf) = vertexData{cell: NilCell, alive: true}

	return t
}

// SetLockGrid attaches the spatial lock grid used by the try-lock variants
// of conflict enumeration. Nil detaches it.
func (t *Triangulation) SetLockGrid(g *spatial.Grid) { t.grid = g }

// LockGrid returns the attached spatial lock grid, or nil.
func (t *Triangulation) LockGrid() *spatial.Grid { return t.grid }

// NumVertices returns the number of finite vertices.
func (t *Triangulation) NumVertices() int { return int(t.nVerts.Load()) }

// NumCells returns the number of alive cells, unbounded hull cells included.
func (t *Triangulation) NumCells() int { return int(t.nCells.Load()) }

// Point returns the weighted point of v.
func (t *Triangulation) Point(v VertexHandle) geom.WeightedPoint {
	return t.a.vert(v).point
}

// IncidentCellOf returns one cell incident to v.
func (t *Triangulation) IncidentCellOf(v VertexHandle) CellHandle {
	return t.a.vert(v).cell
}

// CellVertex returns vertex i of cell c.
func (t *Triangulation) CellVertex(c CellHandle, i int) VertexHandle {
	return t.a.cell(c).v[i]
}

// CellNeighbor returns the cell across facet i of c.
func (t *Triangulation) CellNeighbor(c CellHandle, i int) CellHandle {
	return t.a.cell(c).n[i]
}

// VertexIndexInCell returns i such that CellVertex(c, i) == v, or -1.
func (t *Triangulation) VertexIndexInCell(c CellHandle, v VertexHandle) int {
	cd := t.a.cell(c)
	for i := 0; i < 4; i++ {
		if cd.v[i] == v {
			return i
		}
	}
	return -1
}

// neighborIndex returns i such that cell c's neighbor i is n. Panics when n
// is not a neighbor of c: the neighbor relation must stay symmetric.
func (t *Triangulation) neighborIndex(c, n CellHandle) int {
	cd := t.a.cell(c)
	for i := 0; i < 4; i++ {
		if cd.n[i] == n {
			return i
		}
	}
	panic("mesh: neighbor relation is asymmetric")
}

// MirrorFacet returns the facet f as seen from the neighboring cell.
func (t *Triangulation) MirrorFacet(f Facet) Facet {
	n := t.a.cell(f.Cell).n[f.I]
	return Facet{Cell: n, I: t.neighborIndex(n, f.Cell)}
}

// IsInfiniteCell reports whether c contains the infinite sentinel vertex.
func (t *Triangulation) IsInfiniteCell(c CellHandle) bool {
	return t.infiniteIndex(c) >= 0
}

// infiniteIndex returns the slot of the infinite vertex in c, or -1.
func (t *Triangulation) infiniteIndex(c CellHandle) int {
	cd := t.a.cell(c)
	for i := 0; i < 4; i++ {
		if cd.v[i] == InfiniteVertex {
			return i
		}
	}
	return -1
}

// CellAlive reports whether the handle still names a live cell.
func (t *Triangulation) CellAlive(c CellHandle) bool {
	return t.a.cell(c).alive
}

// Rev returns the current revision counter of c.
func (t *Triangulation) Rev(c CellHandle) uint32 {
	return t.a.cell(c).rev.Load()
}

// BumpRev increments the revision counter of c, invalidating every
// (handle, revision) pair captured earlier.
func (t *Triangulation) BumpRev(c CellHandle) {
	t.a.cell(c).rev.Add(1)
}

// CellPoints returns the four weighted points of c. The cell must be finite.
func (t *Triangulation) CellPoints(c CellHandle) [4]geom.WeightedPoint {
	cd := t.a.cell(c)
	var pts [4]geom.WeightedPoint
	for i := 0; i < 4; i++ {
		pts[i] = t.a.vert(cd.v[i]).point
	}
	return pts
}

// FacetVertices returns the three vertices of facet f in the cell's local
// order (I+1)&3, (I+2)&3, (I+3)&3.
func (t *Triangulation) FacetVertices(f Facet) [3]VertexHandle {
	cd := t.a.cell(f.Cell)
	return [3]VertexHandle{
		cd.v[(f.I+1)&3],
		cd.v[(f.I+2)&3],
		cd.v[(f.I+3)&3],
	}
}

// IncidentCells returns every cell incident to v, in a deterministic
// breadth-first order seeded from v's stored incident cell.
func (t *Triangulation) IncidentCells(v VertexHandle) []CellHandle {
	start := t.a.vert(v).cell

	cells := make([]CellHandle, 0, 32)
	seen := map[CellHandle]struct{}{start: {}}
	cells = append(cells, start)

	for k := 0; k < len(cells); k++ {
		cd := t.a.cell(cells[k])
		for i := 0; i < 4; i++ {
			n := cd.n[i]
			if _, ok := seen[n]; ok {
				continue
			}
			if t.VertexIndexInCell(n, v) < 0 {
				continue
			}
			seen[n] = struct{}{}
			cells = append(cells, n)
		}
	}

	return cells
}

// IncidentCellsLocked is the non-blocking variant: every incident cell is
// claimed through the guard before being returned. On any lock failure it
// returns (nil, false) without releasing what the guard already holds — the
// caller owns the release/retry decision.
func (t *Triangulation) IncidentCellsLocked(v VertexHandle, g *spatial.Guard) ([]CellHandle, bool) {
	start := t.a.vert(v).cell
	if !t.TryLockCell(start, g) {
		return nil, false
	}

	cells := make([]CellHandle, 0, 32)
	seen := map[CellHandle]struct{}{start: {}}
	cells = append(cells, start)

	for k := 0; k < len(cells); k++ {
		cd := t.a.cell(cells[k])
		for i := 0; i < 4; i++ {
			n := cd.n[i]
			if _, ok := seen[n]; ok {
				continue
			}
			if t.VertexIndexInCell(n, v) < 0 {
				continue
			}
			if !t.TryLockCell(n, g) {
				return nil, false
			}
			seen[n] = struct{}{}
			cells = append(cells, n)
		}
	}

	return cells, true
}

// IncidentFacets returns every facet containing v exactly once.
func (t *Triangulation) IncidentFacets(v VertexHandle) []Facet {
	facets := make([]Facet, 0, 64)
	for _, c := range t.IncidentCells(v) {
		vi := t.VertexIndexInCell(c, v)
		for i := 0; i < 4; i++ {
			if i == vi {
				continue // the facet opposite v does not contain v
			}
			// Both cells adjacent to the facet contain v; emit from the
			// smaller handle only, so each facet appears once.
			if n := t.a.cell(c).n[i]; c < n {
				facets = append(facets, Facet{Cell: c, I: i})
			}
		}
	}
	return facets
}

// AdjacentVertices returns the finite vertices sharing an edge with v.
func (t *Triangulation) AdjacentVertices(v VertexHandle) []VertexHandle {
	seen := map[VertexHandle]struct{}{v: {}, InfiniteVertex: {}}
	adj := make([]VertexHandle, 0, 32)
	for _, c := range t.IncidentCells(v) {
		cd := t.a.cell(c)
		for i := 0; i < 4; i++ {
			w := cd.v[i]
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			adj = append(adj, w)
		}
	}
	return adj
}

// NearestVertexSquaredDistance returns the squared distance from v to its
// closest adjacent finite vertex, or +Inf when v has none.
func (t *Triangulation) NearestVertexSquaredDistance(v VertexHandle) float64 {
	p := t.a.vert(v).point.Point3

	best := math.Inf(1)
	for _, w := range t.AdjacentVertices(v) {
		if d := geom.SquaredDistance(p, t.a.vert(w).point.Point3); d < best {
			best = d
		}
	}

	return best
}

// TryLockCell claims the spatial voxels of every finite vertex of c through
// the guard. With no grid attached it trivially succeeds.
func (t *Triangulation) TryLockCell(c CellHandle, g *spatial.Guard) bool {
	if g == nil {
		return true
	}
	cd := t.a.cell(c)
	for i := 0; i < 4; i++ {
		if cd.v[i] == InfiniteVertex {
			continue
		}
		if !g.TryLock(t.a.vert(cd.v[i]).point.Point3) {
			return false
		}
	}
	return true
}

// Bbox returns the axis-aligned bounding box of the finite vertices.
func (t *Triangulation) Bbox() (lo, hi geom.Point3) {
	lo = geom.Point3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi = geom.Point3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}

	for h := VertexHandle(1); h < VertexHandle(t.a.vertCap()); h++ {
		vd := t.a.vert(h)
		if !vd.alive {
			continue
		}
		p := vd.point.Point3
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		lo.Z = math.Min(lo.Z, p.Z)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
		hi.Z = math.Max(hi.Z, p.Z)
	}

	return lo, hi
}

// Vertices returns every alive finite vertex in handle order.
func (t *Triangulation) Vertices() []VertexHandle {
	out := make([]VertexHandle, 0, t.NumVertices())
	for h := VertexHandle(1); h < VertexHandle(t.a.vertCap()); h++ {
		if t.a.vert(h).alive {
			out = append(out, h)
		}
	}
	return out
}

// Cells returns every alive cell in handle order, unbounded cells included.
func (t *Triangulation) Cells() []CellHandle {
	out := make([]CellHandle, 0, t.NumCells())
	for h := CellHandle(0); h < CellHandle(t.a.cellCap()); h++ {
		if t.a.cell(h).alive {
			out = append(out, h)
		}
	}
	return out
}

// FiniteCells returns every alive bounded cell in handle order.
func (t *Triangulation) FiniteCells() []CellHandle {
	out := make([]CellHandle, 0, t.NumCells())
	for _, c := range t.Cells() {
		if !t.IsInfiniteCell(c) {
			out = append(out, c)
		}
	}
	return out
}

// newVertex allocates a finite vertex.
func (t *Triangulation) newVertex(wp geom.WeightedPoint) VertexHandle {
	h := t.a.allocVert()
	*t.a.vert(h) = vertexData{point: wp, cell: NilCell, alive: true}
	t.nVerts.Add(1)
	return h
}

// destroyVertex frees a hidden vertex slot.
func (t *Triangulation) destroyVertex(v VertexHandle) {
	vd := t.a.vert(v)
	vd.alive = false
	vd.cell = NilCell
	t.nVerts.Add(-1)
	t.a.freeVert(v)
}

// newCell allocates a cell with the given vertices; neighbors start nil and
// complex attributes cleared. The slot's revision counter carries over.
func (t *Triangulation) newCell(v0, v1, v2, v3 VertexHandle) CellHandle {
	h := t.a.allocCell()
	cd := t.a.cell(h)
	cd.v = [4]VertexHandle{v0, v1, v2, v3}
	cd.n = [4]CellHandle{NilCell, NilCell, NilCell, NilCell}
	cd.subdomain = 0
	cd.surface = [4]int32{}
	cd.alive = true
	t.nCells.Add(1)
	return h
}

// destroyCell invalidates a cell: revision bump, attribute wipe, slot free.
func (t *Triangulation) destroyCell(c CellHandle) {
	cd := t.a.cell(c)
	cd.rev.Add(1)
	cd.alive = false
	cd.subdomain = 0
	cd.surface = [4]int32{}
	t.nCells.Add(-1)
	t.a.freeCell(c)
}
