package mesh

import (
	"github.com/tetforge/exude/geom"
)

// vertexPair is an unordered pair of vertex handles, used to match up the
// internal facets of a star fill.
type vertexPair struct {
	a, b VertexHandle
}

func pairOf(a, b VertexHandle) vertexPair {
	if b < a {
		a, b = b, a
	}
	return vertexPair{a: a, b: b}
}

// InsertInHole creates a vertex carrying wp and star-fills the evacuated
// conflict zone from its boundary facets.
//
// Each new cell starts from the vertex arrangement of the zone cell behind
// its boundary facet, with the facet's opposite vertex replaced by the new
// one, and is then reoriented: when wp lies outside the current hull the new
// vertex sits on the far side of inherited hull facets, so inheritance alone
// would produce inverted cells.
//
// Vertices of the zone interior that survive on no boundary facet are hidden
// by the insertion and freed; for a vertex pump this is exactly the replaced
// vertex. Zone cells are destroyed (revision bump included) on the way out.
func (t *Triangulation) InsertInHole(wp geom.WeightedPoint, zone Zone) VertexHandle {
	v := t.newVertex(wp)

	open := make(map[vertexPair]Facet, 4*len(zone.Boundary))
	newCells := make([]CellHandle, 0, len(zone.Boundary))

	for _, bf := range zone.Boundary {
		out := t.MirrorFacet(bf) // resolve before the zone cell dies

		vv := t.a.cell(bf.Cell).v
		vv[bf.I] = v
		nc := t.newCell(vv[0], vv[1], vv[2], vv[3])
		ncd := t.a.cell(nc)

		// Across the boundary facet: the untouched outside cell.
		ncd.n[bf.I] = out.Cell
		t.a.cell(out.Cell).n[out.I] = nc

		// The other three facets contain v; match them pairwise between new
		// cells by their non-v vertex pair.
		for j := 0; j < 4; j++ {
			if j == bf.I {
				continue
			}
			var e [2]VertexHandle
			idx := 0
			for k := 0; k < 4; k++ {
				if k != j && k != bf.I {
					e[idx] = vv[k]
					idx++
				}
			}
			key := pairOf(e[0], e[1])
			if tw, ok := open[key]; ok {
				ncd.n[j] = tw.Cell
				t.a.cell(tw.Cell).n[tw.I] = nc
				delete(open, key)
			} else {
				open[key] = Facet{Cell: nc, I: j}
			}
		}

		for k := 0; k < 4; k++ {
			t.a.vert(vv[k]).cell = nc
		}
		newCells = append(newCells, nc)
	}

	if len(open) != 0 {
		panic("mesh: hole boundary is not closed")
	}

	// Reorient cells that came out negative. Swapping one vertex pair along
	// with its neighbor pair flips parity and keeps every facet opposite its
	// vertex, so the wiring above stays valid. An unbounded cell is tested
	// through the orientation convention: the apex of the finite cell behind
	// its hull facet stands in for the infinite vertex.
	for _, nc := range newCells {
		ncd := t.a.cell(nc)

		var q [4]geom.Point3
		inf := -1
		for i := 0; i < 4; i++ {
			if ncd.v[i] == InfiniteVertex {
				inf = i
				continue
			}
			q[i] = t.a.vert(ncd.v[i]).point.Point3
		}
		if inf >= 0 {
			m := t.MirrorFacet(Facet{Cell: nc, I: inf})
			q[inf] = t.a.vert(t.a.cell(m.Cell).v[m.I]).point.Point3
		}

		if geom.Orient3D(q[0], q[1], q[2], q[3]) < 0 {
			ncd.v[0], ncd.v[1] = ncd.v[1], ncd.v[0]
			ncd.n[0], ncd.n[1] = ncd.n[1], ncd.n[0]
		}
	}

	// Vertices interior to the zone are hidden: they appear in no new cell.
	survivors := make(map[VertexHandle]struct{}, 4*len(newCells))
	for _, nc := range newCells {
		for _, w := range t.a.cell(nc).v {
			survivors[w] = struct{}{}
		}
	}
	hidden := make(map[VertexHandle]struct{})
	for _, c := range zone.Cells {
		for _, w := range t.a.cell(c).v {
			if w == InfiniteVertex {
				continue
			}
			if _, ok := survivors[w]; !ok {
				hidden[w] = struct{}{}
			}
		}
	}
	for w := range hidden {
		t.destroyVertex(w)
	}

	for _, c := range zone.Cells {
		t.destroyCell(c)
	}

	return v
}

// Insert adds wp to the triangulation. It locates the conflict zone by
// scanning for a first conflicting cell (adequate for the moderate meshes
// this package targets), evacuates it, and star-fills the hole. A point in
// conflict with nothing is hidden and reported as ErrNoConflict.
func (t *Triangulation) Insert(wp geom.WeightedPoint) (VertexHandle, error) {
	hint := NilCell
	for _, c := range t.Cells() {
		if t.inConflict(c, wp) {
			hint = c
			break
		}
	}
	if hint == NilCell {
		return NilVertex, ErrNoConflict
	}

	zone, err := t.FindConflicts(wp, hint)
	if err != nil {
		return NilVertex, err
	}

	return t.InsertInHole(wp, zone), nil
}

// Triangulate builds a regular triangulation of the given weighted points by
// incremental insertion. Hidden points (dominated by a neighbor's weight)
// are silently skipped, as they carry no vertex in a regular triangulation.
func Triangulate(points []geom.WeightedPoint) (*Triangulation, error) {
	i0, i1, i2, i3, ok := firstSimplex(points)
	if !ok {
		return nil, ErrDegenerateInput
	}

	t := NewTriangulation()

	p0, p1, p2, p3 := points[i0], points[i1], points[i2], points[i3]
	if geom.Orient3D(p0.Point3, p1.Point3, p2.Point3, p3.Point3) < 0 {
		p2, p3 = p3, p2
	}

	a := t.newVertex(p0)
	b := t.newVertex(p1)
	c := t.newVertex(p2)
	d := t.newVertex(p3)

	fin := t.newCell(a, b, c, d)
	var inf [4]CellHandle
	for i := 0; i < 4; i++ {
		vv := t.a.cell(fin).v
		vv[i] = InfiniteVertex
		inf[i] = t.newCell(vv[0], vv[1], vv[2], vv[3])
	}
	for i := 0; i < 4; i++ {
		t.a.cell(fin).n[i] = inf[i]
		icd := t.a.cell(inf[i])
		for j := 0; j < 4; j++ {
			if j == i {
				icd.n[j] = fin
			} else {
				icd.n[j] = inf[j]
			}
		}
	}

	for _, w := range t.a.cell(fin).v {
		t.a.vert(w).cell = fin
	}
	t.a.vert(InfiniteVertex).cell = inf[0]

	used := map[int]struct{}{i0: {}, i1: {}, i2: {}, i3: {}}
	for i, p := range points {
		if _, skip := used[i]; skip {
			continue
		}
		if _, err := t.Insert(p); err != nil && err != ErrNoConflict {
			return nil, err
		}
	}

	return t, nil
}

// firstSimplex greedily picks four affinely independent points.
func firstSimplex(points []geom.WeightedPoint) (i0, i1, i2, i3 int, ok bool) {
	if len(points) < 4 {
		return 0, 0, 0, 0, false
	}

	i0 = 0
	i1, i2, i3 = -1, -1, -1
	for i := 1; i < len(points); i++ {
		if geom.SquaredDistance(points[i0].Point3, points[i].Point3) > 0 {
			i1 = i
			break
		}
	}
	if i1 < 0 {
		return 0, 0, 0, 0, false
	}
	for i := i1 + 1; i < len(points); i++ {
		u := points[i1].Sub(points[i0].Point3)
		w := points[i].Sub(points[i0].Point3)
		if u.Cross(w).Norm2() > 0 {
			i2 = i
			break
		}
	}
	if i2 < 0 {
		return 0, 0, 0, 0, false
	}
	for i := i2 + 1; i < len(points); i++ {
		if geom.Orient3D(points[i0].Point3, points[i1].Point3, points[i2].Point3, points[i].Point3) != 0 {
			i3 = i
			break
		}
	}
	if i3 < 0 {
		return 0, 0, 0, 0, false
	}

	return i0, i1, i2, i3, true
}
