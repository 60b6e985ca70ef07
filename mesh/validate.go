package mesh

import (
	"fmt"

	"github.com/tetforge/exude/geom"
)

// Validate cross-checks the structural invariants of the triangulation:
// symmetric neighbor relation, live handles everywhere, vertex incident-cell
// pointers naming live incident cells, positively oriented bounded cells,
// the unbounded-cell orientation convention, and mirrored surface tags. It
// exists for tests and debugging; production code relies on the invariants
// instead of re-checking them.
func (t *Triangulation) Validate() error {
	for _, c := range t.Cells() {
		cd := t.a.cell(c)

		for i := 0; i < 4; i++ {
			if cd.v[i] != InfiniteVertex && !t.a.vert(cd.v[i]).alive {
				return fmt.Errorf("mesh: cell %d references dead vertex %d", c, cd.v[i])
			}

			n := cd.n[i]
			if n == NilCell {
				return fmt.Errorf("mesh: cell %d has no neighbor across facet %d", c, i)
			}
			if !t.a.cell(n).alive {
				return fmt.Errorf("mesh: cell %d has dead neighbor %d", c, n)
			}
			j := -1
			for k := 0; k < 4; k++ {
				if t.a.cell(n).n[k] == c {
					j = k
					break
				}
			}
			if j < 0 {
				return fmt.Errorf("mesh: neighbor relation %d->%d is asymmetric", c, n)
			}
			if cd.surface[i] != t.a.cell(n).surface[j] {
				return fmt.Errorf("mesh: facet (%d,%d) surface tag not mirrored", c, i)
			}

			// The two cells across a facet must share exactly its 3 vertices.
			shared := 0
			for _, w := range t.FacetVertices(Facet{Cell: c, I: i}) {
				if t.VertexIndexInCell(n, w) >= 0 {
					shared++
				}
			}
			if shared != 3 {
				return fmt.Errorf("mesh: cells %d and %d share %d vertices across a facet", c, n, shared)
			}
		}

		if inf := t.infiniteIndex(c); inf < 0 {
			pts := t.CellPoints(c)
			if geom.Orient3D(pts[0].Point3, pts[1].Point3, pts[2].Point3, pts[3].Point3) <= 0 {
				return fmt.Errorf("mesh: bounded cell %d is not positively oriented", c)
			}
		} else {
			// Unbounded convention: substituting an interior point for the
			// infinite vertex must give positive orientation. The apex of
			// the bounded cell behind the hull facet is such a point.
			m := t.MirrorFacet(Facet{Cell: c, I: inf})
			var q [4]geom.Point3
			for i := 0; i < 4; i++ {
				if i == inf {
					q[i] = t.a.vert(t.a.cell(m.Cell).v[m.I]).point.Point3
				} else {
					q[i] = t.a.vert(cd.v[i]).point.Point3
				}
			}
			if geom.Orient3D(q[0], q[1], q[2], q[3]) <= 0 {
				return fmt.Errorf("mesh: unbounded cell %d breaks the hull orientation convention", c)
			}
		}
	}

	for _, v := range t.Vertices() {
		c := t.a.vert(v).cell
		if c == NilCell || !t.a.cell(c).alive {
			return fmt.Errorf("mesh: vertex %d has no live incident cell", v)
		}
		if t.VertexIndexInCell(c, v) < 0 {
			return fmt.Errorf("mesh: vertex %d incident-cell pointer is wrong", v)
		}
	}

	return nil
}
