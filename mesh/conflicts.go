package mesh

import (
	"github.com/tetforge/exude/geom"
	"github.com/tetforge/exude/spatial"
)

// Zone is the conflict region of a candidate weighted point: the cells that
// must die, the facets separating the region from the rest of the mesh (seen
// from the inside), and the facets interior to the region (each exactly
// once).
type Zone struct {
	Cells    []CellHandle
	Boundary []Facet
	Internal []Facet
}

// inConflict reports whether inserting wp would destroy cell c.
//
// For an unbounded cell the power test degenerates to an orientation test
// against the hull facet: the cell conflicts when wp lies strictly beyond the
// hull, and ties are resolved by the bounded cell behind the facet. The sign
// convention follows the construction invariant that substituting any point
// interior to the hull for the infinite vertex yields a positively oriented
// tetrahedron.
func (t *Triangulation) inConflict(c CellHandle, wp geom.WeightedPoint) bool {
	inf := t.infiniteIndex(c)
	if inf < 0 {
		pts := t.CellPoints(c)
		return geom.InConflict(pts[0], pts[1], pts[2], pts[3], wp)
	}

	cd := t.a.cell(c)
	var q [4]geom.Point3
	for i := 0; i < 4; i++ {
		if i == inf {
			q[i] = wp.Point3
		} else {
			q[i] = t.a.vert(cd.v[i]).point.Point3
		}
	}

	s := geom.Orient3D(q[0], q[1], q[2], q[3])
	if s != 0 {
		return s < 0
	}

	// On the hull plane: defer to the bounded cell behind the hull facet.
	m := t.MirrorFacet(Facet{Cell: c, I: inf})
	pts := t.CellPoints(m.Cell)
	return geom.InConflict(pts[0], pts[1], pts[2], pts[3], wp)
}

// FindConflicts enumerates the conflict zone of wp by breadth-first search
// from the hint cell, which must itself be in conflict.
func (t *Triangulation) FindConflicts(wp geom.WeightedPoint, hint CellHandle) (Zone, error) {
	if !t.inConflict(hint, wp) {
		return Zone{}, ErrNoConflict
	}

	inZone := map[CellHandle]bool{hint: true}
	cells := []CellHandle{hint}

	for k := 0; k < len(cells); k++ {
		cd := t.a.cell(cells[k])
		for i := 0; i < 4; i++ {
			n := cd.n[i]
			if _, visited := inZone[n]; visited {
				continue
			}
			if t.inConflict(n, wp) {
				inZone[n] = true
				cells = append(cells, n)
			} else {
				inZone[n] = false
			}
		}
	}

	return t.classifyZone(cells, inZone), nil
}

// FindConflictsLocked is the non-blocking variant used by parallel pumping:
// every cell it inspects (conflicting or not) is claimed through the guard
// first. ok=false means a lock could not be acquired and nothing can be
// concluded; the caller releases the guard and retries or abandons.
func (t *Triangulation) FindConflictsLocked(
	wp geom.WeightedPoint,
	hint CellHandle,
	g *spatial.Guard,
) (Zone, bool, error) {
	if !t.TryLockCell(hint, g) {
		return Zone{}, false, nil
	}
	if !t.inConflict(hint, wp) {
		return Zone{}, true, ErrNoConflict
	}

	inZone := map[CellHandle]bool{hint: true}
	cells := []CellHandle{hint}

	for k := 0; k < len(cells); k++ {
		cd := t.a.cell(cells[k])
		for i := 0; i < 4; i++ {
			n := cd.n[i]
			if _, visited := inZone[n]; visited {
				continue
			}
			if !t.TryLockCell(n, g) {
				return Zone{}, false, nil
			}
			if t.inConflict(n, wp) {
				inZone[n] = true
				cells = append(cells, n)
			} else {
				inZone[n] = false
			}
		}
	}

	return t.classifyZone(cells, inZone), true, nil
}

// classifyZone splits the facets of the zone cells into boundary facets
// (neighbor outside) and internal facets (both sides inside, emitted once).
func (t *Triangulation) classifyZone(cells []CellHandle, inZone map[CellHandle]bool) Zone {
	z := Zone{Cells: cells}
	for _, c := range cells {
		cd := t.a.cell(c)
		for i := 0; i < 4; i++ {
			n := cd.n[i]
			switch {
			case !inZone[n]:
				z.Boundary = append(z.Boundary, Facet{Cell: c, I: i})
			case c < n:
				z.Internal = append(z.Internal, Facet{Cell: c, I: i})
			}
		}
	}
	return z
}
