// The transactional half of a pump: tear the conflict zone of the heavier
// weighted point out of the mesh, refill the hole, and restore the complex
// attributes captured beforehand. Either the whole update happens or (on a
// lock failure in parallel mode) nothing does.
package exuder

import (
	"github.com/tetforge/exude/geom"
	"github.com/tetforge/exude/mesh"
	"github.com/tetforge/exude/spatial"
)

// orderedEdge is an unordered vertex pair stored with a < b, the key of the
// umbrella map.
type orderedEdge struct {
	a, b mesh.VertexHandle
}

func edgeOf(v1, v2 mesh.VertexHandle) orderedEdge {
	if v2 < v1 {
		v1, v2 = v2, v1
	}
	return orderedEdge{a: v1, b: v2}
}

// boundaryTags are the attributes of one conflict-zone boundary facet as
// seen from outside: its surface patch and the subdomain of the doomed
// inside cell. Zero tags mean "not in the complex".
type boundaryTags struct {
	surface   int32
	subdomain int32
}

// updateMesh replaces old's weighted point with wp. It returns false only in
// parallel mode when the conflict zone could not be locked, in which case
// the mesh is untouched.
func (e *Exuder) updateMesh(wp geom.WeightedPoint, old mesh.VertexHandle, g *spatial.Guard) bool {
	verticesBefore := e.tr.NumVertices()

	var zone mesh.Zone
	var err error
	if g != nil {
		var ok bool
		zone, ok, err = e.tr.FindConflictsLocked(wp, e.tr.IncidentCellOf(old), g)
		if !ok {
			return false
		}
	} else {
		zone, err = e.tr.FindConflicts(wp, e.tr.IncidentCellOf(old))
	}
	if err != nil {
		// The pumped vertex's own cell conflicts with any heavier weight at
		// the same position; a miss here is a corrupted mesh.
		panic("exuder: conflict zone of a pumped vertex is empty")
	}

	// Capture restoration data before anything is torn down.
	boundaryInfo := e.boundaryFacetsFromOutside(zone.Boundary)
	umbrella := e.captureUmbrella(zone.Internal, old)

	// The doomed cells leave the priority store first: their handles are
	// about to be invalidated.
	for _, c := range zone.Cells {
		e.queue.Erase(c)
	}

	// Then the complex.
	for _, f := range zone.Boundary {
		if e.cx.IsFacetInComplex(f) {
			e.cx.RemoveFacetFromComplex(f)
		}
	}
	for _, f := range zone.Internal {
		if e.cx.IsFacetInComplex(f) {
			e.cx.RemoveFacetFromComplex(f)
		}
	}
	for _, c := range zone.Cells {
		if e.cx.IsCellInComplex(c) {
			e.cx.RemoveCellFromComplex(c)
		}
	}

	dim := e.cx.Dimension(old)
	feature := e.cx.FeatureIndex(old)

	newVertex := e.tr.InsertInHole(wp, zone)

	e.cx.SetDimension(newVertex, dim)
	e.cx.SetFeatureIndex(newVertex, feature)

	if g == nil && e.tr.NumVertices() != verticesBefore {
		// Sequential pumping replaces exactly one vertex by one vertex.
		panic("exuder: vertex count changed across a pump")
	}

	e.restoreCellsAndBoundaryFacets(boundaryInfo, newVertex)
	e.restoreInternalFacets(umbrella, newVertex)

	return true
}

// boundaryFacetsFromOutside records, keyed by the mirrored facet (which
// survives the retriangulation), the surface and subdomain tags of every
// facet on the conflict-zone boundary.
func (e *Exuder) boundaryFacetsFromOutside(boundary []mesh.Facet) map[mesh.Facet]boundaryTags {
	info := make(map[mesh.Facet]boundaryTags, len(boundary))
	for _, f := range boundary {
		info[e.tr.MirrorFacet(f)] = boundaryTags{
			surface:   e.cx.SurfacePatch(f),
			subdomain: e.cx.Subdomain(f.Cell),
		}
	}
	return info
}

// captureUmbrella records the surface tag of every internal surface facet
// around v, keyed by the facet's edge opposite v. Those edges survive the
// retriangulation even though the facets do not.
func (e *Exuder) captureUmbrella(internal []mesh.Facet, v mesh.VertexHandle) map[orderedEdge]int32 {
	umbrella := make(map[orderedEdge]int32)
	for _, f := range internal {
		if !e.cx.IsFacetInComplex(f) {
			continue
		}
		if edge, ok := e.oppositeEdge(f, v); ok {
			umbrella[edge] = e.cx.SurfacePatch(f)
		}
	}
	return umbrella
}

// oppositeEdge returns the edge of facet f not touching v. It reports false
// when f does not contain v (its tags cannot be keyed by an edge around v).
func (e *Exuder) oppositeEdge(f mesh.Facet, v mesh.VertexHandle) (orderedEdge, bool) {
	fv := e.tr.FacetVertices(f)

	var pair [2]mesh.VertexHandle
	n := 0
	for _, w := range fv {
		if w == v {
			continue
		}
		if n == 2 {
			return orderedEdge{}, false
		}
		pair[n] = w
		n++
	}
	if n != 2 {
		return orderedEdge{}, false
	}

	return edgeOf(pair[0], pair[1]), true
}

// restoreCellsAndBoundaryFacets rebuilds the complex membership of the star
// of newVertex from the captured boundary map, requeueing new cells that
// fall below the bound. Every new cell has exactly one facet on the former
// zone boundary; a missing map entry is a broken transaction.
func (e *Exuder) restoreCellsAndBoundaryFacets(
	boundaryInfo map[mesh.Facet]boundaryTags,
	newVertex mesh.VertexHandle,
) {
	for _, c := range e.tr.IncidentCells(newVertex) {
		newFacet := mesh.Facet{Cell: c, I: e.tr.VertexIndexInCell(c, newVertex)}
		fromOutside := e.tr.MirrorFacet(newFacet)

		tags, ok := boundaryInfo[fromOutside]
		if !ok {
			panic("exuder: new cell has no captured boundary facet")
		}

		if tags.surface != 0 {
			e.cx.AddFacetToComplex(newFacet, tags.surface)
		}
		if tags.subdomain != 0 {
			e.cx.AddCellToComplex(c, tags.subdomain)

			if value := e.cellQuality(c); value < e.bound {
				e.requeue(c, value)
			}
		}
	}
}

// restoreInternalFacets puts back the surface tags of re-created facets
// around newVertex. An edge absent from the umbrella simply was not a
// surface facet before.
func (e *Exuder) restoreInternalFacets(umbrella map[orderedEdge]int32, newVertex mesh.VertexHandle) {
	for _, f := range e.tr.IncidentFacets(newVertex) {
		edge, ok := e.oppositeEdge(f, newVertex)
		if !ok {
			continue
		}
		if tag, ok := umbrella[edge]; ok {
			e.cx.AddFacetToComplex(f, tag)
		}
	}
}
