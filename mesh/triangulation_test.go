package mesh

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tetforge/exude/geom"
)

func pt(x, y, z float64) geom.WeightedPoint {
	return geom.WeightedPoint{Point3: geom.Point3{X: x, Y: y, Z: z}}
}

// regularTetPoints are the corners of the regular tetrahedron inscribed in
// the radius-√3 sphere.
func regularTetPoints() []geom.WeightedPoint {
	return []geom.WeightedPoint{
		pt(1, 1, 1), pt(1, -1, -1), pt(-1, 1, -1), pt(-1, -1, 1),
	}
}

// jitteredCloud is a deterministic pseudo-random point cloud, comfortably
// non-degenerate.
func jitteredCloud(n int, scale float64, seed int64) []geom.WeightedPoint {
	rng := rand.New(rand.NewSource(seed))
	pts := make([]geom.WeightedPoint, n)
	for i := range pts {
		pts[i] = pt(
			scale*(2*rng.Float64()-1),
			scale*(2*rng.Float64()-1),
			scale*(2*rng.Float64()-1),
		)
	}
	return pts
}

// TestTriangulate_SingleTet: four points give one bounded cell and four hull
// cells.
func TestTriangulate_SingleTet(t *testing.T) {
	tr, err := Triangulate(regularTetPoints())
	require.NoError(t, err)
	require.NoError(t, tr.Validate())

	require.Equal(t, 4, tr.NumVertices())
	require.Len(t, tr.FiniteCells(), 1)
	require.Equal(t, 5, tr.NumCells(), "1 bounded + 4 unbounded")
}

// TestTriangulate_Degenerate rejects coplanar inputs.
func TestTriangulate_Degenerate(t *testing.T) {
	_, err := Triangulate([]geom.WeightedPoint{
		pt(0, 0, 0), pt(1, 0, 0), pt(0, 1, 0), pt(1, 1, 0),
	})
	require.ErrorIs(t, err, ErrDegenerateInput)
}

// TestInsert_CenterSplitsCell: inserting the centroid of a single tetrahedron
// yields the classic 1-to-4 split.
func TestInsert_CenterSplitsCell(t *testing.T) {
	tr, err := Triangulate(regularTetPoints())
	require.NoError(t, err)

	v, err := tr.Insert(pt(0, 0, 0))
	require.NoError(t, err)
	require.NoError(t, tr.Validate())

	require.Equal(t, 5, tr.NumVertices())
	require.Len(t, tr.FiniteCells(), 4)
	require.Len(t, tr.IncidentCells(v), 4)
	require.Len(t, tr.IncidentFacets(v), 6)
	require.Len(t, tr.AdjacentVertices(v), 4)
	require.InDelta(t, 3, tr.NearestVertexSquaredDistance(v), 1e-12)
}

// TestMirrorFacet is its own inverse and lands on a cell sharing the facet's
// three vertices.
func TestMirrorFacet(t *testing.T) {
	tr, err := Triangulate(jitteredCloud(12, 1, 1))
	require.NoError(t, err)
	require.NoError(t, tr.Validate())

	for _, c := range tr.Cells() {
		for i := 0; i < 4; i++ {
			f := Facet{Cell: c, I: i}
			m := tr.MirrorFacet(f)
			require.Equal(t, f, tr.MirrorFacet(m))
			require.NotEqual(t, f.Cell, m.Cell)
		}
	}
}

// TestFindConflicts_MatchesBruteForce: the BFS zone must equal the set of
// cells individually in conflict with the candidate.
func TestFindConflicts_MatchesBruteForce(t *testing.T) {
	tr, err := Triangulate(jitteredCloud(20, 1, 7))
	require.NoError(t, err)
	require.NoError(t, tr.Validate())

	wp := pt(0.05, -0.1, 0.02)

	want := map[CellHandle]bool{}
	hint := NilCell
	for _, c := range tr.Cells() {
		if tr.inConflict(c, wp) {
			want[c] = true
			if hint == NilCell {
				hint = c
			}
		}
	}
	require.NotEqual(t, NilCell, hint)

	zone, err := tr.FindConflicts(wp, hint)
	require.NoError(t, err)
	require.Len(t, zone.Cells, len(want))
	for _, c := range zone.Cells {
		require.True(t, want[c])
	}

	// Boundary facets separate in-zone from out-of-zone; internal facets are
	// interior, each listed once.
	for _, f := range zone.Boundary {
		require.True(t, want[f.Cell])
		require.False(t, want[tr.MirrorFacet(f).Cell])
	}
	seen := map[Facet]struct{}{}
	for _, f := range zone.Internal {
		require.True(t, want[f.Cell])
		require.True(t, want[tr.MirrorFacet(f).Cell])
		_, dup := seen[f]
		require.False(t, dup)
		seen[f] = struct{}{}
		seen[tr.MirrorFacet(f)] = struct{}{}
	}
}

// TestFindConflicts_NoConflict reports hidden candidates.
func TestFindConflicts_NoConflict(t *testing.T) {
	tr, err := Triangulate(regularTetPoints())
	require.NoError(t, err)

	// A vertex of the triangulation with weight 0 conflicts with nothing.
	hull := tr.FiniteCells()[0]
	_, err = tr.FindConflicts(geom.WeightedPoint{Point3: geom.Point3{X: 1, Y: 1, Z: 1}, W: -1}, hull)
	require.ErrorIs(t, err, ErrNoConflict)
}

// TestInsertInHole_ReplacesHiddenVertex: re-inserting an existing vertex's
// position with a larger weight removes the old vertex (it becomes hidden),
// so the vertex count is unchanged — the exuder's pump transaction relies on
// exactly this.
func TestInsertInHole_ReplacesHiddenVertex(t *testing.T) {
	tr, err := Triangulate(regularTetPoints())
	require.NoError(t, err)

	center, err := tr.Insert(pt(0, 0, 0))
	require.NoError(t, err)
	before := tr.NumVertices()

	wp := geom.WeightedPoint{Point3: tr.Point(center).Point3, W: 0.25}
	zone, err := tr.FindConflicts(wp, tr.IncidentCellOf(center))
	require.NoError(t, err)
	require.Len(t, zone.Cells, 4, "all four cells incident to the old vertex die")

	nv := tr.InsertInHole(wp, zone)
	require.NoError(t, tr.Validate())
	require.Equal(t, before, tr.NumVertices())
	require.NotEqual(t, center, nv)
	require.Equal(t, 0.25, tr.Point(nv).W)
}

// TestRevisionCounter: destroying a cell bumps its revision; slots reused by
// later cells keep counting upward.
func TestRevisionCounter(t *testing.T) {
	tr, err := Triangulate(regularTetPoints())
	require.NoError(t, err)

	c := tr.FiniteCells()[0]
	rev := tr.Rev(c)

	tr.BumpRev(c)
	require.Equal(t, rev+1, tr.Rev(c))

	_, err = tr.Insert(pt(0, 0, 0)) // destroys c
	require.NoError(t, err)
	require.GreaterOrEqual(t, tr.Rev(c), rev+2)
}

// TestIncrementalValidity: a larger jittered cloud stays structurally valid
// through every insertion and keeps every inserted vertex.
func TestIncrementalValidity(t *testing.T) {
	pts := jitteredCloud(40, 2, 42)
	tr, err := Triangulate(pts)
	require.NoError(t, err)
	require.NoError(t, tr.Validate())
	require.Equal(t, len(pts), tr.NumVertices())

	lo, hi := tr.Bbox()
	require.True(t, lo.X < hi.X && lo.Y < hi.Y && lo.Z < hi.Z)
	require.False(t, math.IsInf(lo.X, 0))
}

// TestComplexTags: facet tags mirror, cell tags round-trip, vertex attributes
// stick.
func TestComplexTags(t *testing.T) {
	tr, err := Triangulate(regularTetPoints())
	require.NoError(t, err)
	cx := NewComplex(tr)

	c := tr.FiniteCells()[0]
	require.False(t, cx.IsCellInComplex(c))

	cx.AddCellToComplex(c, 7)
	require.True(t, cx.IsCellInComplex(c))
	require.Equal(t, int32(7), cx.Subdomain(c))
	require.Equal(t, []CellHandle{c}, cx.CellsInComplex())

	f := Facet{Cell: c, I: 2}
	cx.AddFacetToComplex(f, 3)
	require.True(t, cx.IsFacetInComplex(f))
	require.True(t, cx.IsFacetInComplex(tr.MirrorFacet(f)))
	require.Equal(t, int32(3), cx.SurfacePatch(tr.MirrorFacet(f)))
	require.NoError(t, tr.Validate())

	cx.RemoveFacetFromComplex(tr.MirrorFacet(f))
	require.False(t, cx.IsFacetInComplex(f))

	cx.RemoveCellFromComplex(c)
	require.Zero(t, cx.NumCellsInComplex())

	v := tr.CellVertex(c, 0)
	cx.SetDimension(v, 2)
	cx.SetFeatureIndex(v, 11)
	require.Equal(t, 2, cx.Dimension(v))
	require.Equal(t, int32(11), cx.FeatureIndex(v))
}

// TestTriangulate_OutsideHullGrowth: an insertion beyond the current hull
// replaces infinite vertices of the conflicting unbounded cells; the rebuilt
// cells must come out positively oriented and keep the hull orientation
// convention. The initial simplex is deliberately flat, so the first outside
// point exercises the reorientation on a near-degenerate hull.
func TestTriangulate_OutsideHullGrowth(t *testing.T) {
	tr, err := Triangulate([]geom.WeightedPoint{
		pt(1, 0, 0.01), pt(0, 1, -0.01), pt(-1, 0, 0.01), pt(0, -1, -0.01),
		pt(0, 0, 1.2),
	})
	require.NoError(t, err)
	require.NoError(t, tr.Validate())

	// Keep growing the hull in several directions; every intermediate mesh
	// must stay valid.
	before := tr.NumVertices()
	for _, p := range []geom.WeightedPoint{
		pt(0, 0, -1.2), pt(3, 3, 3), pt(-3, -3, -3), pt(3, -3, 3),
	} {
		_, err := tr.Insert(p)
		require.NoError(t, err)
		require.NoError(t, tr.Validate())
	}
	require.Equal(t, before+4, tr.NumVertices())
}
