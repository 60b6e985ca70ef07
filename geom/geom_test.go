package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// regularTet is the regular tetrahedron inscribed in the sphere of radius √3
// centered at the origin.
func regularTet() (a, b, c, d Point3) {
	a = Point3{1, 1, 1}
	b = Point3{1, -1, -1}
	c = Point3{-1, 1, -1}
	d = Point3{-1, -1, 1}
	return a, b, c, d
}

func wp(p Point3, w float64) WeightedPoint {
	return WeightedPoint{Point3: p, W: w}
}

// TestOrient3D_Signs verifies the sign convention: positive when the fourth
// point lies on the positive side of the oriented base plane.
func TestOrient3D_Signs(t *testing.T) {
	a := Point3{0, 0, 0}
	b := Point3{1, 0, 0}
	c := Point3{0, 1, 0}

	require.Positive(t, Orient3D(a, b, c, Point3{0, 0, 1}))
	require.Negative(t, Orient3D(a, b, c, Point3{0, 0, -1}))
	require.Zero(t, Orient3D(a, b, c, Point3{0.3, 0.4, 0}))
}

// TestOrthosphere_Circumsphere checks that with zero weights the orthosphere
// degenerates to the plain circumsphere.
func TestOrthosphere_Circumsphere(t *testing.T) {
	a, b, c, d := regularTet()

	center, pw, ok := Orthosphere(wp(a, 0), wp(b, 0), wp(c, 0), wp(d, 0))
	require.True(t, ok)
	require.InDelta(t, 0, center.X, 1e-12)
	require.InDelta(t, 0, center.Y, 1e-12)
	require.InDelta(t, 0, center.Z, 1e-12)
	require.InDelta(t, 3, pw, 1e-12)
}

// TestOrthosphere_Weighted verifies the orthogonality relation
// |q-center|² = pw + wq for every defining point.
func TestOrthosphere_Weighted(t *testing.T) {
	a, b, c, d := regularTet()
	pts := []WeightedPoint{wp(a, 0.5), wp(b, 0.1), wp(c, 0), wp(d, 0.9)}

	center, pw, ok := Orthosphere(pts[0], pts[1], pts[2], pts[3])
	require.True(t, ok)
	for _, p := range pts {
		require.InDelta(t, pw+p.W, SquaredDistance(p.Point3, center), 1e-9)
	}
}

// TestOrthosphere_Coplanar reports degeneracy instead of a bogus sphere.
func TestOrthosphere_Coplanar(t *testing.T) {
	_, _, ok := Orthosphere(
		wp(Point3{0, 0, 0}, 0), wp(Point3{1, 0, 0}, 0),
		wp(Point3{0, 1, 0}, 0), wp(Point3{1, 1, 0}, 0),
	)
	require.False(t, ok)

	r := CriticalSquaredRadius(
		wp(Point3{0, 0, 0}, 0), wp(Point3{1, 0, 0}, 0),
		wp(Point3{0, 1, 0}, 0), wp(Point3{1, 1, 0}, 0),
		Point3{2, 2, 2},
	)
	require.True(t, math.IsInf(r, 1))
}

// TestCriticalSquaredRadius verifies the defining property: a point placed at
// v with exactly the critical weight has zero power product against the cell.
func TestCriticalSquaredRadius(t *testing.T) {
	a, b, c, d := regularTet()
	cell := []WeightedPoint{wp(a, 0), wp(b, 0.2), wp(c, 0), wp(d, 0.1)}
	v := Point3{2.5, 0.5, -0.25}

	crit := CriticalSquaredRadius(cell[0], cell[1], cell[2], cell[3], v)
	require.False(t, math.IsInf(crit, 0))

	prod := PowerProduct(cell[0], cell[1], cell[2], cell[3], wp(v, crit))
	require.InDelta(t, 0, prod, 1e-9)

	// Above the critical weight the point is in conflict, below it is not.
	require.True(t, InConflict(cell[0], cell[1], cell[2], cell[3], wp(v, crit+1e-6)))
	require.False(t, InConflict(cell[0], cell[1], cell[2], cell[3], wp(v, crit-1e-6)))
}

// TestPowerProduct_MonotoneInWeight: growing the candidate weight only makes
// it "more conflicting".
func TestPowerProduct_MonotoneInWeight(t *testing.T) {
	a, b, c, d := regularTet()
	v := Point3{4, 0, 0}

	prev := math.Inf(1)
	for w := 0.0; w <= 20; w += 2.5 {
		cur := PowerProduct(wp(a, 0), wp(b, 0), wp(c, 0), wp(d, 0), wp(v, w))
		require.Less(t, cur, prev)
		prev = cur
	}
}

// TestRadiusRatio covers the regular tetrahedron, a flattened sliver, and a
// fully degenerate (coplanar) quadruple.
func TestRadiusRatio(t *testing.T) {
	a, b, c, d := regularTet()
	require.InDelta(t, 1, RadiusRatio(a, b, c, d), 1e-9)

	// Corner tetrahedron (0,0,0),(1,0,0),(0,1,0),(0,0,1): r = 1/(3+√3),
	// R = √3/2, so 3r/R = √3−1.
	corner := RadiusRatio(
		Point3{0, 0, 0}, Point3{1, 0, 0}, Point3{0, 1, 0}, Point3{0, 0, 1},
	)
	require.InDelta(t, math.Sqrt(3)-1, corner, 1e-12)

	// Fourth vertex almost on the plane x+y-z=1 of (a,b,c): a sliver.
	sliver := RadiusRatio(a, b, c, Point3{0.5, 0.5, 0.01})
	require.Greater(t, sliver, 0.0)
	require.Less(t, sliver, 0.1)

	require.Zero(t, RadiusRatio(
		Point3{0, 0, 0}, Point3{1, 0, 0}, Point3{0, 1, 0}, Point3{1, 1, 0},
	))
}

// TestSquaredDistance sanity.
func TestSquaredDistance(t *testing.T) {
	require.Equal(t, 25.0, SquaredDistance(Point3{0, 0, 0}, Point3{3, 4, 0}))
	require.Equal(t, 5.0, Distance(Point3{0, 0, 0}, Point3{3, 4, 0}))
}
