package geom

import "math"

// Orient3D returns the signed six-fold volume of the tetrahedron (a,b,c,d):
// positive when d lies on the positive side of the oriented plane (a,b,c),
// negative on the other side, zero when the four points are coplanar.
func Orient3D(a, b, c, d Point3) float64 {
	u := b.Sub(a)
	v := c.Sub(a)
	w := d.Sub(a)

	return u.Cross(v).Dot(w)
}

// Orthosphere computes the sphere orthogonal to the four weighted points
// p0..p3: its center and its power weight pw (the squared orthoradius).
// A weighted point (q, wq) is orthogonal to the returned sphere exactly when
// |q-center|² == pw + wq.
//
// ok is false when the four points are coplanar (the linear system is
// singular) and center/pw are meaningless.
func Orthosphere(p0, p1, p2, p3 WeightedPoint) (center Point3, pw float64, ok bool) {
	// Subtracting the p0 equation from the others yields the linear system
	//   2(pi-p0)·x = (|pi|² - wi) - (|p0|² - w0),  i = 1..3
	// solved here by Cramer's rule.
	r1 := p1.Sub(p0.Point3)
	r2 := p2.Sub(p0.Point3)
	r3 := p3.Sub(p0.Point3)

	k0 := p0.Norm2() - p0.W
	b := Point3{
		X: 0.5 * (p1.Norm2() - p1.W - k0),
		Y: 0.5 * (p2.Norm2() - p2.W - k0),
		Z: 0.5 * (p3.Norm2() - p3.W - k0),
	}

	det := r1.Cross(r2).Dot(r3)
	if det == 0 || math.IsNaN(det) {
		return Point3{}, 0, false
	}

	inv := 1 / det
	center = Point3{
		X: b.X*(r2.Y*r3.Z-r2.Z*r3.Y) - b.Y*(r1.Y*r3.Z-r1.Z*r3.Y) + b.Z*(r1.Y*r2.Z-r1.Z*r2.Y),
		Y: -b.X*(r2.X*r3.Z-r2.Z*r3.X) + b.Y*(r1.X*r3.Z-r1.Z*r3.X) - b.Z*(r1.X*r2.Z-r1.Z*r2.X),
		Z: b.X*(r2.X*r3.Y-r2.Y*r3.X) - b.Y*(r1.X*r3.Y-r1.Y*r3.X) + b.Z*(r1.X*r2.Y-r1.Y*r2.X),
	}
	center = center.Scale(inv)

	pw = SquaredDistance(center, p0.Point3) - p0.W

	return center, pw, true
}

// CriticalSquaredRadius returns the weight at which a weighted point placed
// at v becomes orthogonal to the orthosphere of (p0,p1,p2,p3): below it the
// candidate does not conflict with the cell, above it the cell lies inside
// the candidate's conflict zone. Returns +Inf when the cell is degenerate.
func CriticalSquaredRadius(p0, p1, p2, p3 WeightedPoint, v Point3) float64 {
	center, pw, ok := Orthosphere(p0, p1, p2, p3)
	if !ok {
		return math.Inf(1)
	}

	return SquaredDistance(v, center) - pw
}

// PowerProduct returns the power product of the weighted point q against the
// orthosphere of (p0,p1,p2,p3). Negative means q is in conflict with the
// cell. Returns +Inf for degenerate cells (never in conflict).
func PowerProduct(p0, p1, p2, p3, q WeightedPoint) float64 {
	center, pw, ok := Orthosphere(p0, p1, p2, p3)
	if !ok {
		return math.Inf(1)
	}

	return SquaredDistance(q.Point3, center) - pw - q.W
}

// InConflict reports whether the weighted point q conflicts with the cell
// (p0,p1,p2,p3), i.e. inserting q would destroy that cell in a regular
// triangulation.
func InConflict(p0, p1, p2, p3, q WeightedPoint) bool {
	return PowerProduct(p0, p1, p2, p3, q) < 0
}
