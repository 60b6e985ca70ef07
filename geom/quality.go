package geom

import "math"

// RadiusRatio returns the normalized radius-radius ratio 3·r/R of the
// tetrahedron (a,b,c,d), where r is the inradius and R the circumradius.
// The value lies in [0,1]: 1 for the regular tetrahedron, tending to 0 as the
// tetrahedron flattens. Degenerate (zero-volume or numerically broken)
// tetrahedra return 0, so "lower = worse" holds throughout.
func RadiusRatio(a, b, c, d Point3) float64 {
	vol6 := math.Abs(Orient3D(a, b, c, d))
	if vol6 == 0 {
		return 0
	}

	// Inradius: r = 3V / (A0+A1+A2+A3).
	area := triangleArea(b, c, d) + triangleArea(a, c, d) +
		triangleArea(a, b, d) + triangleArea(a, b, c)
	if area == 0 {
		return 0
	}
	r := (vol6 / 2) / area // 3V/ΣA with V = vol6/6

	// Circumradius via the unweighted orthosphere.
	_, sqR, ok := Orthosphere(
		WeightedPoint{Point3: a}, WeightedPoint{Point3: b},
		WeightedPoint{Point3: c}, WeightedPoint{Point3: d},
	)
	if !ok || sqR <= 0 {
		return 0
	}

	ratio := 3 * r / math.Sqrt(sqR)
	if math.IsNaN(ratio) || ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}

	return ratio
}

// triangleArea returns the area of triangle (a,b,c).
func triangleArea(a, b, c Point3) float64 {
	n := b.Sub(a).Cross(c.Sub(a))
	return 0.5 * math.Sqrt(n.Norm2())
}
