package geom

import "math"

// Point3 is a position in 3D space.
type Point3 struct {
	X, Y, Z float64
}

// WeightedPoint is a point of the power (regular) diagram: a position plus a
// scalar weight expressed in squared-length units.
type WeightedPoint struct {
	Point3
	W float64
}

// Sub returns p - q.
func (p Point3) Sub(q Point3) Point3 {
	return Point3{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Add returns p + q.
func (p Point3) Add(q Point3) Point3 {
	return Point3{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Scale returns p scaled by s.
func (p Point3) Scale(s float64) Point3 {
	return Point3{p.X * s, p.Y * s, p.Z * s}
}

// Dot returns the dot product p·q.
func (p Point3) Dot(q Point3) float64 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z
}

// Cross returns the cross product p×q.
func (p Point3) Cross(q Point3) Point3 {
	return Point3{
		p.Y*q.Z - p.Z*q.Y,
		p.Z*q.X - p.X*q.Z,
		p.X*q.Y - p.Y*q.X,
	}
}

// Norm2 returns the squared Euclidean norm of p seen as a vector.
func (p Point3) Norm2() float64 {
	return p.Dot(p)
}

// SquaredDistance returns the squared Euclidean distance between p and q.
func SquaredDistance(p, q Point3) float64 {
	d := p.Sub(q)
	return d.Norm2()
}

// Distance returns the Euclidean distance between p and q.
func Distance(p, q Point3) float64 {
	return math.Sqrt(SquaredDistance(p, q))
}
