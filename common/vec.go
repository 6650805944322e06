package common

import "math"

// Point2 is a 2D point in glyph/layout space (y up).
type Point2 struct {
	X, Y float64
}

// Add returns p + q.
func (p Point2) Add(q Point2) Point2 { return Point2{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point2) Sub(q Point2) Point2 { return Point2{p.X - q.X, p.Y - q.Y} }

// Scale returns p * s.
func (p Point2) Scale(s float64) Point2 { return Point2{p.X * s, p.Y * s} }

// Cross returns the z component of the 3D cross product of p and q.
func (p Point2) Cross(q Point2) float64 { return p.X*q.Y - p.Y*q.X }

// Dist returns the Euclidean distance between p and q.
func (p Point2) Dist(q Point2) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Lerp interpolates between p and q.
func (p Point2) Lerp(q Point2, t float64) Point2 {
	return Point2{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Point3 is an immutable 3D point/vector value.
type Point3 struct {
	X, Y, Z float64
}

// Add returns p + q.
func (p Point3) Add(q Point3) Point3 { return Point3{p.X + q.X, p.Y + q.Y, p.Z + q.Z} }

// Sub returns p - q.
func (p Point3) Sub(q Point3) Point3 { return Point3{p.X - q.X, p.Y - q.Y, p.Z - q.Z} }

// Scale returns p * s.
func (p Point3) Scale(s float64) Point3 { return Point3{p.X * s, p.Y * s, p.Z * s} }

// Dot returns the dot product.
func (p Point3) Dot(q Point3) float64 { return p.X*q.X + p.Y*q.Y + p.Z*q.Z }

// Cross returns the cross product.
func (p Point3) Cross(q Point3) Point3 {
	return Point3{
		p.Y*q.Z - p.Z*q.Y,
		p.Z*q.X - p.X*q.Z,
		p.X*q.Y - p.Y*q.X,
	}
}

// Len returns the vector magnitude.
func (p Point3) Len() float64 { return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z) }

// LenSq returns the squared magnitude.
func (p Point3) LenSq() float64 { return p.X*p.X + p.Y*p.Y + p.Z*p.Z }

// Dist returns the distance between p and q.
func (p Point3) Dist(q Point3) float64 { return p.Sub(q).Len() }

// Normalize returns the unit vector in the direction of p.
// The zero vector is returned unchanged.
func (p Point3) Normalize() Point3 {
	l := p.Len()
	if l == 0 {
		return p
	}
	return p.Scale(1 / l)
}

// Lerp interpolates between p and q.
func (p Point3) Lerp(q Point3, t float64) Point3 {
	return Point3{
		p.X + (q.X-p.X)*t,
		p.Y + (q.Y-p.Y)*t,
		p.Z + (q.Z-p.Z)*t,
	}
}

// RotateY rotates p around the y axis by angle radians.
func (p Point3) RotateY(angle float64) Point3 {
	s, c := math.Sincos(angle)
	return Point3{X: p.X*c + p.Z*s, Y: p.Y, Z: -p.X*s + p.Z*c}
}

// ClosestOnRay returns the parameter t >= 0 of the point on the ray
// origin + dir*t closest to p, and that point. dir must be normalized.
func ClosestOnRay(origin, dir, p Point3) (float64, Point3) {
	t := p.Sub(origin).Dot(dir)
	if t < 0 {
		t = 0
	}
	return t, origin.Add(dir.Scale(t))
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max Point3
}

// EmptyBox returns a box that any Extend call will replace.
func EmptyBox() Box {
	inf := math.Inf(1)
	return Box{
		Min: Point3{inf, inf, inf},
		Max: Point3{-inf, -inf, -inf},
	}
}

// Extend grows the box to include p.
func (b *Box) Extend(p Point3) {
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Min.Z = math.Min(b.Min.Z, p.Z)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
	b.Max.Z = math.Max(b.Max.Z, p.Z)
}

// IsEmpty reports whether no point has been added.
func (b Box) IsEmpty() bool { return b.Min.X > b.Max.X }

// Center returns the box center, or the origin for an empty box.
func (b Box) Center() Point3 {
	if b.IsEmpty() {
		return Point3{}
	}
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extents, or zero for an empty box.
func (b Box) Size() Point3 {
	if b.IsEmpty() {
		return Point3{}
	}
	return b.Max.Sub(b.Min)
}

// Clamp01 clamps v to [0, 1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
