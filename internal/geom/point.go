// Package geom provides the axis-aligned geometry used to describe module
// layouts: points, rectangles, boundary segments and the pairwise segment
// reduction that turns a set of adjacent rectangles into an outline.
//
// All comparisons use the absolute tolerance Epsilon, never exact float
// equality.
package geom

import "math"

// Epsilon is the absolute tolerance for coordinate comparisons.
const Epsilon = 1e-9

// NearlyEqual reports whether a and b differ by less than Epsilon.
func NearlyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Point is a coordinate in site units. Z is carried for interop with
// CAD hosts and is always 0 for placed modules.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Pt returns a point on the z = 0 plane.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p shifted by dx, dy. Z is left untouched.
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy, Z: p.Z}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	d := p.Sub(q)
	return math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
}

// Near reports whether p and q coincide within Epsilon on every axis.
func (p Point) Near(q Point) bool {
	return NearlyEqual(p.X, q.X) && NearlyEqual(p.Y, q.Y) && NearlyEqual(p.Z, q.Z)
}
