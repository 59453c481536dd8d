package geom

import "math"

// Rect is an axis-aligned rectangle stored as its four corners in the
// winding order (minX,minY), (maxX,minY), (maxX,maxY), (minX,maxY).
type Rect [4]Point

// NewRect returns the rectangle with lower-left corner (x, y) and the given
// extent on the z = 0 plane.
func NewRect(x, y, w, h float64) Rect {
	return Rect{
		Pt(x, y),
		Pt(x+w, y),
		Pt(x+w, y+h),
		Pt(x, y+h),
	}
}

// Bounds returns the min and max corners. Only the diagonal corners are
// consulted, so it is safe on any rectangle built by NewRect or Translate.
func (r Rect) Bounds() (min, max Point) {
	min = Pt(math.Min(r[0].X, r[2].X), math.Min(r[0].Y, r[2].Y))
	max = Pt(math.Max(r[0].X, r[2].X), math.Max(r[0].Y, r[2].Y))
	return min, max
}

// Width returns the X extent.
func (r Rect) Width() float64 {
	min, max := r.Bounds()
	return max.X - min.X
}

// Height returns the Y extent.
func (r Rect) Height() float64 {
	min, max := r.Bounds()
	return max.Y - min.Y
}

// Area returns Width*Height.
func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

// Translate returns a copy of r shifted by dx, dy.
func (r Rect) Translate(dx, dy float64) Rect {
	var out Rect
	for i, p := range r {
		out[i] = p.Add(dx, dy)
	}
	return out
}

// Edges returns the four boundary segments in corner order:
// p1p2, p2p3, p3p4, p4p1.
func (r Rect) Edges() [4]Segment {
	return [4]Segment{
		NewSegment(r[0], r[1]),
		NewSegment(r[1], r[2]),
		NewSegment(r[2], r[3]),
		NewSegment(r[3], r[0]),
	}
}

// Overlaps reports whether the open interiors of r and o intersect.
// Rectangles that only share an edge or a corner do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	amin, amax := r.Bounds()
	bmin, bmax := o.Bounds()
	return amin.X < bmax.X-Epsilon && amax.X > bmin.X+Epsilon &&
		amin.Y < bmax.Y-Epsilon && amax.Y > bmin.Y+Epsilon
}

// Within reports whether r lies inside [0,w]x[0,h] within Epsilon.
func (r Rect) Within(w, h float64) bool {
	min, max := r.Bounds()
	return min.X >= -Epsilon && min.Y >= -Epsilon &&
		max.X <= w+Epsilon && max.Y <= h+Epsilon
}
