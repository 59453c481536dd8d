package geom

import "math"

// Segment is a straight boundary edge. Start is always the lesser endpoint:
// by Y for vertical segments, by X otherwise.
type Segment struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// NewSegment builds a segment from two points, ordering them canonically.
func NewSegment(a, b Point) Segment {
	if NearlyEqual(a.X, b.X) {
		if a.Y > b.Y {
			a, b = b, a
		}
	} else if a.X > b.X {
		a, b = b, a
	}
	return Segment{Start: a, End: b}
}

// Horizontal reports whether both endpoints share the same Y.
func (s Segment) Horizontal() bool {
	return NearlyEqual(s.Start.Y, s.End.Y)
}

// Vertical reports whether both endpoints share the same X.
func (s Segment) Vertical() bool {
	return NearlyEqual(s.Start.X, s.End.X)
}

// Length returns the extent of the segment along its axis.
func (s Segment) Length() float64 {
	if s.Vertical() {
		return math.Abs(s.End.Y - s.Start.Y)
	}
	return math.Abs(s.End.X - s.Start.X)
}

// Degenerate reports whether the segment has collapsed to a point.
func (s Segment) Degenerate() bool {
	return s.Length() <= Epsilon
}

// TotalLength sums the lengths of segs.
func TotalLength(segs []Segment) float64 {
	var total float64
	for _, s := range segs {
		total += s.Length()
	}
	return total
}
