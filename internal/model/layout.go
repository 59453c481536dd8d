package model

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/piwi3910/ModuPlan/internal/geom"
)

// Layout is one concrete placement of every module of a combination, in
// placement order.
type Layout []geom.Rect

// Clone returns a deep copy.
func (l Layout) Clone() Layout {
	if l == nil {
		return nil
	}
	out := make(Layout, len(l))
	copy(out, l)
	return out
}

// Bounds returns the min and max corners of the bounding box around all
// rectangles. An empty layout has zero bounds.
func (l Layout) Bounds() (min, max geom.Point) {
	if len(l) == 0 {
		return geom.Point{}, geom.Point{}
	}
	min = geom.Pt(math.MaxFloat64, math.MaxFloat64)
	max = geom.Pt(-math.MaxFloat64, -math.MaxFloat64)
	for _, r := range l {
		rmin, rmax := r.Bounds()
		min.X = math.Min(min.X, rmin.X)
		min.Y = math.Min(min.Y, rmin.Y)
		max.X = math.Max(max.X, rmax.X)
		max.Y = math.Max(max.Y, rmax.Y)
	}
	return min, max
}

// Center returns the center of the bounding box.
func (l Layout) Center() geom.Point {
	min, max := l.Bounds()
	return geom.Pt((min.X+max.X)/2, (min.Y+max.Y)/2)
}

// Size returns the bounding box extent.
func (l Layout) Size() (w, h float64) {
	min, max := l.Bounds()
	return max.X - min.X, max.Y - min.Y
}

// Translate returns a copy shifted by dx, dy.
func (l Layout) Translate(dx, dy float64) Layout {
	out := make(Layout, len(l))
	for i, r := range l {
		out[i] = r.Translate(dx, dy)
	}
	return out
}

// CenterOn returns a copy whose bounding-box center is ref.
func (l Layout) CenterOn(ref geom.Point) Layout {
	if len(l) == 0 {
		return l.Clone()
	}
	c := l.Center()
	return l.Translate(ref.X-c.X, ref.Y-c.Y)
}

// Edges returns the four edges of every rectangle, rectangle by rectangle.
func (l Layout) Edges() []geom.Segment {
	segs := make([]geom.Segment, 0, 4*len(l))
	for _, r := range l {
		e := r.Edges()
		segs = append(segs, e[:]...)
	}
	return segs
}

// ModuleArea sums the rectangle areas.
func (l Layout) ModuleArea() float64 {
	var total float64
	for _, r := range l {
		total += r.Area()
	}
	return total
}

// Signature identifies a layout by the multiset of its rectangle
// positions, independent of placement order.
type Signature string

// signatureScale quantizes coordinates to 4 decimal digits.
const signatureScale = 1e4

type rectKey [8]int64

func quantize(v float64) int64 {
	return int64(math.Round(v * signatureScale))
}

// Signature returns the canonical key of l: each rectangle's corner X/Y
// pairs quantized to 4 decimals, the per-rectangle tuples sorted, then
// joined.
func (l Layout) Signature() Signature {
	keys := make([]rectKey, len(l))
	for i, r := range l {
		for c, p := range r {
			keys[i][2*c] = quantize(p.X)
			keys[i][2*c+1] = quantize(p.Y)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})

	var sb strings.Builder
	buf := make([]byte, 0, 24)
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('|')
		}
		for c, v := range k {
			if c > 0 {
				sb.WriteByte(',')
			}
			buf = strconv.AppendInt(buf[:0], v, 10)
			sb.Write(buf)
		}
	}
	return Signature(sb.String())
}

// LayoutStats summarizes one layout.
type LayoutStats struct {
	Modules         int     `json:"modules"`
	ModuleArea      float64 `json:"module_area"`
	BoundingWidth   float64 `json:"bounding_width"`
	BoundingHeight  float64 `json:"bounding_height"`
	BoundingArea    float64 `json:"bounding_area"`
	Efficiency      float64 `json:"efficiency"`       // module area / bounding area, percent
	AspectRatio     float64 `json:"aspect_ratio"`     // long side / short side, >= 1
	PerimeterLength float64 `json:"perimeter_length"` // length of the reduced outline
}
