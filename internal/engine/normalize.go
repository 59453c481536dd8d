package engine

import (
	"github.com/piwi3910/ModuPlan/internal/geom"
	"github.com/piwi3910/ModuPlan/internal/model"
)

// NormalizeLayout returns a copy of layout whose bounding-box center is ref.
// An empty layout is returned unchanged.
func NormalizeLayout(layout model.Layout, ref geom.Point) model.Layout {
	if len(layout) == 0 {
		return layout
	}
	return layout.CenterOn(ref)
}

// ExtractPerimeter returns the outer boundary of layout: the four edges of
// every rectangle with shared stretches cancelled and touching collinear
// pieces joined.
func ExtractPerimeter(layout model.Layout) []geom.Segment {
	return geom.Outline(layout.Edges())
}
