// Package export writes arrangement results to PDF sheets, QR label sheets,
// DXF drawings, Excel workbooks and HTML charts.
package export

import (
	"fmt"
	"math"

	"github.com/piwi3910/ModuPlan/internal/geom"
	"github.com/piwi3910/ModuPlan/internal/model"
)

// Report is the input shared by all exporters: one combination and the
// layouts found for it on a site.
type Report struct {
	Title       string
	Site        model.Site
	ModuleTypes []model.ModuleType
	Combination model.Combination
	Layouts     []model.Layout
}

func (r Report) validate() error {
	if len(r.Layouts) == 0 {
		return fmt.Errorf("no layouts to export")
	}
	return r.Site.Validate()
}

func (r Report) title() string {
	if r.Title != "" {
		return r.Title
	}
	return "Module Arrangement"
}

// typeOf returns the index of the module type whose footprint matches rect
// in either orientation, or -1.
func (r Report) typeOf(rect geom.Rect) int {
	w, h := rect.Width(), rect.Height()
	for i, t := range r.ModuleTypes {
		if (near(w, t.Length) && near(h, t.Width)) || (near(w, t.Width) && near(h, t.Length)) {
			return i
		}
	}
	return -1
}

func (r Report) typeLabel(idx int) string {
	if idx < 0 || idx >= len(r.ModuleTypes) {
		return "Module"
	}
	if r.ModuleTypes[idx].Label != "" {
		return r.ModuleTypes[idx].Label
	}
	return fmt.Sprintf("Type %d", idx+1)
}

// footprintTolerance absorbs the drift that centering adds to
// rectangle sides before they are matched against module types.
const footprintTolerance = 1e-6

func near(a, b float64) bool {
	return math.Abs(a-b) <= footprintTolerance
}

// extent returns the bounds covering both the site and every layout.
func (r Report) extent() (min, max geom.Point) {
	min, max = geom.Pt(0, 0), geom.Pt(r.Site.Width, r.Site.Height)
	for _, l := range r.Layouts {
		if len(l) == 0 {
			continue
		}
		lmin, lmax := l.Bounds()
		min.X, min.Y = math.Min(min.X, lmin.X), math.Min(min.Y, lmin.Y)
		max.X, max.Y = math.Max(max.X, lmax.X), math.Max(max.Y, lmax.Y)
	}
	return min, max
}
