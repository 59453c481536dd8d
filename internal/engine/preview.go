package engine

import (
	"fmt"

	"github.com/piwi3910/ModuPlan/internal/geom"
	"github.com/piwi3910/ModuPlan/internal/model"
)

// PreviewLayout places modules greedily in input order: a module joins the
// current row only when its height matches the row height, in its given
// orientation first and rotated second; otherwise a new row is opened. The
// result is centered on ref. It is a fast single arrangement, not a search.
func PreviewLayout(site model.Site, modules []model.ModuleType, ref geom.Point) (model.Layout, error) {
	if err := site.Validate(); err != nil {
		return nil, err
	}
	if err := validateModules(modules); err != nil {
		return nil, err
	}

	var offsetX, offsetY, rowHeight float64

	fitsInRow := func(x, y float64) bool {
		if offsetX+x > site.Width+geom.Epsilon {
			return false
		}
		if rowHeight > 0 && !geom.NearlyEqual(y, rowHeight) {
			return false
		}
		return offsetY+y <= site.Height+geom.Epsilon
	}

	layout := make(model.Layout, 0, len(modules))
	for i, m := range modules {
		x, y, ok := choose(m, fitsInRow)
		if !ok {
			offsetY += rowHeight
			offsetX, rowHeight = 0, 0
			x, y, ok = choose(m, fitsInRow)
			if !ok {
				return nil, fmt.Errorf("%w: module %d (%gx%g)", ErrModuleDoesNotFit, i, m.Length, m.Width)
			}
		}

		layout = append(layout, geom.NewRect(offsetX, offsetY, x, y))
		offsetX += x
		if rowHeight < geom.Epsilon {
			rowHeight = y
		}
	}

	return NormalizeLayout(layout, ref), nil
}

func choose(m model.ModuleType, fits func(x, y float64) bool) (x, y float64, ok bool) {
	if fits(m.Length, m.Width) {
		return m.Length, m.Width, true
	}
	if fits(m.Width, m.Length) {
		return m.Width, m.Length, true
	}
	return 0, 0, false
}
