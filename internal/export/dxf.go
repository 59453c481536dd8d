package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/ModuPlan/internal/engine"
	"github.com/piwi3910/ModuPlan/internal/geom"
)

// DXF layer names.
const (
	LayerSite      = "SITE"
	LayerModules   = "MODULES"
	LayerPerimeter = "PERIMETER"
	LayerGrid      = "GRID"
)

// dxfGap separates layouts drawn side by side, as a fraction of site width.
const dxfGap = 0.25

// ExportDXF writes the selected layout (1-based, 0 for all side by side) as
// a DXF drawing. Each layout gets a site frame, one closed polyline per
// module, its outline and the module grid cells, each on its own layer.
func ExportDXF(path string, report Report, layout int) error {
	if err := report.validate(); err != nil {
		return err
	}
	if layout < 0 || layout > len(report.Layouts) {
		return fmt.Errorf("layout %d out of range (have %d)", layout, len(report.Layouts))
	}

	d := dxf.NewDrawing()
	layers := []struct {
		name  string
		color color.ColorNumber
	}{
		{LayerSite, color.White},
		{LayerModules, color.Cyan},
		{LayerPerimeter, color.Red},
		{LayerGrid, color.Green},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.color, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}

	step := report.Site.Width * (1 + dxfGap)
	slot := 0
	for i, l := range report.Layouts {
		if layout > 0 && i+1 != layout {
			continue
		}
		dx := float64(slot) * step
		slot++

		if err := d.ChangeLayer(LayerSite); err != nil {
			return err
		}
		if err := polyline(d, geom.NewRect(dx, 0, report.Site.Width, report.Site.Height)); err != nil {
			return err
		}

		moved := l.Translate(dx, 0)
		if err := d.ChangeLayer(LayerModules); err != nil {
			return err
		}
		for _, r := range moved {
			if err := polyline(d, r); err != nil {
				return err
			}
		}

		if err := d.ChangeLayer(LayerPerimeter); err != nil {
			return err
		}
		for _, s := range engine.ExtractPerimeter(moved) {
			if _, err := d.Line(s.Start.X, s.Start.Y, 0, s.End.X, s.End.Y, 0); err != nil {
				return fmt.Errorf("failed to add outline: %w", err)
			}
		}

		if err := d.ChangeLayer(LayerGrid); err != nil {
			return err
		}
		for _, r := range moved {
			for _, cell := range geom.GridCells(r) {
				if err := polyline(d, cell); err != nil {
					return err
				}
			}
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write DXF: %w", err)
	}
	return nil
}

func polyline(d *drawing.Drawing, r geom.Rect) error {
	vertices := make([][]float64, len(r))
	for i, p := range r {
		vertices[i] = []float64{p.X, p.Y}
	}
	if _, err := d.LwPolyline(true, vertices...); err != nil {
		return fmt.Errorf("failed to add polyline: %w", err)
	}
	return nil
}
