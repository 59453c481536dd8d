package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/ModuPlan/internal/engine"
	"github.com/piwi3910/ModuPlan/internal/geom"
	"github.com/piwi3910/ModuPlan/internal/model"
)

// moduleColor represents an RGB fill color for a module type.
type moduleColor struct {
	R, G, B int
}

var moduleColors = []moduleColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

func colorFor(typeIdx int) moduleColor {
	if typeIdx < 0 {
		return moduleColor{R: 189, G: 189, B: 189}
	}
	return moduleColors[typeIdx%len(moduleColors)]
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0

	// summaryRows caps the layout table on the summary page.
	summaryRows = 20
)

// canvas maps site coordinates (Y up) onto the page (Y down).
type canvas struct {
	scale      float64
	originX    float64 // page X of site X = min.X
	baseY      float64 // page Y of site Y = min.Y
	minX, minY float64
}

func (c canvas) x(v float64) float64 { return c.originX + (v-c.minX)*c.scale }
func (c canvas) y(v float64) float64 { return c.baseY - (v-c.minY)*c.scale }

func (c canvas) rect(pdf *fpdf.Fpdf, r geom.Rect, style string) {
	min, max := r.Bounds()
	pdf.Rect(c.x(min.X), c.y(max.Y), (max.X-min.X)*c.scale, (max.Y-min.Y)*c.scale, style)
}

// ExportPDF generates one page per layout with the site frame, the module
// rectangles, the outline and a stats line, followed by a summary page.
func ExportPDF(path string, report Report) error {
	if err := report.validate(); err != nil {
		return err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	min, max := report.extent()
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	scale := math.Min(drawWidth/(max.X-min.X), drawHeight/(max.Y-min.Y))
	cv := canvas{
		scale:   scale,
		originX: marginLeft + (drawWidth-(max.X-min.X)*scale)/2,
		baseY:   drawAreaTop + (max.Y-min.Y)*scale,
		minX:    min.X,
		minY:    min.Y,
	}

	for i, layout := range report.Layouts {
		pdf.AddPage()
		renderLayoutPage(pdf, report, layout, i+1, cv)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, report)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func renderLayoutPage(pdf *fpdf.Fpdf, report Report, layout model.Layout, num int, cv canvas) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s - layout %d of %d", report.title(), num, len(report.Layouts))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	st := engine.Stats(layout)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Modules: %d | Area: %.2f | Footprint: %.2f x %.2f | Efficiency: %.1f%% | Outline: %.2f",
		st.Modules, st.ModuleArea, st.BoundingWidth, st.BoundingHeight, st.Efficiency, st.PerimeterLength)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// Site
	pdf.SetFillColor(236, 239, 241)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	cv.rect(pdf, geom.NewRect(0, 0, report.Site.Width, report.Site.Height), "FD")

	for i, r := range layout {
		col := colorFor(report.typeOf(r))
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		cv.rect(pdf, r, "FD")

		pw, ph := r.Width()*cv.scale, r.Height()*cv.scale
		if pw > 10 && ph > 6 {
			min, max := r.Bounds()
			num := fmt.Sprintf("%d", i+1)
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)
			w := pdf.GetStringWidth(num)
			pdf.SetXY(cv.x((min.X+max.X)/2)-w/2, cv.y((min.Y+max.Y)/2)-2)
			pdf.CellFormat(w, 4, num, "", 0, "C", false, 0, "")
		}
	}

	// Outline
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.8)
	for _, s := range engine.ExtractPerimeter(layout) {
		pdf.Line(cv.x(s.Start.X), cv.y(s.Start.Y), cv.x(s.End.X), cv.y(s.End.Y))
	}

	drawDimensionAnnotations(pdf, report.Site, cv)
	drawTypeLegend(pdf, report, layout, cv.baseY+8)
}

// drawDimensionAnnotations adds width and height labels outside the site frame.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, site model.Site, cv canvas) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%g", site.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(cv.x(site.Width/2)-wLabelW/2, cv.y(0)+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%g", site.Height)
	midY := cv.y(site.Height / 2)
	pdf.TransformBegin()
	pdf.TransformRotate(90, cv.x(0)-3, midY)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(cv.x(0)-3-hLabelW/2, midY-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawTypeLegend lists each module type present in the layout with its count.
func drawTypeLegend(pdf *fpdf.Fpdf, report Report, layout model.Layout, startY float64) {
	counts := make(map[int]int)
	var order []int
	for _, r := range layout {
		idx := report.typeOf(r)
		if counts[idx] == 0 {
			order = append(order, idx)
		}
		counts[idx]++
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Modules:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	for _, idx := range order {
		col := colorFor(idx)
		label := fmt.Sprintf("%d x %s", counts[idx], report.typeLabel(idx))
		if idx >= 0 {
			t := report.ModuleTypes[idx]
			label += fmt.Sprintf(" (%gx%g)", t.Length, t.Width)
		}
		labelW := pdf.GetStringWidth(label) + 6
		if xPos+labelW > pageWidth-marginRight {
			startY += 5
			xPos = marginLeft
		}
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")
		xPos += labelW + 2
	}
}

// renderSummaryPage draws the combination and a table of layout statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, report Report) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Arrangement Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	items := []struct {
		label string
		value string
	}{
		{"Site", fmt.Sprintf("%g x %g (area %g)", report.Site.Width, report.Site.Height, report.Site.Area())},
		{"Combination", report.Combination.Describe(report.ModuleTypes)},
		{"Modules", fmt.Sprintf("%d", report.Combination.ModuleCount())},
		{"Layouts", fmt.Sprintf("%d", len(report.Layouts))},
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(40, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(200, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}
	y += 5

	colWidths := []float64{20, 45, 40, 40, 35, 35}
	headers := []string{"Layout", "Footprint", "Bounding Area", "Efficiency", "Aspect", "Outline"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, layout := range report.Layouts {
		if i == summaryRows {
			pdf.SetXY(marginLeft, y)
			pdf.CellFormat(200, 6, fmt.Sprintf("... and %d more", len(report.Layouts)-summaryRows), "", 0, "L", false, 0, "")
			break
		}
		st := engine.Stats(layout)
		row := []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.2f x %.2f", st.BoundingWidth, st.BoundingHeight),
			fmt.Sprintf("%.2f", st.BoundingArea),
			fmt.Sprintf("%.1f%%", st.Efficiency),
			fmt.Sprintf("%.2f", st.AspectRatio),
			fmt.Sprintf("%.2f", st.PerimeterLength),
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		xPos = marginLeft
		for j, cell := range row {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by ModuPlan - Modular Layout Planner", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 10
	case minDim > 20:
		return 8
	default:
		return 6
	}
}
