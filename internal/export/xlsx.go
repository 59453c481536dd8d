package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/ModuPlan/internal/engine"
	"github.com/piwi3910/ModuPlan/internal/model"
)

// setRow writes values into consecutive cells starting at column 1.
func setRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func boldHeader(f *excelize.File, sheet string, cols int) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", end, style)
}

// ExportXLSX writes a workbook with a "Layouts" sheet of per-layout
// statistics and a "Modules" sheet listing every placed rectangle.
func ExportXLSX(path string, report Report) error {
	if err := report.validate(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	const layoutsSheet, modulesSheet = "Layouts", "Modules"
	if err := f.SetSheetName(f.GetSheetName(0), layoutsSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if _, err := f.NewSheet(modulesSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headers := []interface{}{"Layout", "Modules", "Module Area", "Width", "Height", "Bounding Area", "Efficiency %", "Aspect Ratio", "Outline Length"}
	if err := setRow(f, layoutsSheet, 1, headers...); err != nil {
		return err
	}
	if err := boldHeader(f, layoutsSheet, len(headers)); err != nil {
		return err
	}
	for i, l := range report.Layouts {
		st := engine.Stats(l)
		if err := setRow(f, layoutsSheet, i+2, i+1, st.Modules, st.ModuleArea, st.BoundingWidth, st.BoundingHeight,
			st.BoundingArea, st.Efficiency, st.AspectRatio, st.PerimeterLength); err != nil {
			return fmt.Errorf("failed to write layout row: %w", err)
		}
	}

	modHeaders := []interface{}{"Layout", "Module", "Type", "X", "Y", "Length", "Width"}
	if err := setRow(f, modulesSheet, 1, modHeaders...); err != nil {
		return err
	}
	if err := boldHeader(f, modulesSheet, len(modHeaders)); err != nil {
		return err
	}
	row := 2
	for _, info := range CollectLabelInfos(report, 0) {
		if err := setRow(f, modulesSheet, row, info.Layout, info.Index, info.Type, info.X, info.Y, info.Length, info.Width); err != nil {
			return fmt.Errorf("failed to write module row: %w", err)
		}
		row++
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// ExportCombinationsXLSX writes the enumerated combinations with one
// count column per module type.
func ExportCombinationsXLSX(path string, types []model.ModuleType, combos []model.Combination, band model.AreaBand) error {
	if len(combos) == 0 {
		return fmt.Errorf("no combinations to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Combinations"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headers := []interface{}{"#", "Total Area", "Modules"}
	for i, t := range types {
		label := t.Label
		if label == "" {
			label = fmt.Sprintf("Type %d", i+1)
		}
		headers = append(headers, fmt.Sprintf("%s (%gx%g)", label, t.Length, t.Width))
	}
	if err := setRow(f, sheet, 1, headers...); err != nil {
		return err
	}
	if err := boldHeader(f, sheet, len(headers)); err != nil {
		return err
	}

	for i, c := range combos {
		values := []interface{}{i + 1, c.TotalArea, c.ModuleCount()}
		for t := range types {
			values = append(values, c.Counts[t])
		}
		if err := setRow(f, sheet, i+2, values...); err != nil {
			return fmt.Errorf("failed to write combination row: %w", err)
		}
	}

	footer := len(combos) + 3
	if err := setRow(f, sheet, footer, "Band", band.Lower, band.Upper); err != nil {
		return err
	}
	if err := setRow(f, sheet, footer+1, "Max modules", band.MaxModules); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
