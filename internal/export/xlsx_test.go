package export

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/ModuPlan/internal/model"
)

func TestExportXLSX_Sheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.xlsx")
	if err := ExportXLSX(path, buildTestReport()); err != nil {
		t.Fatalf("ExportXLSX returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	layouts, err := f.GetRows("Layouts")
	if err != nil {
		t.Fatalf("missing Layouts sheet: %v", err)
	}
	if len(layouts) != 3 {
		t.Errorf("expected header + 2 layout rows, got %d", len(layouts))
	}
	if layouts[0][0] != "Layout" {
		t.Errorf("unexpected header %q", layouts[0][0])
	}

	modules, err := f.GetRows("Modules")
	if err != nil {
		t.Fatalf("missing Modules sheet: %v", err)
	}
	if len(modules) != 5 {
		t.Errorf("expected header + 4 module rows, got %d", len(modules))
	}
	if modules[1][2] != "Studio" {
		t.Errorf("expected first module type Studio, got %q", modules[1][2])
	}
}

func TestExportXLSX_EmptyReport(t *testing.T) {
	report := buildTestReport()
	report.Layouts = nil
	if err := ExportXLSX(filepath.Join(t.TempDir(), "x.xlsx"), report); err == nil {
		t.Fatal("expected error for empty report")
	}
}

func TestExportCombinationsXLSX(t *testing.T) {
	report := buildTestReport()
	combos := []model.Combination{
		{Counts: map[int]int{1: 2}, TotalArea: 32},
		{Counts: map[int]int{0: 1, 1: 1}, TotalArea: 40},
	}
	band := model.AreaBand{LandArea: 100, Lower: 30, Upper: 60, MaxModules: 4}

	path := filepath.Join(t.TempDir(), "combos.xlsx")
	if err := ExportCombinationsXLSX(path, report.ModuleTypes, combos, band); err != nil {
		t.Fatalf("ExportCombinationsXLSX returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Combinations")
	if err != nil {
		t.Fatalf("missing Combinations sheet: %v", err)
	}
	if got := len(rows[0]); got != 5 {
		t.Errorf("expected 5 header columns, got %d", got)
	}
	if rows[0][3] != "Studio (6x4)" {
		t.Errorf("unexpected type header %q", rows[0][3])
	}
	if rows[1][3] != "0" || rows[1][4] != "2" {
		t.Errorf("unexpected counts in first row: %v", rows[1])
	}

	footer, err := f.GetCellValue("Combinations", "A6")
	if err != nil {
		t.Fatal(err)
	}
	if footer != "Max modules" {
		t.Errorf("expected max modules footer, got %q", footer)
	}
}

func TestExportCombinationsXLSX_Empty(t *testing.T) {
	if err := ExportCombinationsXLSX(filepath.Join(t.TempDir(), "x.xlsx"), nil, nil, model.AreaBand{}); err == nil {
		t.Fatal("expected error for no combinations")
	}
}
