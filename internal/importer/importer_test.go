package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter(t *testing.T) {
	cases := map[rune]string{
		',':  "Label,Length,Width\nStudio,6,4\nSquare,4,4\n",
		';':  "Label;Length;Width\nStudio;6;4\nSquare;4;4\n",
		'\t': "Label\tLength\tWidth\nStudio\t6\t4\nSquare\t4\t4\n",
		'|':  "Label|Length|Width\nStudio|6|4\nSquare|4|4\n",
	}
	for want, data := range cases {
		if got := DetectCSVDelimiter([]byte(data)); got != want {
			t.Errorf("expected %q delimiter, got %q", want, got)
		}
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Label", "Length", "Width"})

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Label != 0 || mapping.Length != 1 || mapping.Width != 2 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_AliasesAndOrder(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"W", "MODULE TYPE", "L"})

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Label != 1 || mapping.Length != 2 || mapping.Width != 0 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Studio", "6", "4"})

	if isHeader {
		t.Error("expected no header")
	}
	if mapping.Label != 0 || mapping.Length != 1 || mapping.Width != 2 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	data := "Name,Length,Width\nStudio,6,4\nSquare,4,4\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.ModuleTypes) != 2 {
		t.Fatalf("expected 2 module types, got %d", len(result.ModuleTypes))
	}
	mt := result.ModuleTypes[0]
	if mt.Label != "Studio" || mt.Length != 6 || mt.Width != 4 {
		t.Errorf("unexpected module type %+v", mt)
	}
	if mt.ID == "" {
		t.Error("expected generated ID")
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Studio,6,4\nSquare,4,4\n"), ',')

	if len(result.ModuleTypes) != 2 {
		t.Fatalf("expected 2 module types, got %d (errors: %v)", len(result.ModuleTypes), result.Errors)
	}
	if result.ModuleTypes[1].Label != "Square" {
		t.Errorf("expected label 'Square', got '%s'", result.ModuleTypes[1].Label)
	}
}

func TestImportCSVFromReader_UnrecognizedHeaderSkipped(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Kind,Long,Short\nStudio,6,4\n"), ',')

	if len(result.ModuleTypes) != 1 {
		t.Fatalf("expected 1 module type, got %d (errors: %v)", len(result.ModuleTypes), result.Errors)
	}
}

func TestImportCSVFromReader_DecimalComma(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Label;Length;Width\nStudio;6,5;4,25\n"), ';')

	if len(result.ModuleTypes) != 1 {
		t.Fatalf("expected 1 module type, got %d (errors: %v)", len(result.ModuleTypes), result.Errors)
	}
	if result.ModuleTypes[0].Length != 6.5 || result.ModuleTypes[0].Width != 4.25 {
		t.Errorf("unexpected dimensions %+v", result.ModuleTypes[0])
	}
}

func TestImportCSVFromReader_RowErrors(t *testing.T) {
	data := "Label,Length,Width\nGood,6,4\nBad,abc,4\nNegative,-1,4\nMissing,5,\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.ModuleTypes) != 1 {
		t.Errorf("expected 1 valid module type, got %d", len(result.ModuleTypes))
	}
	if len(result.Errors) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(result.Errors), result.Errors)
	}
	if !strings.Contains(result.Errors[0], "Line 3") {
		t.Errorf("expected error to name Line 3, got %s", result.Errors[0])
	}
}

func TestImportCSVFromReader_EmptyLabelAndRows(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Label,Length,Width\n,6,4\n\n,,\n"), ',')

	if len(result.ModuleTypes) != 1 {
		t.Fatalf("expected 1 module type, got %d (errors: %v)", len(result.ModuleTypes), result.Errors)
	}
	if result.ModuleTypes[0].Label != "Type 1" {
		t.Errorf("expected generated label 'Type 1', got '%s'", result.ModuleTypes[0].Label)
	}
}

func TestImportCSVFromReader_DuplicateSizeWarns(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("A,6,4\nB,6,4\n"), ',')

	if len(result.ModuleTypes) != 2 {
		t.Fatalf("expected both rows imported, got %d", len(result.ModuleTypes))
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "same size") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected duplicate size warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_MissingRequiredColumn(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Label,Length\nStudio,6\n"), ',')

	if len(result.Errors) == 0 || !strings.Contains(result.Errors[0], "Width") {
		t.Errorf("expected missing Width column error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_OnlyHeaders(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Label,Length,Width\n"), ',')
	if len(result.Errors) == 0 {
		t.Error("expected error for header-only input")
	}
}

// ─── CSV File Import Tests ──────────────────────────────────

func TestImportCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "types.csv")
	if err := os.WriteFile(path, []byte("Label;Length;Width\nStudio;6;4\nSquare;4;4\n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)
	if len(result.ModuleTypes) != 2 {
		t.Errorf("expected 2 module types, got %d (errors: %v)", len(result.ModuleTypes), result.Errors)
	}
	hasSemicolonWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semicolon") {
			hasSemicolonWarning = true
		}
	}
	if !hasSemicolonWarning {
		t.Error("expected warning about semicolon delimiter detection")
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	if result := ImportCSV("/nonexistent/path/file.csv"); len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	if result := ImportCSV(path); len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

func TestImportFile_Dispatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "types.CSV")
	if err := os.WriteFile(path, []byte("Studio,6,4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if result := ImportFile(path); len(result.ModuleTypes) != 1 {
		t.Errorf("expected CSV import by extension, got %+v", result)
	}
	if result := ImportFile("types.json"); len(result.Errors) == 0 {
		t.Error("expected unsupported type error")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "types.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Width", "Type", "Length"},
		{4, "Studio", 6},
		{4.5, "Loft", 8},
	})

	result := ImportExcel(path)
	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.ModuleTypes) != 2 {
		t.Fatalf("expected 2 module types, got %d", len(result.ModuleTypes))
	}
	if mt := result.ModuleTypes[1]; mt.Label != "Loft" || mt.Length != 8 || mt.Width != 4.5 {
		t.Errorf("unexpected module type %+v", mt)
	}
}

func TestImportExcel_WithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Studio", 6, 4},
		{"Square", 4, 4},
	})

	if result := ImportExcel(path); len(result.ModuleTypes) != 2 {
		t.Fatalf("expected 2 module types, got %d (errors: %v)", len(result.ModuleTypes), result.Errors)
	}
}

func TestImportExcel_InvalidData(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Label", "Length", "Width"},
		{"Studio", "abc", 4},
	})

	if result := ImportExcel(path); len(result.Errors) == 0 {
		t.Error("expected error for invalid length")
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	if result := ImportExcel("/nonexistent/file.xlsx"); len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}
