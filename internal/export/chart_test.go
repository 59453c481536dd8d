package export

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/ModuPlan/internal/model"
)

func TestExportCombinationChart(t *testing.T) {
	combos := []model.Combination{
		{Counts: map[int]int{1: 2}, TotalArea: 32},
		{Counts: map[int]int{0: 1, 1: 1}, TotalArea: 40},
	}
	band := model.AreaBand{LandArea: 100, Lower: 30, Upper: 60, MaxModules: 4}

	path := filepath.Join(t.TempDir(), "combos.html")
	if err := ExportCombinationChart(path, combos, band); err != nil {
		t.Fatalf("ExportCombinationChart returned error: %v", err)
	}

	html := string(assertFile(t, path, 100))
	if !strings.Contains(html, "echarts") {
		t.Error("expected echarts script in output")
	}
	if !strings.Contains(html, "Module combinations") {
		t.Error("expected chart title in output")
	}
}

func TestExportCombinationChart_Empty(t *testing.T) {
	if err := ExportCombinationChart(filepath.Join(t.TempDir(), "x.html"), nil, model.AreaBand{}); err == nil {
		t.Fatal("expected error for no combinations")
	}
}

func TestExportLayoutChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts.html")
	if err := ExportLayoutChart(path, buildTestReport()); err != nil {
		t.Fatalf("ExportLayoutChart returned error: %v", err)
	}
	html := string(assertFile(t, path, 100))
	if !strings.Contains(html, "Test Plan") {
		t.Error("expected report title in chart")
	}
	if !strings.Contains(html, "Outline length") {
		t.Error("expected outline length series in chart")
	}
}
