package export

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/piwi3910/ModuPlan/internal/engine"
	"github.com/piwi3910/ModuPlan/internal/model"
)

// ExportCombinationChart renders an HTML bar chart of combination total
// areas with the area band drawn as mark lines.
func ExportCombinationChart(path string, combos []model.Combination, band model.AreaBand) error {
	if len(combos) == 0 {
		return fmt.Errorf("no combinations to chart")
	}

	labels := make([]string, len(combos))
	areas := make([]opts.BarData, len(combos))
	counts := make([]opts.BarData, len(combos))
	for i, c := range combos {
		labels[i] = fmt.Sprintf("#%d", i+1)
		areas[i] = opts.BarData{Name: c.String(), Value: c.TotalArea}
		counts[i] = opts.BarData{Value: c.ModuleCount()}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Module combinations",
			Subtitle: fmt.Sprintf("area band %.2f - %.2f, up to %d modules", band.Lower, band.Upper, band.MaxModules),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).
		AddSeries("Total area", areas,
			charts.WithMarkLineNameYAxisItemOpts(
				opts.MarkLineNameYAxisItem{Name: "lower", YAxis: band.Lower},
				opts.MarkLineNameYAxisItem{Name: "upper", YAxis: band.Upper},
			)).
		AddSeries("Modules", counts)

	return render(path, bar)
}

// ExportLayoutChart renders an HTML bar chart comparing the efficiency and
// outline length of each layout in the report.
func ExportLayoutChart(path string, report Report) error {
	if err := report.validate(); err != nil {
		return err
	}

	labels := make([]string, len(report.Layouts))
	efficiency := make([]opts.BarData, len(report.Layouts))
	outline := make([]opts.BarData, len(report.Layouts))
	for i, l := range report.Layouts {
		st := engine.Stats(l)
		labels[i] = fmt.Sprintf("#%d", i+1)
		efficiency[i] = opts.BarData{Value: st.Efficiency}
		outline[i] = opts.BarData{Value: st.PerimeterLength}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: report.title(), Subtitle: report.Combination.Describe(report.ModuleTypes)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).
		AddSeries("Efficiency %", efficiency).
		AddSeries("Outline length", outline)

	return render(path, bar)
}

func render(path string, bar *charts.Bar) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	if err := bar.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return f.Close()
}
