package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ModuPlan/internal/engine"
	"github.com/piwi3910/ModuPlan/internal/export"
	"github.com/piwi3910/ModuPlan/internal/model"
)

func (c *CLI) combosCommand() *cobra.Command {
	var (
		limit     int
		compare   bool
		xlsxPath  string
		chartPath string
	)

	cmd := &cobra.Command{
		Use:   "combos",
		Short: "Enumerate module combinations inside the site's area band",
		Long: `Enumerate every multiset of module types whose total area lies inside the
area band of the site. The band's upper bound is the building coverage of the
site area and the lower bound sits the space reduction ratio below it.

Combinations are listed by total area, ascending. Use the printed number with
'moduplan arrange --combination N'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.loadEnv(cmd)
			if err != nil {
				return err
			}
			return c.runCombos(cmd, e, limit, compare, xlsxPath, chartPath)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "number of combinations to print (0 for all)")
	cmd.Flags().BoolVar(&compare, "compare", false, "pack every printed combination and report its layout count")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also write the combinations to an Excel workbook")
	cmd.Flags().StringVar(&chartPath, "chart", "", "also write an HTML chart of the combinations")

	return cmd
}

// enumerate derives the area band and lists the combinations inside it.
// partial is set when the search timeout cut the listing short.
func enumerate(ctx context.Context, e *env) (band model.AreaBand, combos []model.Combination, partial bool, err error) {
	band, err = engine.DeriveAreaBand(e.settings.Site, e.types, e.settings)
	if err != nil {
		return band, nil, false, err
	}

	ctx, cancel := searchContext(ctx, e.settings)
	defer cancel()

	combos, err = engine.EnumerateCombinationsContext(ctx, e.types, band.Lower, band.Upper, band.MaxModules)
	if errors.Is(err, context.DeadlineExceeded) {
		return band, combos, true, nil
	}
	if err != nil {
		return band, combos, false, fmt.Errorf("enumerate combinations: %w", err)
	}
	return band, combos, false, nil
}

func (c *CLI) runCombos(cmd *cobra.Command, e *env, limit int, compare bool, xlsxPath, chartPath string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	prog := newProgress(logger)
	band, combos, partial, err := enumerate(ctx, e)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Found %d combinations", len(combos)))
	if partial {
		logger.Warn("combination search timed out", "found", len(combos))
	}

	printTitle(c.out, "Site %gx%g", e.settings.Site.Width, e.settings.Site.Height)
	printKeyValue(c.out, "Land area", fmt.Sprintf("%.2f", band.LandArea))
	printKeyValue(c.out, "Area band", fmt.Sprintf("%.2f - %.2f", band.Lower, band.Upper))
	printKeyValue(c.out, "Max modules", fmt.Sprintf("%d", band.MaxModules))
	for i, t := range e.types {
		printDetail(c.out, "Type %d: %s %gx%g", i+1, t.Label, t.Length, t.Width)
	}
	if partial {
		printWarning(c.out, "Search timed out after %ds, combinations are partial", e.settings.SearchTimeout)
	}

	if len(combos) == 0 {
		printWarning(c.out, "No combination fits the area band")
		return nil
	}

	shown := combos
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	if compare {
		results, err := engine.CompareCombinations(ctx, e.settings, e.types, shown)
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		for _, r := range results {
			line := fmt.Sprintf("%-40s %d modules, %d layouts", r.Combination.Describe(e.types), r.Combination.ModuleCount(), r.Layouts)
			if r.Best != nil {
				line += fmt.Sprintf(", best aspect %.2f", r.Best.AspectRatio)
			}
			printRow(c.out, r.Index, line)
		}
	} else {
		for i, combo := range shown {
			printRow(c.out, i+1, fmt.Sprintf("%-40s area %.2f, %d modules", combo.Describe(e.types), combo.TotalArea, combo.ModuleCount()))
		}
	}
	if len(shown) < len(combos) {
		printInfo(c.out, "%d more not shown (use --limit 0)", len(combos)-len(shown))
	}

	if xlsxPath != "" {
		if err := export.ExportCombinationsXLSX(xlsxPath, e.types, combos, band); err != nil {
			return err
		}
		printFile(c.out, xlsxPath)
		c.recordOutput(cmd, e, xlsxPath)
	}
	if chartPath != "" {
		if err := export.ExportCombinationChart(chartPath, combos, band); err != nil {
			return err
		}
		printFile(c.out, chartPath)
		c.recordOutput(cmd, e, chartPath)
	}

	printNextStep(c.out, "Arrange", "moduplan arrange --combination 1")
	return nil
}
