package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ModuPlan/internal/engine"
	"github.com/piwi3910/ModuPlan/internal/model"
)

// arrangeOptions select the combination and bound the search. They are
// shared by arrange, perimeter and export.
type arrangeOptions struct {
	combination  int
	maxSolutions int
	preview      bool
}

func addArrangeFlags(cmd *cobra.Command, opts *arrangeOptions) {
	cmd.Flags().IntVarP(&opts.combination, "combination", "n", 1, "combination number as printed by 'moduplan combos'")
	cmd.Flags().IntVar(&opts.maxSolutions, "max-solutions", 0, "stop after this many layouts (0 for unlimited)")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "place modules greedily in rows instead of searching")
}

// loadArrangeEnv loads the env and applies the command's --max-solutions.
func (c *CLI) loadArrangeEnv(cmd *cobra.Command, opts arrangeOptions) (*env, error) {
	e, err := c.loadEnv(cmd)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("max-solutions") {
		e.settings.MaxSolutions = opts.maxSolutions
	}
	return e, nil
}

func (c *CLI) arrangeCommand() *cobra.Command {
	var (
		opts arrangeOptions
		show int
	)

	cmd := &cobra.Command{
		Use:   "arrange",
		Short: "Find every distinct arrangement of a combination on the site",
		Long: `Pack the modules of one combination onto the site, trying both orientations
of every module, and list every distinct non-overlapping layout. Layouts are
centered on the site and ranked by --rank.

The search stops at --max-solutions layouts or at --timeout seconds; a timed
out search keeps the layouts found so far.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.loadArrangeEnv(cmd, opts)
			if err != nil {
				return err
			}
			return c.runArrange(cmd, e, opts, show)
		},
	}

	addArrangeFlags(cmd, &opts)
	cmd.Flags().IntVar(&show, "show", 5, "number of layouts to print")

	return cmd
}

// arrange picks the combination and runs the search or the preview. The
// returned error is nil when a deadline cut the search short; partial is
// set instead.
func arrange(ctx context.Context, e *env, opts arrangeOptions) (combo model.Combination, layouts []model.Layout, partial bool, err error) {
	_, combos, listPartial, err := enumerate(ctx, e)
	if err != nil {
		return combo, nil, false, err
	}
	if listPartial {
		loggerFromContext(ctx).Warn("combination search timed out", "found", len(combos))
	}
	combo, err = engine.SelectCombination(combos, opts.combination)
	if err != nil {
		return combo, nil, false, err
	}
	modules, err := combo.Expand(e.types)
	if err != nil {
		return combo, nil, false, err
	}

	ref := e.settings.Reference()
	if opts.preview {
		layout, err := engine.PreviewLayout(e.settings.Site, modules, ref)
		if err != nil {
			return combo, nil, false, err
		}
		return combo, []model.Layout{layout}, false, nil
	}

	ctx, cancel := searchContext(ctx, e.settings)
	defer cancel()

	layouts, err = engine.New(e.settings).Pack(ctx, e.settings.Site, modules, ref)
	if errors.Is(err, context.DeadlineExceeded) {
		partial, err = true, nil
	}
	if err != nil {
		return combo, layouts, false, err
	}
	return combo, engine.RankLayouts(layouts, e.settings.Rank), partial, nil
}

func (c *CLI) runArrange(cmd *cobra.Command, e *env, opts arrangeOptions, show int) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	prog := newProgress(logger)
	combo, layouts, partial, err := arrange(ctx, e, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Found %d layouts", len(layouts)))

	printTitle(c.out, "Combination %d: %s", opts.combination, combo.Describe(e.types))
	printKeyValue(c.out, "Site", fmt.Sprintf("%gx%g", e.settings.Site.Width, e.settings.Site.Height))
	printKeyValue(c.out, "Total area", fmt.Sprintf("%.2f", combo.TotalArea))
	printKeyValue(c.out, "Layouts", fmt.Sprintf("%d", len(layouts)))
	if partial {
		printWarning(c.out, "Search timed out after %ds, results are partial", e.settings.SearchTimeout)
	}
	if len(layouts) == 0 {
		printWarning(c.out, "The combination does not fit on the site")
		return nil
	}

	for i, l := range layouts {
		if show > 0 && i >= show {
			printInfo(c.out, "%d more not shown (use --show 0)", len(layouts)-i)
			break
		}
		st := engine.Stats(l)
		printRow(c.out, i+1, fmt.Sprintf("%gx%g bounding box, efficiency %.1f%%, aspect %.2f, outline %.2f",
			st.BoundingWidth, st.BoundingHeight, st.Efficiency, st.AspectRatio, st.PerimeterLength))
		for _, r := range l {
			min, _ := r.Bounds()
			printDetail(c.out, "%gx%g at (%.2f, %.2f)", r.Width(), r.Height(), min.X, min.Y)
		}
	}

	printNextStep(c.out, "Export", fmt.Sprintf("moduplan export --combination %d -o layouts.pdf", opts.combination))
	return nil
}
