package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ModuPlan/internal/engine"
	"github.com/piwi3910/ModuPlan/internal/export"
	"github.com/piwi3910/ModuPlan/internal/geom"
)

// Export formats.
const (
	formatPDF    = "pdf"
	formatLabels = "labels"
	formatDXF    = "dxf"
	formatXLSX   = "xlsx"
	formatChart  = "html"
)

// detectFormat picks the export format from an explicit flag or the output
// file extension.
func detectFormat(flag, output string) (string, error) {
	f := strings.ToLower(flag)
	if f == "" {
		f = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
	}
	switch f {
	case formatPDF, formatLabels, formatDXF, formatXLSX:
		return f, nil
	case formatChart, "htm", "chart":
		return formatChart, nil
	case "xls", "excel":
		return formatXLSX, nil
	}
	return "", fmt.Errorf("unknown export format %q (want pdf, labels, dxf, xlsx or html)", f)
}

func (c *CLI) exportCommand() *cobra.Command {
	var (
		opts   arrangeOptions
		output string
		format string
		layout int
		title  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Arrange a combination and export the layouts",
		Long: `Run the same search as 'moduplan arrange' and write the ranked layouts.

Formats are chosen by --format or by the output extension:
  pdf     one sheet per layout plus a summary page
  labels  QR-coded module labels on Avery 5160 sheets
  dxf     CAD drawing with site, module, outline and grid layers
  xlsx    workbook of layout statistics and placed modules
  html    interactive chart of layout efficiency

--layout selects a single layout (1-based) for labels and dxf.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmtName, err := detectFormat(format, output)
			if err != nil {
				return err
			}
			e, err := c.loadArrangeEnv(cmd, opts)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)
			combo, layouts, partial, err := arrange(ctx, e, opts)
			if err != nil {
				return err
			}
			if partial {
				logger.Warn("search timed out, exporting partial results", "layouts", len(layouts))
			}

			if title == "" {
				title = fmt.Sprintf("Combination %d: %s", opts.combination, combo.Describe(e.types))
			}
			report := export.Report{
				Title:       title,
				Site:        e.settings.Site,
				ModuleTypes: e.types,
				Combination: combo,
				Layouts:     layouts,
			}

			switch fmtName {
			case formatPDF:
				err = export.ExportPDF(output, report)
			case formatLabels:
				err = export.ExportLabels(output, report, layout)
			case formatDXF:
				err = export.ExportDXF(output, report, layout)
			case formatXLSX:
				err = export.ExportXLSX(output, report)
			case formatChart:
				err = export.ExportLayoutChart(output, report)
			}
			if err != nil {
				return fmt.Errorf("export %s: %w", fmtName, err)
			}
			prog.done(fmt.Sprintf("Exported %d layouts as %s", len(layouts), fmtName))

			printSuccess(c.out, "Export complete")
			printFile(c.out, output)
			c.recordOutput(cmd, e, output)
			return nil
		},
	}

	addArrangeFlags(cmd, &opts)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	cmd.Flags().StringVarP(&format, "format", "f", "", "export format: pdf, labels, dxf, xlsx, html")
	cmd.Flags().IntVar(&layout, "layout", 0, "layout number for labels and dxf (0 for all)")
	cmd.Flags().StringVar(&title, "title", "", "report title (default: the combination)")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func (c *CLI) perimeterCommand() *cobra.Command {
	var (
		opts   arrangeOptions
		layout int
	)

	cmd := &cobra.Command{
		Use:   "perimeter",
		Short: "Print the outer outline of one arranged layout",
		Long: `Arrange a combination as 'moduplan arrange' does and print the outline of the
selected layout: the module edges with every shared stretch removed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.loadArrangeEnv(cmd, opts)
			if err != nil {
				return err
			}
			_, layouts, _, err := arrange(cmd.Context(), e, opts)
			if err != nil {
				return err
			}
			if layout < 1 || layout > len(layouts) {
				return fmt.Errorf("layout %d out of range (found %d)", layout, len(layouts))
			}

			segs := engine.ExtractPerimeter(layouts[layout-1])
			printTitle(c.out, "Layout %d outline", layout)
			for i, s := range segs {
				printRow(c.out, i+1, fmt.Sprintf("(%.2f, %.2f) - (%.2f, %.2f)", s.Start.X, s.Start.Y, s.End.X, s.End.Y))
			}
			printKeyValue(c.out, "Segments", fmt.Sprintf("%d", len(segs)))
			printKeyValue(c.out, "Length", fmt.Sprintf("%.2f", geom.TotalLength(segs)))
			return nil
		},
	}

	addArrangeFlags(cmd, &opts)
	cmd.Flags().IntVar(&layout, "layout", 1, "layout number")
	return cmd
}
