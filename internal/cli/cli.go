// Package cli implements the moduplan command-line interface.
//
// Commands share a set of persistent flags that override the values loaded
// from the application config:
//   - combos: enumerate module combinations inside the site's area band
//   - arrange: pack one combination onto the site and list its layouts
//   - perimeter: print the outer outline of one arranged layout
//   - export: write arranged layouts as PDF, labels, DXF, XLSX or an HTML chart
//   - types: list or import the module type catalog
//   - serve: run the HTTP planning service
//   - config: create or show the config file
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/ModuPlan/internal/project"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// version is overridden at build time with -ldflags.
var version = "dev"

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	out    io.Writer

	opts globalOptions
}

// globalOptions are the persistent flags. Zero values mean "not set" only
// where the flag was not changed; see (*CLI).loadEnv.
type globalOptions struct {
	configPath    string
	inventoryPath string
	siteWidth     float64
	siteHeight    float64
	sitePreset    string
	typesPath     string
	coverage      float64
	reduction     float64
	maxModules    int
	timeout       int
	rank          string
	verbose       bool
}

// New creates a CLI that logs to w at level and prints results to stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), out: os.Stdout}
}

// SetOutput redirects command output.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "moduplan",
		Short: "ModuPlan finds module combinations and arrangements for a building site",
		Long: `ModuPlan is a modular layout planner. Given a rectangular site and a catalog
of rectangular module types it enumerates the module combinations whose total
area falls inside the site's coverage band, finds every distinct non-overlapping
arrangement of a chosen combination, and exports the results.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.opts.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.opts.configPath, "config", project.DefaultConfigPath(), "config file (.json or .toml)")
	pf.StringVar(&c.opts.inventoryPath, "inventory", project.DefaultInventoryPath(), "inventory file of module types and site presets")
	pf.Float64Var(&c.opts.siteWidth, "site-width", 0, "site width")
	pf.Float64Var(&c.opts.siteHeight, "site-height", 0, "site height")
	pf.StringVar(&c.opts.sitePreset, "site", "", "site preset name from the inventory")
	pf.StringVar(&c.opts.typesPath, "types", "", "import module types from a CSV, Excel or DXF file")
	pf.Float64Var(&c.opts.coverage, "coverage", 0, "building coverage ratio")
	pf.Float64Var(&c.opts.reduction, "reduction", 0, "space reduction ratio below the coverage area")
	pf.IntVar(&c.opts.maxModules, "max-modules", 0, "cap on modules per combination (0 derives it)")
	pf.IntVar(&c.opts.timeout, "timeout", 0, "search timeout in seconds")
	pf.StringVar(&c.opts.rank, "rank", "", "layout ranking: none, squareness, compactness")
	pf.BoolVarP(&c.opts.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.combosCommand())
	root.AddCommand(c.arrangeCommand())
	root.AddCommand(c.perimeterCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.typesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())

	return root
}
