package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ModuPlan/internal/importer"
	"github.com/piwi3910/ModuPlan/internal/model"
	"github.com/piwi3910/ModuPlan/internal/project"
)

// env is the resolved input of one command: config, settings and catalog.
type env struct {
	config   model.AppConfig
	settings model.Settings
	types    []model.ModuleType
}

// loadEnv loads the config file and applies every persistent flag the user
// changed on top of it.
func (c *CLI) loadEnv(cmd *cobra.Command) (*env, error) {
	logger := loggerFromContext(cmd.Context())

	cfg, err := project.LoadAppConfig(c.opts.configPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded config", "path", c.opts.configPath)

	settings := model.DefaultSettings()
	cfg.ApplyToSettings(&settings)

	if c.opts.sitePreset != "" {
		inv, err := project.LoadInventory(c.opts.inventoryPath)
		if err != nil {
			return nil, err
		}
		preset := inv.FindSiteByName(c.opts.sitePreset)
		if preset == nil {
			return nil, fmt.Errorf("site preset %q not found in %s", c.opts.sitePreset, c.opts.inventoryPath)
		}
		settings.Site = preset.ToSite()
	}

	flags := cmd.Flags()
	if flags.Changed("site-width") {
		settings.Site.Width = c.opts.siteWidth
	}
	if flags.Changed("site-height") {
		settings.Site.Height = c.opts.siteHeight
	}
	if flags.Changed("coverage") {
		settings.BuildingCoverage = c.opts.coverage
	}
	if flags.Changed("reduction") {
		settings.SpaceReduction = c.opts.reduction
	}
	if flags.Changed("max-modules") {
		settings.MaxModules = c.opts.maxModules
	}
	if flags.Changed("timeout") {
		settings.SearchTimeout = c.opts.timeout
	}
	if flags.Changed("rank") {
		rank, err := parseRank(c.opts.rank)
		if err != nil {
			return nil, err
		}
		settings.Rank = rank
	}

	types := cfg.ModuleTypes
	if c.opts.typesPath != "" {
		types, err = importTypes(cmd, c.opts.typesPath)
		if err != nil {
			return nil, err
		}
	}

	return &env{config: cfg, settings: settings, types: types}, nil
}

// importTypes reads module types from a file, logging importer warnings and
// failing on errors.
func importTypes(cmd *cobra.Command, path string) ([]model.ModuleType, error) {
	logger := loggerFromContext(cmd.Context())
	result := importer.ImportFile(path)
	for _, w := range result.Warnings {
		logger.Warn(w, "file", path)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("import %s: %s", path, strings.Join(result.Errors, "; "))
	}
	logger.Debug("imported module types", "file", path, "count", len(result.ModuleTypes))
	return result.ModuleTypes, nil
}

func parseRank(s string) (model.RankMode, error) {
	switch mode := model.RankMode(strings.ToLower(s)); mode {
	case model.RankNone, model.RankSquareness, model.RankCompactness:
		return mode, nil
	}
	return "", fmt.Errorf("unknown rank %q (want none, squareness or compactness)", s)
}

// searchContext bounds ctx by the configured search timeout.
func searchContext(ctx context.Context, settings model.Settings) (context.Context, context.CancelFunc) {
	if settings.SearchTimeout > 0 {
		return context.WithTimeout(ctx, time.Duration(settings.SearchTimeout)*time.Second)
	}
	return context.WithCancel(ctx)
}

// recordOutput remembers path in the config's recent outputs. Failing to
// save the config is logged, not returned.
func (c *CLI) recordOutput(cmd *cobra.Command, e *env, path string) {
	e.config.AddRecentOutput(path)
	if err := project.SaveAppConfig(c.opts.configPath, e.config); err != nil {
		loggerFromContext(cmd.Context()).Warn("could not update recent outputs", "err", err)
	}
}
