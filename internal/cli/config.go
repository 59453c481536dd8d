package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ModuPlan/internal/model"
	"github.com/piwi3910/ModuPlan/internal/project"
)

func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or inspect the config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		Long: `Write a config file with default values to --config. The format follows the
file extension: .toml writes TOML, anything else JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.opts.configPath
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config %s already exists (use --force to overwrite)", path)
			}
			if err := project.SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
				return err
			}
			printSuccess(c.out, "Config written")
			printFile(c.out, path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.loadEnv(cmd)
			if err != nil {
				return err
			}
			s := e.settings
			printTitle(c.out, "Settings")
			printKeyValue(c.out, "Config", c.opts.configPath)
			printKeyValue(c.out, "Site", fmt.Sprintf("%gx%g", s.Site.Width, s.Site.Height))
			printKeyValue(c.out, "Coverage", fmt.Sprintf("%g", s.BuildingCoverage))
			printKeyValue(c.out, "Reduction", fmt.Sprintf("%g", s.SpaceReduction))
			printKeyValue(c.out, "Max modules", fmt.Sprintf("%d", s.MaxModules))
			printKeyValue(c.out, "Max solutions", fmt.Sprintf("%d", s.MaxSolutions))
			printKeyValue(c.out, "Timeout", fmt.Sprintf("%ds", s.SearchTimeout))
			printKeyValue(c.out, "Rank", string(s.Rank))
			printKeyValue(c.out, "Module types", fmt.Sprintf("%d", len(e.types)))
			printKeyValue(c.out, "Server", e.config.ServerAddr)
			for _, p := range e.config.RecentOutputs {
				printFile(c.out, p)
			}
			return nil
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}
