package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ModuPlan/internal/model"
	"github.com/piwi3910/ModuPlan/internal/project"
)

func (c *CLI) typesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "Manage the module type catalog",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the module types and site presets in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.loadEnv(cmd)
			if err != nil {
				return err
			}
			printTitle(c.out, "Module types")
			for i, t := range e.types {
				printRow(c.out, i+1, fmt.Sprintf("%-16s %gx%g (area %.2f) [%s]", t.Label, t.Length, t.Width, t.Area(), t.ID))
			}

			inv, err := project.LoadInventory(c.opts.inventoryPath)
			if err != nil {
				return err
			}
			printTitle(c.out, "Site presets")
			for _, s := range inv.Sites {
				printDetail(c.out, "%-16s %gx%g", s.Name, s.Width, s.Height)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import [file]",
		Short: "Import module types into the inventory and config catalog",
		Long: `Import module types from a CSV, Excel or DXF file. New types are merged into
the inventory and the config's module catalog is replaced by the merged
inventory list, so later runs use them without --types.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.loadEnv(cmd)
			if err != nil {
				return err
			}
			imported, err := importTypes(cmd, args[0])
			if err != nil {
				return err
			}

			inv, err := project.LoadInventory(c.opts.inventoryPath)
			if err != nil {
				return err
			}
			added := inv.Merge(model.Inventory{Modules: imported})
			if err := project.SaveInventory(c.opts.inventoryPath, inv); err != nil {
				return err
			}

			e.config.ModuleTypes = inv.Modules
			if err := project.SaveAppConfig(c.opts.configPath, e.config); err != nil {
				return err
			}

			printSuccess(c.out, "Imported %d module types (%d new)", len(imported), added)
			printFile(c.out, c.opts.inventoryPath)
			return nil
		},
	})

	return cmd
}
