package cli

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/ModuPlan/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP planning service",
		Long: `Serve the planning engine over HTTP:

  GET  /health
  POST /combinations   enumerate combinations for a site and module types
  POST /arrangements   pack a module list or combination
  POST /perimeter      outline of a layout

Request defaults come from the config file and persistent flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.loadEnv(cmd)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = e.config.ServerAddr
			}
			return server.New(e.settings, c.Logger).Run(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
