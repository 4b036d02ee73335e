package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/beltprio/internal/server"
)

// serveCommand creates the serve command, which runs the JSON API until the
// process is interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve scan and prioritize over HTTP",
		Long: `Run the JSON API:

  GET  /healthz
  POST /v1/scan        {"grid": {...}} or {"blueprint": "0..."}
  POST /v1/prioritize  same body plus "entries": [0, 2] or "all": true`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Serve.Addr
			}
			srv := server.New(server.Config{Addr: addr, Logger: c.Logger})
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")

	return cmd
}
