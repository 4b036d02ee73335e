package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// scanOpts holds the command-line flags for the scan command.
type scanOpts struct {
	inputFormat string
	noMap       bool
}

// scanCommand creates the scan command, which lists entry belt candidates.
// The index column is what --entries of the prioritize command refers to.
func (c *CLI) scanCommand() *cobra.Command {
	var opts scanOpts

	cmd := &cobra.Command{
		Use:   "scan [file]",
		Short: "List entry belt candidates of a grid or blueprint",
		Long: `Scan the edges of a grid for belts that carry items into it.

The input is a grid document (JSON, YAML, TOML) or a file holding a blueprint
string. Without a file argument the input is read from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			runner := c.newRunner()

			in, err := runner.Load(ctx, sourceFor(args, opts.inputFormat))
			if err != nil {
				return err
			}
			candidates, err := runner.Scan(ctx, in.Grid)
			if err != nil {
				return err
			}
			logger.Debug("scan done", "source", in.Name, "candidates", len(candidates))

			w := c.stdout()
			fmt.Fprintln(w, candidateTable(candidates, nil))
			if !opts.noMap {
				fmt.Fprintln(w)
				fmt.Fprint(w, gridMap(in.Grid, candidates, nil))
			}
			printInfo(w, "%d entry candidates in %s", len(candidates), in.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.inputFormat, "input-format", "", "input format: json, yaml, toml, blueprint (detected when empty)")
	cmd.Flags().BoolVar(&opts.noMap, "no-map", false, "do not draw the grid map")

	return cmd
}
