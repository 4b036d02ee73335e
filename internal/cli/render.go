package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/beltprio/pkg/belt"
	"github.com/matzehuels/beltprio/pkg/cache"
	"github.com/matzehuels/beltprio/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string // output file; derived from the input name when empty
	format      string // "dot", "svg" or "png"
	detailed    bool   // add position, facing and tier to node labels
	entries     string // propagate from these candidates before drawing
	all         bool   // propagate from every candidate before drawing
	noCache     bool   // always run graphviz
	inputFormat string
}

// diagramTTL is how long rendered diagrams stay in the cache.
const diagramTTL = 7 * 24 * time.Hour

// renderCommand creates the render command for node-link diagrams.
//
// Defaults come from the [render] config section.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Draw a grid as a node-link diagram",
		Long: `Draw every entity as a node and every feed as an edge. Splitters show their
input priority; with --entries or --all priorities are propagated first and
the chosen entry belts are highlighted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				opts.format = c.Config.Render.Format
			}
			if !cmd.Flags().Changed("detailed") {
				opts.detailed = c.Config.Render.Detailed
			}
			if err := pipeline.ValidateRenderFormat(opts.format); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with the format extension, stdout for stdin)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", pipeline.FormatSVG, "output format: dot, svg, png")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show position, facing and tier in labels")
	cmd.Flags().StringVarP(&opts.entries, "entries", "e", "", "propagate from these entry candidate indices first")
	cmd.Flags().BoolVar(&opts.all, "all", false, "propagate from every entry candidate first")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not read or write the diagram cache")
	cmd.Flags().StringVar(&opts.inputFormat, "input-format", "", "input format: json, yaml, toml, blueprint (detected when empty)")
	cmd.MarkFlagsMutuallyExclusive("entries", "all")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, args []string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	src := sourceFor(args, opts.inputFormat)
	runner := c.newRunner()

	in, err := runner.Load(ctx, src)
	if err != nil {
		return err
	}

	var entries []*belt.Entity
	if opts.all || opts.entries != "" {
		var sel pipeline.Selector = pipeline.AllSelector{}
		if !opts.all {
			sel = pipeline.SelectorFunc(func(_ context.Context, candidates []*belt.Entity) ([]int, error) {
				return pipeline.ParseIndices(opts.entries, len(candidates)), nil
			})
		}
		res, err := runner.Prioritize(ctx, in, sel)
		if err != nil {
			return err
		}
		entries = res.Entries
	}

	var data []byte
	if opts.format == pipeline.FormatDOT {
		data, err = runner.Render(ctx, in.Grid, entries, opts.format, opts.detailed)
	} else {
		if !opts.noCache {
			runner.Cache = openDiagramCache(logger)
			runner.CacheTTL = diagramTTL
		}
		spin := newSpinner(ctx, c.stderr(), fmt.Sprintf("Rendering %s...", opts.format))
		spin.Start()
		data, err = runner.Render(ctx, in.Grid, entries, opts.format, opts.detailed)
		spin.Stop()
	}
	if err != nil {
		return err
	}

	out := renderPath(opts.output, src.Path, opts.format)
	if out == "" {
		_, err := c.stdout().Write(data)
		return err
	}
	if err := writeFile(out, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	}); err != nil {
		return err
	}
	logger.Debug("wrote diagram", "path", out, "bytes", len(data))
	printSuccess(c.stdout(), "Rendered %s", opts.format)
	printFile(c.stdout(), out)
	return nil
}

// openDiagramCache opens the diagram cache in the user cache directory. A
// cache that cannot be opened is logged and replaced by a null cache.
func openDiagramCache(logger *log.Logger) cache.Cache {
	dir, err := cache.DefaultDir()
	if err == nil {
		var c *cache.FileCache
		if c, err = cache.NewFileCache(dir); err == nil {
			return c
		}
	}
	logger.Warn("diagram cache disabled", "err", err)
	return cache.NullCache{}
}

// renderPath returns the diagram file path. An explicit output wins; a file
// input gets its extension replaced by the format; stdin input yields "",
// meaning stdout.
func renderPath(output, input, format string) string {
	if output != "" {
		return output
	}
	if input == "" || input == "-" {
		return ""
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
}
