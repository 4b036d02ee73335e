package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/beltprio/pkg/belt"
	"github.com/matzehuels/beltprio/pkg/errors"
	"github.com/matzehuels/beltprio/pkg/pipeline"
)

// prioritizeOpts holds the command-line flags for the prioritize command.
type prioritizeOpts struct {
	entries      string // comma-separated candidate indices
	all          bool   // use every candidate
	interactive  bool   // pick candidates in a terminal UI
	output       string // output file; stdout when empty
	outputFormat string // "json", "yaml", "toml" or "blueprint"
	inputFormat  string
}

// prioritizeCommand creates the prioritize command. It loads a grid, selects
// entry belts and writes the grid back with splitter priorities set.
func (c *CLI) prioritizeCommand() *cobra.Command {
	var opts prioritizeOpts

	cmd := &cobra.Command{
		Use:   "prioritize [file]",
		Short: "Set splitter input priorities downstream of selected entry belts",
		Long: `Propagate priority from the selected entry belts and give every splitter they
reach input priority on the side they arrive from.

Entries are the indices printed by "beltprio scan". Invalid indices are
ignored; a selection left empty is an error.

Blueprint inputs are written back as blueprint strings unless another
--output-format is given.`,
		Example: `  beltprio prioritize base.txt --entries 0,2 -o prioritized.txt
  beltprio prioritize merge.yaml --all --output-format json
  beltprio prioritize base.txt -i`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPrioritize(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.entries, "entries", "e", "", "comma-separated entry candidate indices (see scan)")
	cmd.Flags().BoolVar(&opts.all, "all", false, "select every entry candidate")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick entries interactively")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.outputFormat, "output-format", "f", "", "output format: json, yaml, toml, blueprint")
	cmd.Flags().StringVar(&opts.inputFormat, "input-format", "", "input format: json, yaml, toml, blueprint (detected when empty)")
	cmd.MarkFlagsMutuallyExclusive("entries", "all", "interactive")

	return cmd
}

func (c *CLI) runPrioritize(ctx context.Context, args []string, opts prioritizeOpts) error {
	logger := loggerFromContext(ctx)
	src := sourceFor(args, opts.inputFormat)
	if opts.interactive && src.Path == "-" {
		return errors.New(errors.ErrCodeInvalidInput, "--interactive needs a file argument; stdin is used by the terminal")
	}

	runner := c.newRunner()
	in, err := runner.Load(ctx, src)
	if err != nil {
		return err
	}

	sel, err := c.selector(in.Grid, opts)
	if err != nil {
		return err
	}
	format, err := c.outputFormat(opts, in)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	res, err := runner.Prioritize(ctx, in, sel)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Prioritized %d splitters", res.Stats.Splitters))

	// Reports go to stderr whenever stdout carries the document.
	report := c.stdout()
	if opts.output == "" {
		report = c.stderr()
	}
	if len(res.Propagation.Splitters) > 0 {
		fmt.Fprintln(report, decisionTable(in.Grid, res.Propagation))
	}
	printSummary(report, res)

	if opts.output == "" {
		return runner.Export(res, c.stdout(), format)
	}
	if err := writeFile(opts.output, func(w io.Writer) error {
		return runner.Export(res, w, format)
	}); err != nil {
		return err
	}
	printSuccess(report, "Wrote %s", format)
	printFile(report, opts.output)
	return nil
}

// selector builds the entry selector from the flags. Exactly one of
// --entries, --all and --interactive is required.
func (c *CLI) selector(g *belt.Grid, opts prioritizeOpts) (pipeline.Selector, error) {
	switch {
	case opts.all:
		return pipeline.AllSelector{}, nil
	case opts.interactive:
		return pickerSelector{grid: g}, nil
	case opts.entries != "":
		return pipeline.SelectorFunc(func(_ context.Context, candidates []*belt.Entity) ([]int, error) {
			return pipeline.ParseIndices(opts.entries, len(candidates)), nil
		}), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "one of --entries, --all or --interactive is required")
}

// outputFormat resolves the export format: the flag, then the output file
// extension, then the config, then the input's own format.
func (c *CLI) outputFormat(opts prioritizeOpts, in *pipeline.Input) (string, error) {
	format := strings.ToLower(opts.outputFormat)
	if format == "" && opts.output != "" {
		format = formatFromOutputPath(opts.output)
	}
	if format == "" {
		format = c.Config.Output.Format
	}
	if format == "" {
		format = "json"
		if in.Blueprint != nil {
			format = pipeline.FormatBlueprint
		}
	}
	if format == "yml" {
		format = "yaml"
	}
	if err := pipeline.ValidateOutputFormat(format); err != nil {
		return "", err
	}
	if format == pipeline.FormatBlueprint && in.Blueprint == nil {
		return "", errors.New(errors.ErrCodeUnsupported, "%s was not loaded from a blueprint string", in.Name)
	}
	return format, nil
}

// formatFromOutputPath guesses a format from a file extension, or returns
// "" when the extension says nothing.
func formatFromOutputPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".bp", ".blueprint":
		return pipeline.FormatBlueprint
	}
	f, err := errors.FormatFromPath(path)
	if err != nil {
		return ""
	}
	return f
}

// writeFile creates path and hands it to write. The file is removed again
// when write fails.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
