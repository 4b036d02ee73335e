// Package pipeline provides the prioritization pipeline for beltprio.
//
// This package implements the load → scan → select → propagate → export
// sequence used by both the CLI and the HTTP API. By centralizing this
// logic, both entry points log, time and report runs the same way.
//
// # Architecture
//
// The pipeline consists of five stages:
//
//  1. Load: read a grid file or decode a blueprint string
//  2. Scan: find entry belt candidates on the grid boundary
//  3. Select: choose entries through a [Selector]
//  4. Propagate: walk downstream and resolve splitter priorities
//  5. Export: write the grid or an updated blueprint string
//
// Each stage can be run on its own through the [Runner] methods.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	in, err := runner.Load(ctx, pipeline.Source{Path: "merge.json"})
//	if err != nil {
//	    return err
//	}
//	res, err := runner.Prioritize(ctx, in, pipeline.IndexSelector{0, 2})
//	if err != nil {
//	    return err
//	}
//	err = runner.Export(res, os.Stdout, pipeline.FormatBlueprint)
package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/beltprio/pkg/belt"
	"github.com/matzehuels/beltprio/pkg/blueprint"
	"github.com/matzehuels/beltprio/pkg/errors"
)

// Input formats besides the grid document formats of pkg/io.
const (
	FormatBlueprint = "blueprint"
)

// Render formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// ValidRenderFormats is the set of supported render formats.
var ValidRenderFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
}

// ValidateRenderFormat checks that a render format is valid.
func ValidateRenderFormat(format string) error {
	if !ValidRenderFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid render format: %q (must be one of: dot, svg, png)", format)
	}
	return nil
}

// ValidateOutputFormat checks that a format can be used by [Runner.Export].
func ValidateOutputFormat(format string) error {
	if format == FormatBlueprint {
		return nil
	}
	return errors.ValidateFormat(format)
}

// Input is a loaded grid, with the blueprint it came from when there is one.
type Input struct {
	// Name identifies the source in logs ("stdin", a path, "request").
	Name string

	// Grid is the conveyor network.
	Grid *belt.Grid

	// Blueprint is set when the grid was decoded from a blueprint string.
	Blueprint *blueprint.Blueprint
}

// Result contains the outputs of a prioritization run.
type Result struct {
	// RunID identifies the run in logs and API responses.
	RunID uuid.UUID

	// Input is the loaded grid; its splitters carry the new priorities.
	Input *Input

	// Candidates are all entry candidates found by the scan, in scan order.
	Candidates []*belt.Entity

	// Entries are the selected candidates.
	Entries []*belt.Entity

	// Propagation is the traversal outcome.
	Propagation *belt.Result

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Entities      int
	Candidates    int
	Entries       int
	Visited       int
	Splitters     int
	Changed       int // blueprint entities whose input_priority changed
	ScanTime      time.Duration
	PropagateTime time.Duration
}
