package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/beltprio/pkg/belt"
	"github.com/matzehuels/beltprio/pkg/cache"
	"github.com/matzehuels/beltprio/pkg/errors"
	gridio "github.com/matzehuels/beltprio/pkg/io"
	"github.com/matzehuels/beltprio/pkg/observability"
	"github.com/matzehuels/beltprio/pkg/render/nodelink"
)

// Runner executes pipeline stages with logging and observability hooks.
// Both CLI and API use it so runs are reported the same way.
//
// The Runner holds no per-run state. Multiple goroutines can use the same
// Runner as long as each works on its own grid.
type Runner struct {
	Logger *log.Logger

	// Stdin is read for Source{Path: "-"}; os.Stdin when nil.
	Stdin io.Reader

	// Hooks receive pipeline events; the global registry when nil.
	Hooks observability.PipelineHooks

	// Cache holds rendered SVG and PNG diagrams; nothing is cached when nil.
	Cache cache.Cache

	// CacheTTL is the lifetime of cached diagrams; 0 never expires.
	CacheTTL time.Duration

	// now is replaced in tests.
	now func() time.Time
}

// NewRunner creates a runner. If logger is nil, log output is discarded.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Logger: logger}
}

func (r *Runner) hooks() observability.PipelineHooks {
	if r.Hooks != nil {
		return r.Hooks
	}
	return observability.Pipeline()
}

func (r *Runner) stdin() io.Reader {
	if r.Stdin != nil {
		return r.Stdin
	}
	return os.Stdin
}

// timer starts a stopwatch; calling the result returns the elapsed time.
func (r *Runner) timer() func() time.Duration {
	now := r.now
	if now == nil {
		now = time.Now
	}
	start := now()
	return func() time.Duration { return now().Sub(start) }
}

// Scan returns the entry candidates of g. A grid without candidates yields a
// NO_ENTRY_CANDIDATES error.
func (r *Runner) Scan(ctx context.Context, g *belt.Grid) ([]*belt.Entity, error) {
	r.hooks().OnScanStart(ctx, g.Len())
	done := r.timer()

	candidates := g.FindEntries()
	var err error
	if len(candidates) == 0 {
		err = errors.FromCore(belt.ErrNoEntryCandidates)
	}
	elapsed := done()
	r.hooks().OnScanComplete(ctx, len(candidates), elapsed, err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("scanned boundary", "candidates", len(candidates), "duration", elapsed)
	for i, c := range candidates {
		r.Logger.Debug("candidate", "index", i, "entity", c.ID, "pos", c.Pos, "facing", c.Facing)
	}
	return candidates, nil
}

// Propagate runs a fresh propagation over g from entries. On error the grid
// is left unchanged.
func (r *Runner) Propagate(ctx context.Context, g *belt.Grid, entries []*belt.Entity) (*belt.Result, error) {
	r.hooks().OnPropagateStart(ctx, len(entries))
	done := r.timer()

	res, err := belt.NewPropagator(g).Run(entries)
	err = errors.FromCore(err)
	elapsed := done()

	visited := 0
	if res != nil {
		visited = res.Visited
		for _, d := range res.Decisions {
			r.hooks().OnSplitterResolved(ctx, d.Splitter.ID, d.Priority.String())
			r.Logger.Debug("resolved splitter",
				"splitter", d.Splitter.ID,
				"from", d.ArrivedFrom.ID,
				"priority", d.Priority)
		}
	}
	r.hooks().OnPropagateComplete(ctx, visited, elapsed, err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("propagated priorities",
		"visited", res.Visited,
		"splitters", len(res.Splitters),
		"duration", elapsed)
	return res, nil
}

// Prioritize runs scan, selection and propagation on a loaded input. When
// the input came from a blueprint, the resolved priorities are applied to
// it as well.
func (r *Runner) Prioritize(ctx context.Context, in *Input, sel Selector) (*Result, error) {
	result := &Result{RunID: uuid.New(), Input: in}
	logger := r.Logger.With("run", result.RunID.String()[:8])
	run := *r
	run.Logger = logger
	result.Stats.Entities = in.Grid.Len()

	scanStart := run.timer()
	candidates, err := run.Scan(ctx, in.Grid)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	result.Candidates = candidates
	result.Stats.Candidates = len(candidates)
	result.Stats.ScanTime = scanStart()

	indices, err := sel.Select(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	entries, err := belt.SelectEntries(candidates, indices)
	if err != nil {
		return nil, fmt.Errorf("select: %w", errors.FromCore(err))
	}
	result.Entries = entries
	result.Stats.Entries = len(entries)
	logger.Info("selected entries", "count", len(entries), "indices", indices)

	propStart := run.timer()
	prop, err := run.Propagate(ctx, in.Grid, entries)
	if err != nil {
		return nil, fmt.Errorf("propagate: %w", err)
	}
	result.Propagation = prop
	result.Stats.Visited = prop.Visited
	result.Stats.Splitters = len(prop.Splitters)
	result.Stats.PropagateTime = propStart()

	if in.Blueprint != nil {
		result.Stats.Changed = in.Blueprint.Apply(in.Grid)
		logger.Info("updated blueprint", "changed", result.Stats.Changed)
	}
	return result, nil
}

// Export writes the prioritized input to w. FormatBlueprint writes an
// exchange string and requires a blueprint input; other formats write a
// grid document.
func (r *Runner) Export(res *Result, w io.Writer, format string) error {
	if err := ValidateOutputFormat(format); err != nil {
		return err
	}
	if format != FormatBlueprint {
		return gridio.Write(res.Input.Grid, w, format)
	}
	if res.Input.Blueprint == nil {
		return errors.New(errors.ErrCodeUnsupported, "%s was not loaded from a blueprint string", res.Input.Name)
	}
	s, err := res.Input.Blueprint.Encode()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, s); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Render draws g as a node-link diagram in the given format. SVG and PNG
// output is looked up in and stored to r.Cache; cache failures are logged
// and otherwise ignored.
func (r *Runner) Render(ctx context.Context, g *belt.Grid, entries []*belt.Entity, format string, detailed bool) ([]byte, error) {
	if err := ValidateRenderFormat(format); err != nil {
		return nil, err
	}
	done := r.timer()
	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: detailed, Entries: entries})
	if format == FormatDOT {
		return []byte(dot), nil
	}

	key := cache.DiagramKey(format, dot)
	if r.Cache != nil {
		data, ok, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("diagram cache read failed", "err", err)
		}
		if ok {
			r.Logger.Info("rendered diagram", "format", format, "bytes", len(data), "cached", true)
			return data, nil
		}
	}

	var out []byte
	var err error
	switch format {
	case FormatSVG:
		out, err = nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		out, err = nodelink.RenderPNG(ctx, dot)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	if r.Cache != nil {
		if err := r.Cache.Set(ctx, key, out, r.CacheTTL); err != nil {
			r.Logger.Warn("diagram cache write failed", "err", err)
		}
	}
	r.Logger.Info("rendered diagram", "format", format, "bytes", len(out), "duration", done())
	return out, nil
}
