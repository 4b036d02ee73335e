package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/beltprio/pkg/belt"
	"github.com/matzehuels/beltprio/pkg/blueprint"
	"github.com/matzehuels/beltprio/pkg/errors"
	gridio "github.com/matzehuels/beltprio/pkg/io"
)

// Source describes where a grid comes from. Exactly one of Path and Data
// is used; Data wins when both are set.
type Source struct {
	Path   string // grid document or file holding a blueprint string; "-" is stdin
	Data   []byte // inline grid document or blueprint string
	Format string // "json", "yaml", "toml" or "blueprint"; detected when empty
}

// blueprintExts are file extensions holding blueprint exchange strings.
var blueprintExts = map[string]bool{".txt": true, ".bp": true, ".blueprint": true}

func (s Source) name() string {
	switch {
	case s.Data != nil:
		return "inline"
	case s.Path == "-":
		return "stdin"
	}
	return s.Path
}

// read returns the raw bytes and the resolved format of the source.
func (s Source) read(stdin io.Reader) ([]byte, string, error) {
	data := s.Data
	if data == nil {
		var err error
		if s.Path == "-" {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(s.Path)
			if os.IsNotExist(err) {
				return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "%s not found", s.Path)
			}
		}
		if err != nil {
			return nil, "", fmt.Errorf("read %s: %w", s.name(), err)
		}
	}

	format := strings.ToLower(s.Format)
	if format == "" {
		format = detectFormat(s.Path, data)
	}
	if format == "yml" {
		format = "yaml"
	}
	if err := ValidateOutputFormat(format); err != nil {
		return nil, "", err
	}
	return data, format, nil
}

// detectFormat picks a format from the file extension, falling back to the
// first non-blank byte: '{' is JSON, '0' a blueprint string.
func detectFormat(path string, data []byte) string {
	if path != "" && path != "-" {
		ext := strings.ToLower(filepath.Ext(path))
		if blueprintExts[ext] {
			return FormatBlueprint
		}
		if f, err := errors.FormatFromPath(path); err == nil {
			return f
		}
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 {
		switch trimmed[0] {
		case '{':
			return "json"
		case '0':
			return FormatBlueprint
		}
	}
	return ""
}

// Load reads src into a grid.
func (r *Runner) Load(ctx context.Context, src Source) (*Input, error) {
	name := src.name()
	r.hooks().OnLoadStart(ctx, name)
	done := r.timer()

	in, err := r.load(src, name)
	n := 0
	if in != nil {
		n = in.Grid.Len()
	}
	r.hooks().OnLoadComplete(ctx, name, n, done(), err)
	if err != nil {
		return nil, err
	}
	r.Logger.Info("loaded grid", "source", name, "entities", n, "blueprint", in.Blueprint != nil)
	return in, nil
}

func (r *Runner) load(src Source, name string) (*Input, error) {
	data, format, err := src.read(r.stdin())
	if err != nil {
		return nil, err
	}
	in := &Input{Name: name}
	if format == FormatBlueprint {
		bp, err := blueprint.Decode(string(data))
		if err != nil {
			return nil, err
		}
		g, err := bp.Grid()
		if err != nil {
			return nil, err
		}
		in.Grid, in.Blueprint = g, bp
		return in, nil
	}
	g, err := gridio.Read(bytes.NewReader(data), format)
	if err != nil {
		return nil, err
	}
	in.Grid = g
	return in, nil
}

// ParseIndices parses a comma-separated list of candidate indices. Items
// that are not non-negative integers, or are not below n, are skipped.
// An empty result is not an error here; [belt.SelectEntries] reports it.
func ParseIndices(s string, n int) []int {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" || strings.ContainsAny(part, "+-") {
			continue
		}
		i, err := strconv.Atoi(part)
		if err != nil || i >= n {
			continue
		}
		out = append(out, i)
	}
	return out
}

// Selector chooses entry belts among the scan candidates.
type Selector interface {
	// Select returns indices into candidates.
	Select(ctx context.Context, candidates []*belt.Entity) ([]int, error)
}

// IndexSelector selects fixed candidate indices.
type IndexSelector []int

// Select implements [Selector].
func (s IndexSelector) Select(context.Context, []*belt.Entity) ([]int, error) {
	return s, nil
}

// AllSelector selects every candidate.
type AllSelector struct{}

// Select implements [Selector].
func (AllSelector) Select(_ context.Context, candidates []*belt.Entity) ([]int, error) {
	out := make([]int, len(candidates))
	for i := range out {
		out[i] = i
	}
	return out, nil
}

// SelectorFunc adapts a function to [Selector].
type SelectorFunc func(ctx context.Context, candidates []*belt.Entity) ([]int, error)

// Select implements [Selector].
func (f SelectorFunc) Select(ctx context.Context, candidates []*belt.Entity) ([]int, error) {
	return f(ctx, candidates)
}
