package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/beltprio/pkg/belt"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes position, facing and tier in node labels.
	// When false, only the entity ID and kind are shown.
	Detailed bool

	// Entries are highlighted as the starting points of a propagation.
	Entries []*belt.Entity
}

// ToDOT converts a grid to Graphviz DOT format. The resulting DOT string can
// be rendered with [RenderSVG] or [RenderPNG].
//
// Every entity becomes a node. Solid edges connect an entity to the
// entities it feeds; dashed edges connect an underground entrance to its
// exit. Splitters are drawn as diamonds labelled with their input priority.
func ToDOT(g *belt.Grid, opts Options) string {
	entries := make(map[int]bool, len(opts.Entries))
	for _, e := range opts.Entries {
		entries[e.ID] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, e := range g.Entities() {
		attrs := fmtAttrs(e, fmtLabel(e, opts.Detailed), entries[e.ID])
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeID(e), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Entities() {
		if e.Kind == belt.KindUnderground && e.IO == belt.Input {
			if exit := g.UndergroundExit(e); exit != nil {
				fmt.Fprintf(&buf, "  %s -> %s [style=dashed];\n", nodeID(e), nodeID(exit))
			}
			continue
		}
		for _, d := range g.Downstream(e) {
			fmt.Fprintf(&buf, "  %s -> %s;\n", nodeID(e), nodeID(d))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(e *belt.Entity) string {
	return strconv.Quote("e" + strconv.Itoa(e.ID))
}

func fmtLabel(e *belt.Entity, detailed bool) string {
	head := fmt.Sprintf("#%d %s", e.ID, e.Kind)
	var parts []string
	if e.Kind == belt.KindSplitter && e.Priority != belt.PriorityUnset {
		parts = append(parts, "priority: "+e.Priority.String())
	}
	if detailed {
		parts = append(parts, "pos: "+e.Pos.String(), "facing: "+e.Facing.String())
		if e.Kind == belt.KindUnderground {
			parts = append(parts, fmt.Sprintf("%s %s", e.Tier, e.IO))
		}
		if e.Name != "" {
			parts = append(parts, e.Name)
		}
	}
	if len(parts) == 0 {
		return head
	}
	return head + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(e *belt.Entity, label string, entry bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch e.Kind {
	case belt.KindSplitter:
		attrs = append(attrs, "shape=diamond", "style=filled")
		switch e.Priority {
		case belt.PriorityLeft, belt.PriorityRight:
			attrs = append(attrs, "fillcolor=gold")
		default:
			attrs = append(attrs, "fillcolor=lightgrey")
		}
	case belt.KindUnderground:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightblue")
	}
	if entry {
		attrs = append(attrs, "penwidth=3", "color=forestgreen")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root svg tag so the image scales with its
// container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
