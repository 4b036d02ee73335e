// Package nodelink renders conveyor grids as node-link diagrams.
//
// # Overview
//
// Each belt, underground belt end and splitter becomes a node; edges follow
// the flow of items. The diagram is a debugging aid for checking which
// splitters a propagation reached and what it decided for them.
//
// # Usage
//
// Convert a grid to DOT format, then render it:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Entries: entries})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: node labels include position, facing, tier and prototype name
//   - Entries: entry belts drawn with a thick green outline
//
// # DOT Format
//
// [ToDOT] uses left-to-right layout. Splitters are diamonds, gold once a
// side has priority and grey otherwise. Underground ends are dashed, as is
// the edge from an entrance to its exit.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering;
// no external Graphviz installation is needed.
package nodelink
