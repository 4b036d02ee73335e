// Package pkg provides the libraries behind beltprio.
//
// # Overview
//
// beltprio sets splitter input priorities on conveyor networks. Items enter
// a network at entry belts on its edge; every splitter they reach gets input
// priority on the side they arrive from. The pkg directory is organized
// into these areas:
//
//  1. [belt] - Grid model, feed rules, boundary scan and priority propagation
//  2. [blueprint] - Blueprint exchange strings to and from grids
//  3. [io] - Grid documents in JSON, YAML and TOML
//  4. [pipeline] - Orchestration (load → scan → select → propagate → export)
//  5. [render/nodelink] - Graphviz diagrams of a grid
//  6. [cache] - Rendered diagram cache
//  7. [errors] and [observability] - Error codes and event hooks
//
// # Architecture
//
// The typical data flow:
//
//	Blueprint string / grid file
//	         ↓
//	    [blueprint] or [io] (build a belt.Grid)
//	         ↓
//	    [belt] FindEntries (entry candidates)
//	         ↓
//	    selection (indices, --all, or the interactive picker)
//	         ↓
//	    [belt] Propagator (splitter priorities)
//	         ↓
//	    blueprint string / grid file / diagram
//
// # Quick Start
//
//	runner := pipeline.NewRunner(logger)
//	in, err := runner.Load(ctx, pipeline.Source{Path: "base.txt"})
//	if err != nil {
//	    return err
//	}
//	res, err := runner.Prioritize(ctx, in, pipeline.IndexSelector{0})
//	if err != nil {
//	    return err
//	}
//	return runner.Export(res, os.Stdout, pipeline.FormatBlueprint)
package pkg
