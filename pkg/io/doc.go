// Package io provides import and export of conveyor grids as JSON, YAML or
// TOML documents.
//
// # Overview
//
// This package is the file-level construction interface for [belt.Grid]. It
// is used to:
//
//   - Load hand-written or generated grids for the CLI and the HTTP API
//   - Save grids after propagation with the resolved splitter priorities
//   - Exchange grids with tools that do not speak blueprint strings
//
// # Document Format
//
// One top-level array is required, the bounds object is optional:
//
//	{
//	  "bounds": {"min_x": 0, "min_y": 0, "max_x": 2, "max_y": 3},
//	  "entities": [
//	    {"kind": "belt", "x": 0, "y": 2, "facing": "north"},
//	    {"kind": "belt", "x": 1, "y": 2, "facing": "north"},
//	    {"kind": "splitter", "x": 0, "y": 1, "facing": "north", "priority": "left"},
//	    {"kind": "underground", "x": 0, "y": 0, "facing": "north", "io": "input", "tier": "fast"}
//	  ]
//	}
//
// # Entity Fields
//
// Required:
//   - kind: "belt", "underground" or "splitter"
//   - x, y: top-left tile of the entity
//   - facing: "north", "east", "south" or "west"
//
// Optional:
//   - id: stable identifier (assigned in document order when omitted)
//   - name: prototype name, kept for round trips
//   - io: "input" or "output" (undergrounds, defaults to input)
//   - tier: "basic", "fast" or "express" (undergrounds, defaults to basic)
//   - priority: "none", "left" or "right" (splitters)
//
// Bounds are exclusive on max_x/max_y. When omitted, the bounding rectangle
// of all occupied tiles is used for the boundary scan.
//
// # Formats
//
// [Read] and [Write] take a format name ("json", "yaml" or "toml");
// [ImportFile] and [ExportFile] infer it from the file extension. JSON
// documents are validated against an embedded JSON Schema before decoding,
// so structural mistakes are reported with their JSON pointer.
//
// # Concurrency
//
// Functions in this package hold no shared state and are safe to call
// concurrently on different grids.
package io
