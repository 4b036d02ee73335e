package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/beltprio/pkg/belt"
	"github.com/matzehuels/beltprio/pkg/errors"
)

// Read decodes a grid document in the given format ("json", "yaml" or
// "toml") from r.
//
// Read returns an INVALID_GRID error if:
//   - The document is malformed or (for JSON) violates the schema
//   - A kind, facing, io, tier or priority value is unknown
//   - Two entities share a tile or an ID
//
// Errors name the offending entity by its position in the document. Read
// does not close r.
func Read(r io.Reader, format string) (*belt.Grid, error) {
	var doc document
	switch format {
	case "json":
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}
		if err := ValidateJSON(data); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGrid, err, "invalid grid document")
		}
		if err := json.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGrid, err, "decode")
		}
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGrid, err, "decode")
		}
	case "toml":
		if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGrid, err, "decode")
		}
	default:
		return nil, errors.ValidateFormat(format)
	}
	return toGrid(doc)
}

// ReadJSON decodes a JSON grid document from r.
func ReadJSON(r io.Reader) (*belt.Grid, error) {
	return Read(r, "json")
}

// ImportFile reads the grid at path, choosing the format from the extension.
func ImportFile(path string) (*belt.Grid, error) {
	format, err := errors.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "grid file %s not found", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, format)
}

func toGrid(doc document) (*belt.Grid, error) {
	g := belt.NewGrid()
	if doc.Bounds != nil {
		g.SetBounds(belt.Rect{
			Min: belt.Vec{X: doc.Bounds.MinX, Y: doc.Bounds.MinY},
			Max: belt.Vec{X: doc.Bounds.MaxX, Y: doc.Bounds.MaxY},
		})
	}
	for i, raw := range doc.Entities {
		e, err := toEntity(raw)
		if err == nil {
			err = g.Add(e)
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGrid, err, "entity %d", i)
		}
	}
	return g, nil
}

func toEntity(raw entity) (*belt.Entity, error) {
	kind, err := belt.ParseKind(raw.Kind)
	if err != nil {
		return nil, err
	}
	facing, err := belt.ParseDirection(raw.Facing)
	if err != nil {
		return nil, err
	}
	e := &belt.Entity{
		ID:     raw.ID,
		Kind:   kind,
		Name:   raw.Name,
		Pos:    belt.Vec{X: raw.X, Y: raw.Y},
		Facing: facing,
	}
	switch kind {
	case belt.KindUnderground:
		if raw.IO != "" {
			if e.IO, err = belt.ParseIOType(raw.IO); err != nil {
				return nil, err
			}
		}
		if raw.Tier != "" {
			if e.Tier, err = belt.ParseTier(raw.Tier); err != nil {
				return nil, err
			}
		}
	case belt.KindSplitter:
		if e.Priority, err = belt.ParsePriority(raw.Priority); err != nil {
			return nil, err
		}
	}
	return e, nil
}
