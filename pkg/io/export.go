package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/beltprio/pkg/belt"
	"github.com/matzehuels/beltprio/pkg/errors"
)

type document struct {
	Bounds   *bounds  `json:"bounds,omitempty" yaml:"bounds,omitempty" toml:"bounds,omitempty"`
	Entities []entity `json:"entities" yaml:"entities" toml:"entities"`
}

type bounds struct {
	MinX int `json:"min_x" yaml:"min_x" toml:"min_x"`
	MinY int `json:"min_y" yaml:"min_y" toml:"min_y"`
	MaxX int `json:"max_x" yaml:"max_x" toml:"max_x"`
	MaxY int `json:"max_y" yaml:"max_y" toml:"max_y"`
}

type entity struct {
	ID       int    `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Kind     string `json:"kind" yaml:"kind" toml:"kind"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	X        int    `json:"x" yaml:"x" toml:"x"`
	Y        int    `json:"y" yaml:"y" toml:"y"`
	Facing   string `json:"facing" yaml:"facing" toml:"facing"`
	IO       string `json:"io,omitempty" yaml:"io,omitempty" toml:"io,omitempty"`
	Tier     string `json:"tier,omitempty" yaml:"tier,omitempty" toml:"tier,omitempty"`
	Priority string `json:"priority,omitempty" yaml:"priority,omitempty" toml:"priority,omitempty"`
}

func fromGrid(g *belt.Grid) document {
	doc := document{Entities: make([]entity, 0, g.Len())}
	if b := g.Bounds(); !b.Empty() {
		doc.Bounds = &bounds{MinX: b.Min.X, MinY: b.Min.Y, MaxX: b.Max.X, MaxY: b.Max.Y}
	}
	for _, e := range g.Entities() {
		out := entity{
			ID:     e.ID,
			Kind:   e.Kind.String(),
			Name:   e.Name,
			X:      e.Pos.X,
			Y:      e.Pos.Y,
			Facing: e.Facing.String(),
		}
		switch e.Kind {
		case belt.KindUnderground:
			out.IO = e.IO.String()
			out.Tier = e.Tier.String()
		case belt.KindSplitter:
			if e.Priority != belt.PriorityUnset {
				out.Priority = e.Priority.String()
			}
		}
		doc.Entities = append(doc.Entities, out)
	}
	return doc
}

// Write encodes g in the given format ("json", "yaml" or "toml") to w.
// Entities are written in ID order; splitters carry their priority once
// one has been resolved.
func Write(g *belt.Grid, w io.Writer, format string) error {
	doc := fromGrid(g)
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	case "toml":
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	default:
		return errors.ValidateFormat(format)
	}
	return nil
}

// WriteJSON encodes g as indented JSON.
func WriteJSON(g *belt.Grid, w io.Writer) error {
	return Write(g, w, "json")
}

// ExportFile writes g to path, choosing the format from the extension.
func ExportFile(g *belt.Grid, path string) error {
	format, err := errors.FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(g, f, format)
}
