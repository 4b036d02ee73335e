package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/beltprio/pkg/belt"
	"github.com/matzehuels/beltprio/pkg/errors"
)

const mergeJSON = `{
  "bounds": {"min_x": 0, "min_y": 0, "max_x": 2, "max_y": 3},
  "entities": [
    {"kind": "belt", "x": 0, "y": 2, "facing": "north"},
    {"kind": "belt", "x": 1, "y": 2, "facing": "north"},
    {"kind": "splitter", "x": 0, "y": 1, "facing": "north"},
    {"kind": "underground", "x": 0, "y": 0, "facing": "north", "tier": "fast"}
  ]
}`

func TestReadJSON(t *testing.T) {
	g, err := ReadJSON(strings.NewReader(mergeJSON))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if g.Len() != 4 {
		t.Fatalf("Len = %d, want 4", g.Len())
	}
	want := belt.Rect{Max: belt.Vec{X: 2, Y: 3}}
	if g.Bounds() != want {
		t.Errorf("Bounds = %v, want %v", g.Bounds(), want)
	}

	s := g.At(1, 1)
	if s == nil || s.Kind != belt.KindSplitter {
		t.Fatalf("At(1,1) = %v, want splitter", s)
	}
	if s.Priority != belt.PriorityUnset {
		t.Errorf("splitter priority = %v, want unset", s.Priority)
	}

	u := g.At(0, 0)
	if u == nil || u.Kind != belt.KindUnderground {
		t.Fatalf("At(0,0) = %v, want underground", u)
	}
	if u.IO != belt.Input || u.Tier != belt.TierFast {
		t.Errorf("underground = %v/%v, want input/fast", u.IO, u.Tier)
	}
}

func TestReadRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed", `{"entities": [`},
		{"missing entities", `{}`},
		{"unknown kind", `{"entities": [{"kind": "inserter", "x": 0, "y": 0, "facing": "north"}]}`},
		{"unknown facing", `{"entities": [{"kind": "belt", "x": 0, "y": 0, "facing": "up"}]}`},
		{"unknown field", `{"entities": [{"kind": "belt", "x": 0, "y": 0, "facing": "north", "speed": 2}]}`},
		{"overlap", `{"entities": [
			{"kind": "splitter", "x": 0, "y": 0, "facing": "north"},
			{"kind": "belt", "x": 1, "y": 0, "facing": "north"}]}`},
		{"duplicate id", `{"entities": [
			{"id": 3, "kind": "belt", "x": 0, "y": 0, "facing": "north"},
			{"id": 3, "kind": "belt", "x": 1, "y": 0, "facing": "north"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidGrid) {
				t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidGrid)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	src, err := ReadJSON(strings.NewReader(mergeJSON))
	if err != nil {
		t.Fatal(err)
	}
	src.At(0, 1).Priority = belt.PriorityLeft

	for _, format := range []string{"json", "yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(src, &buf, format); err != nil {
				t.Fatalf("Write: %v", err)
			}
			got, err := Read(&buf, format)
			if err != nil {
				t.Fatalf("Read: %v\n%s", err, buf.String())
			}
			if got.Bounds() != src.Bounds() {
				t.Errorf("Bounds = %v, want %v", got.Bounds(), src.Bounds())
			}
			a, b := src.Entities(), got.Entities()
			if len(a) != len(b) {
				t.Fatalf("len = %d, want %d", len(b), len(a))
			}
			for i := range a {
				if *a[i] != *b[i] {
					t.Errorf("entity %d = %v, want %v", i, b[i], a[i])
				}
			}
		})
	}
}

func TestWriteOmitsUnsetPriority(t *testing.T) {
	g, err := ReadJSON(strings.NewReader(mergeJSON))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "priority") {
		t.Errorf("unexpected priority field:\n%s", buf.String())
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(belt.NewGrid(), &bytes.Buffer{}, "xml")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}

func TestImportExportFile(t *testing.T) {
	g, err := ReadJSON(strings.NewReader(mergeJSON))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "grid.yml")
	if err := ExportFile(g, path); err != nil {
		t.Fatalf("ExportFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "kind: splitter") {
		t.Errorf("expected YAML output, got:\n%s", data)
	}

	got, err := ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if got.Len() != g.Len() {
		t.Errorf("Len = %d, want %d", got.Len(), g.Len())
	}
}

func TestImportFileMissing(t *testing.T) {
	_, err := ImportFile(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}
