package nodelink

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/beltprio/pkg/belt"
)

// mergeGrid is two belts feeding a north-facing splitter, followed by an
// underground pair.
func mergeGrid(t *testing.T) *belt.Grid {
	t.Helper()
	g := belt.NewGrid()
	for _, e := range []*belt.Entity{
		{Kind: belt.KindBelt, Pos: belt.Vec{X: 0, Y: 4}, Facing: belt.North},
		{Kind: belt.KindBelt, Pos: belt.Vec{X: 1, Y: 4}, Facing: belt.North},
		{Kind: belt.KindSplitter, Pos: belt.Vec{X: 0, Y: 3}, Facing: belt.North, Name: "splitter"},
		{Kind: belt.KindUnderground, Pos: belt.Vec{X: 0, Y: 2}, Facing: belt.North, IO: belt.Input},
		{Kind: belt.KindUnderground, Pos: belt.Vec{X: 0, Y: 0}, Facing: belt.North, IO: belt.Output},
	} {
		if err := g.Add(e); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestToDOT(t *testing.T) {
	g := mergeGrid(t)
	g.Entity(3).Priority = belt.PriorityLeft
	dot := ToDOT(g, Options{Entries: []*belt.Entity{g.Entity(1)}})

	for _, want := range []string{
		`"e1" -> "e3";`,
		`"e2" -> "e3";`,
		`"e3" -> "e4";`,
		`"e4" -> "e5" [style=dashed];`,
		"priority: left",
		"shape=diamond",
		"fillcolor=gold",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if n := strings.Count(dot, "penwidth=3"); n != 1 {
		t.Errorf("highlighted entries = %d, want 1", n)
	}
}

func TestToDOTLabels(t *testing.T) {
	g := mergeGrid(t)
	tests := []struct {
		name     string
		detailed bool
		want     []string
		absent   []string
	}{
		{"simple", false, []string{`#4 underground`}, []string{"pos:", "priority:"}},
		{"detailed", true, []string{"pos: (0,2)", "facing: north", "basic input", "splitter"}, []string{"priority:"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dot := ToDOT(g, Options{Detailed: tt.detailed})
			for _, s := range tt.want {
				if !strings.Contains(dot, s) {
					t.Errorf("missing %q", s)
				}
			}
			for _, s := range tt.absent {
				if strings.Contains(dot, s) {
					t.Errorf("unexpected %q", s)
				}
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(mergeGrid(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Errorf("output is not SVG: %.80s", svg)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 10.00 20.00" width="10" height="20"`) {
		t.Errorf("normalizeViewBox = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("no viewBox should pass through, got %s", got)
	}
}
