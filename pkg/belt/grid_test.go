package belt

import (
	"errors"
	"testing"
)

func TestSplitterTiles(t *testing.T) {
	tests := []struct {
		dir         Direction
		left, right Vec
	}{
		{North, Vec{0, 0}, Vec{1, 0}},
		{South, Vec{1, 0}, Vec{0, 0}},
		{East, Vec{0, 0}, Vec{0, 1}},
		{West, Vec{0, 1}, Vec{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			tiles := splitterAt(0, 0, tt.dir).Tiles()
			if len(tiles) != 2 || tiles[0] != tt.left || tiles[1] != tt.right {
				t.Errorf("Tiles() = %v, want [%v %v]", tiles, tt.left, tt.right)
			}
		})
	}
}

func TestGridAtSplitterBothTiles(t *testing.T) {
	s := splitterAt(2, 3, East)
	g := newTestGrid(t, s)

	if g.At(2, 3) != s || g.At(2, 4) != s {
		t.Error("splitter should be present on both of its tiles")
	}
	if g.At(3, 3) != nil {
		t.Error("At() on an empty tile should return nil")
	}
}

func TestGridAddErrors(t *testing.T) {
	tests := []struct {
		name string
		ent  *Entity
		want error
	}{
		{"invalid direction", &Entity{Kind: KindBelt, Facing: 3}, ErrInvalidDirection},
		{"unknown tier", &Entity{Kind: KindUnderground, Tier: Tier(9)}, ErrUnknownTier},
		{"unknown kind", &Entity{Kind: Kind(42)}, ErrUnknownKind},
		{"occupied tile", beltAt(1, 0, North), ErrTileOccupied},
		{"duplicate id", &Entity{ID: 1, Kind: KindBelt, Pos: Vec{5, 5}}, ErrDuplicateID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGrid(t, splitterAt(0, 0, North))
			err := g.Add(tt.ent)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Add() error = %v, want %v", err, tt.want)
			}
			if g.Len() != 1 {
				t.Errorf("Len() = %d after failed Add, want 1", g.Len())
			}
		})
	}
}

func TestGridIDsAndBounds(t *testing.T) {
	a := beltAt(-1, 2, North)
	b := &Entity{ID: 10, Kind: KindBelt, Pos: Vec{3, 0}, Facing: North}
	c := splitterAt(0, 4, South)
	g := newTestGrid(t, a, b, c)

	if a.ID != 1 {
		t.Errorf("first ID = %d, want 1", a.ID)
	}
	if c.ID != 11 {
		t.Errorf("ID after explicit 10 = %d, want 11", c.ID)
	}
	if g.Entity(10) != b {
		t.Error("Entity(10) should return the entity added with that ID")
	}

	want := Rect{Min: Vec{-1, 0}, Max: Vec{4, 5}}
	if got := g.Bounds(); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}

	ents := g.Entities()
	if len(ents) != 3 || ents[0] != a || ents[2] != c {
		t.Errorf("Entities() not sorted by ID: %v", ents)
	}
	if s := g.Splitters(); len(s) != 1 || s[0] != c {
		t.Errorf("Splitters() = %v", s)
	}
}

func TestGridSetBounds(t *testing.T) {
	g := NewGrid()
	r := Rect{Min: Vec{0, 0}, Max: Vec{10, 10}}
	g.SetBounds(r)
	if err := g.Add(beltAt(2, 2, North)); err != nil {
		t.Fatal(err)
	}
	if g.Bounds() != r {
		t.Errorf("Bounds() = %v, want fixed %v", g.Bounds(), r)
	}
}
