package belt

import "testing"

func beltAt(x, y int, d Direction) *Entity {
	return &Entity{Kind: KindBelt, Pos: Vec{x, y}, Facing: d}
}

func undergroundAt(x, y int, d Direction, io IOType, tier Tier) *Entity {
	return &Entity{Kind: KindUnderground, Pos: Vec{x, y}, Facing: d, IO: io, Tier: tier}
}

func splitterAt(x, y int, d Direction) *Entity {
	return &Entity{Kind: KindSplitter, Pos: Vec{x, y}, Facing: d}
}

func newTestGrid(t *testing.T, ents ...*Entity) *Grid {
	t.Helper()
	g := NewGrid()
	for _, e := range ents {
		if err := g.Add(e); err != nil {
			t.Fatalf("Add(%v) error: %v", e, err)
		}
	}
	return g
}

// mergeGrid is a north-facing splitter fed by one belt per input side.
//
//	y=1  [S S]
//	y=2   ^ ^
//	     x=0 x=1
func mergeGrid(t *testing.T) (g *Grid, left, right, s *Entity) {
	t.Helper()
	left = beltAt(0, 2, North)
	right = beltAt(1, 2, North)
	s = splitterAt(0, 1, North)
	return newTestGrid(t, left, right, s), left, right, s
}
