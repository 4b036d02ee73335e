package belt

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrTileOccupied is returned by [Grid.Add] when one of the entity's
	// tiles already holds another entity.
	ErrTileOccupied = errors.New("tile already occupied")

	// ErrDuplicateID is returned by [Grid.Add] when an entity with the same
	// ID already exists.
	ErrDuplicateID = errors.New("duplicate entity ID")
)

// Rect is a tile rectangle; Max is exclusive.
type Rect struct {
	Min Vec `json:"min"`
	Max Vec `json:"max"`
}

// Empty reports whether the rectangle contains no tiles.
func (r Rect) Empty() bool { return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y }

// Contains reports whether v lies inside r.
func (r Rect) Contains(v Vec) bool {
	return v.X >= r.Min.X && v.X < r.Max.X && v.Y >= r.Min.Y && v.Y < r.Max.Y
}

// Grid is a conveyor network indexed by tile.
//
// The zero value is not usable; use NewGrid. A Grid is populated once and
// then only read by scans and propagation, which write nothing but
// splitter priorities.
type Grid struct {
	entities map[int]*Entity
	tiles    map[Vec]*Entity
	bounds   Rect
	fixed    bool // bounds set explicitly
	nextID   int
}

// NewGrid creates an empty grid.
func NewGrid() *Grid {
	return &Grid{
		entities: make(map[int]*Entity),
		tiles:    make(map[Vec]*Entity),
		nextID:   1,
	}
}

// Add places e on the grid. An entity with ID 0 gets the next free ID.
// Returns ErrInvalidDirection, ErrUnknownTier, ErrUnknownKind,
// ErrDuplicateID or ErrTileOccupied; on error the grid is unchanged.
func (g *Grid) Add(e *Entity) error {
	if !e.Facing.Valid() {
		return fmt.Errorf("entity at %s: %w: %d", e.Pos, ErrInvalidDirection, e.Facing)
	}
	switch e.Kind {
	case KindBelt, KindSplitter:
	case KindUnderground:
		if !e.Tier.Valid() {
			return fmt.Errorf("entity at %s: %w: %d", e.Pos, ErrUnknownTier, e.Tier)
		}
	default:
		return fmt.Errorf("entity at %s: %w", e.Pos, ErrUnknownKind)
	}
	if e.ID != 0 {
		if _, ok := g.entities[e.ID]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicateID, e.ID)
		}
	}
	tiles := e.Tiles()
	for _, t := range tiles {
		if other, ok := g.tiles[t]; ok {
			return fmt.Errorf("%w: %s holds %s", ErrTileOccupied, t, other)
		}
	}

	if e.ID == 0 {
		for g.entities[g.nextID] != nil {
			g.nextID++
		}
		e.ID = g.nextID
	}
	if e.ID >= g.nextID {
		g.nextID = e.ID + 1
	}
	g.entities[e.ID] = e
	for _, t := range tiles {
		g.tiles[t] = e
		if !g.fixed {
			g.grow(t)
		}
	}
	return nil
}

func (g *Grid) grow(t Vec) {
	if g.bounds.Empty() {
		g.bounds = Rect{Min: t, Max: Vec{t.X + 1, t.Y + 1}}
		return
	}
	g.bounds.Min.X = min(g.bounds.Min.X, t.X)
	g.bounds.Min.Y = min(g.bounds.Min.Y, t.Y)
	g.bounds.Max.X = max(g.bounds.Max.X, t.X+1)
	g.bounds.Max.Y = max(g.bounds.Max.Y, t.Y+1)
}

// SetBounds fixes the scan area instead of deriving it from the entities.
func (g *Grid) SetBounds(r Rect) {
	g.bounds = r
	g.fixed = true
}

// Bounds returns the area the boundary scan covers.
func (g *Grid) Bounds() Rect { return g.bounds }

// At returns the entity occupying tile (x, y), or nil.
func (g *Grid) At(x, y int) *Entity { return g.tiles[Vec{x, y}] }

// AtVec is At for a Vec.
func (g *Grid) AtVec(v Vec) *Entity { return g.tiles[v] }

// Entity returns the entity with the given ID, or nil.
func (g *Grid) Entity(id int) *Entity { return g.entities[id] }

// Entities returns all entities sorted by ID.
func (g *Grid) Entities() []*Entity {
	out := make([]*Entity, 0, len(g.entities))
	for _, e := range g.entities {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b *Entity) int { return a.ID - b.ID })
	return out
}

// Len returns the number of entities.
func (g *Grid) Len() int { return len(g.entities) }

// Splitters returns all splitters sorted by ID.
func (g *Grid) Splitters() []*Entity {
	var out []*Entity
	for _, e := range g.Entities() {
		if e.Kind == KindSplitter {
			out = append(out, e)
		}
	}
	return out
}
