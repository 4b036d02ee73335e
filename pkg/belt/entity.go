package belt

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTier is returned for underground belts whose tier has no
	// known maximum span.
	ErrUnknownTier = errors.New("unknown underground tier")

	// ErrUnknownKind is returned for entities of a kind the grid cannot hold.
	ErrUnknownKind = errors.New("unknown entity kind")
)

// Kind selects which variant an Entity is. The set is closed.
type Kind int

const (
	// KindBelt is a straight one-tile belt.
	KindBelt Kind = iota
	// KindUnderground is one end of an underground belt pair.
	KindUnderground
	// KindSplitter is a two-tile merge node.
	KindSplitter
)

var kindNames = map[Kind]string{
	KindBelt:        "belt",
	KindUnderground: "underground",
	KindSplitter:    "splitter",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind parses the name produced by Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// IOType tells the two ends of an underground belt apart.
type IOType int

const (
	Input IOType = iota
	Output
)

func (t IOType) String() string {
	if t == Output {
		return "output"
	}
	return "input"
}

// ParseIOType parses "input" or "output".
func ParseIOType(s string) (IOType, error) {
	switch s {
	case "input":
		return Input, nil
	case "output":
		return Output, nil
	}
	return 0, fmt.Errorf("unknown io type %q", s)
}

// Tier is the grade of an underground belt. It bounds how far an input end
// can reach and only ends of the same tier link up.
type Tier int

const (
	TierBasic Tier = iota
	TierFast
	TierExpress
)

var tierSpans = map[Tier]int{
	TierBasic:   4,
	TierFast:    6,
	TierExpress: 8,
}

var tierNames = map[Tier]string{
	TierBasic:   "basic",
	TierFast:    "fast",
	TierExpress: "express",
}

// MaxSpan returns how many tiles ahead an input end of this tier looks for
// its output end. Unknown tiers return 0.
func (t Tier) MaxSpan() int { return tierSpans[t] }

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	_, ok := tierSpans[t]
	return ok
}

func (t Tier) String() string {
	if s, ok := tierNames[t]; ok {
		return s
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// ParseTier parses "basic", "fast" or "express".
func ParseTier(s string) (Tier, error) {
	for t, name := range tierNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTier, s)
}

// Priority is a splitter's input priority.
type Priority int

const (
	// PriorityUnset marks a splitter no propagation has reached.
	PriorityUnset Priority = iota
	// PriorityNone balances both inputs.
	PriorityNone
	// PriorityLeft prefers the left input side.
	PriorityLeft
	// PriorityRight prefers the right input side.
	PriorityRight
)

func (p Priority) String() string {
	switch p {
	case PriorityNone:
		return "none"
	case PriorityLeft:
		return "left"
	case PriorityRight:
		return "right"
	}
	return "unset"
}

// ParsePriority parses the name produced by Priority.String. The empty
// string is PriorityUnset.
func ParsePriority(s string) (Priority, error) {
	switch s {
	case "", "unset":
		return PriorityUnset, nil
	case "none":
		return PriorityNone, nil
	case "left":
		return PriorityLeft, nil
	case "right":
		return PriorityRight, nil
	}
	return 0, fmt.Errorf("unknown priority %q", s)
}

// Entity is a belt, underground belt end or splitter on the grid.
//
// IO and Tier are only meaningful for KindUnderground and Priority only for
// KindSplitter. Pos is the top-left tile of the footprint.
type Entity struct {
	ID       int       // Unique within a grid; assigned by Grid.Add when zero
	Kind     Kind      // Variant
	Name     string    // Prototype name (e.g. "fast-splitter"); optional
	Pos      Vec       // Top-left occupied tile
	Facing   Direction // Direction items move towards
	IO       IOType    // Underground end
	Tier     Tier      // Underground tier
	Priority Priority  // Splitter input priority
}

// Tiles returns the tiles the entity occupies. Splitters return their left
// tile first and their right tile second, relative to their facing.
func (e *Entity) Tiles() []Vec {
	if e.Kind != KindSplitter {
		return []Vec{e.Pos}
	}
	x, y := e.Pos.X, e.Pos.Y
	switch e.Facing {
	case North:
		return []Vec{{x, y}, {x + 1, y}}
	case South:
		return []Vec{{x + 1, y}, {x, y}}
	case East:
		return []Vec{{x, y}, {x, y + 1}}
	case West:
		return []Vec{{x, y + 1}, {x, y}}
	}
	return nil
}

// Outputs returns the tiles this entity pushes items onto: each occupied
// tile moved one step along the facing.
func (e *Entity) Outputs() []Vec {
	off := e.Facing.offset()
	tiles := e.Tiles()
	out := make([]Vec, len(tiles))
	for i, t := range tiles {
		out[i] = t.Add(off)
	}
	return out
}

// occupies reports whether the entity covers tile v.
func (e *Entity) occupies(v Vec) bool {
	for _, t := range e.Tiles() {
		if t == v {
			return true
		}
	}
	return false
}

func (e *Entity) String() string {
	switch e.Kind {
	case KindUnderground:
		return fmt.Sprintf("#%d %s %s %s %s %s", e.ID, e.Kind, e.Tier, e.IO, e.Pos, e.Facing)
	case KindSplitter:
		return fmt.Sprintf("#%d %s %s %s prio=%s", e.ID, e.Kind, e.Pos, e.Facing, e.Priority)
	}
	return fmt.Sprintf("#%d %s %s %s", e.ID, e.Kind, e.Pos, e.Facing)
}
