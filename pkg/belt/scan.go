package belt

import "errors"

var (
	// ErrNoEntryCandidates is returned when a boundary scan finds no entry
	// belts. An empty grid yields it as well.
	ErrNoEntryCandidates = errors.New("no entry candidates found")

	// ErrEmptySelection is returned by [SelectEntries] when none of the
	// chosen indices refers to a candidate.
	ErrEmptySelection = errors.New("no valid entry selected")
)

// scanOrder lists, per edge, the facing an entry belt on that edge must
// have: top, bottom, left, right.
var scanOrder = [4]Direction{South, North, East, West}

// FindEntries scans the four edges of the grid inward and returns the
// straight belts where items enter the network. Each scan line is decided
// by the first entity on it: the line yields a candidate only if that
// entity is a belt facing inward with no lateral neighbor feeding it.
// Entities further in are never examined.
//
// The order is top edge (x ascending), bottom edge (x ascending), left edge
// (y ascending), right edge (y ascending); a candidate's index in the
// returned slice identifies it to [SelectEntries].
func (g *Grid) FindEntries() []*Entity {
	b := g.bounds
	if b.Empty() {
		return nil
	}
	var out []*Entity
	for _, inward := range scanOrder {
		step := inward.offset()
		for _, start := range edgeStarts(b, inward) {
			if e := g.scanLine(start, step, inward); e != nil {
				out = append(out, e)
			}
		}
	}
	return out
}

// edgeStarts returns the first tile of every scan line for the edge whose
// inward direction is dir.
func edgeStarts(b Rect, dir Direction) []Vec {
	var starts []Vec
	switch dir {
	case South:
		for x := b.Min.X; x < b.Max.X; x++ {
			starts = append(starts, Vec{x, b.Min.Y})
		}
	case North:
		for x := b.Min.X; x < b.Max.X; x++ {
			starts = append(starts, Vec{x, b.Max.Y - 1})
		}
	case East:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			starts = append(starts, Vec{b.Min.X, y})
		}
	case West:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			starts = append(starts, Vec{b.Max.X - 1, y})
		}
	}
	return starts
}

func (g *Grid) scanLine(pos, step Vec, inward Direction) *Entity {
	for ; g.bounds.Contains(pos); pos = pos.Add(step) {
		e := g.AtVec(pos)
		if e == nil {
			continue
		}
		if e.Kind == KindBelt && e.Facing == inward && !g.hasLateralFeeder(e) {
			return e
		}
		break
	}
	return nil
}

// hasLateralFeeder reports whether a neighbor to the left or right of e
// (relative to its facing) feeds into it.
func (g *Grid) hasLateralFeeder(e *Entity) bool {
	for _, side := range []Direction{e.Facing.Left(), e.Facing.Right()} {
		n := g.AtVec(e.Pos.Add(side.offset()))
		if n != nil && n != e && IsFeeding(n, e) {
			return true
		}
	}
	return false
}

// SelectEntries picks candidates by index. Out-of-range indices are ignored
// and repeated indices count once; the order of first appearance is kept.
// Returns ErrEmptySelection when nothing valid remains.
func SelectEntries(candidates []*Entity, indices []int) ([]*Entity, error) {
	seen := make(map[int]bool, len(indices))
	var out []*Entity
	for _, i := range indices {
		if i < 0 || i >= len(candidates) || seen[i] {
			continue
		}
		seen[i] = true
		out = append(out, candidates[i])
	}
	if len(out) == 0 {
		return nil, ErrEmptySelection
	}
	return out, nil
}
