package belt

import (
	"errors"
	"fmt"
)

// ErrUnreachableMergeState is returned by [ResolveSplitter] when neither
// input side of a splitter carries prioritized items. Propagation only
// calls the resolver right after arriving through one of the sides, so this
// means the network is malformed.
var ErrUnreachableMergeState = errors.New("splitter has no prioritized input")

// InputSides returns the entities sitting on the left and right input
// tiles of splitter s, either of which may be nil. They are not checked
// for feeding s.
func (g *Grid) InputSides(s *Entity) (left, right *Entity) {
	back := s.Facing.offset()
	tiles := s.Tiles()
	if len(tiles) != 2 {
		return nil, nil
	}
	return g.AtVec(tiles[0].Sub(back)), g.AtVec(tiles[1].Sub(back))
}

// ResolveSplitter decides the input priority of splitter s when propagation
// arrives at it from arrivedFrom. A side is prioritized when the entity on
// its input tile feeds s and is either arrivedFrom or already visited.
//
//	left  right  result
//	yes   yes    PriorityNone
//	yes   no     PriorityLeft
//	no    yes    PriorityRight
//	no    no     ErrUnreachableMergeState
func ResolveSplitter(g *Grid, arrivedFrom, s *Entity, visited func(id int) bool) (Priority, error) {
	left, right := g.InputSides(s)
	prioritized := func(side *Entity) bool {
		if side == nil || !IsFeeding(side, s) {
			return false
		}
		return side == arrivedFrom || visited(side.ID)
	}

	l, r := prioritized(left), prioritized(right)
	switch {
	case l && r:
		return PriorityNone, nil
	case l:
		return PriorityLeft, nil
	case r:
		return PriorityRight, nil
	}
	return PriorityUnset, fmt.Errorf("%w: %s reached from %s", ErrUnreachableMergeState, s, arrivedFrom)
}
