package belt

// IsFeeding reports whether items leaving src enter dst. It holds when one
// of src's output tiles is a tile of dst, dst does not face straight back
// into src, and, for splitter targets, dst faces the same way as src
// (splitters cannot be side-loaded).
//
// The relation is directional: IsFeeding(a, b) says nothing about
// IsFeeding(b, a).
func IsFeeding(src, dst *Entity) bool {
	if src == nil || dst == nil || !src.Facing.Valid() || !dst.Facing.Valid() {
		return false
	}
	reaches := false
	for _, out := range src.Outputs() {
		if dst.occupies(out) {
			reaches = true
			break
		}
	}
	if !reaches {
		return false
	}
	if src.Facing.opposes(dst.Facing) {
		return false
	}
	if dst.Kind == KindSplitter && dst.Facing != src.Facing {
		return false
	}
	return true
}

// Downstream returns the entities e feeds directly, in tile order. Input
// undergrounds return their linked output end (see [Grid.UndergroundExit]).
// A dead end returns nil.
func (g *Grid) Downstream(e *Entity) []*Entity {
	if e.Kind == KindUnderground && e.IO == Input {
		if exit := g.UndergroundExit(e); exit != nil {
			return []*Entity{exit}
		}
		return nil
	}
	var out []*Entity
	for _, t := range e.Outputs() {
		next := g.AtVec(t)
		if next != nil && IsFeeding(e, next) {
			out = append(out, next)
		}
	}
	return out
}
