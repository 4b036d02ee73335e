package belt

// UndergroundExit returns the output end an input underground belt surfaces
// at: the nearest Output underground of the same tier within the tier's
// maximum span along in's facing that does not face back towards in.
// Returns nil for a dead end or when in is not an input underground.
func (g *Grid) UndergroundExit(in *Entity) *Entity {
	if in == nil || in.Kind != KindUnderground || in.IO != Input {
		return nil
	}
	step := in.Facing.offset()
	if step == (Vec{}) {
		return nil
	}
	pos := in.Pos
	for range in.Tier.MaxSpan() {
		pos = pos.Add(step)
		next := g.AtVec(pos)
		if next == nil {
			continue
		}
		if next.Kind == KindUnderground && next.IO == Output &&
			next.Tier == in.Tier && !in.Facing.opposes(next.Facing) {
			return next
		}
	}
	return nil
}
