// Package belt models conveyor networks on a 2D tile grid and assigns
// splitter input priorities by propagating a priority designation downstream
// from a chosen set of entry belts.
//
// # Model
//
// A [Grid] holds three kinds of [Entity]:
//
//   - [KindBelt]: a straight belt occupying one tile, moving items towards
//     its facing direction.
//   - [KindUnderground]: an underground belt. Input ends teleport items to the
//     nearest matching Output end of the same [Tier] within [Tier.MaxSpan]
//     tiles ahead.
//   - [KindSplitter]: a two-tile merge node with a left and a right input
//     side (relative to its facing) and an input [Priority].
//
// Tile coordinates grow east (x) and south (y).
//
// # Algorithm
//
// [Grid.FindEntries] scans the four grid edges inward and returns the belts
// that enter the network from outside. A caller picks a subset of them with
// [SelectEntries] and hands it to a [Propagator]. The propagator walks the
// network downstream and, every time it arrives at a splitter, calls
// [ResolveSplitter] to decide which input side carries prioritized items:
//
//	g := belt.NewGrid()
//	_ = g.Add(&belt.Entity{Kind: belt.KindBelt, Pos: belt.Vec{X: 0, Y: 0}, Facing: belt.South})
//	// ...
//	entries, err := belt.SelectEntries(g.FindEntries(), []int{0})
//	if err != nil {
//	    return err
//	}
//	res, err := belt.NewPropagator(g).Run(entries)
//
// # Traversal State
//
// Visited markers live in the [Propagator], keyed by entity ID, not on the
// entities themselves. Running the same propagator twice with the same
// entries is a no-op; [Propagator.Reset] starts over.
//
// Priorities are staged during a run and only written to entities when the
// run succeeds, so a failed run leaves the grid untouched.
//
// # Concurrency
//
// Grid and Propagator are not safe for concurrent use. The algorithm is
// synchronous and bounded by the number of entities.
package belt
