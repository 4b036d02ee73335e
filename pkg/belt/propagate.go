package belt

import "fmt"

// Decision records one splitter resolution made during a run.
type Decision struct {
	Splitter    *Entity
	ArrivedFrom *Entity
	Priority    Priority
}

// Result summarizes a propagation run.
type Result struct {
	// Visited is the number of entities marked visited by this run.
	Visited int
	// Decisions lists every resolver call in the order it happened. A
	// splitter reached through both sides appears twice; the later entry
	// wins.
	Decisions []Decision
	// Splitters maps splitter ID to the priority it ended the run with.
	Splitters map[int]Priority
}

// Propagator walks a grid downstream from entry belts and resolves splitter
// priorities. It owns the visited markers, so several runs on the same
// propagator share them.
type Propagator struct {
	grid    *Grid
	visited map[int]bool
}

// NewPropagator creates a propagator with every entity unvisited.
func NewPropagator(g *Grid) *Propagator {
	return &Propagator{grid: g, visited: make(map[int]bool)}
}

// Visited reports whether the entity with the given ID has been processed.
func (p *Propagator) Visited(id int) bool { return p.visited[id] }

// VisitedCount returns the number of visited entities.
func (p *Propagator) VisitedCount() int { return len(p.visited) }

// Reset marks every entity unvisited again. Splitter priorities already
// written to the grid are kept.
func (p *Propagator) Reset() { clear(p.visited) }

// Run propagates priority from entries. Entries already visited by an
// earlier run are skipped, so repeating a run is a no-op.
//
// On error nothing is written: priorities resolved so far are discarded and
// entities visited by this run are unmarked.
func (p *Propagator) Run(entries []*Entity) (*Result, error) {
	res := &Result{Splitters: make(map[int]Priority)}
	var marked []int

	stack := make([]*Entity, len(entries))
	copy(stack, entries)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.visited[cur.ID] {
			continue
		}

		var next []*Entity
		switch cur.Kind {
		case KindBelt, KindSplitter:
			next = p.grid.Downstream(cur)
		case KindUnderground:
			if cur.IO == Input {
				// The exit is never a splitter.
				if exit := p.grid.UndergroundExit(cur); exit != nil {
					stack = append(stack, exit)
				}
				break
			}
			next = p.grid.Downstream(cur)
		default:
			p.rollback(marked)
			return nil, fmt.Errorf("%w: %s", ErrUnknownKind, cur)
		}

		for _, n := range next {
			if n.Kind == KindSplitter {
				prio, err := ResolveSplitter(p.grid, cur, n, p.Visited)
				if err != nil {
					p.rollback(marked)
					return nil, err
				}
				res.Decisions = append(res.Decisions, Decision{Splitter: n, ArrivedFrom: cur, Priority: prio})
				res.Splitters[n.ID] = prio
			}
			stack = append(stack, n)
		}

		p.visited[cur.ID] = true
		marked = append(marked, cur.ID)
	}

	for id, prio := range res.Splitters {
		p.grid.Entity(id).Priority = prio
	}
	res.Visited = len(marked)
	return res, nil
}

func (p *Propagator) rollback(marked []int) {
	for _, id := range marked {
		delete(p.visited, id)
	}
}
