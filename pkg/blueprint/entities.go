package blueprint

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/beltprio/pkg/belt"
	"github.com/matzehuels/beltprio/pkg/errors"
)

// ErrUnknownUnderground is returned by [Blueprint.Grid] for underground
// belts whose tier has no known maximum span.
var ErrUnknownUnderground = errors.New(errors.ErrCodeUnknownTier, "unknown underground belt")

var beltNames = map[string]bool{
	"transport-belt":         true,
	"fast-transport-belt":    true,
	"express-transport-belt": true,
	"turbo-transport-belt":   true,
}

var undergroundTiers = map[string]belt.Tier{
	"underground-belt":         belt.TierBasic,
	"fast-underground-belt":    belt.TierFast,
	"express-underground-belt": belt.TierExpress,
}

// Grid builds a grid from the belts, underground belts and splitters of the
// blueprint. Existing input_priority values are read into the splitters.
func (b *Blueprint) Grid() (*belt.Grid, error) {
	g := belt.NewGrid()
	sixteen := b.Major() >= 2
	for _, m := range b.entities {
		e, err := toEntity(m, sixteen)
		if err != nil {
			return nil, err
		}
		if e == nil {
			continue
		}
		if err := g.Add(e); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidBlueprint, errors.FromCore(err), "%s #%d", e.Name, e.ID)
		}
	}
	return g, nil
}

// Apply writes the priorities of the grid's splitters into the blueprint.
// Left and right set input_priority, none removes it, unset leaves the
// entity alone. Splitters without a matching entity_number are skipped.
// Apply returns the number of entities changed.
func (b *Blueprint) Apply(g *belt.Grid) int {
	changed := 0
	for _, s := range g.Splitters() {
		m, ok := b.byNumber[s.ID]
		if !ok {
			continue
		}
		old, had := m["input_priority"]
		switch s.Priority {
		case belt.PriorityLeft, belt.PriorityRight:
			m["input_priority"] = s.Priority.String()
			if old != s.Priority.String() {
				changed++
			}
		case belt.PriorityNone:
			delete(m, "input_priority")
			if had {
				changed++
			}
		}
	}
	return changed
}

func toEntity(m map[string]any, sixteen bool) (*belt.Entity, error) {
	name, _ := m["name"].(string)
	id, _ := intField(m, "entity_number")
	e := &belt.Entity{ID: id, Name: name}

	switch {
	case beltNames[name]:
		e.Kind = belt.KindBelt
	case strings.HasSuffix(name, "underground-belt"):
		tier, ok := undergroundTiers[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s #%d", ErrUnknownUnderground, name, id)
		}
		e.Kind = belt.KindUnderground
		e.Tier = tier
		typ, _ := m["type"].(string)
		if typ == "" {
			typ = "input"
		}
		end, err := belt.ParseIOType(typ)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidBlueprint, err, "%s #%d", name, id)
		}
		e.IO = end
	case strings.HasSuffix(name, "splitter"):
		e.Kind = belt.KindSplitter
		prio, _ := m["input_priority"].(string)
		p, err := belt.ParsePriority(prio)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidBlueprint, err, "%s #%d", name, id)
		}
		e.Priority = p
	default:
		return nil, nil
	}

	dir, _ := intField(m, "direction")
	if sixteen {
		if dir%2 != 0 {
			return nil, errors.Wrap(errors.ErrCodeInvalidDirection, belt.ErrInvalidDirection, "%s #%d: direction %d", name, id, dir)
		}
		dir /= 2
	}
	e.Facing = belt.Direction(dir)
	if dir < 0 || !e.Facing.Valid() {
		return nil, errors.Wrap(errors.ErrCodeInvalidDirection, belt.ErrInvalidDirection, "%s #%d: direction %d", name, id, dir)
	}

	pos, ok := m["position"].(map[string]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidBlueprint, "%s #%d has no position", name, id)
	}
	cx, okx := floatField(pos, "x")
	cy, oky := floatField(pos, "y")
	if !okx || !oky {
		return nil, errors.New(errors.ErrCodeInvalidBlueprint, "%s #%d has an invalid position", name, id)
	}
	w, h := 1.0, 1.0
	if e.Kind == belt.KindSplitter {
		if e.Facing == belt.North || e.Facing == belt.South {
			w = 2
		} else {
			h = 2
		}
	}
	e.Pos = belt.Vec{X: topLeft(cx, w), Y: topLeft(cy, h)}
	return e, nil
}

// topLeft converts a centre coordinate of an entity spanning size tiles to
// its first tile.
func topLeft(centre, size float64) int {
	return int(math.Floor(centre - size/2 + 0.5))
}

func intField(m map[string]any, key string) (int, bool) {
	n, ok := m[key].(json.Number)
	if !ok {
		return 0, false
	}
	v, err := n.Int64()
	if err != nil {
		return 0, false
	}
	return int(v), true
}

func floatField(m map[string]any, key string) (float64, bool) {
	n, ok := m[key].(json.Number)
	if !ok {
		return 0, false
	}
	v, err := n.Float64()
	return v, err == nil
}
