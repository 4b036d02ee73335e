package cli

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/beltprio/pkg/belt"
)

var (
	beltGlyphs        = map[belt.Direction]string{belt.North: "↑", belt.East: "→", belt.South: "↓", belt.West: "←"}
	undergroundGlyphs = map[belt.Direction]string{belt.North: "⇡", belt.East: "⇢", belt.South: "⇣", belt.West: "⇠"}
)

const (
	glyphSplitter = "◆"
	glyphEmpty    = "·"
)

var (
	styleMapBelt     = lipgloss.NewStyle().Foreground(colorWhite)
	styleMapEntry    = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	styleMapUnder    = lipgloss.NewStyle().Foreground(colorBlue)
	styleMapSplitter = lipgloss.NewStyle().Foreground(colorGray)
	styleMapPrio     = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	styleMapMarker   = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	styleMapEmpty    = lipgloss.NewStyle().Foreground(colorDim)
)

// gridMap draws g one character per tile with a one-tile margin. Each
// candidate's index is written on the margin tile behind it, so the map
// reads like numbered markers placed in front of every entry belt. Entry
// belts in selected are highlighted; splitter tiles on a prioritized side
// are drawn in amber.
func gridMap(g *belt.Grid, candidates []*belt.Entity, selected map[int]bool) string {
	b := g.Bounds()
	if b.Empty() {
		return ""
	}

	markers := make(map[belt.Vec]string, len(candidates))
	for i, c := range candidates {
		off, err := c.Facing.Offset()
		if err != nil {
			continue
		}
		label := "+"
		if i < 36 {
			label = strconv.FormatInt(int64(i), 36)
		}
		markers[c.Pos.Sub(off)] = label
	}

	var sb strings.Builder
	for y := b.Min.Y - 1; y <= b.Max.Y; y++ {
		for x := b.Min.X - 1; x <= b.Max.X; x++ {
			if x > b.Min.X-1 {
				sb.WriteByte(' ')
			}
			v := belt.Vec{X: x, Y: y}
			if m, ok := markers[v]; ok && g.AtVec(v) == nil {
				sb.WriteString(styleMapMarker.Render(m))
				continue
			}
			sb.WriteString(tileGlyph(g, v, selected))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func tileGlyph(g *belt.Grid, v belt.Vec, selected map[int]bool) string {
	e := g.AtVec(v)
	if e == nil {
		if !g.Bounds().Contains(v) {
			return " "
		}
		return styleMapEmpty.Render(glyphEmpty)
	}
	switch e.Kind {
	case belt.KindBelt:
		if selected[e.ID] {
			return styleMapEntry.Render(beltGlyphs[e.Facing])
		}
		return styleMapBelt.Render(beltGlyphs[e.Facing])
	case belt.KindUnderground:
		return styleMapUnder.Render(undergroundGlyphs[e.Facing])
	case belt.KindSplitter:
		tiles := e.Tiles()
		prioritized := (e.Priority == belt.PriorityLeft && v == tiles[0]) ||
			(e.Priority == belt.PriorityRight && v == tiles[1])
		if prioritized {
			return styleMapPrio.Render(glyphSplitter)
		}
		return styleMapSplitter.Render(glyphSplitter)
	}
	return "?"
}
