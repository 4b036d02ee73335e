package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/beltprio/pkg/belt"
	"github.com/matzehuels/beltprio/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success, entries
	colorYellow = lipgloss.Color("220") // Amber - warnings, prioritized splitters
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - undergrounds
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleBorder = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

// printError prints an error message.
func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

// printInfo prints an info/status message.
func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Tables
// =============================================================================

// candidateTable renders the scan candidates; selected ones are marked.
func candidateTable(candidates []*belt.Entity, selected map[int]bool) string {
	rows := make([][]string, len(candidates))
	for i, c := range candidates {
		mark := ""
		if selected[c.ID] {
			mark = iconSuccess
		}
		rows[i] = []string{strconv.Itoa(i), mark, "#" + strconv.Itoa(c.ID), c.Pos.String(), c.Facing.String(), c.Name}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("Index", "", "Entity", "Position", "Facing", "Name").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 0 {
				return base.Foreground(colorCyan).Bold(true)
			}
			if row < len(candidates) && selected[candidates[row].ID] {
				return base.Foreground(colorGreen)
			}
			return base
		}).
		Render()
}

// decisionTable renders the final priority of every splitter a run reached.
func decisionTable(g *belt.Grid, prop *belt.Result) string {
	var rows [][]string
	for _, s := range g.Splitters() {
		prio, ok := prop.Splitters[s.ID]
		if !ok {
			continue
		}
		rows = append(rows, []string{"#" + strconv.Itoa(s.ID), s.Pos.String(), s.Facing.String(), prio.String()})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("Splitter", "Position", "Facing", "Priority").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 3 && row < len(rows) && rows[row][3] != belt.PriorityNone.String() {
				return base.Foreground(colorYellow).Bold(true)
			}
			return base
		}).
		Render()
}

// =============================================================================
// Summaries
// =============================================================================

// printSummary prints the statistics of a prioritization run.
func printSummary(w io.Writer, res *pipeline.Result) {
	s := res.Stats
	printKeyValue(w, "Run", res.RunID.String())
	printKeyValue(w, "Entities", strconv.Itoa(s.Entities))
	printKeyValue(w, "Entries", fmt.Sprintf("%d of %d", s.Entries, s.Candidates))
	printKeyValue(w, "Visited", strconv.Itoa(s.Visited))
	printKeyValue(w, "Splitters", strconv.Itoa(s.Splitters))
	if res.Input.Blueprint != nil {
		printKeyValue(w, "Changed", strconv.Itoa(s.Changed))
	}
}
