package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/beltprio/pkg/belt"
	"github.com/matzehuels/beltprio/pkg/errors"
	"github.com/matzehuels/beltprio/pkg/pipeline"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// EntryPickerModel - Interactive entry belt selection
// =============================================================================

// EntryPickerModel is the bubbletea model for choosing entry belts among the
// scan candidates. Space toggles, enter confirms.
type EntryPickerModel struct {
	Grid       *belt.Grid
	Candidates []*belt.Entity
	Cursor     int
	Checked    map[int]bool // candidate index → chosen
	Height     int
	Offset     int
	Confirmed  bool
}

// NewEntryPickerModel creates a new entry picker.
func NewEntryPickerModel(g *belt.Grid, candidates []*belt.Entity) EntryPickerModel {
	return EntryPickerModel{
		Grid:       g,
		Candidates: candidates,
		Checked:    make(map[int]bool),
		Height:     10,
	}
}

// Indices returns the chosen candidate indices in ascending order.
func (m EntryPickerModel) Indices() []int {
	var out []int
	for i := range m.Candidates {
		if m.Checked[i] {
			out = append(out, i)
		}
	}
	return out
}

func (m EntryPickerModel) Init() tea.Cmd {
	return nil
}

func (m EntryPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Candidates)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "x":
			m.Checked[m.Cursor] = !m.Checked[m.Cursor]
		case "a":
			all := len(m.Indices()) == len(m.Candidates)
			for i := range m.Candidates {
				m.Checked[i] = !all
			}
		case "enter":
			if len(m.Indices()) == 0 {
				m.Checked[m.Cursor] = true
			}
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 3 {
			m.Height = 3
		}
	}
	return m, nil
}

func (m EntryPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Entry Belts"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  ⏎ confirm  q quit"))
	b.WriteString("\n\n")

	selected := make(map[int]bool)
	for i, c := range m.Candidates {
		if m.Checked[i] {
			selected[c.ID] = true
		}
	}
	if m.Grid != nil {
		b.WriteString(gridMap(m.Grid, m.Candidates, selected))
		b.WriteString("\n")
	}

	end := min(m.Offset+m.Height, len(m.Candidates))
	var rows [][]string
	for i := m.Offset; i < end; i++ {
		c := m.Candidates[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		box := "[ ]"
		if m.Checked[i] {
			box = "[" + iconSuccess + "]"
		}
		rows = append(rows, []string{cursor + box, fmt.Sprint(i), fmt.Sprintf("#%d", c.ID), c.Pos.String(), c.Facing.String()})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("", "Index", "Entity", "Position", "Facing").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			idx := m.Offset + row
			base := lipgloss.NewStyle()
			switch {
			case idx == m.Cursor:
				return base.Foreground(colorCyan).Bold(true)
			case m.Checked[idx]:
				return base.Foreground(colorGreen)
			}
			return base.Foreground(colorGray)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] %d selected", m.Cursor+1, len(m.Candidates), len(m.Indices()))))

	return b.String()
}

// =============================================================================
// Selector
// =============================================================================

// pickerSelector runs the entry picker as a pipeline selector.
type pickerSelector struct {
	grid *belt.Grid
	opts []tea.ProgramOption
}

var _ pipeline.Selector = pickerSelector{}

// Select implements pipeline.Selector. Quitting without confirming returns
// context.Canceled so the command exits like an interrupt.
func (p pickerSelector) Select(ctx context.Context, candidates []*belt.Entity) ([]int, error) {
	opts := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, p.opts...)
	final, err := tea.NewProgram(NewEntryPickerModel(p.grid, candidates), opts...).Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "entry picker")
	}
	m, ok := final.(EntryPickerModel)
	if !ok || !m.Confirmed {
		return nil, context.Canceled
	}
	return m.Indices(), nil
}
