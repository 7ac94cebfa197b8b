package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/slopeshowdown/internal/ui/theme"
)

// ChoiceGrid lays answer options out two per row. Arrow keys move the
// cursor, number keys jump to an option, and Enter or Space submits.
// Options are coloured with theme.CategoryColor.
type ChoiceGrid struct {
	Options  []string
	Cursor   int
	Locked   bool   // no more input once an answer has been submitted
	Chosen   string // option the player submitted
	Answer   string // revealed correct option, empty until locked
	cellSize int
}

// ChoiceSubmittedMsg is emitted when the player submits the option under
// the cursor.
type ChoiceSubmittedMsg struct {
	Choice string
}

// NewChoiceGrid creates a grid over options with the cursor on the first.
func NewChoiceGrid(options []string) ChoiceGrid {
	return ChoiceGrid{Options: options, cellSize: 18}
}

// Current returns the option under the cursor.
func (g ChoiceGrid) Current() string {
	if g.Cursor < 0 || g.Cursor >= len(g.Options) {
		return ""
	}
	return g.Options[g.Cursor]
}

// Reveal locks the grid and records the chosen and correct options.
func (g *ChoiceGrid) Reveal(chosen, answer string) {
	g.Locked = true
	g.Chosen = chosen
	g.Answer = answer
}

// Update handles keyboard navigation and submission.
func (g ChoiceGrid) Update(msg tea.Msg) (ChoiceGrid, tea.Cmd) {
	if g.Locked || len(g.Options) == 0 {
		return g, nil
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return g, nil
	}

	n := len(g.Options)
	switch key := kmsg.String(); key {
	case "left", "h":
		if g.Cursor%2 == 1 {
			g.Cursor--
		}
	case "right", "l":
		if g.Cursor%2 == 0 && g.Cursor+1 < n {
			g.Cursor++
		}
	case "up", "k":
		if g.Cursor >= 2 {
			g.Cursor -= 2
		}
	case "down", "j":
		if g.Cursor+2 < n {
			g.Cursor += 2
		}
	case "enter", "space":
		return g, g.submit()
	default:
		if len(key) == 1 && key[0] >= '1' && int(key[0]-'0') <= n {
			g.Cursor = int(key[0] - '1')
		}
	}
	return g, nil
}

func (g ChoiceGrid) submit() tea.Cmd {
	choice := g.Current()
	return func() tea.Msg { return ChoiceSubmittedMsg{Choice: choice} }
}

// View renders the grid.
func (g ChoiceGrid) View() string {
	cells := make([]string, len(g.Options))
	for i, opt := range g.Options {
		cells[i] = g.renderCell(i, opt)
	}

	var rows []string
	for i := 0; i < len(cells); i += 2 {
		if i+1 < len(cells) {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells[i], " ", cells[i+1]))
		} else {
			rows = append(rows, cells[i])
		}
	}
	return strings.Join(rows, "\n")
}

func (g ChoiceGrid) renderCell(i int, opt string) string {
	label := fmt.Sprintf("%d  %s", i+1, opt)
	fg := theme.CategoryColor(opt)
	border := theme.Border

	style := lipgloss.NewStyle().
		Width(g.cellSize).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder())

	switch {
	case g.Locked && opt == g.Answer:
		label = "✓ " + label
		border = theme.Success
		style = style.Bold(true)
	case g.Locked && opt == g.Chosen:
		label = "✗ " + label
		border = theme.Error
	case g.Locked:
		fg = theme.TextDim
	case i == g.Cursor:
		label = "▸ " + label
		border = fg
		style = style.Bold(true)
	}

	return style.Foreground(fg).BorderForeground(border).Render(label)
}
