package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/slopeshowdown/internal/ui/theme"
)

// ButtonWidth is the fixed width of arcade menu buttons.
const ButtonWidth = 22

// ContentWidth returns the uniform inner width used for all arcade sections.
// All boxes are rendered at this width so they visually align.
func ContentWidth(frameWidth int) int {
	// cabinet border (2) + inner padding (4)
	return max(20, min(frameWidth-6, 60))
}

// CabinetFrame wraps content in a double-border cabinet frame,
// centering vertically and horizontally within the given dimensions.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// ArcadeCard wraps content in a rounded-border card at the given content width.
func ArcadeCard(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// ArcadeTitle centres a block of title art in the arcade yellow.
func ArcadeTitle(art string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(art))
}

// ArcadeButton renders a single bordered button; the selected one is filled.
func ArcadeButton(label string, selected bool, width int) string {
	if selected {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.ArcadeYellow).
			Padding(0, 1).
			Render("▸ " + label)
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(label)
}

// ArcadeMenu stacks buttons vertically. When compact it drops the borders
// so the menu fits short terminals.
func ArcadeMenu(labels []string, selected, cw int, compact bool) string {
	lines := make([]string, len(labels))
	for i, label := range labels {
		switch {
		case !compact:
			lines[i] = ArcadeButton(label, i == selected, ButtonWidth)
		case i == selected:
			lines[i] = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ " + label + " ")
		default:
			lines[i] = lipgloss.NewStyle().Foreground(theme.Text).Render("   " + label)
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// ArcadeRow lays buttons out side by side, used for end-of-game actions.
func ArcadeRow(labels []string, selected, cw int) string {
	buttons := make([]string, 0, 2*len(labels))
	for i, label := range labels {
		if i > 0 {
			buttons = append(buttons, " ")
		}
		buttons = append(buttons, ArcadeButton(label, i == selected, 20))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
}

// StatsBar renders pre-styled stat snippets in a double-bordered strip.
func StatsBar(stats []string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(strings.Join(stats, "  "))
}
