package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/slopeshowdown/internal/ui/theme"
)

// AppName is shown on the left of the header.
const AppName = "Slope Showdown"

// Smallest terminal that fits the graph beside the answer panel.
const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nSlope Showdown needs at least %d x %d.\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

var (
	barStyle = lipgloss.NewStyle().
			Background(theme.BgCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border)
	brandStyle  = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	titleStyle  = lipgloss.NewStyle().Foreground(theme.Text)
	statusStyle = lipgloss.NewStyle().Foreground(theme.Accent)
	keyStyle    = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle   = lipgloss.NewStyle().Foreground(theme.TextDim)
)

// RenderHeader renders the header bar: app name on the left, the screen
// title centred and an optional status (player and score) on the right.
func RenderHeader(title, status string, width int) string {
	left := brandStyle.Render(" ╱ " + AppName)
	content := spread(left, titleStyle.Render(title), statusStyle.Render(status), width-4)
	return barStyle.Width(width).Render(content)
}

// RenderFooter renders the footer with key hints.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyStyle.Render(h.Key)+" "+descStyle.Render(h.Description))
	}
	return barStyle.Width(width).Render("  " + strings.Join(parts, "   "))
}

// spread places center in the middle of inner columns with left and right
// flush to the edges, keeping at least one space between neighbours.
func spread(left, center, right string, inner int) string {
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	leftGap := max(1, (max(0, inner)-cw)/2-lw)
	rightGap := max(1, inner-lw-leftGap-cw-rw)
	return left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right
}

// RenderFrame stacks header, content and footer, giving the content
// whatever height remains.
func RenderFrame(header, content, footer string, width, height int) string {
	body := height - lipgloss.Height(header) - lipgloss.Height(footer)
	styledContent := lipgloss.NewStyle().
		Width(width).
		Height(max(0, body)).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, styledContent, footer)
}
