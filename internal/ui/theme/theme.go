package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette, classroom-projector friendly
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate

	ArcadeYellow = lipgloss.Color("#FACC15")
	ArcadeCyan   = lipgloss.Color("#22D3EE")
)

// Slope category colours, shared by the tutorial, the answer grid and the
// graph so a category always looks the same.
var (
	SlopePositive  = lipgloss.Color("#16A34A") // green
	SlopeNegative  = lipgloss.Color("#DC2626") // red
	SlopeZero      = lipgloss.Color("#2563EB") // blue
	SlopeUndefined = lipgloss.Color("#9333EA") // purple
)

// CategoryColor maps a slope category label to its colour. Unknown labels
// fall back to the body text colour.
func CategoryColor(category string) color.Color {
	switch category {
	case "Positive":
		return SlopePositive
	case "Negative":
		return SlopeNegative
	case "Zero":
		return SlopeZero
	case "Undefined":
		return SlopeUndefined
	}
	return Text
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	// Chip is the rounded feedback badge shown after an answer.
	Chip = lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder())
)
