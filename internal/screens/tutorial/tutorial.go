// Package tutorial lets a player rotate a line through the four slope
// categories before playing.
package tutorial

import (
	"fmt"
	"math"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/slopeshowdown/internal/problemgen"
	"github.com/abhisek/slopeshowdown/internal/router"
	"github.com/abhisek/slopeshowdown/internal/screen"
	"github.com/abhisek/slopeshowdown/internal/ui/components"
	"github.com/abhisek/slopeshowdown/internal/ui/layout"
	"github.com/abhisek/slopeshowdown/internal/ui/theme"
)

const (
	// StepDegrees is one arrow-key rotation.
	StepDegrees = 5
	// FineDegrees is one fine rotation with [ and ].
	FineDegrees = 1
	// startAngle shows a gentle positive slope first.
	startAngle = 30
)

// snapTolerance snaps lines within 5° of horizontal or vertical onto the
// axis, so Zero and Undefined are reachable without pixel-perfect aim.
var snapTolerance = math.Pi / 36

var descriptions = map[problemgen.Category]string{
	problemgen.CategoryPositive:  "rises from left to right",
	problemgen.CategoryNegative:  "falls from left to right",
	problemgen.CategoryZero:      "flat, a horizontal line",
	problemgen.CategoryUndefined: "straight up and down, a vertical line",
}

// presets are the angles the shortcut keys jump to.
var presets = map[string]float64{
	"p": 45,
	"n": 135,
	"z": 0,
	"u": 90,
}

// NormalizeAngle folds deg into [0, 180): a line at 200° is the same line
// as one at 20°.
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 180)
	if deg < 0 {
		deg += 180
	}
	return deg
}

// ClassifyAngle returns the slope category of a line through the origin
// at deg degrees from the positive x-axis.
func ClassifyAngle(deg float64) problemgen.Category {
	rad := NormalizeAngle(deg) * math.Pi / 180
	switch {
	case math.Abs(math.Cos(rad)) < snapTolerance:
		return problemgen.CategoryUndefined
	case math.Abs(math.Sin(rad)) < snapTolerance:
		return problemgen.CategoryZero
	case math.Tan(rad) > 0:
		return problemgen.CategoryPositive
	default:
		return problemgen.CategoryNegative
	}
}

// LineAt builds the plotted line for deg, snapped like ClassifyAngle.
func LineAt(deg float64) problemgen.Line {
	kind := ClassifyAngle(deg)
	switch kind {
	case problemgen.CategoryZero, problemgen.CategoryUndefined:
		return problemgen.Line{Kind: kind}
	}
	return problemgen.Line{Kind: kind, Slope: math.Tan(NormalizeAngle(deg) * math.Pi / 180)}
}

// TutorialScreen shows a rotatable line and names its slope category.
type TutorialScreen struct {
	angle    float64
	next     func() screen.Screen
	finished bool
}

var (
	_ screen.Screen          = (*TutorialScreen)(nil)
	_ screen.KeyHintProvider = (*TutorialScreen)(nil)
)

// New creates the tutorial. next builds the screen that replaces it when
// the player is ready to play.
func New(next func() screen.Screen) *TutorialScreen {
	return &TutorialScreen{angle: startAngle, next: next}
}

// Angle returns the current angle in degrees, in [0, 180).
func (t *TutorialScreen) Angle() float64 {
	return t.angle
}

// Category returns the category of the line currently shown.
func (t *TutorialScreen) Category() problemgen.Category {
	return ClassifyAngle(t.angle)
}

func (t *TutorialScreen) Init() tea.Cmd {
	return nil
}

func (t *TutorialScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return t, nil
	}

	switch key := kmsg.String(); key {
	case "left", "h":
		t.rotate(StepDegrees)
	case "right", "l":
		t.rotate(-StepDegrees)
	case "]", "up", "k":
		t.rotate(FineDegrees)
	case "[", "down", "j":
		t.rotate(-FineDegrees)
	case "enter":
		return t, t.play()
	default:
		if deg, ok := presets[key]; ok {
			t.angle = deg
		}
	}
	return t, nil
}

func (t *TutorialScreen) rotate(delta float64) {
	t.angle = NormalizeAngle(t.angle + delta)
}

func (t *TutorialScreen) play() tea.Cmd {
	if t.finished || t.next == nil {
		return nil
	}
	t.finished = true
	s := t.next()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: s} }
}

func (t *TutorialScreen) View(width, height int) string {
	cat := t.Category()
	colour := theme.CategoryColor(string(cat))

	graph := components.NewGraph(width/2-2, height-4).Render(LineAt(t.angle), colour)

	label := lipgloss.NewStyle().Foreground(colour).Bold(true).Render(strings.ToUpper(string(cat)))
	var info []string
	info = append(info,
		theme.Title.Render("Meet the four slopes"),
		"",
		fmt.Sprintf("Angle: %3.0f°", t.angle),
		"Slope: "+label,
		theme.Hint.Render(descriptions[cat]),
		"",
	)
	for _, c := range problemgen.Categories {
		marker := "  "
		if c == cat {
			marker = "▸ "
		}
		info = append(info, lipgloss.NewStyle().
			Foreground(theme.CategoryColor(string(c))).
			Render(fmt.Sprintf("%s%-9s [%s]", marker, c, strings.ToLower(string(c)[:1]))))
	}
	info = append(info,
		"",
		theme.Hint.Render("Lines within 5° of flat or upright snap to the axis."),
		"",
		components.ArcadeButton("Got it, let's play", true, 26),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Center,
		graph,
		"   ",
		lipgloss.NewStyle().Width(width/2-4).Render(strings.Join(info, "\n")),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (t *TutorialScreen) Title() string {
	return "Tutorial"
}

func (t *TutorialScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Rotate 5°"},
		{Key: "↑↓", Description: "Rotate 1°"},
		{Key: "p/n/z/u", Description: "Jump"},
		{Key: "Enter", Description: "Play"},
		{Key: "Esc", Description: "Back"},
	}
}
