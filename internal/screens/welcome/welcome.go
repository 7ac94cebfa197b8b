package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/slopeshowdown/internal/problemgen"
	"github.com/abhisek/slopeshowdown/internal/router"
	"github.com/abhisek/slopeshowdown/internal/screen"
	"github.com/abhisek/slopeshowdown/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 4500 * time.Millisecond
)

// Tagline appears under the banner once the intro has played.
const Tagline = "Can you read a slope at a glance?"

// sweepFrames show one line of each slope kind on the same axes. The
// splash cycles through them while the banner plays.
var sweepFrames = []struct {
	category problemgen.Category
	art      string
}{
	{problemgen.CategoryPositive, `       │     ╱
       │   ╱
───────┼─╱─────
       ╱
     ╱ │
   ╱   │`},
	{problemgen.CategoryZero, `       │
       │
━━━━━━━┿━━━━━━━
       │
       │
       │`},
	{problemgen.CategoryNegative, `╲      │
  ╲    │
────╲──┼───────
      ╲│
       ╲
       │ ╲`},
	{problemgen.CategoryUndefined, `       │   ┃
       │   ┃
───────┼───╂───
       │   ┃
       │   ┃
       │   ┃`},
}

// ticksPerFrame is how long each slope kind stays on screen.
const ticksPerFrame = 6

type tickMsg time.Time

// WelcomeScreen shows a splash animation before transitioning to the home screen.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		// Any key skips the intro.
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

// frame returns the sweep frame for the current tick. The sweep only
// starts moving after the first phase.
func (w *WelcomeScreen) frame() int {
	if w.elapsed < phase1End {
		return 0
	}
	return (w.tickCount / ticksPerFrame) % len(sweepFrames)
}

func (w *WelcomeScreen) View(width, height int) string {
	f := sweepFrames[w.frame()]
	color := theme.CategoryColor(string(f.category))
	sections := []string{
		lipgloss.NewStyle().Foreground(color).Render(f.art),
		lipgloss.NewStyle().Foreground(color).Bold(true).Render(strings.ToUpper(string(f.category))),
	}

	if w.elapsed >= phase2End {
		sections = append(sections,
			"",
			RenderBanner(width, height),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(Tagline),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}

	block := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}
