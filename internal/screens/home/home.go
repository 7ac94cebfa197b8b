package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/slopeshowdown/internal/router"
	"github.com/abhisek/slopeshowdown/internal/screen"
	"github.com/abhisek/slopeshowdown/internal/screens/results"
	"github.com/abhisek/slopeshowdown/internal/screens/shared"
	"github.com/abhisek/slopeshowdown/internal/screens/signin"
	"github.com/abhisek/slopeshowdown/internal/screens/tutorial"
	"github.com/abhisek/slopeshowdown/internal/stats"
	"github.com/abhisek/slopeshowdown/internal/ui/components"
	"github.com/abhisek/slopeshowdown/internal/ui/theme"
)

const titleCompact = "S L O P E · S H O W D O W N"

const titleFull = `╱ ╲ ─ │   S L O P E   S H O W D O W N   │ ─ ╲ ╱`

// statsLoadedMsg carries the all-time numbers shown on the home screen.
type statsLoadedMsg struct {
	totals stats.Totals
	best   *stats.Entry
	err    error
}

// HomeScreen is the main menu.
type HomeScreen struct {
	env    shared.Env
	menu   components.Menu
	totals stats.Totals
	best   *stats.Entry
	loaded bool
}

var (
	_ screen.Screen  = (*HomeScreen)(nil)
	_ screen.Resumer = (*HomeScreen)(nil)
)

// New creates the home screen.
func New(env shared.Env) *HomeScreen {
	push := func(factory func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			s := factory()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}

	items := []components.MenuItem{
		{Label: "TUTORIAL", Action: push(func() screen.Screen {
			return tutorial.New(func() screen.Screen { return signin.New(env) })
		})},
		{Label: "PLAY", Action: push(func() screen.Screen { return signin.New(env) })},
		{Label: "RESULTS", Action: push(func() screen.Screen { return results.New(env) })},
		{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{
		env:  env,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume refreshes the numbers when a game or the results screen closes.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	svc := h.env.Service
	if svc == nil {
		return nil
	}
	logger := h.env.Log()
	return func() tea.Msg {
		ctx := context.Background()
		summary, err := svc.ReadSummaryLog()
		if err != nil {
			logger.Warn("read summary log", zap.Error(err))
			return statsLoadedMsg{err: err}
		}
		db, err := stats.Load(ctx, nil, summary)
		if err != nil {
			return statsLoadedMsg{err: err}
		}
		defer db.Close()

		totals, err := db.Totals(ctx, "")
		if err != nil {
			return statsLoadedMsg{err: err}
		}
		msg := statsLoadedMsg{totals: totals}
		top, err := db.Leaderboard(ctx, "", 1)
		if err != nil {
			return statsLoadedMsg{err: err}
		}
		if len(top) > 0 {
			msg.best = &top[0]
		}
		return msg
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		if msg.err == nil {
			h.totals, h.best, h.loaded = msg.totals, msg.best, true
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 22 || width < 100
	cw := components.ContentWidth(width)

	title := titleFull
	if compact {
		title = titleCompact
	}

	sections := []string{
		components.ArcadeTitle(title, cw),
		theme.Subtitle.Width(cw).Render("Positive · Negative · Zero · Undefined"),
		components.StatsBar(h.statsLine(compact), cw),
		components.ArcadeMenu(h.menu.Labels(), h.menu.Selected, cw, compact),
	}

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return components.CabinetFrame(strings.Join(sections, sep), width, height)
}

func (h *HomeScreen) statsLine(compact bool) []string {
	games := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	winners := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	best := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	if !h.loaded || h.totals.Games == 0 {
		return []string{dim.Render("NO GAMES YET")}
	}

	bestText := dim.Render("-")
	if h.best != nil {
		bestText = best.Render(fmt.Sprintf("◆ BEST %d (%s)", h.best.Score, h.best.Name))
	}
	if compact {
		return []string{
			games.Render(fmt.Sprintf("▲%d", h.totals.Games)),
			winners.Render(fmt.Sprintf("★%d", h.totals.Winners)),
			bestText,
		}
	}
	return []string{
		games.Render(fmt.Sprintf("▲ %d GAMES", h.totals.Games)),
		winners.Render(fmt.Sprintf("★ %d WINNERS", h.totals.Winners)),
		bestText,
	}
}

func (h *HomeScreen) Title() string {
	return "Home"
}
