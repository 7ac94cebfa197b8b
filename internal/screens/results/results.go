// Package results browses the progress and summary logs.
package results

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/slopeshowdown/internal/screen"
	"github.com/abhisek/slopeshowdown/internal/screens/shared"
	"github.com/abhisek/slopeshowdown/internal/store"
	"github.com/abhisek/slopeshowdown/internal/ui/components"
	"github.com/abhisek/slopeshowdown/internal/ui/layout"
)

// ProgressTail is how many of the most recent progress rows are shown.
const ProgressTail = 100

// Tab selects which log is on screen.
type Tab int

const (
	TabProgress Tab = iota
	TabSummary
)

func (t Tab) String() string {
	if t == TabSummary {
		return "summary"
	}
	return "progress"
}

type resultsLoadedMsg struct {
	Progress *store.Table
	Summary  *store.Table
	Err      error
}

type exportedMsg struct {
	Path string
	Rows int
	Err  error
}

// ResultsScreen shows the logs with name and class-period filters.
type ResultsScreen struct {
	env      shared.Env
	progress *store.Table
	summary  *store.Table
	loaded   bool
	errMsg   string

	tab       Tab
	filter    components.TextInput
	periods   []string // "" first, meaning all periods
	periodIdx int
	scroll    int
	status    string
}

var (
	_ screen.Screen          = (*ResultsScreen)(nil)
	_ screen.KeyHintProvider = (*ResultsScreen)(nil)
	_ screen.BackInterceptor = (*ResultsScreen)(nil)
)

// New creates the results screen. Logs are read in Init.
func New(env shared.Env) *ResultsScreen {
	return &ResultsScreen{
		env:     env,
		filter:  components.NewTextInput("Name", "filter by name", 40),
		periods: []string{""},
	}
}

func (s *ResultsScreen) Init() tea.Cmd {
	svc := s.env.Service
	return func() tea.Msg {
		progress, err := svc.ReadProgressLog()
		if err != nil {
			return resultsLoadedMsg{Err: err}
		}
		summary, err := svc.ReadSummaryLog()
		if err != nil {
			return resultsLoadedMsg{Err: err}
		}
		return resultsLoadedMsg{Progress: progress, Summary: summary}
	}
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

// InterceptsBack keeps Esc for closing the name filter while it is open.
func (s *ResultsScreen) InterceptsBack() bool {
	return s.filter.Focused()
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	if s.filter.Focused() {
		return []layout.KeyHint{
			{Key: "Enter/Esc", Description: "Done"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Progress/Summary"},
		{Key: "/", Description: "Name"},
		{Key: "←→", Description: "Period"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "x", Description: "Export CSV"},
		{Key: "Esc", Description: "Back"},
	}
}

// Filter returns the active row filter.
func (s *ResultsScreen) Filter() store.Filter {
	return store.Filter{
		NameContains: s.filter.Value(),
		ClassPeriod:  s.periods[s.periodIdx],
	}
}

// Visible returns the table currently on screen, after filtering. The
// progress view keeps only the last ProgressTail rows.
func (s *ResultsScreen) Visible() *store.Table {
	if s.tab == TabSummary {
		return s.summary.Filter(s.Filter())
	}
	return s.progress.Filter(s.Filter()).Tail(ProgressTail)
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultsLoadedMsg:
		return s.handleLoaded(msg)

	case exportedMsg:
		if msg.Err != nil {
			s.status = "Export failed: " + msg.Err.Error()
			s.env.Log().Warn("export failed", zap.Error(msg.Err))
		} else {
			s.status = fmt.Sprintf("Exported %d rows to %s", msg.Rows, msg.Path)
		}
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.filter.Focused() {
		var cmd tea.Cmd
		s.filter, cmd = s.filter.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ResultsScreen) handleLoaded(msg resultsLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.progress, s.summary, s.loaded = msg.Progress, msg.Summary, true
	s.errMsg = ""

	current := s.periods[s.periodIdx]
	periods := append(s.progress.Periods(), s.summary.Periods()...)
	slices.Sort(periods)
	s.periods = append([]string{""}, slices.Compact(periods)...)
	s.periodIdx = max(0, slices.Index(s.periods, current))
	return s, nil
}

func (s *ResultsScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.filter.Focused() {
		switch key {
		case "enter", "esc", "tab":
			s.filter.Blur()
			return s, nil
		}
		var cmd tea.Cmd
		s.filter, cmd = s.filter.Update(msg)
		s.scroll = 0
		return s, cmd
	}

	switch key {
	case "/":
		s.status = ""
		return s, s.filter.Focus()
	case "tab":
		s.tab = 1 - s.tab
		s.scroll = 0
	case "right", "l", "p":
		s.periodIdx = (s.periodIdx + 1) % len(s.periods)
		s.scroll = 0
	case "left", "h", "P":
		s.periodIdx = (s.periodIdx + len(s.periods) - 1) % len(s.periods)
		s.scroll = 0
	case "down", "j":
		s.scroll = min(s.scroll+1, max(0, s.Visible().Len()-1))
	case "up", "k":
		s.scroll = max(0, s.scroll-1)
	case "pgdown":
		s.scroll = min(s.scroll+10, max(0, s.Visible().Len()-1))
	case "pgup":
		s.scroll = max(0, s.scroll-10)
	case "r":
		return s, s.Init()
	case "x":
		return s, s.export()
	}
	return s, nil
}

func (s *ResultsScreen) export() tea.Cmd {
	t := s.Visible()
	if t.Len() == 0 {
		s.status = "Nothing to export."
		return nil
	}
	dir, kind, now := s.env.ExportDir, s.tab.String(), s.env.Clock()
	return func() tea.Msg {
		path, err := Export(dir, kind, t, now)
		return exportedMsg{Path: path, Rows: t.Len(), Err: err}
	}
}

// ExportFileName names a download of the kind ("progress" or "summary") log.
func ExportFileName(kind string, now time.Time) string {
	return fmt.Sprintf("slope_showdown_%s_%s.csv", kind, now.Format("20060102-150405"))
}

// Export writes t as CSV into dir and returns the file's path.
func Export(dir, kind string, t *store.Table, now time.Time) (string, error) {
	data, err := t.CSV()
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", kind, err)
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, ExportFileName(kind, now))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
