package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/slopeshowdown/internal/router"
	"github.com/abhisek/slopeshowdown/internal/screen"
	"github.com/abhisek/slopeshowdown/internal/screens/results"
	"github.com/abhisek/slopeshowdown/internal/screens/shared"
	"github.com/abhisek/slopeshowdown/internal/session"
	"github.com/abhisek/slopeshowdown/internal/ui/components"
	"github.com/abhisek/slopeshowdown/internal/ui/layout"
	"github.com/abhisek/slopeshowdown/internal/ui/theme"
)

// PlayAgainFunc restarts the finished game id and returns the screen for
// the new game.
type PlayAgainFunc func(id string) (screen.Screen, error)

const (
	actionPlayAgain = iota
	actionResults
	actionHome
)

var actionLabels = []string{"PLAY AGAIN", "VIEW RESULTS", "HOME"}

// SummaryScreen is the game-over screen.
type SummaryScreen struct {
	env       shared.Env
	summary   session.Summary
	playAgain PlayAgainFunc
	selected  int
	errMsg    string
	done      bool
}

var (
	_ screen.Screen          = (*SummaryScreen)(nil)
	_ screen.KeyHintProvider = (*SummaryScreen)(nil)
	_ screen.BackInterceptor = (*SummaryScreen)(nil)
)

// New creates the game-over screen for a finished game.
func New(env shared.Env, summary session.Summary, playAgain PlayAgainFunc) *SummaryScreen {
	return &SummaryScreen{env: env, summary: summary, playAgain: playAgain}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Game Over"
}

// InterceptsBack is true so Esc releases the finished game before leaving.
func (s *SummaryScreen) InterceptsBack() bool {
	return true
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "P/R/H", Description: "Play again/Results/Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || s.done {
		return s, nil
	}

	switch kmsg.String() {
	case "left", "shift+tab":
		s.selected = max(0, s.selected-1)
	case "right", "tab":
		s.selected = min(len(actionLabels)-1, s.selected+1)
	case "enter", "space":
		return s, s.activate(s.selected)
	case "p":
		return s, s.activate(actionPlayAgain)
	case "r":
		return s, s.activate(actionResults)
	case "h", "esc":
		return s, s.activate(actionHome)
	}
	return s, nil
}

func (s *SummaryScreen) activate(action int) tea.Cmd {
	s.selected = action
	switch action {
	case actionPlayAgain:
		if s.playAgain == nil {
			return nil
		}
		next, err := s.playAgain(s.summary.SessionID)
		if err != nil {
			s.errMsg = "Could not start a new game: " + err.Error()
			s.env.Log().Warn("play again failed", zap.String("session_id", s.summary.SessionID), zap.Error(err))
			return nil
		}
		s.done = true
		return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case actionResults:
		s.release()
		next := results.New(s.env)
		return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	default:
		s.release()
		return func() tea.Msg { return router.PopToRootMsg{} }
	}
}

// release drops the finished game from the service.
func (s *SummaryScreen) release() {
	s.done = true
	if s.env.Service != nil {
		s.env.Service.EndSession(s.summary.SessionID)
	}
}

// ScoreLine is the headline result.
func ScoreLine(sum session.Summary) string {
	return fmt.Sprintf("Final Score: %d / %d (best streak: %d)", sum.Score, sum.Total, sum.BestStreak)
}

// Verdict tells the player whether they reached the winning score.
func Verdict(sum session.Summary) string {
	if sum.Won {
		return fmt.Sprintf("Reached %d points! Game complete.", sum.WinThreshold)
	}
	return fmt.Sprintf("You need %d+ to auto-finish.", sum.WinThreshold)
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	cw := components.ContentWidth(width)

	headline := "Game over"
	headStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	verdictStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if sum.Won {
		headline = "★ You win! ★"
		headStyle = headStyle.Foreground(theme.ArcadeYellow)
		verdictStyle = theme.Correct
	}

	lines := []string{
		headStyle.Render(headline),
		"",
		theme.Body.Bold(true).Render(ScoreLine(sum)),
		verdictStyle.Render(Verdict(sum)),
		"",
		theme.Hint.Render(fmt.Sprintf("%s · period %s · %d answered, %d correct (%.0f%%)",
			sum.Name, sum.ClassPeriod, sum.Attempted, sum.Correct, sum.Accuracy()*100)),
	}

	sections := []string{
		components.ArcadeCard(strings.Join(lines, "\n"), cw),
		components.ArcadeRow(actionLabels, s.selected, cw+10),
	}
	if s.errMsg != "" {
		sections = append(sections, theme.Incorrect.Render(s.errMsg))
	}
	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}
