package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/slopeshowdown/internal/problemgen"
	sess "github.com/abhisek/slopeshowdown/internal/session"
	"github.com/abhisek/slopeshowdown/internal/ui/components"
	"github.com/abhisek/slopeshowdown/internal/ui/theme"
)

// rightColumnWidth fits the two-wide answer grid.
const rightColumnWidth = 42

func statusLine(snap sess.Snapshot) string {
	if snap.Name == "" {
		return ""
	}
	return fmt.Sprintf("%s · P%s   Score %d   Streak %d  ", snap.Name, snap.ClassPeriod, snap.Score, snap.Streak)
}

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.showingQuitConfirm {
		return renderQuitConfirm(width)
	}

	graphCols := width - rightColumnWidth - 6
	line := problemgen.Line{Kind: problemgen.CategoryUndefined, X: 1000}
	colour := theme.Text
	if q := s.question; q != nil {
		line = q.Line
		if s.result != nil {
			colour = theme.CategoryColor(string(q.Answer))
		}
	}
	graph := components.NewGraph(graphCols, height-3).Render(line, colour)

	right := lipgloss.NewStyle().Width(rightColumnWidth).Render(s.renderPanel())
	body := lipgloss.JoinHorizontal(lipgloss.Top, graph, "  ", right)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *SessionScreen) renderPanel() string {
	snap := s.snap
	threshold := s.env.Service.Config().WinThreshold

	var b strings.Builder

	current := min(snap.Index+1, snap.Total)
	b.WriteString(components.NewStepBar("Question", current, snap.Total, rightColumnWidth).View())
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar(fmt.Sprintf("Score %3d", snap.Score), clampFrac(snap.Score, threshold), false, rightColumnWidth).View())
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Streak %d · best %d · first to %d wins", snap.Streak, snap.BestStreak, threshold)))
	b.WriteString("\n\n")

	b.WriteString(theme.Body.Bold(true).Render("What kind of slope is this?"))
	b.WriteString("\n")
	b.WriteString(s.grid.View())
	b.WriteString("\n")

	if s.result != nil {
		b.WriteString(renderFeedback(*s.result, threshold))
		b.WriteString("\n")
	}
	if s.warnMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render("⚠ " + s.warnMsg))
		b.WriteString("\n")
	}
	return b.String()
}

func clampFrac(n, d int) float64 {
	if d <= 0 || n <= 0 {
		return 0
	}
	return min(1, float64(n)/float64(d))
}

// FeedbackText is the chip text for a scored answer.
func FeedbackText(res sess.Result) string {
	if res.Correct {
		return fmt.Sprintf("Correct! +%d (streak x%d)", res.Delta, res.Streak)
	}
	return fmt.Sprintf("Incorrect. -%d point. Streak reset.", -res.Delta)
}

func renderFeedback(res sess.Result, threshold int) string {
	colour := theme.Error
	if res.Correct {
		colour = theme.Success
	}
	chip := theme.Chip.Foreground(colour).BorderForeground(colour).Render(FeedbackText(res))

	lines := []string{chip}
	if !res.Correct {
		lines = append(lines, theme.Hint.Render("The answer was "+string(res.Answer)+"."))
	}
	if res.AutoFinished {
		lines = append(lines, theme.Correct.Render(fmt.Sprintf("Reached %d points! Game complete.", threshold)))
	}
	return strings.Join(lines, "\n")
}

func renderQuitConfirm(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	return strings.Join([]string{
		"\n\n",
		center.Foreground(theme.Text).Bold(true).Render("Leave this game?"),
		center.Foreground(theme.TextDim).Render("Answers so far are already in the log; no summary is written."),
		"",
		center.Foreground(theme.Success).Render("[Y] Yes, leave"),
		center.Foreground(theme.Primary).Render("[N] No, keep playing"),
	}, "\n")
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
