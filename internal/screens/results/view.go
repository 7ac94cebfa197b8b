package results

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/slopeshowdown/internal/store"
	"github.com/abhisek/slopeshowdown/internal/ui/theme"
)

type column struct {
	name   string
	header string
}

var progressView = []column{
	{store.ColTimestamp, "Time"},
	{store.ColName, "Name"},
	{store.ColClassPeriod, "Period"},
	{"q_index", "Q"},
	{"choice", "Choice"},
	{"answer", "Answer"},
	{"correct", "OK"},
	{"score_after", "Score"},
	{"streak_after", "Streak"},
}

var summaryView = []column{
	{store.ColTimestamp, "Time"},
	{store.ColName, "Name"},
	{store.ColClassPeriod, "Period"},
	{"score", "Score"},
	{"best_streak", "Best streak"},
	{"total_questions", "Questions"},
	{"won", "Won"},
}

// Winners counts the games in a summary table that reached threshold.
func Winners(t *store.Table, threshold int) int {
	n := 0
	for _, rec := range t.DecodeSummary() {
		if rec.Score >= threshold {
			n++
		}
	}
	return n
}

// TotalsLine is shown above the summary table.
func TotalsLine(t *store.Table, threshold int) string {
	return fmt.Sprintf("Total games: %d, Winners (score ≥ %d): %d", t.Len(), threshold, Winners(t, threshold))
}

func (s *ResultsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return theme.Incorrect.Render("\n  Could not read the logs: " + s.errMsg)
	}
	if !s.loaded {
		return theme.Hint.Render("\n  Loading results...")
	}

	var b strings.Builder
	b.WriteString(s.renderTabs())
	b.WriteString("\n")
	b.WriteString(s.renderFilters())
	b.WriteString("\n\n")

	visible := s.Visible()
	threshold := s.env.Service.Config().WinThreshold
	if s.tab == TabSummary {
		b.WriteString(theme.Body.Bold(true).Render(TotalsLine(visible, threshold)))
	} else {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("Most recent %d answers, newest first", ProgressTail)))
	}
	b.WriteString("\n")

	if visible.Len() == 0 {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("  No rows yet. Play a game to fill the log."))
	} else {
		b.WriteString(s.renderTable(visible, width, max(1, height-12)))
	}

	if s.status != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(s.status))
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
}

func (s *ResultsScreen) renderTabs() string {
	tabs := []string{"Progress", "Summaries"}
	out := make([]string, len(tabs))
	for i, label := range tabs {
		style := lipgloss.NewStyle().Padding(0, 2).Foreground(theme.TextDim)
		if Tab(i) == s.tab {
			style = style.Foreground(theme.BgDark).Background(theme.ArcadeCyan).Bold(true)
		}
		out[i] = style.Render(label)
	}
	return strings.Join(out, " ")
}

func (s *ResultsScreen) renderFilters() string {
	period := s.periods[s.periodIdx]
	if period == "" {
		period = "(all)"
	}
	periodLabel := lipgloss.NewStyle().Foreground(theme.TextDim).Render("Period: ")
	return s.filter.View() + "    " + periodLabel + theme.Selected.Render("◂ "+period+" ▸")
}

// renderTable draws rows newest first, starting at the scroll offset.
func (s *ResultsScreen) renderTable(t *store.Table, width, maxRows int) string {
	cols := progressView
	if s.tab == TabSummary {
		cols = summaryView
	}

	headers := make([]string, len(cols))
	idx := make([]int, len(cols))
	for i, c := range cols {
		headers[i] = c.header
		idx[i] = t.Index(c.name)
	}

	var rows [][]string
	for i := t.Len() - 1 - s.scroll; i >= 0 && len(rows) < maxRows; i-- {
		src := t.Rows[i]
		row := make([]string, len(cols))
		for j, k := range idx {
			if k >= 0 && k < len(src) {
				row[j] = src[k]
			}
		}
		rows = append(rows, row)
	}

	headerStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Foreground(theme.Text).Padding(0, 1)
	dimStyle := cellStyle.Foreground(theme.TextDim)

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row%2 == 1:
				return dimStyle
			default:
				return cellStyle
			}
		})

	footer := theme.Hint.Render(fmt.Sprintf("rows %d-%d of %d", s.scroll+1, s.scroll+len(rows), t.Len()))
	return tbl.String() + "\n" + footer
}
