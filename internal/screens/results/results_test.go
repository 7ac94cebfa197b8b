package results

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/slopeshowdown/internal/screens/shared/sharedtest"
	"github.com/abhisek/slopeshowdown/internal/session"
	"github.com/abhisek/slopeshowdown/internal/store"
)

func at(min int) time.Time {
	return time.Date(2026, 3, 2, 9, min, 0, 0, time.Local)
}

// seeded returns a loaded results screen over a store holding progress
// rows for two players and three summaries.
func seeded(t *testing.T, progressRows int) *ResultsScreen {
	t.Helper()
	env, st := sharedtest.Env(t, session.Config{})
	ctx := context.Background()

	for i := 0; i < progressRows; i++ {
		name, period := "Ada", "1"
		if i%2 == 1 {
			name, period = "Bo", "2"
		}
		require.NoError(t, st.AppendProgress(ctx, store.ProgressRecord{
			Timestamp: at(i % 60), SessionID: "s" + name, Name: name, ClassPeriod: period,
			QuestionIndex: i + 1, TotalQuestions: 15, Choice: "Zero", Answer: "Zero", Correct: true,
		}))
	}
	for _, rec := range []store.SummaryRecord{
		{Timestamp: at(1), SessionID: "a", Name: "Ada", ClassPeriod: "1", Score: 10, BestStreak: 3, TotalQuestions: 15, Won: true},
		{Timestamp: at(2), SessionID: "b", Name: "Bo", ClassPeriod: "2", Score: 4, BestStreak: 2, TotalQuestions: 15},
		{Timestamp: at(3), SessionID: "c", Name: "Cy", ClassPeriod: "Other", Score: 16, BestStreak: 4, TotalQuestions: 15, Won: true},
	} {
		require.NoError(t, st.AppendSummary(ctx, rec))
	}

	s := New(env)
	sharedtest.Drive(t, s, s.Init()())
	require.True(t, s.loaded)
	return s
}

func TestLoadCollectsPeriods(t *testing.T) {
	s := seeded(t, 4)
	assert.Equal(t, []string{"", "1", "2", "Other"}, s.periods)
	assert.Equal(t, 4, s.Visible().Len())
}

func TestProgressShowsTail(t *testing.T) {
	s := seeded(t, 120)
	visible := s.Visible()
	require.Equal(t, ProgressTail, visible.Len())
	assert.Equal(t, "21", visible.Rows[0][visible.Index("q_index")])
}

func TestFilters(t *testing.T) {
	s := seeded(t, 6)

	s.Update(sharedtest.Key('/'))
	assert.True(t, s.InterceptsBack())
	sharedtest.Type(s, "bo")
	s.Update(sharedtest.Key(tea.KeyEnter))
	assert.False(t, s.InterceptsBack())
	assert.Equal(t, 3, s.Visible().Len())

	s.Update(sharedtest.Key(tea.KeyRight))
	assert.Equal(t, "1", s.Filter().ClassPeriod)
	assert.Equal(t, 0, s.Visible().Len(), "Bo is only in period 2")
	assert.Contains(t, s.View(120, 40), "No rows yet")

	s.Update(sharedtest.Key(tea.KeyLeft))
	assert.Equal(t, "", s.Filter().ClassPeriod)
}

func TestSummaryTabTotals(t *testing.T) {
	s := seeded(t, 2)
	s.Update(sharedtest.Key(tea.KeyTab))
	assert.Equal(t, TabSummary, s.tab)
	assert.Equal(t, 3, s.Visible().Len())
	assert.Contains(t, s.View(120, 40), "Total games: 3, Winners (score ≥ 10): 2")

	s.Update(sharedtest.Key(tea.KeyRight))
	assert.Equal(t, "Total games: 1, Winners (score ≥ 10): 1", TotalsLine(s.Visible(), 10))
}

func TestExport(t *testing.T) {
	s := seeded(t, 4)
	s.Update(sharedtest.Key(tea.KeyTab))

	sharedtest.Drive(t, s, sharedtest.Key('x'))
	path := filepath.Join(s.env.ExportDir, "slope_showdown_summary_20260302-103000.csv")
	assert.Equal(t, "Exported 3 rows to "+path, s.status)

	table, err := store.ReadTable(path, store.SummarySchema)
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())
	assert.Equal(t, store.VariantCurrent, table.Variant)
}

func TestExportNothing(t *testing.T) {
	env, _ := sharedtest.Env(t, session.Config{})
	s := New(env)
	sharedtest.Drive(t, s, s.Init()())

	_, msg := sharedtest.Drive(t, s, sharedtest.Key('x'))
	assert.Nil(t, msg)
	assert.Equal(t, "Nothing to export.", s.status)
	assert.Equal(t, []string{""}, s.periods)
}

func TestScrollBounds(t *testing.T) {
	s := seeded(t, 3)
	s.Update(sharedtest.Key(tea.KeyUp))
	assert.Equal(t, 0, s.scroll)
	for i := 0; i < 10; i++ {
		s.Update(sharedtest.Key(tea.KeyDown))
	}
	assert.Equal(t, 2, s.scroll)
}
