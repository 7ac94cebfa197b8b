package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/slopeshowdown/internal/store"
)

func at(min int) time.Time {
	return time.Date(2026, 4, 1, 9, min, 0, 0, time.Local)
}

func sampleDB(t *testing.T) *DB {
	t.Helper()
	ctx := context.Background()
	d, err := Open(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })

	require.NoError(t, d.LoadSummary(ctx, []store.SummaryRecord{
		{Timestamp: at(1), SessionID: "a", Name: "Ada", ClassPeriod: "1", Score: 10, BestStreak: 3, TotalQuestions: 15, Won: true},
		{Timestamp: at(2), SessionID: "b", Name: "Bob", ClassPeriod: "1", Score: -4, BestStreak: 1, TotalQuestions: 15},
		{Timestamp: at(3), SessionID: "c", Name: "Ada", ClassPeriod: "2", Score: 16, BestStreak: 4, TotalQuestions: 15, Won: true},
		{Timestamp: at(4), SessionID: "d", Name: "Cy", ClassPeriod: "2", Score: 10, BestStreak: 3, TotalQuestions: 15, Won: true},
	}))
	require.NoError(t, d.LoadProgress(ctx, []store.ProgressRecord{
		{Timestamp: at(1), SessionID: "a", Name: "Ada", ClassPeriod: "1", QuestionIndex: 1, Correct: true},
		{Timestamp: at(1), SessionID: "a", Name: "Ada", ClassPeriod: "1", QuestionIndex: 2, Correct: true},
		{Timestamp: at(2), SessionID: "b", Name: "Bob", ClassPeriod: "1", QuestionIndex: 1},
		{Timestamp: at(2), SessionID: "b", Name: "Bob", ClassPeriod: "1", QuestionIndex: 2, Correct: true},
		{Timestamp: at(5), SessionID: "e", Name: "Dee", ClassPeriod: "Other", QuestionIndex: 1},
	}))
	return d
}

func TestPragmasApplied(t *testing.T) {
	d, err := Open(context.Background())
	require.NoError(t, err)
	defer d.Close()

	tests := []struct {
		pragma string
		want   string
	}{
		{"foreign_keys", "1"},
		{"synchronous", "0"},
		{"temp_store", "2"},
	}
	for _, tt := range tests {
		var got string
		require.NoError(t, d.db.QueryRow("PRAGMA "+tt.pragma).Scan(&got))
		assert.Equal(t, tt.want, got, "PRAGMA %s", tt.pragma)
	}
}

func TestTotals(t *testing.T) {
	d := sampleDB(t)
	ctx := context.Background()

	all, err := d.Totals(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, Totals{Games: 4, Winners: 3, Players: 3, Answers: 5, Correct: 3}, all)
	assert.InDelta(t, 0.6, all.Accuracy(), 1e-9)

	p1, err := d.Totals(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, Totals{Games: 2, Winners: 1, Players: 2, Answers: 4, Correct: 3}, p1)

	none, err := d.Totals(ctx, "9")
	require.NoError(t, err)
	assert.Equal(t, Totals{}, none)
	assert.Equal(t, 0.0, none.Accuracy())
}

func TestByPeriod(t *testing.T) {
	d := sampleDB(t)

	got, err := d.ByPeriod(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, PeriodStats{ClassPeriod: "1", Games: 2, Winners: 1, BestScore: 10, AvgScore: 3, Answers: 4, Correct: 3}, got[0])
	assert.Equal(t, "2", got[1].ClassPeriod)
	assert.Equal(t, 2, got[1].Games)
	assert.Equal(t, 16, got[1].BestScore)
	assert.InDelta(t, 13.0, got[1].AvgScore, 1e-9)
	assert.Equal(t, 0, got[1].Answers)

	// Periods with answers but no finished game still appear.
	assert.Equal(t, PeriodStats{ClassPeriod: "Other", Answers: 1}, got[2])
	assert.Equal(t, 0.0, got[2].Accuracy())
}

func TestLeaderboard(t *testing.T) {
	d := sampleDB(t)
	ctx := context.Background()

	top, err := d.Leaderboard(ctx, "", 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, 16, top[0].Score)
	// Equal score and streak: the earlier game ranks first.
	assert.Equal(t, "Ada", top[1].Name)
	assert.Equal(t, "1", top[1].ClassPeriod)
	assert.Equal(t, "Cy", top[2].Name)
	assert.True(t, top[0].Won)
	assert.True(t, top[1].Timestamp.Equal(at(1)))

	p1, err := d.Leaderboard(ctx, "1", 0)
	require.NoError(t, err)
	require.Len(t, p1, 2)
	assert.Equal(t, "Bob", p1[1].Name)
	assert.False(t, p1[1].Won)
}

func TestLoad_FromTables(t *testing.T) {
	ctx := context.Background()
	progress := store.ProgressSchema.Reconcile([][]string{
		store.ProgressLegacyColumns,
		{"2025-09-01T08:00:00", "s1", "Ada", "1", "15", "Positive", "Positive", "1", "2", "1", "1"},
	})
	d, err := Load(ctx, progress, nil)
	require.NoError(t, err)
	defer d.Close()

	periods, err := d.ByPeriod(ctx)
	require.NoError(t, err)
	require.Len(t, periods, 1)
	assert.Equal(t, store.UnknownPeriod, periods[0].ClassPeriod)
	assert.Equal(t, 1, periods[0].Correct)
}

func TestEmptyDatabase(t *testing.T) {
	ctx := context.Background()
	d, err := Load(ctx, nil, nil)
	require.NoError(t, err)
	defer d.Close()

	totals, err := d.Totals(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, Totals{}, totals)

	periods, err := d.ByPeriod(ctx)
	require.NoError(t, err)
	assert.Empty(t, periods)

	top, err := d.Leaderboard(ctx, "", 10)
	require.NoError(t, err)
	assert.Empty(t, top)
}
