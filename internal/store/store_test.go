package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	return s
}

func sampleProgress(i int) ProgressRecord {
	return ProgressRecord{
		Timestamp:      time.Date(2026, 3, 4, 9, 15, i%60, 0, time.Local),
		SessionID:      "a1b2c3d4e5f6",
		Name:           fmt.Sprintf("Player %d", i),
		ClassPeriod:    "3",
		QuestionIndex:  i + 1,
		TotalQuestions: 15,
		Choice:         "Positive",
		Answer:         "Negative",
		Correct:        i%2 == 0,
		ScoreAfter:     i - 3,
		StreakAfter:    i % 4,
		BestStreak:     i % 5,
	}
}

func readLines(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestOpen_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := Open(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(dir, ProgressFileName), s.ProgressPath())
	assert.Equal(t, filepath.Join(dir, SummaryFileName), s.SummaryPath())
}

func TestAppendProgress_HeaderWrittenOnce(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, s.AppendProgress(ctx, sampleProgress(i)))
	}

	rows := readLines(t, s.ProgressPath())
	require.Len(t, rows, 4)
	assert.Equal(t, ProgressColumns, rows[0])
	for _, row := range rows[1:] {
		assert.Len(t, row, len(ProgressColumns))
		assert.NotEqual(t, ProgressColumns[0], row[0])
	}
}

func TestAppendSummary_Encoding(t *testing.T) {
	s := openTestStore(t)
	rec := SummaryRecord{
		Timestamp:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local),
		SessionID:      "abc",
		Name:           "Ada, L.",
		ClassPeriod:    "Advisory",
		Score:          12,
		BestStreak:     4,
		TotalQuestions: 15,
		Won:            true,
	}
	require.NoError(t, s.AppendSummary(context.Background(), rec))

	rows := readLines(t, s.SummaryPath())
	require.Len(t, rows, 2)
	assert.Equal(t, SummaryColumns, rows[0])
	assert.Equal(t, []string{"2026-01-02T03:04:05", "abc", "Ada, L.", "Advisory", "12", "4", "15", "1"}, rows[1])
}

func TestAppend_EmptyExistingFileGetsHeader(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, os.WriteFile(s.SummaryPath(), nil, 0o644))

	require.NoError(t, s.AppendSummary(context.Background(), SummaryRecord{SessionID: "x"}))

	rows := readLines(t, s.SummaryPath())
	require.Len(t, rows, 2)
	assert.Equal(t, SummaryColumns, rows[0])
}

func TestAppend_ConcurrentWritersDoNotInterleave(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	const writers, perWriter = 16, 25
	var wg sync.WaitGroup
	errs := make(chan error, writers*perWriter*2)
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				rec := sampleProgress(i)
				rec.SessionID = fmt.Sprintf("session-%02d", w)
				errs <- s.AppendProgress(ctx, rec)
				errs <- s.AppendSummary(ctx, SummaryRecord{SessionID: rec.SessionID, Score: i})
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	progress := readLines(t, s.ProgressPath())
	require.Len(t, progress, writers*perWriter+1)
	headers := 0
	for _, row := range progress {
		require.Len(t, row, len(ProgressColumns))
		if row[0] == ColTimestamp {
			headers++
		}
	}
	assert.Equal(t, 1, headers)

	summary := readLines(t, s.SummaryPath())
	assert.Len(t, summary, writers*perWriter+1)
}

func TestAppend_WriteError(t *testing.T) {
	s := openTestStore(t)
	// A directory where the log file should be makes the open fail.
	require.NoError(t, os.Mkdir(s.ProgressPath(), 0o755))

	err := s.AppendProgress(context.Background(), sampleProgress(0))
	require.Error(t, err)

	var werr *WriteError
	require.True(t, errors.As(err, &werr))
	assert.Equal(t, s.ProgressPath(), werr.Path)
}

func TestAppend_CanceledContext(t *testing.T) {
	s := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.AppendSummary(ctx, SummaryRecord{})
	var werr *WriteError
	require.True(t, errors.As(err, &werr))
	assert.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(s.SummaryPath())
	assert.True(t, os.IsNotExist(statErr))
}

func TestRoundTrip_ProgressRecords(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	const n = 20
	want := make([]ProgressRecord, 0, n)
	for i := 0; i < n; i++ {
		rec := sampleProgress(i)
		want = append(want, rec)
		require.NoError(t, s.AppendProgress(ctx, rec))
	}

	table, err := s.ReadProgress()
	require.NoError(t, err)
	require.NotNil(t, table)
	assert.Equal(t, VariantCurrent, table.Variant)
	require.Equal(t, n, table.Len())

	got := table.DecodeProgress()
	require.Len(t, got, n)
	for i := range want {
		assert.True(t, want[i].Timestamp.Equal(got[i].Timestamp), "timestamp %d", i)
		w, g := want[i], got[i]
		w.Timestamp, g.Timestamp = time.Time{}, time.Time{}
		assert.Equal(t, w, g)
		assert.Equal(t, want[i].Row(), table.Rows[i])
	}
}

func TestRoundTrip_SummaryRecords(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	rec := SummaryRecord{
		Timestamp:      time.Date(2026, 5, 6, 7, 8, 9, 0, time.Local),
		SessionID:      "s1",
		Name:           "Grace",
		ClassPeriod:    "7",
		Score:          -2,
		BestStreak:     1,
		TotalQuestions: 15,
	}
	require.NoError(t, s.AppendSummary(ctx, rec))

	table, err := s.ReadSummary()
	require.NoError(t, err)
	got := table.DecodeSummary()
	require.Len(t, got, 1)
	assert.Equal(t, rec.Row(), got[0].Row())
}

func TestReadProgress_MissingLogIsAbsent(t *testing.T) {
	s := openTestStore(t)

	table, err := s.ReadProgress()
	assert.NoError(t, err)
	assert.Nil(t, table)
	assert.Equal(t, 0, table.Len())
}

func TestDefaultDataDir(t *testing.T) {
	t.Setenv("SLOPESHOWDOWN_DATA_DIR", "")
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	dir, err := DefaultDataDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg-data", "slopeshowdown"), dir)

	t.Setenv("SLOPESHOWDOWN_DATA_DIR", "/srv/slopes")
	dir, err = DefaultDataDir()
	require.NoError(t, err)
	assert.Equal(t, "/srv/slopes", dir)
}

func TestDecode_LenientValues(t *testing.T) {
	table := ProgressSchema.Reconcile([][]string{
		ProgressColumns,
		{"not-a-time", "s", "n", "p", "x", "15", "Zero", "Zero", "1.0", "3.0", "", "2"},
	})
	recs := table.DecodeProgress()
	require.Len(t, recs, 1)
	assert.True(t, recs[0].Timestamp.IsZero())
	assert.Equal(t, 0, recs[0].QuestionIndex)
	assert.True(t, recs[0].Correct)
	assert.Equal(t, 3, recs[0].ScoreAfter)
	assert.Equal(t, 2, recs[0].BestStreak)
	assert.True(t, strings.HasPrefix(recs[0].Choice, "Zero"))
}
