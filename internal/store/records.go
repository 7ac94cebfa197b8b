package store

import (
	"strconv"
	"time"
)

// TimestampLayout is ISO-8601 with second precision and no zone, matching
// the wall-clock timestamps already present in existing logs.
const TimestampLayout = "2006-01-02T15:04:05"

// ProgressRecord is one answered question.
type ProgressRecord struct {
	Timestamp      time.Time
	SessionID      string
	Name           string
	ClassPeriod    string
	QuestionIndex  int // 1-based
	TotalQuestions int
	Choice         string
	Answer         string
	Correct        bool
	ScoreAfter     int
	StreakAfter    int
	BestStreak     int
}

// Row encodes the record in ProgressColumns order.
func (r ProgressRecord) Row() []string {
	return []string{
		r.Timestamp.Format(TimestampLayout),
		r.SessionID,
		r.Name,
		r.ClassPeriod,
		strconv.Itoa(r.QuestionIndex),
		strconv.Itoa(r.TotalQuestions),
		r.Choice,
		r.Answer,
		boolDigit(r.Correct),
		strconv.Itoa(r.ScoreAfter),
		strconv.Itoa(r.StreakAfter),
		strconv.Itoa(r.BestStreak),
	}
}

// SummaryRecord is one finished game.
type SummaryRecord struct {
	Timestamp      time.Time
	SessionID      string
	Name           string
	ClassPeriod    string
	Score          int
	BestStreak     int
	TotalQuestions int
	Won            bool
}

// Row encodes the record in SummaryColumns order.
func (r SummaryRecord) Row() []string {
	return []string{
		r.Timestamp.Format(TimestampLayout),
		r.SessionID,
		r.Name,
		r.ClassPeriod,
		strconv.Itoa(r.Score),
		strconv.Itoa(r.BestStreak),
		strconv.Itoa(r.TotalQuestions),
		boolDigit(r.Won),
	}
}

func boolDigit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// DecodeProgress converts a progress table into typed records. Fields that
// do not parse decode as their zero value; rows are never dropped.
func (t *Table) DecodeProgress() []ProgressRecord {
	if t == nil {
		return nil
	}
	out := make([]ProgressRecord, 0, len(t.Rows))
	for i := range t.Rows {
		get := t.getter(i)
		out = append(out, ProgressRecord{
			Timestamp:      parseTimestamp(get(ColTimestamp)),
			SessionID:      get(ColSessionID),
			Name:           get(ColName),
			ClassPeriod:    get(ColClassPeriod),
			QuestionIndex:  parseInt(get("q_index")),
			TotalQuestions: parseInt(get("total_questions")),
			Choice:         get("choice"),
			Answer:         get("answer"),
			Correct:        parseBool(get("correct")),
			ScoreAfter:     parseInt(get("score_after")),
			StreakAfter:    parseInt(get("streak_after")),
			BestStreak:     parseInt(get("best_streak")),
		})
	}
	return out
}

// DecodeSummary converts a summary table into typed records, leniently.
func (t *Table) DecodeSummary() []SummaryRecord {
	if t == nil {
		return nil
	}
	out := make([]SummaryRecord, 0, len(t.Rows))
	for i := range t.Rows {
		get := t.getter(i)
		out = append(out, SummaryRecord{
			Timestamp:      parseTimestamp(get(ColTimestamp)),
			SessionID:      get(ColSessionID),
			Name:           get(ColName),
			ClassPeriod:    get(ColClassPeriod),
			Score:          parseInt(get("score")),
			BestStreak:     parseInt(get("best_streak")),
			TotalQuestions: parseInt(get("total_questions")),
			Won:            parseBool(get("won")),
		})
	}
	return out
}

func parseTimestamp(s string) time.Time {
	if ts, err := time.ParseInLocation(TimestampLayout, s, time.Local); err == nil {
		return ts
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts
	}
	return time.Time{}
}

func parseInt(s string) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	// Values round-tripped through spreadsheets sometimes come back as "3.0".
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

func parseBool(s string) bool {
	switch s {
	case "1", "true", "True", "TRUE", "1.0":
		return true
	}
	return false
}
