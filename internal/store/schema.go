package store

// Column names shared by both logs.
const (
	ColTimestamp   = "timestamp"
	ColSessionID   = "session_id"
	ColName        = "name"
	ColClassPeriod = "class_period"
)

// ProgressColumns is the current on-disk layout of the progress log.
var ProgressColumns = []string{
	ColTimestamp, ColSessionID, ColName, ColClassPeriod,
	"q_index", "total_questions", "choice", "answer", "correct",
	"score_after", "streak_after", "best_streak",
}

// ProgressLegacyColumns is the progress layout written before class periods
// were recorded.
var ProgressLegacyColumns = []string{
	ColTimestamp, ColSessionID, ColName,
	"q_index", "total_questions", "choice", "answer", "correct",
	"score_after", "streak_after", "best_streak",
}

// SummaryColumns is the current on-disk layout of the summary log.
var SummaryColumns = []string{
	ColTimestamp, ColSessionID, ColName, ColClassPeriod,
	"score", "best_streak", "total_questions", "won",
}

// SummaryLegacyColumns is the summary layout written before class periods
// were recorded.
var SummaryLegacyColumns = []string{
	ColTimestamp, ColSessionID, ColName,
	"score", "best_streak", "total_questions", "won",
}

// UnknownPeriod fills class_period for rows written under the legacy layout.
const UnknownPeriod = "unknown"

// Schema describes the current and legacy layouts of one log and how to
// widen legacy rows.
type Schema struct {
	Columns     []string
	Legacy      []string
	InsertIndex int
	Fill        string
}

// ProgressSchema reads the progress log.
var ProgressSchema = Schema{
	Columns:     ProgressColumns,
	Legacy:      ProgressLegacyColumns,
	InsertIndex: 3,
	Fill:        UnknownPeriod,
}

// SummarySchema reads the summary log.
var SummarySchema = Schema{
	Columns:     SummaryColumns,
	Legacy:      SummaryLegacyColumns,
	InsertIndex: 3,
	Fill:        UnknownPeriod,
}
