// Package stats aggregates the game logs for reporting. Records are loaded
// into a private in-memory SQLite database and queried there; nothing is
// written to disk.
package stats

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/abhisek/slopeshowdown/internal/store"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE progress (
	ts              TEXT    NOT NULL,
	session_id      TEXT    NOT NULL,
	name            TEXT    NOT NULL,
	class_period    TEXT    NOT NULL,
	q_index         INTEGER NOT NULL,
	total_questions INTEGER NOT NULL,
	choice          TEXT    NOT NULL,
	answer          TEXT    NOT NULL,
	correct         INTEGER NOT NULL,
	score_after     INTEGER NOT NULL,
	streak_after    INTEGER NOT NULL,
	best_streak     INTEGER NOT NULL
);
CREATE TABLE summaries (
	ts              TEXT    NOT NULL,
	session_id      TEXT    NOT NULL,
	name            TEXT    NOT NULL,
	class_period    TEXT    NOT NULL,
	score           INTEGER NOT NULL,
	best_streak     INTEGER NOT NULL,
	total_questions INTEGER NOT NULL,
	won             INTEGER NOT NULL
);
CREATE INDEX progress_period ON progress(class_period);
CREATE INDEX summaries_period ON summaries(class_period);
`

// DB is an in-memory reporting database.
type DB struct {
	db *sql.DB
}

// Open creates an empty reporting database.
func Open(ctx context.Context) (*DB, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Load opens a database and fills it from the two log tables. Either table
// may be nil.
func Load(ctx context.Context, progress, summary *store.Table) (*DB, error) {
	d, err := Open(ctx)
	if err != nil {
		return nil, err
	}
	if err := d.LoadProgress(ctx, progress.DecodeProgress()); err != nil {
		d.Close()
		return nil, err
	}
	if err := d.LoadSummary(ctx, summary.DecodeSummary()); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

// Close releases the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// applyPragmas tunes SQLite for a throwaway single-connection database.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA synchronous = OFF",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// LoadProgress inserts progress records in one transaction.
func (d *DB) LoadProgress(ctx context.Context, recs []store.ProgressRecord) error {
	return d.insert(ctx, "progress",
		`INSERT INTO progress VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		len(recs), func(stmt *sql.Stmt, i int) error {
			r := recs[i]
			_, err := stmt.ExecContext(ctx,
				r.Timestamp.Format(store.TimestampLayout), r.SessionID, r.Name, r.ClassPeriod,
				r.QuestionIndex, r.TotalQuestions, r.Choice, r.Answer, r.Correct,
				r.ScoreAfter, r.StreakAfter, r.BestStreak)
			return err
		})
}

// LoadSummary inserts summary records in one transaction.
func (d *DB) LoadSummary(ctx context.Context, recs []store.SummaryRecord) error {
	return d.insert(ctx, "summaries",
		`INSERT INTO summaries VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		len(recs), func(stmt *sql.Stmt, i int) error {
			r := recs[i]
			_, err := stmt.ExecContext(ctx,
				r.Timestamp.Format(store.TimestampLayout), r.SessionID, r.Name, r.ClassPeriod,
				r.Score, r.BestStreak, r.TotalQuestions, r.Won)
			return err
		})
}

func (d *DB) insert(ctx context.Context, table, query string, n int, exec func(*sql.Stmt, int) error) error {
	if n == 0 {
		return nil
	}
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("load %s: %w", table, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("load %s: %w", table, err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if err := exec(stmt, i); err != nil {
			return fmt.Errorf("load %s row %d: %w", table, i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("load %s: %w", table, err)
	}
	return nil
}
