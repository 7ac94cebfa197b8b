package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/slopeshowdown/internal/store"
)

// Totals are counts over all games, optionally restricted to one period.
type Totals struct {
	Games   int
	Winners int
	Players int
	Answers int
	Correct int
}

// Accuracy returns the fraction of logged answers that were correct.
func (t Totals) Accuracy() float64 {
	if t.Answers == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Answers)
}

// PeriodStats are the aggregates for one class period.
type PeriodStats struct {
	ClassPeriod string
	Games       int
	Winners     int
	BestScore   int
	AvgScore    float64
	Answers     int
	Correct     int
}

// Accuracy returns the fraction of the period's answers that were correct.
func (p PeriodStats) Accuracy() float64 {
	if p.Answers == 0 {
		return 0
	}
	return float64(p.Correct) / float64(p.Answers)
}

// Entry is one finished game on the leaderboard.
type Entry struct {
	Name        string
	ClassPeriod string
	Score       int
	BestStreak  int
	Won         bool
	Timestamp   time.Time
}

// Totals counts games, winners, distinct players and answers. An empty
// period means every period.
func (d *DB) Totals(ctx context.Context, period string) (Totals, error) {
	var t Totals
	err := d.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(won), 0), COUNT(DISTINCT name)
		FROM summaries
		WHERE ?1 = '' OR class_period = ?1`, period).
		Scan(&t.Games, &t.Winners, &t.Players)
	if err != nil {
		return Totals{}, fmt.Errorf("query game totals: %w", err)
	}

	err = d.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(correct), 0)
		FROM progress
		WHERE ?1 = '' OR class_period = ?1`, period).
		Scan(&t.Answers, &t.Correct)
	if err != nil {
		return Totals{}, fmt.Errorf("query answer totals: %w", err)
	}
	return t, nil
}

// ByPeriod returns one row per class period seen in either log, ordered
// by period.
func (d *DB) ByPeriod(ctx context.Context) ([]PeriodStats, error) {
	rows, err := d.db.QueryContext(ctx, `
		WITH periods AS (
			SELECT class_period FROM summaries
			UNION
			SELECT class_period FROM progress
		),
		games AS (
			SELECT class_period, COUNT(*) AS n, SUM(won) AS winners,
			       MAX(score) AS best, AVG(score) AS avg_score
			FROM summaries GROUP BY class_period
		),
		answers AS (
			SELECT class_period, COUNT(*) AS n, SUM(correct) AS correct
			FROM progress GROUP BY class_period
		)
		SELECT p.class_period,
		       COALESCE(g.n, 0), COALESCE(g.winners, 0), COALESCE(g.best, 0),
		       COALESCE(g.avg_score, 0.0),
		       COALESCE(a.n, 0), COALESCE(a.correct, 0)
		FROM periods p
		LEFT JOIN games g ON g.class_period = p.class_period
		LEFT JOIN answers a ON a.class_period = p.class_period
		ORDER BY p.class_period`)
	if err != nil {
		return nil, fmt.Errorf("query period stats: %w", err)
	}
	defer rows.Close()

	var out []PeriodStats
	for rows.Next() {
		var p PeriodStats
		if err := rows.Scan(&p.ClassPeriod, &p.Games, &p.Winners, &p.BestScore,
			&p.AvgScore, &p.Answers, &p.Correct); err != nil {
			return nil, fmt.Errorf("scan period stats: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate period stats: %w", err)
	}
	return out, nil
}

// Leaderboard returns the highest-scoring games, best first. Ties go to the
// longer streak, then the earlier game. limit <= 0 returns every game.
func (d *DB) Leaderboard(ctx context.Context, period string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := d.db.QueryContext(ctx, `
		SELECT name, class_period, score, best_streak, won, ts
		FROM summaries
		WHERE ?1 = '' OR class_period = ?1
		ORDER BY score DESC, best_streak DESC, ts ASC
		LIMIT ?2`, period, limit)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e  Entry
			ts string
		)
		if err := rows.Scan(&e.Name, &e.ClassPeriod, &e.Score, &e.BestStreak, &e.Won, &ts); err != nil {
			return nil, fmt.Errorf("scan leaderboard: %w", err)
		}
		e.Timestamp, _ = time.ParseInLocation(store.TimestampLayout, ts, time.Local)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leaderboard: %w", err)
	}
	return out, nil
}
