package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Default log file names inside the data directory.
const (
	ProgressFileName = "slope_showdown_progress.csv"
	SummaryFileName  = "slope_showdown_results.csv"
)

// Store owns the progress and summary logs. A single mutex serializes every
// append across both files so the one-time header is written exactly once
// and rows are never interleaved mid-record.
type Store struct {
	mu          sync.Mutex
	dir         string
	progressLog string
	summaryLog  string
	logger      *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for diagnostic output.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open creates a Store whose logs live in dir. The directory is created if
// it does not exist; the log files themselves are created on first append.
func Open(dir string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s := &Store{
		dir:         dir,
		progressLog: filepath.Join(dir, ProgressFileName),
		summaryLog:  filepath.Join(dir, SummaryFileName),
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// ProgressPath returns the path of the per-question log.
func (s *Store) ProgressPath() string {
	return s.progressLog
}

// SummaryPath returns the path of the per-game log.
func (s *Store) SummaryPath() string {
	return s.summaryLog
}

// AppendProgress appends one answered-question record.
func (s *Store) AppendProgress(ctx context.Context, rec ProgressRecord) error {
	if err := ctx.Err(); err != nil {
		return &WriteError{Path: s.progressLog, Err: err}
	}
	return s.appendRow(s.progressLog, ProgressColumns, rec.Row())
}

// AppendSummary appends one finished-game record.
func (s *Store) AppendSummary(ctx context.Context, rec SummaryRecord) error {
	if err := ctx.Err(); err != nil {
		return &WriteError{Path: s.summaryLog, Err: err}
	}
	return s.appendRow(s.summaryLog, SummaryColumns, rec.Row())
}

// ReadProgress reads the progress log, tolerating the legacy schema.
// It returns (nil, nil) when the log does not exist yet.
func (s *Store) ReadProgress() (*Table, error) {
	return ReadTable(s.progressLog, ProgressSchema)
}

// ReadSummary reads the summary log, tolerating the legacy schema.
// It returns (nil, nil) when the log does not exist yet.
func (s *Store) ReadSummary() (*Table, error) {
	return ReadTable(s.summaryLog, SummarySchema)
}

// DefaultDataDir resolves the data directory in priority order:
// 1. SLOPESHOWDOWN_DATA_DIR environment variable
// 2. $XDG_DATA_HOME/slopeshowdown
// 3. ~/.local/share/slopeshowdown
func DefaultDataDir() (string, error) {
	if p := os.Getenv("SLOPESHOWDOWN_DATA_DIR"); p != "" {
		return p, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "slopeshowdown"), nil
}
