package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"
)

// WriteError reports a failed log append. Appends are never retried.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("append to %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// appendRow writes row to path, preceded by header when the file is being
// created. The existence check, open and write all happen under s.mu.
func (s *Store) appendRow(path string, header, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh, err := needsHeader(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(header); err != nil {
			f.Close()
			return &WriteError{Path: path, Err: err}
		}
		s.logger.Info("created log", zap.String("path", path))
	}
	if err := w.Write(row); err != nil {
		f.Close()
		return &WriteError{Path: path, Err: err}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return &WriteError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// needsHeader reports whether path is missing or empty.
func needsHeader(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return info.Size() == 0, nil
}
