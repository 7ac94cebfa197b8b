// Package shared holds what every screen needs to reach the game service.
package shared

import (
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/slopeshowdown/internal/session"
)

// Env is passed from screen to screen as the player moves through the app.
type Env struct {
	Service *session.Service

	// Periods are the class periods offered at sign-in. "Other" is always
	// appended by the sign-in screen.
	Periods []string

	// ExportDir is where the results screen writes filtered CSV downloads.
	ExportDir string

	Logger *zap.Logger
	Now    func() time.Time
}

// Log returns the logger, or a no-op logger when none was set.
func (e Env) Log() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// Clock returns the current time.
func (e Env) Clock() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}
