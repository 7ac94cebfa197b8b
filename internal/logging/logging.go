package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds the application logger. env "production" selects JSON output;
// anything else gets the human-readable development encoder. When path is
// set, all output goes to that file instead of stderr, which keeps the
// terminal free for the TUI.
func New(env, level, path string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if env == "production" {
		cfg = zap.NewProductionConfig()
	}

	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		cfg.Level = lvl
	}

	if path != "" {
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
