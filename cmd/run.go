package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/slopeshowdown/internal/app"
	"github.com/abhisek/slopeshowdown/internal/logging"
	"github.com/abhisek/slopeshowdown/internal/session"
	"github.com/abhisek/slopeshowdown/internal/store"
)

// LogFileName receives the application log while the TUI owns the terminal.
const LogFileName = "slopeshowdown.log"

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	// The log file lives beside the CSV logs, so the directory must exist
	// before the logger opens it.
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	logger, err := logging.New(cfg.Env, cfg.LogLevel, filepath.Join(cfg.DataDir, LogFileName))
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	st, err := store.Open(cfg.DataDir, store.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	logger.Info("starting",
		zap.String("version", version),
		zap.String("data_dir", st.Dir()),
		zap.Int("num_questions", cfg.Game.NumQuestions),
		zap.Int("win_threshold", cfg.Game.WinThreshold),
	)

	skipIntro, _ := cmd.Flags().GetBool("skip-intro")
	return app.Run(app.Options{
		Service:   session.NewService(st, cfg.Game.SessionConfig(), logger),
		Periods:   cfg.Game.Periods,
		ExportDir: st.Dir(),
		Logger:    logger,
		SkipIntro: skipIntro,
	})
}
