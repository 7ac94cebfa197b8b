package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty directory with no config-related
// environment leaking in.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg-config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "xdg-data"))
	for _, key := range []string{
		"SLOPESHOWDOWN_ENV",
		"SLOPESHOWDOWN_LOG_LEVEL",
		"SLOPESHOWDOWN_DATA_DIR",
		"SLOPESHOWDOWN_GAME_NUM_QUESTIONS",
		"SLOPESHOWDOWN_GAME_WIN_THRESHOLD",
		"SLOPESHOWDOWN_GAME_SEED",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, filepath.Join(dir, "xdg-data", "slopeshowdown"), cfg.DataDir)
	assert.Equal(t, 15, cfg.Game.NumQuestions)
	assert.Equal(t, 10, cfg.Game.WinThreshold)
	assert.Equal(t, int64(0), cfg.Game.Seed)
	assert.Len(t, cfg.Game.Periods, 9)

	sc := cfg.Game.SessionConfig()
	assert.Equal(t, 15, sc.NumQuestions)
	assert.Equal(t, 10, sc.WinThreshold)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
env: production
data_dir: /srv/slopes
game:
  num_questions: 20
  win_threshold: 25
  seed: 99
  periods: ["A", "B"]
`), 0o644))

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "/srv/slopes", cfg.DataDir)
	assert.Equal(t, 20, cfg.Game.NumQuestions)
	assert.Equal(t, 25, cfg.Game.WinThreshold)
	assert.Equal(t, int64(99), cfg.Game.Seed)
	assert.Equal(t, []string{"A", "B"}, cfg.Game.Periods)
}

func TestLoad_ExplicitConfigFileMissing(t *testing.T) {
	dir := isolate(t)

	_, err := Load(Options{ConfigFile: filepath.Join(dir, "nope.yaml")})
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("game:\n  win_threshold: 25\n"), 0o644))
	t.Setenv("SLOPESHOWDOWN_GAME_WIN_THRESHOLD", "12")
	t.Setenv("SLOPESHOWDOWN_LOG_LEVEL", "debug")

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Game.WinThreshold)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("SLOPESHOWDOWN_GAME_NUM_QUESTIONS=7\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("SLOPESHOWDOWN_GAME_NUM_QUESTIONS") })

	cfg, err := Load(Options{EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Game.NumQuestions)
}

func TestLoad_FlagsWin(t *testing.T) {
	isolate(t)
	t.Setenv("SLOPESHOWDOWN_DATA_DIR", "/from/env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("data-dir", "", "")
	flags.String("log-level", "", "")
	require.NoError(t, flags.Parse([]string{"--data-dir", "/from/flag"}))

	cfg, err := Load(Options{Flags: flags})
	require.NoError(t, err)
	assert.Equal(t, "/from/flag", cfg.DataDir)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)
	t.Setenv("SLOPESHOWDOWN_GAME_NUM_QUESTIONS", "0")

	_, err := Load(Options{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
