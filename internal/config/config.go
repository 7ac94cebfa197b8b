package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/slopeshowdown/internal/session"
	"github.com/abhisek/slopeshowdown/internal/store"
)

// EnvPrefix namespaces environment variables: game.win_threshold is read
// from SLOPESHOWDOWN_GAME_WIN_THRESHOLD.
const EnvPrefix = "SLOPESHOWDOWN"

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds application configuration loaded from files, .env and
// environment variables, and command-line flags.
type Config struct {
	Env      string `mapstructure:"env"`       // "production" switches to JSON logs
	LogLevel string `mapstructure:"log_level"` // debug, info, warn, error
	DataDir  string `mapstructure:"data_dir"`  // where the CSV logs live
	Game     Game   `mapstructure:"game"`
}

// Game contains the quiz settings.
type Game struct {
	NumQuestions int      `mapstructure:"num_questions"`
	WinThreshold int      `mapstructure:"win_threshold"`
	Seed         int64    `mapstructure:"seed"`    // 0 draws a random seed per game
	Periods      []string `mapstructure:"periods"` // class periods offered at sign-in
}

// SessionConfig converts the game section for the session package.
func (g Game) SessionConfig() session.Config {
	return session.Config{
		NumQuestions: g.NumQuestions,
		WinThreshold: g.WinThreshold,
		Seed:         g.Seed,
	}
}

// Options controls where Load looks.
type Options struct {
	// ConfigFile is an explicit YAML file. When empty, config.yaml is
	// searched for in the working directory and the user config directory.
	ConfigFile string

	// EnvFile is a dotenv file loaded before the environment is read.
	// Missing files are ignored. Defaults to ".env".
	EnvFile string

	// Flags, when set, override every other source. Recognised flags are
	// data-dir and log-level.
	Flags *pflag.FlagSet
}

// Load reads configuration in priority order: flags, environment
// (including .env), config file, defaults.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if dir, err := userConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	v.SetDefault("env", "local")
	v.SetDefault("log_level", "info")
	v.SetDefault("data_dir", "")
	v.SetDefault("game.num_questions", session.DefaultNumQuestions)
	v.SetDefault("game.win_threshold", session.DefaultWinThreshold)
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.periods", []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"})

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for key, name := range map[string]string{"data_dir": "data-dir", "log_level": "log-level"} {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if cfg.DataDir == "" {
		dir, err := store.DefaultDataDir()
		if err != nil {
			return nil, fmt.Errorf("resolve data dir: %w", err)
		}
		cfg.DataDir = dir
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Game.NumQuestions <= 0 {
		return fmt.Errorf("%w: game.num_questions must be positive, got %d", ErrInvalidConfig, c.Game.NumQuestions)
	}
	if c.Game.WinThreshold <= 0 {
		return fmt.Errorf("%w: game.win_threshold must be positive, got %d", ErrInvalidConfig, c.Game.WinThreshold)
	}
	return nil
}

// userConfigDir resolves $XDG_CONFIG_HOME/slopeshowdown, falling back to
// ~/.config/slopeshowdown.
func userConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "slopeshowdown"), nil
}
