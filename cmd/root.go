package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/slopeshowdown/internal/config"
)

// cfg is resolved once per invocation by the root PersistentPreRunE.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "slopeshowdown",
	Short: "Slope classification quiz for the terminal",
	Long:  "Slope Showdown: look at a line, call its slope Positive, Negative, Zero or Undefined, and race to the win threshold.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")
		envFile, _ := cmd.Flags().GetString("env-file")
		c, err := config.Load(config.Options{
			ConfigFile: configFile,
			EnvFile:    envFile,
			Flags:      cmd.Flags(),
		})
		if err != nil {
			return err
		}
		cfg = c
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("env-file", "", "Path to a .env file (default .env)")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory holding the CSV logs (overrides SLOPESHOWDOWN_DATA_DIR)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.Flags().Bool("skip-intro", false, "Start on the home menu")

	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}
