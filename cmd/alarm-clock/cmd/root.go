package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// logLevel overrides the level from the configuration file.
	logLevel string

	// rootCmd represents the base command of the alarm clock.
	rootCmd = &cobra.Command{
		Use:   "alarm-clock",
		Short: "Terminal world clock with wall-clock alarms.",
		Long: `A world clock for the terminal with an analog face, a countdown timer
and alarms that ring at a wall-clock time ("07:30 AM").

Run "alarm-clock run" to start the clock daemon. The other commands talk to
the running daemon over gRPC, using the server address from the
configuration file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			level := logLevel
			if level == "" {
				// A broken config is reported by the command itself.
				if settings, err := config.Load(configPath); err == nil {
					level = settings.LogLevel
				}
			}

			return logger.Configure(level)
		},
	}
)

// Execute runs the alarm-clock CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().
		StringVarP(&logLevel, "log-level", "l", "", "log level: debug, info, warn, error")
}
