package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/config"
)

// errSettingsExist is returned when init would overwrite a settings file.
var errSettingsExist = errors.New("settings file already exists, use --force to overwrite")

var (
	// initForce allows overwriting an existing settings file.
	initForce bool
	// initTimezone is written as the default zone.
	initTimezone string
	// initStorage selects the alarm storage backend.
	initStorage string

	// initCmd writes a settings file with default values.
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Write a settings file with default values.",
		Long: `Writes the configuration file given by --config, filled with defaults.
Edit it afterwards or override single values through ALARM_CLOCK_* variables.`,
		Example: "  alarm-clock init --timezone Europe/Madrid --storage sqlite",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := initSettings(configPath, initTimezone, initStorage, initForce); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Settings written to %s\n", configPath)

			return err
		},
	}
)

// initSettings writes default settings to path, keeping an existing file unless force is set.
func initSettings(path, timezone, storage string, force bool) error {
	if !force {
		_, err := os.Stat(filepath.Clean(path))

		switch {
		case err == nil:
			return fmt.Errorf("%w: %s", errSettingsExist, path)
		case !errors.Is(err, os.ErrNotExist):
			return fmt.Errorf("check settings file: %w", err)
		}
	}

	settings := config.Default()

	if timezone != "" {
		settings.Timezone = timezone
	}

	if storage != "" {
		settings.Storage = storage
	}

	return config.Save(path, settings)
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing settings file")
	initCmd.Flags().StringVar(&initTimezone, "timezone", "", "IANA timezone, e.g. America/Bogota")
	initCmd.Flags().StringVar(&initStorage, "storage", "", "alarm storage: json or sqlite")

	rootCmd.AddCommand(initCmd)
}
