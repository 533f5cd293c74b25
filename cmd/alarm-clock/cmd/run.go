package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/clock"
	"github.com/oshokin/alarm-clock/internal/service/daemon"
)

// runOptions collects the flags of the run command.
//
//nolint:gochecknoglobals // Cobra binds flags to package variables.
var runOptions daemon.Options

// runCmd starts the clock daemon.
//
//nolint:gochecknoglobals // Cobra commands are package-level by convention.
var runCmd = &cobra.Command{
	Use:   "run [listen-address]",
	Short: "Run the alarm clock daemon.",
	Long: `Starts the clock: alarms are loaded from the state file, compared with the
current time once per poll interval and rung through the configured sound
player. The daemon serves the gRPC control API (and the HTTP API when
http_addr is set) until interrupted.

The gRPC listen address can be provided as argument to override config
(e.g., :50061, 0.0.0.0:50061). Only one daemon may use a state directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Setup graceful shutdown handling.
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		if len(args) > 0 {
			runOptions.ListenAddress = args[0]
		}

		runOptions.ConfigPath = configPath
		runOptions.Output = cmd.OutOrStdout()

		return daemon.Run(ctx, &runOptions)
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := runCmd.Flags()
	flags.StringVarP(&runOptions.StateFile, "state-file", "s", "", "path to persist alarms")
	flags.StringVar(&runOptions.HTTPAddress, "http", "", "HTTP API listen address")
	flags.StringVarP(&runOptions.Timezone, "timezone", "t", "", "initial IANA timezone")
	flags.StringVar(&runOptions.PIDFile, "pid-file", "", "instance guard file")
	flags.BoolVarP(&runOptions.Mute, "mute", "m", false, "do not play sounds")
	flags.BoolVarP(&runOptions.Face, "face", "f", false, "redraw the clock face every tick")
	flags.IntVarP(&runOptions.FaceWidth, "width", "w", clock.DefaultWidth, "clock face width in columns")

	rootCmd.AddCommand(runCmd)
}
