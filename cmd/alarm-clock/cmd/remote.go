package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/clock"
	"github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/service/client"
)

var (
	// serverAddress overrides the daemon address from config.
	serverAddress string
	// retries is how many times an unreachable daemon is retried.
	retries int
	// clockWidth is the face width of the show command.
	clockWidth int
)

// remote builds the RunE of a command that runs one client action.
func remote(action func(args []string) (client.Action, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		a, err := action(args)
		if err != nil {
			return err
		}

		return client.Run(ctx, &client.Options{
			ConfigPath:    configPath,
			ServerAddress: serverAddress,
			Retries:       retries,
			Output:        cmd.OutOrStdout(),
		}, a)
	}
}

// parseAlarmArgs reads HOUR MINUTE AM|PM. Range checks are left to the daemon
// so every client gets the same validation.
func parseAlarmArgs(args []string) (int, int, string, error) {
	hour, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, "", fmt.Errorf("%w: hour %q is not a number", alarm.ErrInvalidHour, args[0])
	}

	minute, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, "", fmt.Errorf("%w: minute %q is not a number", alarm.ErrInvalidMinute, args[1])
	}

	return hour, minute, args[2], nil
}

//nolint:gochecknoinits,funlen // Required by Cobra CLI framework architecture.
func init() {
	setCmd := &cobra.Command{
		Use:     "set HOUR MINUTE AM|PM",
		Short:   "Set an alarm.",
		Example: "  alarm-clock set 7 30 AM",
		Args:    cobra.ExactArgs(3),
		RunE: remote(func(args []string) (client.Action, error) {
			hour, minute, meridiem, err := parseAlarmArgs(args)
			if err != nil {
				return nil, err
			}

			return client.SetAlarm(hour, minute, meridiem), nil
		}),
	}

	deleteCmd := &cobra.Command{
		Use:     `delete "HH:MM AM|PM"`,
		Aliases: []string{"rm"},
		Short:   "Delete a pending alarm.",
		Example: `  alarm-clock delete "07:30 AM"`,
		Args:    cobra.ExactArgs(1),
		RunE: remote(func(args []string) (client.Action, error) {
			if _, _, _, err := alarm.Parse(args[0]); err != nil {
				return nil, err
			}

			return client.DeleteAlarm(args[0]), nil
		}),
	}

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List pending alarms in order.",
		Args:    cobra.NoArgs,
		RunE: remote(func([]string) (client.Action, error) {
			return client.ListAlarms(), nil
		}),
	}

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the ringing alarm.",
		Args:  cobra.NoArgs,
		RunE: remote(func([]string) (client.Action, error) {
			return client.StopAlarm(), nil
		}),
	}

	timezoneCmd := &cobra.Command{
		Use:     "timezone NAME",
		Short:   "Switch the daemon to another IANA timezone.",
		Example: "  alarm-clock timezone Europe/Madrid",
		Args:    cobra.ExactArgs(1),
		RunE: remote(func(args []string) (client.Action, error) {
			return client.SetTimezone(args[0]), nil
		}),
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Print the daemon time, zone and alarm count.",
		Args:  cobra.NoArgs,
		RunE: remote(func([]string) (client.Action, error) {
			return client.Status(), nil
		}),
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Draw the daemon's clock face and alarms.",
		Args:  cobra.NoArgs,
		RunE: remote(func([]string) (client.Action, error) {
			return client.ShowClock(clockWidth), nil
		}),
	}
	showCmd.Flags().IntVarP(&clockWidth, "width", "w", clock.DefaultWidth, "clock face width in columns")

	for _, c := range []*cobra.Command{setCmd, deleteCmd, listCmd, stopCmd, timezoneCmd, statusCmd, showCmd} {
		c.Flags().StringVarP(&serverAddress, "server", "a", "", "daemon gRPC address, overrides config")
		c.Flags().IntVar(&retries, "retries", 0, "extra attempts while the daemon is unreachable")
		rootCmd.AddCommand(c)
	}
}
