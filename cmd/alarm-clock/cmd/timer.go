package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/service/controller"
	"github.com/oshokin/alarm-clock/internal/sound"
	"github.com/oshokin/alarm-clock/internal/timer"
)

// timerRefresh is how often the countdown line is redrawn.
const timerRefresh = 200 * time.Millisecond

// errInvalidDuration is returned for bad timer arguments.
var errInvalidDuration = errors.New("invalid timer duration")

var (
	// timerMute disables the sound when the countdown ends.
	timerMute bool

	// timerCmd runs a countdown in the terminal.
	timerCmd = &cobra.Command{
		Use:   "timer MINUTES [SECONDS]",
		Short: "Run a countdown timer.",
		Long: `Counts down from the given duration, redrawing MM:SS in place.

Press Enter to pause or resume, type "r" and Enter to reset. When the
countdown ends the alarm sound plays until Enter is pressed.`,
		Example: "  alarm-clock timer 5 30",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			d, err := parseTimerArgs(args)
			if err != nil {
				return err
			}

			settings, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load settings: %w", err)
			}

			var player controller.Player = sound.NewExecPlayer(settings.Player)
			if timerMute {
				player = new(sound.NopPlayer)
			}

			return runTimer(ctx, timer.New(d), cmd.InOrStdin(), cmd.OutOrStdout(), player, settings.SoundFile)
		},
	}
)

// parseTimerArgs converts MINUTES [SECONDS] to a positive duration.
func parseTimerArgs(args []string) (time.Duration, error) {
	var total time.Duration

	units := []time.Duration{time.Minute, time.Second}

	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: %q", errInvalidDuration, arg)
		}

		total += time.Duration(n) * units[i]
	}

	if total <= 0 {
		return 0, fmt.Errorf("%w: must be positive", errInvalidDuration)
	}

	return total, nil
}

// runTimer drives t to zero, then rings until a line is read or ctx is
// canceled. While counting, each input line toggles pause; "r" resets.
//
//nolint:cyclop // Event loop over input, ticks and cancellation.
func runTimer(
	ctx context.Context,
	t *timer.Timer,
	in io.Reader,
	out io.Writer,
	player controller.Player,
	soundFile string,
) error {
	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- strings.TrimSpace(scanner.Text()):
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(timerRefresh)
	defer ticker.Stop()

	t.Start()

	for !t.Done() {
		_, _ = fmt.Fprintf(out, "\r%s ", t.Left())

		select {
		case <-ctx.Done():
			_, _ = fmt.Fprintln(out)

			return nil
		case line, ok := <-lines:
			switch {
			case !ok:
				lines = nil
			case strings.EqualFold(line, "r"):
				t.Reset()
				t.Start()
			case t.Running():
				t.Pause()
			default:
				t.Start()
			}
		case <-ticker.C:
		}
	}

	_, _ = fmt.Fprintf(out, "\r%s\nTime's up!\n", t.Left())

	if err := player.Play(ctx, soundFile); err != nil {
		logger.WarnKV(ctx, "Failed to play timer sound", "sound_file", soundFile, "error", err)

		return nil
	}

	defer func() {
		if err := player.Stop(); err != nil {
			logger.WarnKV(ctx, "Failed to stop timer sound", "error", err)
		}
	}()

	select {
	case <-ctx.Done():
	case <-lines:
	}

	return nil
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	timerCmd.Flags().BoolVarP(&timerMute, "mute", "m", false, "do not play a sound when the countdown ends")

	rootCmd.AddCommand(timerCmd)
}
