package cmd

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/clock"
	"github.com/oshokin/alarm-clock/internal/config"
)

var (
	// faceTimezone is the zone of the local face, config timezone when empty.
	faceTimezone string
	// faceWidth is the local face width in columns.
	faceWidth int
	// faceWatch keeps redrawing the face every second.
	faceWatch bool

	// faceCmd draws a clock face without a daemon.
	faceCmd = &cobra.Command{
		Use:   "face",
		Short: "Draw the current time as an analog face.",
		Long: `Draws the current time in the selected timezone as an analog face with the
digital time below it. With --watch the face is redrawn every second until
interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			name := faceTimezone
			if name == "" {
				settings, err := config.Load(configPath)
				if err != nil {
					return fmt.Errorf("load settings: %w", err)
				}

				name = settings.Timezone
			}

			location, err := clock.LoadZone(name)
			if err != nil {
				return err
			}

			return drawFace(ctx, cmd.OutOrStdout(), clock.SystemClock{}, location, faceWidth, faceWatch)
		},
	}
)

// drawFace renders the face once, or once per second while watch is set.
func drawFace(ctx context.Context, out io.Writer, c clock.Clock, location *time.Location, width int, watch bool) error {
	draw := func(prefix string) error {
		_, err := io.WriteString(out, prefix+clock.Render(clock.View{Time: c.Now().In(location)}, width))

		return err
	}

	if !watch {
		return draw("")
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		if err := draw("\x1b[H\x1b[2J"); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	faceCmd.Flags().StringVarP(&faceTimezone, "timezone", "t", "", "IANA timezone, config timezone when empty")
	faceCmd.Flags().IntVarP(&faceWidth, "width", "w", clock.DefaultWidth, "clock face width in columns")
	faceCmd.Flags().BoolVar(&faceWatch, "watch", false, "redraw every second")

	rootCmd.AddCommand(faceCmd)
}
