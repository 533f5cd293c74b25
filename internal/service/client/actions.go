package client

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/oshokin/alarm-clock/internal/clock"
	"github.com/oshokin/alarm-clock/internal/service/common"
)

// SetAlarm adds an alarm and prints its canonical value.
func SetAlarm(hour, minute int, meridiem string) Action {
	return func(ctx context.Context, client *common.Client, out io.Writer) error {
		value, err := client.SetAlarm(ctx, hour, minute, meridiem)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(out, "Alarm set for %s\n", value)

		return err
	}
}

// DeleteAlarm removes a pending alarm.
func DeleteAlarm(value string) Action {
	return func(ctx context.Context, client *common.Client, out io.Writer) error {
		if err := client.DeleteAlarm(ctx, value); err != nil {
			return err
		}

		_, err := fmt.Fprintf(out, "Alarm %s deleted\n", value)

		return err
	}
}

// ListAlarms prints the pending alarms one per line.
func ListAlarms() Action {
	return func(ctx context.Context, client *common.Client, out io.Writer) error {
		values, err := client.ListAlarms(ctx)
		if err != nil {
			return err
		}

		if len(values) == 0 {
			_, err = fmt.Fprintln(out, "No pending alarms")

			return err
		}

		for _, value := range values {
			if _, err = fmt.Fprintln(out, value); err != nil {
				return err
			}
		}

		return nil
	}
}

// StopAlarm silences a ringing alarm.
func StopAlarm() Action {
	return func(ctx context.Context, client *common.Client, out io.Writer) error {
		if err := client.StopAlarm(ctx); err != nil {
			return err
		}

		_, err := fmt.Fprintln(out, "Alarm stopped")

		return err
	}
}

// SetTimezone switches the daemon's zone.
func SetTimezone(name string) Action {
	return func(ctx context.Context, client *common.Client, out io.Writer) error {
		if err := client.SetTimezone(ctx, name); err != nil {
			return err
		}

		_, err := fmt.Fprintf(out, "Timezone set to %s\n", name)

		return err
	}
}

// ShowClock prints the daemon's face, time and alarms.
func ShowClock(width int) Action {
	return func(ctx context.Context, client *common.Client, out io.Writer) error {
		snapshot, err := client.GetClock(ctx)
		if err != nil {
			return err
		}

		_, err = io.WriteString(out, clock.Render(clock.View{
			Time:    snapshot.Time,
			Alarms:  snapshot.Alarms,
			Playing: snapshot.Playing,
		}, width))

		return err
	}
}

// Status prints a one-line summary of the daemon state.
func Status() Action {
	return func(ctx context.Context, client *common.Client, out io.Writer) error {
		snapshot, err := client.GetClock(ctx)
		if err != nil {
			return err
		}

		state := "idle"
		if snapshot.Playing {
			state = "ringing " + snapshot.Fired
		}

		_, err = fmt.Fprintf(
			out,
			"%s %s, %d pending, %s\n",
			snapshot.Time.Format(time.DateTime),
			snapshot.Timezone,
			len(snapshot.Alarms),
			state,
		)

		return err
	}
}
