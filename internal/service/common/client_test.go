//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	alarmapi "github.com/oshokin/alarm-clock/internal/api/grpc/alarm"
	"github.com/oshokin/alarm-clock/internal/service/controller"
)

// TestDial_ValidatesAddress verifies that Dial rejects empty addresses.
func TestDial_ValidatesAddress(t *testing.T) {
	t.Parallel()

	c, err := Dial(context.Background(), "")
	require.Error(t, err)
	require.Nil(t, c)
}

// TestClient_callContext checks timeout vs cancel-only behavior of callContext.
func TestClient_callContext(t *testing.T) {
	t.Parallel()

	c := &Client{
		callTimeout: 0,
		actor:       alarmapi.Actor{Hostname: "box", Username: "ana"},
	}

	ctx, cancel := c.callContext(context.Background())
	cancel()

	require.NotNil(t, ctx)

	md, ok := metadata.FromOutgoingContext(ctx)
	require.True(t, ok)
	require.Equal(t, []string{"box"}, md.Get(alarmapi.MetadataHostname))
	require.Equal(t, []string{"ana"}, md.Get(alarmapi.MetadataUsername))

	c.callTimeout = 10 * time.Millisecond

	ctx, cancel = c.callContext(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	require.WithinDuration(t, time.Now().Add(10*time.Millisecond), deadline, 30*time.Millisecond)
}

// TestClose_NotOwned ensures a client built from a borrowed connection does not close it.
func TestClose_NotOwned(t *testing.T) {
	t.Parallel()

	var c *Client
	require.NoError(t, c.Close())

	require.NoError(t, NewClient(nil).Close())
}

// TestClient_Roundtrip drives every client call against an in-memory server.
func TestClient_Roundtrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2024, 3, 10, 18, 45, 0, 0, time.UTC)

	ctrl := controller.New(ctx, controller.Deps{
		Clock:    clockAt(now),
		Location: time.UTC,
	})

	c := newBufconnClient(t, ctrl)

	value, err := c.SetAlarm(ctx, 6, 45, "pm")
	require.NoError(t, err)
	require.Equal(t, "06:45 PM", value)

	_, err = c.SetAlarm(ctx, 6, 45, "PM")
	require.Equal(t, codes.AlreadyExists, status.Code(err))

	_, err = c.SetAlarm(ctx, 7, 15, "AM")
	require.NoError(t, err)

	alarms, err := c.ListAlarms(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"06:45 PM", "07:15 AM"}, alarms)

	fired, ok := ctrl.Tick(ctx)
	require.True(t, ok)
	require.Equal(t, "06:45 PM", fired)

	snapshot, err := c.GetClock(ctx)
	require.NoError(t, err)
	require.True(t, snapshot.Playing)
	require.Equal(t, []string{"07:15 AM"}, snapshot.Alarms)

	require.NoError(t, c.StopAlarm(ctx))
	require.NoError(t, c.DeleteAlarm(ctx, "07:15 AM"))

	err = c.DeleteAlarm(ctx, "07:15 AM")
	require.Equal(t, codes.NotFound, status.Code(err))

	require.NoError(t, c.SetTimezone(ctx, "Europe/Madrid"))

	snapshot, err = c.GetClock(ctx)
	require.NoError(t, err)
	require.False(t, snapshot.Playing)
	require.Empty(t, snapshot.Alarms)
	require.Equal(t, "Europe/Madrid", snapshot.Timezone)
	require.Equal(t, 19, snapshot.Time.Hour())
}

func newBufconnClient(t *testing.T, ctrl *controller.Controller) *Client {
	t.Helper()

	listener := bufconn.Listen(1 << 20)
	server := grpc.NewServer()
	alarmapi.RegisterAlarmClockServiceServer(server, alarmapi.NewServer(ctrl))

	go func() {
		_ = server.Serve(listener) //nolint:errcheck // Serve returns after Stop.
	}()

	conn, err := grpc.NewClient(
		"passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close() //nolint:errcheck // Test cleanup.

		server.Stop()
	})

	return NewClient(conn, WithCallTimeout(3*time.Second))
}

type clockAt time.Time

func (c clockAt) Now() time.Time {
	return time.Time(c)
}
