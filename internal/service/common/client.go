//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	alarmapi "github.com/oshokin/alarm-clock/internal/api/grpc/alarm"
	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/service/controller"
)

// Client wraps a connection to the AlarmClockService with convenience helpers.
type Client struct {
	// conn is the underlying gRPC connection to the alarm clock daemon.
	conn grpc.ClientConnInterface
	// closer releases conn, nil when the connection is owned by the caller.
	closer func() error
	// actor is attached to every call for the server audit log.
	actor alarmapi.Actor

	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// WithActor overrides the detected caller identity.
func WithActor(actor alarmapi.Actor) Option {
	return func(c *Client) {
		c.actor = actor
	}
}

// errAddressRequired is returned when a required address value is missing.
var errAddressRequired = errors.New("address must be provided")

// Dial establishes a gRPC connection to the alarm clock daemon.
// Note: this uses insecure transport credentials; the daemon listens on
// loopback by default.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial alarm clock: %w", err)
	}

	client := NewClient(conn, opts...)
	client.closer = conn.Close

	return client, nil
}

// NewClient wraps an existing connection. The caller keeps ownership of conn.
func NewClient(conn grpc.ClientConnInterface, opts ...Option) *Client {
	client := &Client{
		conn:        conn,
		actor:       DetectActor(),
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.closer == nil {
		return nil
	}

	return c.closer()
}

// SetAlarm adds an alarm and returns its canonical value.
func (c *Client) SetAlarm(ctx context.Context, hour, minute int, meridiem string) (string, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp := new(wrapperspb.StringValue)

	err := c.conn.Invoke(callCtx, alarmapi.SetAlarmMethod, alarmapi.EncodeAlarmRequest(hour, minute, meridiem), resp)
	if err != nil {
		return "", fmt.Errorf("set alarm: %w", err)
	}

	return resp.GetValue(), nil
}

// DeleteAlarm removes a pending alarm.
func (c *Client) DeleteAlarm(ctx context.Context, value string) error {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	if err := c.conn.Invoke(callCtx, alarmapi.DeleteAlarmMethod, wrapperspb.String(value), new(emptypb.Empty)); err != nil {
		return fmt.Errorf("delete alarm: %w", err)
	}

	return nil
}

// ListAlarms returns the pending alarms in order.
func (c *Client) ListAlarms(ctx context.Context) ([]string, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp := new(structpb.ListValue)

	if err := c.conn.Invoke(callCtx, alarmapi.ListAlarmsMethod, new(emptypb.Empty), resp); err != nil {
		return nil, fmt.Errorf("list alarms: %w", err)
	}

	values, err := alarmapi.DecodeAlarms(resp)
	if err != nil {
		return nil, fmt.Errorf("list alarms: %w", err)
	}

	return values, nil
}

// StopAlarm silences a ringing alarm.
func (c *Client) StopAlarm(ctx context.Context) error {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	if err := c.conn.Invoke(callCtx, alarmapi.StopAlarmMethod, new(emptypb.Empty), new(emptypb.Empty)); err != nil {
		return fmt.Errorf("stop alarm: %w", err)
	}

	return nil
}

// SetTimezone switches the daemon's zone.
func (c *Client) SetTimezone(ctx context.Context, name string) error {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	if err := c.conn.Invoke(callCtx, alarmapi.SetTimezoneMethod, wrapperspb.String(name), new(emptypb.Empty)); err != nil {
		return fmt.Errorf("set timezone: %w", err)
	}

	return nil
}

// GetClock retrieves the daemon's current state.
func (c *Client) GetClock(ctx context.Context) (controller.Snapshot, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp := new(structpb.Struct)

	if err := c.conn.Invoke(callCtx, alarmapi.GetClockMethod, new(emptypb.Empty), resp); err != nil {
		return controller.Snapshot{}, fmt.Errorf("get clock: %w", err)
	}

	snapshot, err := alarmapi.DecodeClock(resp)
	if err != nil {
		return controller.Snapshot{}, fmt.Errorf("get clock: %w", err)
	}

	return snapshot, nil
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline. The caller
// identity is attached as outgoing metadata.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = alarmapi.AppendActor(ctx, c.actor)

	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
