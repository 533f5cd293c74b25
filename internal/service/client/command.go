package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/service/common"
)

// Options configures how a remote command reaches the daemon.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string

	// ServerAddress overrides server address from config when specified.
	ServerAddress string

	// Retries is how many extra attempts are made while the daemon is unavailable.
	Retries int

	// Output receives the command result, stdout when nil.
	Output io.Writer
}

// Action is one remote operation.
type Action func(ctx context.Context, client *common.Client, out io.Writer) error

// defaultRetryInterval defines the delay between attempts to reach the daemon.
const defaultRetryInterval = 1 * time.Second

// Run connects to the daemon and executes action. Attempts that fail with
// codes.Unavailable are retried up to opts.Retries times.
func Run(ctx context.Context, opts *Options, action Action) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "alarm-clock-client")

	// Load settings from configuration file.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	// Use server address from options if provided, otherwise use config.
	serverAddress := cfg.ServerAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	ctx = logger.WithKV(ctx, "server_address", serverAddress)

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	client, err := common.Dial(ctx, serverAddress, common.WithCallTimeout(cfg.Timeout))
	if err != nil {
		return err
	}

	// Close connection on function exit.
	defer func() {
		_ = client.Close()
	}()

	logger.Debug(ctx, "Connected to alarm clock")

	err = action(ctx, client, out)
	if err == nil || status.Code(err) != codes.Unavailable || opts.Retries <= 0 {
		return err
	}

	ticker := time.NewTicker(defaultRetryInterval)
	defer ticker.Stop()

	for attempt := 1; attempt <= opts.Retries; attempt++ {
		logger.WarnKV(ctx, "Alarm clock unavailable, retrying", "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		err = action(ctx, client, out)
		if err == nil || status.Code(err) != codes.Unavailable {
			return err
		}
	}

	return err
}
