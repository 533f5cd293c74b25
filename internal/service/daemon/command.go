package daemon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/mitchellh/go-ps"
	"google.golang.org/grpc"

	alarmapi "github.com/oshokin/alarm-clock/internal/api/grpc/alarm"
	"github.com/oshokin/alarm-clock/internal/api/rest"
	"github.com/oshokin/alarm-clock/internal/clock"
	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/repository/alarms"
	"github.com/oshokin/alarm-clock/internal/service/controller"
	"github.com/oshokin/alarm-clock/internal/sound"
)

// Options controls the daemon process and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// ListenAddress overrides the gRPC listen address from the settings.
	ListenAddress string
	// HTTPAddress overrides the HTTP listen address from the settings.
	HTTPAddress string
	// StateFile overrides where alarms are persisted.
	StateFile string
	// Timezone overrides the initial zone.
	Timezone string
	// PIDFile overrides the instance guard location, next to the state file by default.
	PIDFile string
	// Mute disables sound playback.
	Mute bool
	// Face redraws the clock face to Output on every tick when set.
	Face bool
	// FaceWidth is the face width in columns.
	FaceWidth int
	// Output receives the face; nil disables drawing.
	Output io.Writer
}

// DefaultPIDFilename is the instance guard file name.
const DefaultPIDFilename = "alarm-clock.pid"

// shutdownTimeout bounds the HTTP graceful shutdown.
const shutdownTimeout = 5 * time.Second

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\x1b[H\x1b[2J"

// Run starts the clock and blocks until ctx is canceled or a listener fails.
// Settings are loaded first; command line options override them.
//
//nolint:cyclop,funlen // Startup is a linear sequence of steps.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "alarm-clock")

	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	applyOverrides(settings, opts)

	if err = config.Validate(settings); err != nil {
		return fmt.Errorf("validate settings: %w", err)
	}

	pidFile := opts.PIDFile
	if pidFile == "" {
		pidFile = filepath.Join(filepath.Dir(settings.StateFile), DefaultPIDFilename)
	}

	release, err := acquireInstance(ctx, pidFile, ps.FindProcess)
	if err != nil {
		return err
	}
	defer release()

	repo, err := alarms.Open(ctx, settings)
	if err != nil {
		return fmt.Errorf("open alarm storage: %w", err)
	}

	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			logger.WarnKV(ctx, "Failed to close alarm storage", "error", closeErr)
		}
	}()

	location, err := clock.LoadZone(settings.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone: %w", err)
	}

	var player controller.Player = sound.NewExecPlayer(settings.Player)
	if opts.Mute {
		player = new(sound.NopPlayer)
	}

	ctrl := controller.New(ctx, controller.Deps{
		Repository: repo,
		Player:     player,
		Location:   location,
		SoundFile:  settings.SoundFile,
	})

	// A failing listener cancels the clock with its error as the cause.
	runCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	var wg sync.WaitGroup

	if settings.ServerAddress != "" {
		if err = serveGRPC(runCtx, &wg, settings.ServerAddress, ctrl, cancel); err != nil {
			return err
		}
	}

	if settings.HTTPAddress != "" {
		if err = serveHTTP(runCtx, &wg, settings, opts.FaceWidth, ctrl, cancel); err != nil {
			cancel(err)
			wg.Wait()

			return err
		}
	}

	logger.InfoKV(
		ctx,
		"Alarm clock started",
		"timezone", location.String(),
		"state_file", settings.StateFile,
		"storage", settings.Storage,
		"grpc_address", settings.ServerAddress,
		"http_address", settings.HTTPAddress,
	)

	ctrl.Run(runCtx, settings.PollInterval, faceObserver(opts))

	wg.Wait()

	if stopErr := ctrl.StopAlarm(ctx); stopErr != nil {
		logger.WarnKV(ctx, "Failed to stop alarm sound on exit", "error", stopErr)
	}

	logger.Info(ctx, "Alarm clock stopped")

	if cause := context.Cause(runCtx); cause != nil && !errors.Is(cause, context.Canceled) {
		return cause
	}

	return nil
}

// applyOverrides copies non-empty command line options over the settings.
func applyOverrides(settings *config.Config, opts *Options) {
	if opts.ListenAddress != "" {
		settings.ServerAddress = opts.ListenAddress
	}

	if opts.HTTPAddress != "" {
		settings.HTTPAddress = opts.HTTPAddress
	}

	if opts.StateFile != "" {
		settings.StateFile = opts.StateFile
	}

	if opts.Timezone != "" {
		settings.Timezone = opts.Timezone
	}
}

// serveGRPC starts the gRPC listener. It stops gracefully when ctx ends.
func serveGRPC(
	ctx context.Context,
	wg *sync.WaitGroup,
	address string,
	ctrl *controller.Controller,
	cancel context.CancelCauseFunc,
) error {
	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", address, err)
	}

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(alarmapi.LoggingInterceptor(ctx)))
	alarmapi.RegisterAlarmClockServiceServer(grpcServer, alarmapi.NewServer(ctrl))

	logger.InfoKV(ctx, "gRPC server listening", "listen_address", lis.Addr().String())

	wg.Add(2)

	go func() {
		defer wg.Done()

		<-ctx.Done()
		logger.Info(ctx, "Shutting down gRPC server")
		grpcServer.GracefulStop()
	}()

	go func() {
		defer wg.Done()

		if serveErr := grpcServer.Serve(lis); serveErr != nil && !errors.Is(serveErr, grpc.ErrServerStopped) {
			cancel(fmt.Errorf("serve gRPC: %w", serveErr))
		}
	}()

	return nil
}

// serveHTTP starts the HTTP API listener. It shuts down when ctx ends.
func serveHTTP(
	ctx context.Context,
	wg *sync.WaitGroup,
	settings *config.Config,
	faceWidth int,
	ctrl *controller.Controller,
	cancel context.CancelCauseFunc,
) error {
	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", settings.HTTPAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", settings.HTTPAddress, err)
	}

	server := &http.Server{
		Handler: rest.NewRouter(ctx, ctrl, rest.Options{
			CORSOrigins: settings.CORSOrigins,
			FaceWidth:   faceWidth,
		}),
		ReadHeaderTimeout: settings.Timeout,
	}

	logger.InfoKV(ctx, "HTTP server listening", "listen_address", lis.Addr().String())

	wg.Add(2)

	go func() {
		defer wg.Done()

		<-ctx.Done()
		logger.Info(ctx, "Shutting down HTTP server")

		shutdownCtx, stop := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer stop()

		if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.WarnKV(ctx, "HTTP shutdown failed", "error", shutdownErr)
		}
	}()

	go func() {
		defer wg.Done()

		if serveErr := server.Serve(lis); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			cancel(fmt.Errorf("serve HTTP: %w", serveErr))
		}
	}()

	return nil
}

// faceObserver returns the per-tick callback that redraws the face, or nil.
func faceObserver(opts *Options) func(controller.Snapshot) {
	if !opts.Face || opts.Output == nil {
		return nil
	}

	return func(snapshot controller.Snapshot) {
		_, _ = io.WriteString(opts.Output, clearScreen+clock.Render(clock.View{
			Time:    snapshot.Time,
			Alarms:  snapshot.Alarms,
			Playing: snapshot.Playing,
		}, opts.FaceWidth))
	}
}
