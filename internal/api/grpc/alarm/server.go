package alarm

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/service/controller"
)

// Service abstracts the controller operations the transport layer depends on.
type Service interface {
	SetAlarm(ctx context.Context, hour, minute int, meridiem string) (string, error)
	DeleteAlarm(ctx context.Context, value string) error
	StopAlarm(ctx context.Context) error
	SetTimezone(ctx context.Context, name string) error
	Snapshot() controller.Snapshot
}

// Server implements the AlarmClockService gRPC API.
type Server struct {
	// service provides the alarm clock operations.
	service Service
}

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// SetAlarm validates and adds an alarm.
func (s *Server) SetAlarm(ctx context.Context, req *structpb.Struct) (*wrapperspb.StringValue, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	alarmRequest, err := DecodeAlarmRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	value, err := s.service.SetAlarm(ctx, alarmRequest.Hour, alarmRequest.Minute, alarmRequest.Meridiem)
	if err != nil {
		return nil, toStatus(err)
	}

	return wrapperspb.String(value), nil
}

// DeleteAlarm removes a pending alarm.
func (s *Server) DeleteAlarm(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	if req.GetValue() == "" {
		return nil, status.Error(codes.InvalidArgument, "alarm value is required")
	}

	if err := s.service.DeleteAlarm(ctx, req.GetValue()); err != nil {
		return nil, toStatus(err)
	}

	return new(emptypb.Empty), nil
}

// ListAlarms returns the pending alarms in order.
func (s *Server) ListAlarms(context.Context, *emptypb.Empty) (*structpb.ListValue, error) {
	return EncodeAlarms(s.service.Snapshot().Alarms), nil
}

// StopAlarm silences a ringing alarm.
func (s *Server) StopAlarm(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	if err := s.service.StopAlarm(ctx); err != nil {
		return nil, toStatus(err)
	}

	return new(emptypb.Empty), nil
}

// SetTimezone switches the clock zone.
func (s *Server) SetTimezone(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	if req.GetValue() == "" {
		return nil, status.Error(codes.InvalidArgument, "timezone is required")
	}

	if err := s.service.SetTimezone(ctx, req.GetValue()); err != nil {
		return nil, toStatus(err)
	}

	return new(emptypb.Empty), nil
}

// GetClock returns the current clock state.
func (s *Server) GetClock(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return EncodeClock(s.service.Snapshot()), nil
}

// LoggingInterceptor logs every call with its duration and resulting code.
func LoggingInterceptor(ctx context.Context) grpc.UnaryServerInterceptor {
	return func(callCtx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		var (
			started   = time.Now()
			loggerCtx = logger.WithFields(
				logger.ToContext(callCtx, logger.FromContext(ctx)),
				"method", info.FullMethod,
				"actor", ActorFromContext(callCtx).String(),
			)
		)

		resp, err := handler(loggerCtx, req)

		logger.DebugKV(
			loggerCtx,
			"RPC handled",
			"code", status.Code(err).String(),
			"duration", time.Since(started).String(),
		)

		return resp, err
	}
}

// toStatus maps controller errors to gRPC status codes.
func toStatus(err error) error {
	switch {
	case errors.Is(err, controller.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, controller.ErrDuplicate):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, controller.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
