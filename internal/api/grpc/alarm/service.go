package alarm

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "alarmclock.v1.AlarmClockService"

// Full method names used by clients.
const (
	SetAlarmMethod    = "/" + ServiceName + "/SetAlarm"
	DeleteAlarmMethod = "/" + ServiceName + "/DeleteAlarm"
	ListAlarmsMethod  = "/" + ServiceName + "/ListAlarms"
	StopAlarmMethod   = "/" + ServiceName + "/StopAlarm"
	SetTimezoneMethod = "/" + ServiceName + "/SetTimezone"
	GetClockMethod    = "/" + ServiceName + "/GetClock"
)

// AlarmClockServiceServer is the server API for the alarm clock service.
type AlarmClockServiceServer interface {
	// SetAlarm takes {hour, minute, meridiem} and returns the canonical alarm value.
	SetAlarm(ctx context.Context, req *structpb.Struct) (*wrapperspb.StringValue, error)
	// DeleteAlarm removes a pending alarm by value.
	DeleteAlarm(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error)
	// ListAlarms returns pending alarms in registry order.
	ListAlarms(ctx context.Context, req *emptypb.Empty) (*structpb.ListValue, error)
	// StopAlarm silences a ringing alarm.
	StopAlarm(ctx context.Context, req *emptypb.Empty) (*emptypb.Empty, error)
	// SetTimezone switches the clock to another IANA zone.
	SetTimezone(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error)
	// GetClock returns the current time, zone, alarms and ringing state.
	GetClock(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
}

// ServiceDesc is the grpc.ServiceDesc for AlarmClockService.
//
//nolint:gochecknoglobals // Service descriptors are package-level by gRPC convention.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AlarmClockServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SetAlarm",
			Handler:    unary(SetAlarmMethod, new(structpb.Struct), AlarmClockServiceServer.SetAlarm),
		},
		{
			MethodName: "DeleteAlarm",
			Handler:    unary(DeleteAlarmMethod, new(wrapperspb.StringValue), AlarmClockServiceServer.DeleteAlarm),
		},
		{
			MethodName: "ListAlarms",
			Handler:    unary(ListAlarmsMethod, new(emptypb.Empty), AlarmClockServiceServer.ListAlarms),
		},
		{
			MethodName: "StopAlarm",
			Handler:    unary(StopAlarmMethod, new(emptypb.Empty), AlarmClockServiceServer.StopAlarm),
		},
		{
			MethodName: "SetTimezone",
			Handler:    unary(SetTimezoneMethod, new(wrapperspb.StringValue), AlarmClockServiceServer.SetTimezone),
		},
		{
			MethodName: "GetClock",
			Handler:    unary(GetClockMethod, new(emptypb.Empty), AlarmClockServiceServer.GetClock),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "alarmclock/v1/alarm_clock.proto",
}

// RegisterAlarmClockServiceServer registers srv with the gRPC server.
func RegisterAlarmClockServiceServer(s grpc.ServiceRegistrar, srv AlarmClockServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// unary builds a method handler that decodes a fresh request message
// (cloned from prototype) and runs call through the interceptor chain.
func unary[In proto.Message, Out proto.Message](
	fullMethod string,
	prototype In,
	call func(AlarmClockServiceServer, context.Context, In) (Out, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in, _ := proto.Clone(prototype).(In) //nolint:errcheck // Clone of In is always In.
		if err := dec(in); err != nil {
			return nil, err
		}

		service, _ := srv.(AlarmClockServiceServer) //nolint:errcheck // HandlerType guarantees the interface.
		if interceptor == nil {
			return call(service, ctx, in)
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}

		handler := func(ctx context.Context, req any) (any, error) {
			typed, _ := req.(In) //nolint:errcheck // The interceptor passes the decoded request through.

			return call(service, ctx, typed)
		}

		return interceptor(ctx, in, info, handler)
	}
}
