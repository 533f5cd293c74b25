// Package alarm implements the gRPC transport for the alarm clock.
//
// The AlarmClockService is described by a hand-written grpc.ServiceDesc
// whose messages are protobuf well-known types (Struct, ListValue,
// StringValue, Empty), so no generated code is needed. The Server adapts
// the controller to that service; codec.go converts clock snapshots.
package alarm
