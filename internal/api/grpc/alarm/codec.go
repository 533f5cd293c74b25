package alarm

import (
	"errors"
	"fmt"
	"math"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/alarm-clock/internal/service/controller"
)

// Field names of the Struct messages exchanged by the service.
const (
	FieldHour     = "hour"
	FieldMinute   = "minute"
	FieldMeridiem = "meridiem"

	FieldTime     = "time"
	FieldTimezone = "timezone"
	FieldPlaying  = "playing"
	FieldFired    = "fired"
	FieldAlarms   = "alarms"
)

var (
	// errMissingField is returned when a required Struct field is absent.
	errMissingField = errors.New("missing field")
	// errWrongType is returned when a Struct field has an unexpected kind.
	errWrongType = errors.New("wrong field type")
)

// AlarmRequest is the decoded SetAlarm payload.
type AlarmRequest struct {
	Hour     int
	Minute   int
	Meridiem string
}

// EncodeAlarmRequest builds the SetAlarm request message.
func EncodeAlarmRequest(hour, minute int, meridiem string) *structpb.Struct {
	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			FieldHour:     structpb.NewNumberValue(float64(hour)),
			FieldMinute:   structpb.NewNumberValue(float64(minute)),
			FieldMeridiem: structpb.NewStringValue(meridiem),
		},
	}
}

// DecodeAlarmRequest reads hour, minute and meridiem from req.
func DecodeAlarmRequest(req *structpb.Struct) (AlarmRequest, error) {
	hour, err := intField(req, FieldHour)
	if err != nil {
		return AlarmRequest{}, err
	}

	minute, err := intField(req, FieldMinute)
	if err != nil {
		return AlarmRequest{}, err
	}

	meridiem, err := stringField(req, FieldMeridiem)
	if err != nil {
		return AlarmRequest{}, err
	}

	return AlarmRequest{Hour: hour, Minute: minute, Meridiem: meridiem}, nil
}

// EncodeAlarms converts alarm values into a ListValue.
func EncodeAlarms(values []string) *structpb.ListValue {
	list := &structpb.ListValue{
		Values: make([]*structpb.Value, 0, len(values)),
	}

	for _, value := range values {
		list.Values = append(list.Values, structpb.NewStringValue(value))
	}

	return list
}

// DecodeAlarms converts a ListValue of strings back into alarm values.
func DecodeAlarms(list *structpb.ListValue) ([]string, error) {
	values := make([]string, 0, len(list.GetValues()))

	for i, item := range list.GetValues() {
		kind, ok := item.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, fmt.Errorf("alarms[%d]: %w", i, errWrongType)
		}

		values = append(values, kind.StringValue)
	}

	return values, nil
}

// EncodeClock converts a controller snapshot into the GetClock response.
func EncodeClock(snapshot controller.Snapshot) *structpb.Struct {
	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			FieldTime:     structpb.NewStringValue(snapshot.Time.Format(time.RFC3339Nano)),
			FieldTimezone: structpb.NewStringValue(snapshot.Timezone),
			FieldPlaying:  structpb.NewBoolValue(snapshot.Playing),
			FieldFired:    structpb.NewStringValue(snapshot.Fired),
			FieldAlarms:   structpb.NewListValue(EncodeAlarms(snapshot.Alarms)),
		},
	}
}

// DecodeClock converts the GetClock response back into a snapshot.
// The time is placed in the reported zone when it can be loaded.
func DecodeClock(msg *structpb.Struct) (controller.Snapshot, error) {
	raw, err := stringField(msg, FieldTime)
	if err != nil {
		return controller.Snapshot{}, err
	}

	now, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return controller.Snapshot{}, fmt.Errorf("%s: %w", FieldTime, err)
	}

	timezone, err := stringField(msg, FieldTimezone)
	if err != nil {
		return controller.Snapshot{}, err
	}

	if loc, err := time.LoadLocation(timezone); err == nil {
		now = now.In(loc)
	}

	alarmsValue, ok := msg.GetFields()[FieldAlarms]
	if !ok {
		return controller.Snapshot{}, fmt.Errorf("%w: %s", errMissingField, FieldAlarms)
	}

	alarms, err := DecodeAlarms(alarmsValue.GetListValue())
	if err != nil {
		return controller.Snapshot{}, err
	}

	return controller.Snapshot{
		Time:     now,
		Timezone: timezone,
		Alarms:   alarms,
		Playing:  msg.GetFields()[FieldPlaying].GetBoolValue(),
		Fired:    msg.GetFields()[FieldFired].GetStringValue(),
	}, nil
}

// intField reads an integral number field.
func intField(msg *structpb.Struct, name string) (int, error) {
	value, ok := msg.GetFields()[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", errMissingField, name)
	}

	kind, ok := value.GetKind().(*structpb.Value_NumberValue)
	if !ok || kind.NumberValue != math.Trunc(kind.NumberValue) {
		return 0, fmt.Errorf("%w: %s must be an integer", errWrongType, name)
	}

	return int(kind.NumberValue), nil
}

// stringField reads a string field.
func stringField(msg *structpb.Struct, name string) (string, error) {
	value, ok := msg.GetFields()[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", errMissingField, name)
	}

	kind, ok := value.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string", errWrongType, name)
	}

	return kind.StringValue, nil
}
