package alarm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestDecodeAlarmRequest(t *testing.T) {
	t.Parallel()

	req, err := DecodeAlarmRequest(EncodeAlarmRequest(12, 59, "PM"))
	require.NoError(t, err)
	require.Equal(t, AlarmRequest{Hour: 12, Minute: 59, Meridiem: "PM"}, req)

	_, err = DecodeAlarmRequest(&structpb.Struct{Fields: map[string]*structpb.Value{
		FieldHour:     structpb.NewStringValue("7"),
		FieldMinute:   structpb.NewNumberValue(0),
		FieldMeridiem: structpb.NewStringValue("AM"),
	}})
	require.ErrorIs(t, err, errWrongType)

	_, err = DecodeAlarmRequest(new(structpb.Struct))
	require.ErrorIs(t, err, errMissingField)
}

func TestDecodeAlarms_RejectsNonStrings(t *testing.T) {
	t.Parallel()

	list, err := structpb.NewList([]any{"07:00 AM", 3.0})
	require.NoError(t, err)

	_, err = DecodeAlarms(list)
	require.ErrorIs(t, err, errWrongType)

	values, err := DecodeAlarms(EncodeAlarms(nil))
	require.NoError(t, err)
	require.Empty(t, values)
	require.NotNil(t, values)
}

func TestDecodeClock_MissingFields(t *testing.T) {
	t.Parallel()

	_, err := DecodeClock(new(structpb.Struct))
	require.ErrorIs(t, err, errMissingField)

	msg := &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldTime: structpb.NewStringValue("yesterday"),
	}}

	_, err = DecodeClock(msg)
	require.Error(t, err)
}

func TestActorFromContext(t *testing.T) {
	t.Parallel()

	require.Equal(t, "unknown", ActorFromContext(context.Background()).String())

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(
		MetadataHostname, "box",
		MetadataUsername, "ana",
	))

	actor := ActorFromContext(ctx)
	require.Equal(t, Actor{Hostname: "box", Username: "ana"}, actor)
	require.Equal(t, "ana@box", actor.String())
}
