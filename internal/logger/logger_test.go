package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"panic": zapcore.PanicLevel,
		"fatal": zapcore.FatalLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

// TestContextHelpers verifies the logger travels through the context and falls back to the global one.
func TestContextHelpers(t *testing.T) {
	t.Parallel()

	require.Same(t, global, FromContext(context.Background()))

	named := WithName(context.Background(), "alarm-clock")
	require.NotSame(t, global, FromContext(named))

	custom := New(zapcore.DebugLevel)
	ctx := ToContext(context.Background(), custom)
	require.Same(t, custom, FromContext(ctx))

	withKV := WithKV(ctx, "timezone", "America/Bogota")
	require.NotSame(t, custom, FromContext(withKV))

	withFields := WithFields(ctx, "alarm", "07:30 AM", "playing", true)
	require.NotNil(t, FromContext(withFields))
}

// TestConfigure rejects unknown names and ignores empty input.
func TestConfigure(t *testing.T) {
	t.Parallel()

	require.NoError(t, Configure(""))
	require.Error(t, Configure("verbose"))
}
