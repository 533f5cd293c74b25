package clock

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestHands checks hand angles at well-known times.
func TestHands(t *testing.T) {
	t.Parallel()

	a := Hands(time.Date(2026, 1, 1, 15, 0, 0, 0, time.UTC))
	require.InDelta(t, 0, a.Hour, 1e-9)
	require.InDelta(t, -90, a.Minute, 1e-9)
	require.InDelta(t, -90, a.Second, 1e-9)

	a = Hands(time.Date(2026, 1, 1, 0, 30, 30, 0, time.UTC))
	require.InDelta(t, -75, a.Hour, 1e-9)
	require.InDelta(t, 93, a.Minute, 1e-9)
	require.InDelta(t, 90, a.Second, 1e-9)
}

// TestPoint checks the trig helper in screen coordinates.
func TestPoint(t *testing.T) {
	t.Parallel()

	x, y := Point(0, 0, 10, 0)
	require.InDelta(t, 10, x, 1e-9)
	require.InDelta(t, 0, y, 1e-9)

	x, y = Point(5, 5, 10, -90)
	require.InDelta(t, 5, x, 1e-9)
	require.InDelta(t, -5, y, 1e-9)
}

// TestNewFace lays out twelve labels and sixty ticks.
func TestNewFace(t *testing.T) {
	t.Parallel()

	f := NewFace(300)
	require.InDelta(t, 150, f.CenterX, 1e-9)
	require.InDelta(t, 100, f.Radius, 1e-9)
	require.Len(t, f.Labels, 12)
	require.Len(t, f.Ticks, 60)

	// "12" is straight above the center.
	require.Equal(t, "12", f.Labels[0].Text)
	require.InDelta(t, f.CenterX, f.Labels[0].X, 1e-9)
	require.Less(t, f.Labels[0].Y, f.CenterY)

	major := 0

	for _, tick := range f.Ticks {
		if tick.Major {
			major++
		}
	}

	require.Equal(t, 12, major)

	hour, minute, second := f.Hands(time.Date(2026, 1, 1, 6, 0, 0, 0, time.UTC))
	require.InDelta(t, f.CenterX, hour.X, 1e-9)
	require.InDelta(t, f.CenterY+f.Radius*HourHandRatio, hour.Y, 1e-9)
	require.InDelta(t, f.CenterY-f.Radius*MinuteHandRatio, minute.Y, 1e-9)
	require.InDelta(t, f.CenterY-f.Radius*SecondHandRatio, second.Y, 1e-9)
}

// TestDigital uses the date-time layout.
func TestDigital(t *testing.T) {
	t.Parallel()

	require.Equal(t, "2026-10-18 21:05:09", Digital(time.Date(2026, 10, 18, 21, 5, 9, 0, time.UTC)))
}

// TestRenderFace draws a noon face with hands pointing up.
func TestRenderFace(t *testing.T) {
	t.Parallel()

	face := RenderFace(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), DefaultWidth)
	rows := strings.Split(strings.TrimRight(face, "\n"), "\n")

	require.Len(t, rows, DefaultWidth/2+1)
	require.Contains(t, face, "12")
	require.Contains(t, face, "6")
	require.Contains(t, face, "9")

	center := len(rows) / 2
	column := DefaultWidth / 2

	require.Equal(t, byte(centerRune), rows[center][column])
	require.Equal(t, byte(hourRune), rows[center-1][column])

	// Narrow widths are widened.
	narrow := RenderFace(time.Now(), 5)
	require.Len(t, strings.Split(strings.TrimRight(narrow, "\n"), "\n"), MinWidth/2+1)
}

// TestRender appends the digital time and the alarms.
func TestRender(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("Test/Zone", 0)
	now := time.Date(2026, 10, 18, 7, 30, 0, 0, loc)

	out := Render(View{Time: now, Alarms: []string{"07:30 AM", "09:00 PM"}, Playing: true}, MinWidth)
	require.Contains(t, out, "2026-10-18 07:30:00 Test/Zone")
	require.Contains(t, out, "ALARM!")
	require.Contains(t, out, "Pending alarms:\n  07:30 AM\n  09:00 PM\n")

	out = Render(View{Time: now}, MinWidth)
	require.Contains(t, out, "No pending alarms")
	require.NotContains(t, out, "ALARM!")
}
