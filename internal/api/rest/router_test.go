package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/alarm-clock/internal/clock"
	"github.com/oshokin/alarm-clock/internal/service/controller"
	"github.com/oshokin/alarm-clock/internal/sound"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	os.Exit(m.Run())
}

func newTestRouter(t *testing.T, now time.Time) (*gin.Engine, *controller.Controller) {
	t.Helper()

	ctx := context.Background()
	ctrl := controller.New(ctx, controller.Deps{
		Player:   new(sound.NopPlayer),
		Clock:    clock.ClockFunc(func() time.Time { return now }),
		Location: time.UTC,
	})

	return NewRouter(ctx, ctrl, Options{CORSOrigins: []string{"http://localhost:3000"}}), ctrl
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}

	req := httptest.NewRequestWithContext(context.Background(), method, path, &payload)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var target T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&target), w.Body.String())

	return target
}

func TestHealth(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t, time.Now())

	w := do(t, r, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAlarmsLifecycle(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t, time.Date(2024, 5, 1, 5, 0, 0, 0, time.UTC))

	w := do(t, r, http.MethodPost, "/v1/alarms", gin.H{"hour": 7, "minute": 0, "meridiem": "am"})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "07:00 AM", decode[AlarmResponse](t, w).Alarm)

	w = do(t, r, http.MethodPost, "/v1/alarms", gin.H{"hour": 12, "minute": 30, "meridiem": "PM"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodGet, "/v1/alarms", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{"07:00 AM", "12:30 PM"}, decode[AlarmsResponse](t, w).Alarms)

	w = do(t, r, http.MethodDelete, "/v1/alarms/07:00%20AM", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodGet, "/v1/alarms", nil)
	require.Equal(t, []string{"12:30 PM"}, decode[AlarmsResponse](t, w).Alarms)
}

func TestErrorStatuses(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t, time.Date(2024, 5, 1, 5, 0, 0, 0, time.UTC))

	w := do(t, r, http.MethodPost, "/v1/alarms", gin.H{"hour": 7, "minute": 0, "meridiem": "AM"})
	require.Equal(t, http.StatusCreated, w.Code)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		code   int
	}{
		{
			name:   "duplicate",
			method: http.MethodPost,
			path:   "/v1/alarms",
			body:   gin.H{"hour": 7, "minute": 0, "meridiem": "AM"},
			code:   http.StatusConflict,
		},
		{
			name:   "minute out of range",
			method: http.MethodPost,
			path:   "/v1/alarms",
			body:   gin.H{"hour": 7, "minute": 60, "meridiem": "AM"},
			code:   http.StatusBadRequest,
		},
		{
			name:   "missing hour",
			method: http.MethodPost,
			path:   "/v1/alarms",
			body:   gin.H{"minute": 0, "meridiem": "AM"},
			code:   http.StatusBadRequest,
		},
		{
			name:   "delete absent",
			method: http.MethodDelete,
			path:   "/v1/alarms/08:00%20AM",
			code:   http.StatusNotFound,
		},
		{
			name:   "unknown timezone",
			method: http.MethodPut,
			path:   "/v1/timezone",
			body:   gin.H{"timezone": "Nowhere/Land"},
			code:   http.StatusBadRequest,
		},
		{
			name:   "unknown route",
			method: http.MethodGet,
			path:   "/v2/alarms",
			code:   http.StatusNotFound,
		},
		{
			name:   "wrong method",
			method: http.MethodPatch,
			path:   "/v1/alarms",
			code:   http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := do(t, r, tt.method, tt.path, tt.body)
			require.Equal(t, tt.code, w.Code)
			require.NotEmpty(t, decode[errorResponse](t, w).Error)
		})
	}
}

func TestClockAndStop(t *testing.T) {
	t.Parallel()

	r, ctrl := newTestRouter(t, time.Date(2024, 5, 1, 19, 15, 0, 0, time.UTC))

	w := do(t, r, http.MethodPost, "/v1/alarms", gin.H{"hour": 7, "minute": 15, "meridiem": "PM"})
	require.Equal(t, http.StatusCreated, w.Code)

	_, ok := ctrl.Tick(context.Background())
	require.True(t, ok)

	w = do(t, r, http.MethodGet, "/v1/clock", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[ClockResponse](t, w)
	require.Equal(t, "2024-05-01 19:15:00", resp.Digital)
	require.Equal(t, "UTC", resp.Timezone)
	require.True(t, resp.Playing)
	require.Equal(t, "07:15 PM", resp.Fired)
	require.Empty(t, resp.Alarms)

	w = do(t, r, http.MethodGet, "/v1/clock/face", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "ALARM! It's time!")

	w = do(t, r, http.MethodPost, "/v1/alarms/stop", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodPut, "/v1/timezone", gin.H{"timezone": "Asia/Kolkata"})
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodGet, "/v1/clock", nil)
	resp = decode[ClockResponse](t, w)
	require.False(t, resp.Playing)
	require.Equal(t, "Asia/Kolkata", resp.Timezone)
	require.Equal(t, "2024-05-02 00:45:00", resp.Digital)
}

func TestGeometry(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t, time.Date(2024, 5, 1, 3, 0, 0, 0, time.UTC))

	w := do(t, r, http.MethodGet, "/v1/clock/geometry?size=120", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[GeometryResponse](t, w)
	require.InDelta(t, 60.0, resp.Face.CenterX, 1e-9)
	require.InDelta(t, 40.0, resp.Face.Radius, 1e-9)
	require.Len(t, resp.Face.Labels, 12)
	require.Len(t, resp.Face.Ticks, 60)
	require.InDelta(t, 0.0, resp.Hour.Angle, 1e-9)
	require.InDelta(t, -90.0, resp.Minute.Angle, 1e-9)

	w = do(t, r, http.MethodGet, "/v1/clock/geometry?size=-1", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
