package rest

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oshokin/alarm-clock/internal/clock"
	"github.com/oshokin/alarm-clock/internal/service/controller"
)

// AlarmRequest is the body of POST /v1/alarms.
type AlarmRequest struct {
	Hour     *int   `json:"hour"     binding:"required"`
	Minute   *int   `json:"minute"   binding:"required"`
	Meridiem string `json:"meridiem" binding:"required"`
}

// AlarmResponse wraps a single canonical alarm value.
type AlarmResponse struct {
	Alarm string `json:"alarm"`
}

// AlarmsResponse lists pending alarms in order.
type AlarmsResponse struct {
	Alarms []string `json:"alarms"`
}

// TimezoneRequest is the body of PUT /v1/timezone.
type TimezoneRequest struct {
	Timezone string `json:"timezone" binding:"required"`
}

// ClockResponse is the JSON form of a controller snapshot.
type ClockResponse struct {
	Time     string   `json:"time"`
	Digital  string   `json:"digital"`
	Timezone string   `json:"timezone"`
	Alarms   []string `json:"alarms"`
	Playing  bool     `json:"playing"`
	Fired    string   `json:"fired,omitempty"`
}

// GeometryResponse is the vector face for graphical clients.
type GeometryResponse struct {
	Face   *clock.Face `json:"face"`
	Hour   clock.Hand  `json:"hour"`
	Minute clock.Hand  `json:"minute"`
	Second clock.Hand  `json:"second"`
}

// defaultGeometrySize is the face size when the request does not set one.
const defaultGeometrySize = 300

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	service   Service
	faceWidth int
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handlers) getClock(c *gin.Context) {
	snapshot := h.service.Snapshot()

	c.JSON(http.StatusOK, ClockResponse{
		Time:     snapshot.Time.Format(time.RFC3339),
		Digital:  clock.Digital(snapshot.Time),
		Timezone: snapshot.Timezone,
		Alarms:   snapshot.Alarms,
		Playing:  snapshot.Playing,
		Fired:    snapshot.Fired,
	})
}

func (h *handlers) getFace(c *gin.Context) {
	snapshot := h.service.Snapshot()

	c.String(http.StatusOK, clock.Render(clock.View{
		Time:    snapshot.Time,
		Alarms:  snapshot.Alarms,
		Playing: snapshot.Playing,
	}, h.faceWidth))
}

func (h *handlers) getGeometry(c *gin.Context) {
	size := defaultGeometrySize

	if raw := c.Query("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "size must be a positive integer"})

			return
		}

		size = parsed
	}

	var (
		face                 = clock.NewFace(float64(size))
		hour, minute, second = face.Hands(h.service.Snapshot().Time)
	)

	c.JSON(http.StatusOK, GeometryResponse{
		Face:   face,
		Hour:   hour,
		Minute: minute,
		Second: second,
	})
}

func (h *handlers) listAlarms(c *gin.Context) {
	c.JSON(http.StatusOK, AlarmsResponse{Alarms: h.service.Snapshot().Alarms})
}

func (h *handlers) setAlarm(c *gin.Context) {
	var req AlarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})

		return
	}

	value, err := h.service.SetAlarm(c.Request.Context(), *req.Hour, *req.Minute, req.Meridiem)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusCreated, AlarmResponse{Alarm: value})
}

func (h *handlers) deleteAlarm(c *gin.Context) {
	if err := h.service.DeleteAlarm(c.Request.Context(), c.Param("value")); err != nil {
		writeError(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handlers) stopAlarm(c *gin.Context) {
	if err := h.service.StopAlarm(c.Request.Context()); err != nil {
		writeError(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handlers) setTimezone(c *gin.Context) {
	var req TimezoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})

		return
	}

	if err := h.service.SetTimezone(c.Request.Context(), req.Timezone); err != nil {
		writeError(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

// writeError maps controller errors to HTTP statuses.
func writeError(c *gin.Context, err error) {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, controller.ErrValidation):
		code = http.StatusBadRequest
	case errors.Is(err, controller.ErrDuplicate):
		code = http.StatusConflict
	case errors.Is(err, controller.ErrNotFound):
		code = http.StatusNotFound
	}

	c.JSON(code, errorResponse{Error: err.Error()})
}
