package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/oshokin/alarm-clock/internal/clock"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/service/controller"
)

// Service abstracts the controller operations the HTTP API depends on.
type Service interface {
	SetAlarm(ctx context.Context, hour, minute int, meridiem string) (string, error)
	DeleteAlarm(ctx context.Context, value string) error
	StopAlarm(ctx context.Context) error
	SetTimezone(ctx context.Context, name string) error
	Snapshot() controller.Snapshot
}

// Options configure the router.
type Options struct {
	// CORSOrigins enables CORS for the listed origins when not empty.
	CORSOrigins []string
	// FaceWidth is the column width of the rendered face.
	FaceWidth int
}

// NewRouter builds the gin engine serving the alarm clock API.
func NewRouter(ctx context.Context, service Service, opts Options) *gin.Engine {
	r := gin.New()

	// No client IPs are processed, so forwarded headers are ignored.
	r.ForwardedByClientIP = false
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(accessLog(ctx))

	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
	})

	if len(opts.CORSOrigins) > 0 {
		logger.DebugKV(ctx, "CORS enabled", "origins", opts.CORSOrigins)

		r.Use(cors.New(cors.Config{
			AllowOrigins: opts.CORSOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{"Origin", "Content-Length", "Content-Type"},
		}))
	}

	_ = r.SetTrustedProxies(nil) //nolint:errcheck // A nil list never fails.

	h := &handlers{
		service:   service,
		faceWidth: opts.FaceWidth,
	}

	if h.faceWidth <= 0 {
		h.faceWidth = clock.DefaultWidth
	}

	r.GET("/healthz", h.health)

	v1 := r.Group("/v1")
	{
		v1.GET("/clock", h.getClock)
		v1.GET("/clock/face", h.getFace)
		v1.GET("/clock/geometry", h.getGeometry)
		v1.GET("/alarms", h.listAlarms)
		v1.POST("/alarms", h.setAlarm)
		v1.DELETE("/alarms/:value", h.deleteAlarm)
		v1.POST("/alarms/stop", h.stopAlarm)
		v1.PUT("/timezone", h.setTimezone)
	}

	return r
}

// accessLog logs every request with its request ID through the zap logger.
func accessLog(ctx context.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()

		c.Next()

		logger.DebugKV(
			ctx,
			"HTTP request handled",
			"request_id", requestid.Get(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(started).String(),
		)
	}
}
