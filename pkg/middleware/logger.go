package middleware

import (
	"context"
	"net/http"
	"time"

	"reportdesk/config"
	"reportdesk/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// NewRequestLogger logs one line per request and stores a request scoped
// logger in the request context.
func NewRequestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		BeforeNextFunc: func(c echo.Context) {
			reqLog := log.With(
				logger.StringField("method", c.Request().Method),
				logger.StringField("uri", c.Request().RequestURI),
			)
			c.SetRequest(c.Request().WithContext(logger.NewContext(c.Request().Context(), reqLog)))
		},
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				logger.StringField("method", v.Method),
				logger.StringField("uri", v.URI),
				logger.IntField("status", v.Status),
				logger.Field("latency", v.Latency),
				logger.StringField("remote_ip", v.RemoteIP),
			}
			ctx := context.Background()
			if v.Error != nil {
				log.ErrorContext(ctx, "Request failed", append(fields, logger.ErrorField(v.Error))...)
				return nil
			}
			log.DebugContext(ctx, "Request handled", fields...)
			return nil
		},
	})
}

// NewCORS allows the configured origins with credentials, the methods the
// API serves and a one hour preflight cache.
func NewCORS(cfg config.CORS) echo.MiddlewareFunc {
	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodDelete, http.MethodOptions, http.MethodHead,
		},
		AllowHeaders:     []string{"*"},
		ExposeHeaders:    []string{"*"},
		AllowCredentials: true,
		MaxAge:           int(time.Hour.Seconds()),
	})
}
