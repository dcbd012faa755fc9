package middleware

import (
	"net/http"

	"reportdesk/config"
	"reportdesk/pkg/ratelimit"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// Response represents the error response structure
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// NewRateLimiterMiddleware limits requests per client IP. A non-positive
// rate disables limiting.
func NewRateLimiterMiddleware(cfg config.RateLimit) echo.MiddlewareFunc {
	config := middleware.RateLimiterConfig{
		Skipper: func(echo.Context) bool {
			return cfg.Rate <= 0
		},
		Store: ratelimit.NewLimiterStore(rate.Limit(cfg.Rate), cfg.Burst),

		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			id := ctx.RealIP()
			return id, nil
		},

		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(http.StatusForbidden, Response{
				Status:  http.StatusForbidden,
				Message: "Access forbidden: Rate limiter error occurred",
			})
		},

		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(http.StatusTooManyRequests, Response{
				Status:  http.StatusTooManyRequests,
				Message: "Too many requests: Rate limit exceeded. Please try again later",
			})
		},
	}

	return middleware.RateLimiterWithConfig(config)
}
