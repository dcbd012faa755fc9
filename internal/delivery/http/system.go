package http

import (
	"net/http"
	"time"

	"reportdesk/internal/dto"

	"github.com/labstack/echo/v4"
)

const quickTaskDelay = 100 * time.Millisecond

func (h *HttpAPIHandler) SetupSystem(base *echo.Group) {
	base.GET("/health", h.health)
	base.GET("/quick-task", h.quickTask)
}

func (h *HttpAPIHandler) health(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.service.SystemService.CheckConnection(ctx); err != nil {
		return internalError(c, err)
	}
	info, err := h.service.SystemService.DatabaseInfo(ctx)
	if err != nil {
		return internalError(c, err)
	}
	return ok(c, "OK", dto.HealthResponse{Status: "healthy", Database: info})
}

func (h *HttpAPIHandler) quickTask(c echo.Context) error {
	h.log.DebugContext(c.Request().Context(), "Quick task called")

	select {
	case <-time.After(quickTaskDelay):
	case <-c.Request().Context().Done():
		return c.Request().Context().Err()
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Quick task completed"})
}
