package http

import (
	"errors"
	"fmt"
	"net/http"

	"reportdesk/internal/dto"
	"reportdesk/internal/model"
	"reportdesk/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (h *HttpAPIHandler) SetupProgress(base *echo.Group) {
	base.GET("/start-long-task/:task_id", h.startLongTask)
	base.GET("/long-task/:task_id", h.getLongTask)
}

func (h *HttpAPIHandler) startLongTask(c echo.Context) error {
	taskID := c.Param("task_id")
	h.service.ProgressService.Start(c.Request().Context(), taskID)
	return c.JSON(http.StatusOK, dto.StartLongTaskResponse{TaskID: taskID, Status: string(model.ProgressStarted)})
}

func (h *HttpAPIHandler) getLongTask(c echo.Context) error {
	progress, found := h.service.ProgressService.Get(c.Request().Context(), c.Param("task_id"))
	if !found {
		return notFound(c, "long task")
	}
	return ok(c, "Progress retrieved", progress)
}

// progressSocket streams simulated progress for every start_task frame the
// client sends, until the client goes away.
func (h *HttpAPIHandler) progressSocket(c echo.Context) error {
	ctx := c.Request().Context()

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.log.WarnContext(ctx, "WebSocket upgrade failed", logger.ErrorField(err))
		return nil
	}
	defer conn.Close()

	for {
		var msg dto.StartTaskMessage
		if err := conn.ReadJSON(&msg); err != nil {
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) {
				h.log.DebugContext(ctx, "WebSocket connection closed by client")
			} else {
				h.log.ErrorContext(ctx, "WebSocket error", logger.ErrorField(err))
			}
			return nil
		}
		if msg.Type != dto.MessageTypeStartTask {
			continue
		}

		err := h.service.ProgressService.Stream(ctx, fmt.Sprint(msg.TaskID), func(p model.Progress) error {
			return conn.WriteJSON(dto.ProgressMessage{TaskID: msg.TaskID, Progress: p.Progress})
		})
		if err != nil {
			h.log.DebugContext(ctx, "WebSocket stream stopped", logger.ErrorField(err))
			return nil
		}
	}
}
