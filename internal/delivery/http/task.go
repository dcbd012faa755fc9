package http

import (
	"reportdesk/internal/dto"
	"reportdesk/internal/model"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupTasks(base *echo.Group) {
	tasks := base.Group("/tasks")
	tasks.POST("", h.createTask)
	tasks.GET("/scheduling", h.listTasksForScheduling)
	tasks.GET("/:id", h.getTask)
	tasks.PUT("/:id", h.updateTask)
	tasks.DELETE("/:id", h.deleteTask)
}

func (h *HttpAPIHandler) createTask(c echo.Context) error {
	req := new(dto.CreateTaskRequest)
	if resp := h.bindAndValidate(c, req); resp != nil {
		return respond(c, resp)
	}

	id, err := h.service.TaskService.Create(c.Request().Context(), req.ToModel())
	if err != nil {
		return internalError(c, err)
	}
	return respond(c, dto.NewCreatedResponse("Task created", id))
}

func (h *HttpAPIHandler) listTasksForScheduling(c echo.Context) error {
	tasks, err := h.service.TaskService.ListForScheduling(c.Request().Context())
	if err != nil {
		return internalError(c, err)
	}
	return ok(c, "Tasks retrieved", tasks)
}

func (h *HttpAPIHandler) getTask(c echo.Context) error {
	id, resp := paramID(c)
	if resp != nil {
		return respond(c, resp)
	}

	task, err := h.service.TaskService.Get(c.Request().Context(), id)
	if err != nil {
		return internalError(c, err)
	}
	if task == nil {
		return notFound(c, "task")
	}
	return ok(c, "Task retrieved", task)
}

func (h *HttpAPIHandler) updateTask(c echo.Context) error {
	id, resp := paramID(c)
	if resp != nil {
		return respond(c, resp)
	}
	fields, resp := bindFields(c)
	if resp != nil {
		return respond(c, resp)
	}
	patch, err := model.TaskPatchFromMap(fields)
	if err != nil {
		return respond(c, dto.NewUnprocessableResponse(err.Error()))
	}
	if patch.Schedule != nil && patch.Schedule.Valid {
		if err := h.validator.Var(patch.Schedule.String, "cron"); err != nil {
			return respond(c, dto.NewUnprocessableResponse(err.Error()))
		}
	}

	updated, err := h.service.TaskService.Update(c.Request().Context(), id, patch)
	if err != nil {
		return internalError(c, err)
	}
	if !updated {
		return notFound(c, "task")
	}
	return ok(c, "Task updated", nil)
}

// deleteTask deactivates the task; the row is kept.
func (h *HttpAPIHandler) deleteTask(c echo.Context) error {
	id, resp := paramID(c)
	if resp != nil {
		return respond(c, resp)
	}

	deactivated, err := h.service.TaskService.Deactivate(c.Request().Context(), id)
	if err != nil {
		return internalError(c, err)
	}
	if !deactivated {
		return notFound(c, "task")
	}
	return ok(c, "Task deleted", nil)
}
