package http

import (
	"reportdesk/internal/dto"
	"reportdesk/internal/model"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupReports(base *echo.Group) {
	reports := base.Group("/reports")
	reports.GET("", h.listReports)
	reports.POST("", h.createReport)
	reports.GET("/:id", h.getReport)
	reports.PUT("/:id", h.updateReport)
	reports.DELETE("/:id", h.deleteReport)
	reports.POST("/:id/duplicate", h.duplicateReport)
	reports.GET("/:id/tasks", h.listReportTasks)
	reports.GET("/:id/task", h.getReportTask)
}

func (h *HttpAPIHandler) listReports(c echo.Context) error {
	reports, err := h.service.ReportService.List(c.Request().Context())
	if err != nil {
		return internalError(c, err)
	}
	return ok(c, "Reports retrieved", reports)
}

func (h *HttpAPIHandler) createReport(c echo.Context) error {
	req := new(dto.CreateReportRequest)
	if resp := h.bindAndValidate(c, req); resp != nil {
		return respond(c, resp)
	}

	id, err := h.service.ReportService.Create(c.Request().Context(), req.ToModel())
	if err != nil {
		return internalError(c, err)
	}
	return respond(c, dto.NewCreatedResponse("Report created", id))
}

func (h *HttpAPIHandler) getReport(c echo.Context) error {
	id, resp := paramID(c)
	if resp != nil {
		return respond(c, resp)
	}

	report, err := h.service.ReportService.Get(c.Request().Context(), id)
	if err != nil {
		return internalError(c, err)
	}
	if report == nil {
		return notFound(c, "report")
	}
	return ok(c, "Report retrieved", report)
}

func (h *HttpAPIHandler) updateReport(c echo.Context) error {
	id, resp := paramID(c)
	if resp != nil {
		return respond(c, resp)
	}
	fields, resp := bindFields(c)
	if resp != nil {
		return respond(c, resp)
	}
	patch, err := model.ReportPatchFromMap(fields)
	if err != nil {
		return respond(c, dto.NewUnprocessableResponse(err.Error()))
	}

	updated, err := h.service.ReportService.Update(c.Request().Context(), id, patch)
	if err != nil {
		return internalError(c, err)
	}
	if !updated {
		return notFound(c, "report")
	}
	return ok(c, "Report updated", nil)
}

func (h *HttpAPIHandler) deleteReport(c echo.Context) error {
	id, resp := paramID(c)
	if resp != nil {
		return respond(c, resp)
	}

	deleted, err := h.service.ReportService.Delete(c.Request().Context(), id)
	if err != nil {
		return internalError(c, err)
	}
	if !deleted {
		return notFound(c, "report")
	}
	return ok(c, "Report deleted", nil)
}

func (h *HttpAPIHandler) duplicateReport(c echo.Context) error {
	id, resp := paramID(c)
	if resp != nil {
		return respond(c, resp)
	}

	newID, found, err := h.service.ReportService.Duplicate(c.Request().Context(), id)
	if err != nil {
		return internalError(c, err)
	}
	if !found {
		return notFound(c, "report")
	}
	return respond(c, dto.NewCreatedResponse("Report duplicated", newID))
}

func (h *HttpAPIHandler) listReportTasks(c echo.Context) error {
	id, resp := paramID(c)
	if resp != nil {
		return respond(c, resp)
	}

	tasks, err := h.service.TaskService.ListByReport(c.Request().Context(), id)
	if err != nil {
		return internalError(c, err)
	}
	return ok(c, "Tasks retrieved", tasks)
}

func (h *HttpAPIHandler) getReportTask(c echo.Context) error {
	id, resp := paramID(c)
	if resp != nil {
		return respond(c, resp)
	}

	task, err := h.service.TaskService.GetByReport(c.Request().Context(), id)
	if err != nil {
		return internalError(c, err)
	}
	if task == nil {
		return notFound(c, "task")
	}
	return ok(c, "Task retrieved", task)
}
