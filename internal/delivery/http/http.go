package http

import (
	"net/http"
	"strconv"

	"reportdesk/internal/dto"
	"reportdesk/internal/service"
	"reportdesk/pkg/logger"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type HttpAPIHandler struct {
	echo      *echo.Echo
	log       *logger.Logger
	validator *goValidator.Validate
	service   *service.Service
}

func NewHttpAPIHandler(echo *echo.Echo, log *logger.Logger, validator *goValidator.Validate, service *service.Service) *HttpAPIHandler {
	return &HttpAPIHandler{
		echo:      echo,
		log:       log,
		validator: validator,
		service:   service,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	base := h.echo.Group("/api")
	h.SetupSystem(base)
	h.SetupReports(base)
	h.SetupTasks(base)
	h.SetupProgress(base)
	h.echo.GET("/ws", h.progressSocket)
}

// bindAndValidate decodes the JSON body into req and validates it. Both
// failures answer 422.
func (h *HttpAPIHandler) bindAndValidate(c echo.Context, req interface{}) *dto.BaseResponse {
	if err := (&echo.DefaultBinder{}).BindBody(c, req); err != nil {
		return dto.NewUnprocessableResponse("invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return dto.NewUnprocessableResponse(err.Error())
	}
	return nil
}

// bindFields decodes the JSON body into a plain object for partial updates.
func bindFields(c echo.Context) (map[string]any, *dto.BaseResponse) {
	fields := map[string]any{}
	if err := (&echo.DefaultBinder{}).BindBody(c, &fields); err != nil {
		return nil, dto.NewUnprocessableResponse("invalid request body")
	}
	return fields, nil
}

func paramID(c echo.Context) (int64, *dto.BaseResponse) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, dto.NewUnprocessableResponse("id must be a positive integer")
	}
	return id, nil
}

func respond(c echo.Context, response *dto.BaseResponse) error {
	return c.JSON(response.Code, response)
}

func internalError(c echo.Context, err error) error {
	return respond(c, dto.NewInternalErrorResponse(err))
}

func notFound(c echo.Context, what string) error {
	return respond(c, dto.NewNotFoundResponse(what+" not found"))
}

func ok(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusOK, dto.NewSuccessResponse(message, data))
}
