package dto

import "net/http"

type BaseResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func NewBaseResponse(code int, message string, data interface{}) *BaseResponse {
	return &BaseResponse{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

func NewSuccessResponse(message string, data interface{}) *BaseResponse {
	return NewBaseResponse(http.StatusOK, message, data)
}

func NewCreatedResponse(message string, id int64) *BaseResponse {
	return NewBaseResponse(http.StatusCreated, message, IDResponse{ID: id})
}

func NewNotFoundResponse(message string) *BaseResponse {
	return NewBaseResponse(http.StatusNotFound, message, nil)
}

func NewUnprocessableResponse(message string) *BaseResponse {
	return NewBaseResponse(http.StatusUnprocessableEntity, message, nil)
}

func NewInternalErrorResponse(err error) *BaseResponse {
	return NewBaseResponse(http.StatusInternalServerError, err.Error(), nil)
}

type IDResponse struct {
	ID int64 `json:"id"`
}

type HealthResponse struct {
	Status   string      `json:"status"`
	Database interface{} `json:"database"`
}
