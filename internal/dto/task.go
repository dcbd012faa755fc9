package dto

import "reportdesk/internal/model"

type CreateTaskRequest struct {
	Name     string         `json:"name" validate:"required"`
	Type     string         `json:"type" validate:"required"`
	ReportID *int64         `json:"report_id" validate:"omitempty,gt=0"`
	Schedule *string        `json:"schedule" validate:"omitempty,cron"`
	IsActive *bool          `json:"is_active"`
	Meta     map[string]any `json:"meta"`
}

func (r *CreateTaskRequest) ToModel() model.NewTask {
	return model.NewTask{
		Name:     r.Name,
		Type:     r.Type,
		ReportID: r.ReportID,
		Schedule: r.Schedule,
		IsActive: r.IsActive,
		Meta:     r.Meta,
	}
}

// ProgressMessage is one frame sent on the progress websocket.
type ProgressMessage struct {
	TaskID   any `json:"task_id"`
	Progress int `json:"progress"`
}

// StartTaskMessage is the frame a websocket client sends to start a run.
type StartTaskMessage struct {
	Type   string `json:"type"`
	TaskID any    `json:"task_id"`
}

const MessageTypeStartTask = "start_task"

type StartLongTaskResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}
