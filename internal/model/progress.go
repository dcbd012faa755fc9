package model

import "time"

type ProgressStatus string

const (
	ProgressStarted   ProgressStatus = "started"
	ProgressRunning   ProgressStatus = "running"
	ProgressCompleted ProgressStatus = "completed"
	ProgressFailed    ProgressStatus = "failed"
)

// Progress is the latest known state of a simulated long running task.
type Progress struct {
	TaskID    string         `json:"task_id"`
	Progress  int            `json:"progress"`
	Status    ProgressStatus `json:"status"`
	UpdatedAt time.Time      `json:"updated_at"`
}
