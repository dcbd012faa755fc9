package model

import (
	"database/sql"
	"time"
)

const TaskTypeReport = "report"

// Task is a scheduled or ad-hoc unit of work, optionally bound to a report.
// Tasks are never removed; deleting one clears IsActive.
type Task struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Type      string         `json:"type"`
	ReportID  *int64         `json:"report_id"`
	Schedule  *string        `json:"schedule"`
	IsActive  bool           `json:"is_active"`
	Meta      map[string]any `json:"meta"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	NextRunAt *time.Time     `json:"next_run_at"`
}

// NewTask holds the fields of a task to insert. IsActive defaults to true.
type NewTask struct {
	Name     string
	Type     string
	ReportID *int64
	Schedule *string
	IsActive *bool
	Meta     map[string]any
}

// TaskPatch is a partial update. Nil fields are left untouched; a non-nil
// ReportID or Schedule with Valid=false clears the column.
type TaskPatch struct {
	Name     *string
	Type     *string
	ReportID *sql.NullInt64
	Schedule *sql.NullString
	IsActive *bool
	Meta     *map[string]any
}

// ScheduledTask is an active task with a schedule and the next time that
// schedule fires, when it can be parsed.
type ScheduledTask struct {
	Task
	NextRun *time.Time `json:"next_run"`
}
