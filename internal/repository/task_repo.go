package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"reportdesk/internal/model"
	"reportdesk/pkg/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type taskRecord struct {
	ID        int64          `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string         `gorm:"column:name;not null"`
	Type      string         `gorm:"column:type;not null"`
	ReportID  sql.NullInt64  `gorm:"column:report_id"`
	Schedule  sql.NullString `gorm:"column:schedule"`
	IsActive  bool           `gorm:"column:is_active"`
	Meta      datatypes.JSON `gorm:"column:meta"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	NextRunAt sql.NullTime   `gorm:"column:next_run_at"`
}

func (taskRecord) TableName() string {
	return "tasks"
}

func (rec *taskRecord) toModel() (*model.Task, error) {
	meta, err := decodeMeta(rec.Meta)
	if err != nil {
		return nil, err
	}
	task := &model.Task{
		ID:        rec.ID,
		Name:      rec.Name,
		Type:      rec.Type,
		IsActive:  rec.IsActive,
		Meta:      meta,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
	if rec.ReportID.Valid {
		task.ReportID = utils.ToPointer(rec.ReportID.Int64)
	}
	if rec.Schedule.Valid {
		task.Schedule = utils.ToPointer(rec.Schedule.String)
	}
	if rec.NextRunAt.Valid {
		task.NextRunAt = utils.ToPointer(rec.NextRunAt.Time)
	}
	return task, nil
}

func toTasks(recs []taskRecord) ([]model.Task, error) {
	tasks := make([]model.Task, 0, len(recs))
	for i := range recs {
		task, err := recs[i].toModel()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, nil
}

type TaskRepository interface {
	Create(ctx context.Context, task model.NewTask, opts ...utils.DBOption) (int64, error)
	FindByID(ctx context.Context, id int64, opts ...utils.DBOption) (*model.Task, error)
	FindActiveByReportID(ctx context.Context, reportID int64, opts ...utils.DBOption) ([]model.Task, error)
	FindFirstActiveByReportID(ctx context.Context, reportID int64, opts ...utils.DBOption) (*model.Task, error)
	Update(ctx context.Context, id int64, patch model.TaskPatch, opts ...utils.DBOption) (bool, error)
	Deactivate(ctx context.Context, id int64, opts ...utils.DBOption) (bool, error)
	DeactivateByReportID(ctx context.Context, reportID int64, opts ...utils.DBOption) (int64, error)
	FindSchedulable(ctx context.Context, opts ...utils.DBOption) ([]model.Task, error)
}

type taskRepository struct {
	db  *gorm.DB
	now utils.Clock
}

func NewTaskRepository(db *gorm.DB, now utils.Clock) TaskRepository {
	return &taskRepository{db: db, now: now}
}

func (r *taskRepository) Create(ctx context.Context, task model.NewTask, opts ...utils.DBOption) (int64, error) {
	meta, err := encodeMeta(task.Meta)
	if err != nil {
		return 0, err
	}

	now := r.now()
	rec := taskRecord{
		Name:      task.Name,
		Type:      task.Type,
		IsActive:  true,
		Meta:      meta,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if task.ReportID != nil {
		rec.ReportID = sql.NullInt64{Int64: *task.ReportID, Valid: true}
	}
	if task.Schedule != nil {
		rec.Schedule = sql.NullString{String: *task.Schedule, Valid: true}
	}
	if task.IsActive != nil {
		rec.IsActive = *task.IsActive
	}

	if err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).Create(&rec).Error; err != nil {
		return 0, writeErr("create task", err)
	}
	return rec.ID, nil
}

// FindByID returns the task whatever its active flag, or nil when absent.
func (r *taskRepository) FindByID(ctx context.Context, id int64, opts ...utils.DBOption) (*model.Task, error) {
	var rec taskRecord
	err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).Where("id = ?", id).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, readErr("get task", err)
	}
	return rec.toModel()
}

func (r *taskRepository) FindActiveByReportID(ctx context.Context, reportID int64, opts ...utils.DBOption) ([]model.Task, error) {
	var recs []taskRecord
	err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Where("report_id = ? AND is_active = ?", reportID, true).
		Order("id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, readErr("get tasks by report id", err)
	}
	return toTasks(recs)
}

func (r *taskRepository) FindFirstActiveByReportID(ctx context.Context, reportID int64, opts ...utils.DBOption) (*model.Task, error) {
	tasks, err := r.FindActiveByReportID(ctx, reportID, append(append([]utils.DBOption{}, opts...), utils.WithLimit(1))...)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, nil
	}
	return &tasks[0], nil
}

// Update applies the non-nil patch fields and refreshes updated_at in the
// same statement. It reports whether the row exists.
func (r *taskRepository) Update(ctx context.Context, id int64, patch model.TaskPatch, opts ...utils.DBOption) (bool, error) {
	values := map[string]interface{}{}
	if patch.Name != nil {
		values["name"] = *patch.Name
	}
	if patch.Type != nil {
		values["type"] = *patch.Type
	}
	if patch.ReportID != nil {
		values["report_id"] = *patch.ReportID
	}
	if patch.Schedule != nil {
		values["schedule"] = *patch.Schedule
	}
	if patch.IsActive != nil {
		values["is_active"] = *patch.IsActive
	}
	if patch.Meta != nil {
		meta, err := encodeMeta(*patch.Meta)
		if err != nil {
			return false, err
		}
		values["meta"] = meta
	}
	values["updated_at"] = r.now()

	res := utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Model(&taskRecord{}).
		Where("id = ?", id).
		Updates(values)
	if res.Error != nil {
		return false, writeErr("update task", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Deactivate is the task delete: the row stays, is_active becomes false.
func (r *taskRepository) Deactivate(ctx context.Context, id int64, opts ...utils.DBOption) (bool, error) {
	res := utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Model(&taskRecord{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": false, "updated_at": r.now()})
	if res.Error != nil {
		return false, writeErr("deactivate task", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeactivateByReportID deactivates every task referencing the report and
// returns how many rows changed.
func (r *taskRepository) DeactivateByReportID(ctx context.Context, reportID int64, opts ...utils.DBOption) (int64, error) {
	res := utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Model(&taskRecord{}).
		Where("report_id = ? AND is_active = ?", reportID, true).
		Updates(map[string]interface{}{"is_active": false, "updated_at": r.now()})
	if res.Error != nil {
		return 0, writeErr("deactivate tasks by report id", res.Error)
	}
	return res.RowsAffected, nil
}

// FindSchedulable returns active tasks that carry a schedule.
func (r *taskRepository) FindSchedulable(ctx context.Context, opts ...utils.DBOption) ([]model.Task, error) {
	var recs []taskRecord
	err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Where("is_active = ? AND schedule IS NOT NULL", true).
		Order("id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, readErr("get tasks for scheduling", err)
	}
	return toTasks(recs)
}
