package service

import (
	"context"

	"reportdesk/internal/model"
	"reportdesk/internal/repository"
	"reportdesk/pkg/logger"
	"reportdesk/pkg/utils"
)

type TaskService interface {
	Create(ctx context.Context, task model.NewTask) (int64, error)
	Get(ctx context.Context, id int64) (*model.Task, error)
	ListByReport(ctx context.Context, reportID int64) ([]model.Task, error)
	GetByReport(ctx context.Context, reportID int64) (*model.Task, error)
	Update(ctx context.Context, id int64, patch model.TaskPatch) (bool, error)
	Deactivate(ctx context.Context, id int64) (bool, error)
	ListForScheduling(ctx context.Context) ([]model.ScheduledTask, error)
}

type taskService struct {
	log      *logger.Logger
	now      utils.Clock
	guard    repository.Guard
	taskRepo repository.TaskRepository
}

func NewTaskService(
	log *logger.Logger,
	now utils.Clock,
	guard repository.Guard,
	taskRepo repository.TaskRepository,
) TaskService {
	return &taskService{
		log:      log,
		now:      now,
		guard:    guard,
		taskRepo: taskRepo,
	}
}

func (s *taskService) Create(ctx context.Context, task model.NewTask) (int64, error) {
	var id int64
	err := s.guard.Run(ctx, func(opts ...utils.DBOption) error {
		var err error
		id, err = s.taskRepo.Create(ctx, task, opts...)
		return err
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to create task", logger.ErrorField(err), logger.StringField("name", task.Name))
		return 0, err
	}

	s.log.DebugContext(ctx, "Task created", logger.Int64Field("task_id", id))
	return id, nil
}

// Get returns the task even when it is inactive, or nil when it does not exist.
func (s *taskService) Get(ctx context.Context, id int64) (*model.Task, error) {
	var task *model.Task
	err := s.guard.Run(ctx, func(opts ...utils.DBOption) error {
		var err error
		task, err = s.taskRepo.FindByID(ctx, id, opts...)
		return err
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to get task", logger.ErrorField(err), logger.Int64Field("task_id", id))
		return nil, err
	}
	return task, nil
}

func (s *taskService) ListByReport(ctx context.Context, reportID int64) ([]model.Task, error) {
	var tasks []model.Task
	err := s.guard.Run(ctx, func(opts ...utils.DBOption) error {
		var err error
		tasks, err = s.taskRepo.FindActiveByReportID(ctx, reportID, opts...)
		return err
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to get tasks by report", logger.ErrorField(err), logger.Int64Field("report_id", reportID))
		return nil, err
	}
	return tasks, nil
}

func (s *taskService) GetByReport(ctx context.Context, reportID int64) (*model.Task, error) {
	var task *model.Task
	err := s.guard.Run(ctx, func(opts ...utils.DBOption) error {
		var err error
		task, err = s.taskRepo.FindFirstActiveByReportID(ctx, reportID, opts...)
		return err
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to get task by report", logger.ErrorField(err), logger.Int64Field("report_id", reportID))
		return nil, err
	}
	return task, nil
}

func (s *taskService) Update(ctx context.Context, id int64, patch model.TaskPatch) (bool, error) {
	var updated bool
	err := s.guard.Run(ctx, func(opts ...utils.DBOption) error {
		var err error
		updated, err = s.taskRepo.Update(ctx, id, patch, opts...)
		return err
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to update task", logger.ErrorField(err), logger.Int64Field("task_id", id))
		return false, err
	}
	return updated, nil
}

func (s *taskService) Deactivate(ctx context.Context, id int64) (bool, error) {
	var deactivated bool
	err := s.guard.Run(ctx, func(opts ...utils.DBOption) error {
		var err error
		deactivated, err = s.taskRepo.Deactivate(ctx, id, opts...)
		return err
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to deactivate task", logger.ErrorField(err), logger.Int64Field("task_id", id))
		return false, err
	}
	return deactivated, nil
}

// ListForScheduling returns active tasks with a schedule, each with the
// next time its schedule fires. Schedules that do not parse get no next run.
func (s *taskService) ListForScheduling(ctx context.Context) ([]model.ScheduledTask, error) {
	var tasks []model.Task
	err := s.guard.Run(ctx, func(opts ...utils.DBOption) error {
		var err error
		tasks, err = s.taskRepo.FindSchedulable(ctx, opts...)
		return err
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to get tasks for scheduling", logger.ErrorField(err))
		return nil, err
	}

	now := s.now()
	scheduled := make([]model.ScheduledTask, 0, len(tasks))
	for _, task := range tasks {
		item := model.ScheduledTask{Task: task}
		next, err := utils.NextRun(*task.Schedule, now)
		if err != nil {
			s.log.WarnContext(ctx, "Failed to parse task schedule",
				logger.ErrorField(err),
				logger.Int64Field("task_id", task.ID),
				logger.StringField("schedule", *task.Schedule),
			)
		} else {
			item.NextRun = &next
		}
		scheduled = append(scheduled, item)
	}
	return scheduled, nil
}
