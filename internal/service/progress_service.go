package service

import (
	"context"
	"errors"
	"fmt"

	"reportdesk/config"
	"reportdesk/internal/jobs"
	"reportdesk/internal/model"
	"reportdesk/pkg/cache"
	"reportdesk/pkg/common"
	"reportdesk/pkg/logger"
	"reportdesk/pkg/utils"
)

type ProgressService interface {
	// Start launches a simulated run in the background and returns its
	// initial progress.
	Start(ctx context.Context, taskID string) model.Progress
	// Get returns the latest recorded progress of a run.
	Get(ctx context.Context, taskID string) (*model.Progress, bool)
	// Stream runs the simulation in the caller's goroutine, recording and
	// passing every step to fn.
	Stream(ctx context.Context, taskID string, fn func(model.Progress) error) error
}

type progressService struct {
	cfg   *config.Config
	log   *logger.Logger
	now   utils.Clock
	cache cache.Cache
}

func NewProgressService(cfg *config.Config, log *logger.Logger, now utils.Clock, inmemoryCache cache.Cache) ProgressService {
	return &progressService{
		cfg:   cfg,
		log:   log,
		now:   now,
		cache: inmemoryCache,
	}
}

func progressKey(taskID string) string {
	return fmt.Sprintf(common.KEY_PROGRESS, taskID)
}

func (s *progressService) record(taskID string, percentage int, status model.ProgressStatus) model.Progress {
	p := model.Progress{
		TaskID:    taskID,
		Progress:  percentage,
		Status:    status,
		UpdatedAt: s.now(),
	}
	s.cache.Set(progressKey(taskID), p, s.cfg.Cache.DefaultExpiration)
	return p
}

func (s *progressService) Start(ctx context.Context, taskID string) model.Progress {
	started := s.record(taskID, 0, model.ProgressStarted)

	runCtx := context.WithoutCancel(ctx)
	utils.GoSafe(s.log, func() {
		if err := s.Stream(runCtx, taskID, nil); err != nil {
			s.log.ErrorContext(runCtx, "Long task failed", logger.ErrorField(err), logger.StringField("task_id", taskID))
		}
	})

	s.log.InfoContext(ctx, "Long task started", logger.StringField("task_id", taskID))
	return started
}

func (s *progressService) Get(_ context.Context, taskID string) (*model.Progress, bool) {
	p, ok := cache.GetAs[model.Progress](s.cache, progressKey(taskID))
	if !ok {
		return nil, false
	}
	return &p, true
}

func (s *progressService) Stream(ctx context.Context, taskID string, fn func(model.Progress) error) error {
	steps := s.cfg.Job.Steps
	err := jobs.Simulate(ctx, steps, s.cfg.Job.StepInterval, func(step int, percentage float64) error {
		status := model.ProgressRunning
		if step == steps {
			status = model.ProgressCompleted
		}
		p := s.record(taskID, int(percentage), status)
		if fn == nil {
			return nil
		}
		return fn(p)
	})
	if err != nil {
		last, _ := s.Get(ctx, taskID)
		percentage := 0
		if last != nil {
			percentage = last.Progress
		}
		s.record(taskID, percentage, model.ProgressFailed)
		if errors.Is(err, context.Canceled) {
			s.log.DebugContext(ctx, "Long task cancelled", logger.StringField("task_id", taskID))
		}
		return err
	}
	return nil
}
