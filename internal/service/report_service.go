package service

import (
	"context"

	"reportdesk/internal/model"
	"reportdesk/internal/repository"
	"reportdesk/pkg/logger"
	"reportdesk/pkg/utils"
)

type ReportService interface {
	Create(ctx context.Context, report model.NewReport) (int64, error)
	Get(ctx context.Context, id int64) (*model.Report, error)
	Update(ctx context.Context, id int64, patch model.ReportPatch) (bool, error)
	Duplicate(ctx context.Context, id int64) (int64, bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]model.Report, error)
}

type reportService struct {
	log        *logger.Logger
	guard      repository.Guard
	reportRepo repository.ReportRepository
	taskRepo   repository.TaskRepository
}

func NewReportService(
	log *logger.Logger,
	guard repository.Guard,
	reportRepo repository.ReportRepository,
	taskRepo repository.TaskRepository,
) ReportService {
	return &reportService{
		log:        log,
		guard:      guard,
		reportRepo: reportRepo,
		taskRepo:   taskRepo,
	}
}

func (s *reportService) Create(ctx context.Context, report model.NewReport) (int64, error) {
	var id int64
	err := s.guard.Run(ctx, func(opts ...utils.DBOption) error {
		var err error
		id, err = s.reportRepo.Create(ctx, report, opts...)
		return err
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to create report", logger.ErrorField(err), logger.StringField("name", report.Name))
		return 0, err
	}

	s.log.DebugContext(ctx, "Report created", logger.Int64Field("report_id", id))
	return id, nil
}

// Get returns nil when the report does not exist.
func (s *reportService) Get(ctx context.Context, id int64) (*model.Report, error) {
	var report *model.Report
	err := s.guard.Run(ctx, func(opts ...utils.DBOption) error {
		var err error
		report, err = s.reportRepo.FindByID(ctx, id, opts...)
		return err
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to get report", logger.ErrorField(err), logger.Int64Field("report_id", id))
		return nil, err
	}
	return report, nil
}

func (s *reportService) Update(ctx context.Context, id int64, patch model.ReportPatch) (bool, error) {
	var updated bool
	err := s.guard.Run(ctx, func(opts ...utils.DBOption) error {
		var err error
		updated, err = s.reportRepo.Update(ctx, id, patch, opts...)
		return err
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to update report", logger.ErrorField(err), logger.Int64Field("report_id", id))
		return false, err
	}
	return updated, nil
}

// Duplicate copies the report under the name "<name> (Copy)". found is
// false when the source does not exist.
func (s *reportService) Duplicate(ctx context.Context, id int64) (newID int64, found bool, err error) {
	err = s.guard.Run(ctx, func(opts ...utils.DBOption) error {
		source, err := s.reportRepo.FindByID(ctx, id, opts...)
		if err != nil || source == nil {
			return err
		}

		found = true
		newID, err = s.reportRepo.Create(ctx, source.Copy(), opts...)
		return err
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to duplicate report", logger.ErrorField(err), logger.Int64Field("report_id", id))
		return 0, false, err
	}
	return newID, found, nil
}

// Delete deactivates every task of the report, then removes the report, in
// one unit of work.
func (s *reportService) Delete(ctx context.Context, id int64) (bool, error) {
	var (
		deleted     bool
		deactivated int64
	)
	err := s.guard.Run(ctx, func(opts ...utils.DBOption) error {
		var err error
		deactivated, err = s.taskRepo.DeactivateByReportID(ctx, id, opts...)
		if err != nil {
			return err
		}
		deleted, err = s.reportRepo.Delete(ctx, id, opts...)
		return err
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to delete report", logger.ErrorField(err), logger.Int64Field("report_id", id))
		return false, err
	}

	if deleted {
		s.log.InfoContext(ctx, "Report deleted",
			logger.Int64Field("report_id", id),
			logger.Int64Field("deactivated_tasks", deactivated),
		)
	}
	return deleted, nil
}

func (s *reportService) List(ctx context.Context) ([]model.Report, error) {
	var reports []model.Report
	err := s.guard.Run(ctx, func(opts ...utils.DBOption) error {
		var err error
		reports, err = s.reportRepo.List(ctx, opts...)
		return err
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to list reports", logger.ErrorField(err))
		return nil, err
	}
	return reports, nil
}
