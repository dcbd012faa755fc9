package repository

import (
	"reportdesk/pkg/logger"
	"reportdesk/pkg/sqlite"
	"reportdesk/pkg/utils"
)

type Repository struct {
	ReportRepo ReportRepository
	TaskRepo   TaskRepository
	Guard      Guard
}

type Option func(*options)

type options struct {
	clock utils.Clock
}

// WithClock overrides the time source used for created_at and updated_at.
func WithClock(clock utils.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

func NewRepository(db *sqlite.DB, log *logger.Logger, opts ...Option) *Repository {
	o := options{clock: utils.TimeNowUTC}
	for _, opt := range opts {
		opt(&o)
	}

	return &Repository{
		ReportRepo: NewReportRepository(db.DB, o.clock),
		TaskRepo:   NewTaskRepository(db.DB, o.clock),
		Guard:      NewGuard(db, log),
	}
}
