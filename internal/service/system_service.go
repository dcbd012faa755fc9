package service

import (
	"context"

	"reportdesk/internal/repository"
	"reportdesk/pkg/logger"
	"reportdesk/pkg/sqlite"
)

type SystemService interface {
	CheckConnection(ctx context.Context) error
	DatabaseInfo(ctx context.Context) (*sqlite.Info, error)
	Close() error
}

type systemService struct {
	log   *logger.Logger
	db    *sqlite.DB
	guard repository.Guard
}

func NewSystemService(log *logger.Logger, db *sqlite.DB, guard repository.Guard) SystemService {
	return &systemService{log: log, db: db, guard: guard}
}

// CheckConnection probes the handle outside the guard; the probe shares the
// single connection, so it waits for any in-flight unit of work.
func (s *systemService) CheckConnection(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *systemService) DatabaseInfo(ctx context.Context) (*sqlite.Info, error) {
	info, err := s.db.Info(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to get database info", logger.ErrorField(err))
		return nil, err
	}
	return info, nil
}

// Close waits for the in-flight unit of work, then closes the handle.
func (s *systemService) Close() error {
	return s.guard.Close()
}
