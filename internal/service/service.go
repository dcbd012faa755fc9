package service

import (
	"reportdesk/config"
	"reportdesk/internal/repository"
	"reportdesk/pkg/cache"
	"reportdesk/pkg/logger"
	"reportdesk/pkg/sqlite"
	"reportdesk/pkg/utils"
)

type Service struct {
	ReportService   ReportService
	TaskService     TaskService
	SystemService   SystemService
	ProgressService ProgressService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	db *sqlite.DB,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
) *Service {
	return &Service{
		ReportService:   NewReportService(log, repo.Guard, repo.ReportRepo, repo.TaskRepo),
		TaskService:     NewTaskService(log, utils.TimeNowUTC, repo.Guard, repo.TaskRepo),
		SystemService:   NewSystemService(log, db, repo.Guard),
		ProgressService: NewProgressService(cfg, log, utils.TimeNowUTC, inmemoryCache),
	}
}
