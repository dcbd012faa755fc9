package cmd

import (
	"context"

	"reportdesk/config"
	"reportdesk/internal/dto"
	"reportdesk/migrations"
	"reportdesk/pkg/cache"
	"reportdesk/pkg/logger"
	"reportdesk/pkg/middleware"
	"reportdesk/pkg/sqlite"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type AppDependency struct {
	db        *sqlite.DB
	cfg       *config.Config
	log       *logger.Logger
	validator *goValidator.Validate
	echo      *echo.Echo
	cache     cache.Cache
}

func loadConfig() (*config.Config, error) {
	if configDir != "" {
		return config.Load(configDir)
	}
	return config.Load()
}

func newLogger(cfg *config.Config) (*logger.Logger, error) {
	if cfg.IsTest() {
		return logger.NewNop(), nil
	}
	return logger.New(cfg.Log.Level, cfg.Log.Encoding)
}

func NewAppDependency(ctx context.Context) (*AppDependency, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sqlite.Open(cfg.DB, log, migrations.Files)
	if err != nil {
		log.Error("Failed to initialize database", zap.Error(err))
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.NewRequestLogger(log))
	e.Use(middleware.NewCORS(cfg.API.CORS))
	e.Use(middleware.NewRateLimiterMiddleware(cfg.API.RateLimit))

	return &AppDependency{
		cfg:       cfg,
		log:       log,
		validator: dto.NewValidator(),
		db:        db,
		echo:      e,
		cache:     cache.NewCache(cfg.Cache.DefaultExpiration, cfg.Cache.CleanupInterval),
	}, nil
}
