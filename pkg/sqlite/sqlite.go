package sqlite

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"reportdesk/config"
	"reportdesk/pkg/logger"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	MemoryPath      = ":memory:"
	MigrationsTable = "schema_migrations"
)

// DB is the single process-wide handle to the SQLite file.
type DB struct {
	*gorm.DB
	log  *logger.Logger
	path string

	mu     sync.RWMutex
	closed bool
}

// Info describes the backing database file.
type Info struct {
	Path         string    `json:"path"`
	Size         int64     `json:"size"`
	Tables       []string  `json:"tables"`
	LastModified time.Time `json:"last_modified"`
}

// Open creates the containing directory when needed, opens the file with a
// single connection and, when schema is not nil, applies its migrations.
// Calling it again on an existing file is safe.
func Open(cfg config.Database, log *logger.Logger, schema fs.FS) (*DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("%w: empty database path", ErrStorageInit)
	}

	if cfg.Path != MemoryPath {
		if err := ensureDir(cfg.Path); err != nil {
			return nil, fmt.Errorf("%w: create database directory: %w", ErrStorageInit, err)
		}
	}

	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
	}

	db, err := gorm.Open(sqlite.Open(dsn(cfg)), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrStorageInit, cfg.Path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: get underlying sql.DB from GORM: %w", ErrStorageInit, err)
	}

	// SQLite is a single writer; one connection also keeps :memory: databases shared.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: open %s: %w", ErrStorageInit, cfg.Path, err)
	}

	d := &DB{DB: db, log: log, path: cfg.Path}
	if schema != nil {
		if err := d.Migrate(schema); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("%w: %w", ErrStorageInit, err)
		}
	}

	log.Info("Database initialized", logger.StringField("path", cfg.Path))
	return d, nil
}

func dsn(cfg config.Database) string {
	if cfg.Path == MemoryPath {
		return MemoryPath
	}
	busy := cfg.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}
	return fmt.Sprintf("file:%s?_busy_timeout=%d&_txlock=immediate", cfg.Path, busy.Milliseconds())
}

func ensureDir(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "Silent":
		return gormlogger.Silent
	case "Error":
		return gormlogger.Error
	case "Info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// Path returns the configured file path.
func (d *DB) Path() string {
	return d.path
}

// Available reports whether the handle is open.
func (d *DB) Available() bool {
	if d == nil {
		return false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.DB != nil && !d.closed
}

// Migrator builds a golang-migrate instance over the open handle.
// Do not Close the returned instance: that closes the shared handle.
func (d *DB) Migrator(schema fs.FS) (*migrate.Migrate, error) {
	if !d.Available() {
		return nil, ErrStorageUnavailable
	}

	sqlDB, err := d.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying sql.DB: %w", err)
	}

	source, err := iofs.New(schema, ".")
	if err != nil {
		return nil, fmt.Errorf("create migration source: %w", err)
	}

	driver, err := migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{MigrationsTable: MigrationsTable})
	if err != nil {
		return nil, fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return nil, fmt.Errorf("create migration instance: %w", err)
	}
	return m, nil
}

// Migrate applies every pending up migration.
func (d *DB) Migrate(schema fs.FS) error {
	m, err := d.Migrator(schema)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Ping issues a trivial liveness probe.
func (d *DB) Ping(ctx context.Context) error {
	if !d.Available() {
		return fmt.Errorf("%w: database not initialized", ErrStorageUnavailable)
	}

	var one int
	if err := d.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error; err != nil {
		d.log.ErrorContext(ctx, "Database connection check failed", logger.ErrorField(err))
		return fmt.Errorf("%w: connection check: %w", ErrStorageUnavailable, err)
	}
	return nil
}

// Info returns the file path, size, user table names and last modification time.
func (d *DB) Info(ctx context.Context) (*Info, error) {
	if !d.Available() {
		return nil, fmt.Errorf("%w: database not initialized", ErrStorageUnavailable)
	}

	var tables []string
	err := d.WithContext(ctx).
		Table("sqlite_master").
		Where("type = ? AND name NOT LIKE ? AND name != ?", "table", "sqlite_%", MigrationsTable).
		Order("name").
		Pluck("name", &tables).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list tables: %w", ErrStorageRead, err)
	}

	info := &Info{Path: d.path, Tables: tables}
	if d.path == MemoryPath {
		return info, nil
	}

	stat, err := os.Stat(d.path)
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %w", ErrStorageRead, d.path, err)
	}
	info.Size = stat.Size()
	info.LastModified = stat.ModTime()
	return info, nil
}

// Truncate deletes every row of the given tables in one transaction. It is
// meant for test setup only.
func (d *DB) Truncate(ctx context.Context, tables ...string) error {
	if !d.Available() {
		return ErrStorageUnavailable
	}
	return d.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range tables {
			quoted := `"` + strings.ReplaceAll(table, `"`, `""`) + `"`
			if err := tx.Exec("DELETE FROM " + quoted).Error; err != nil {
				return fmt.Errorf("%w: truncate %s: %w", ErrStorageWrite, table, err)
			}
		}
		return nil
	})
}

// Close closes the underlying connection. Further calls are no-ops.
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.DB == nil || d.closed {
		return nil
	}
	d.closed = true

	d.log.Info("Closing database connection")
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB from GORM for closing: %w", err)
	}
	return sqlDB.Close()
}
