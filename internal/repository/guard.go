package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"reportdesk/pkg/logger"
	"reportdesk/pkg/sqlite"
	"reportdesk/pkg/utils"

	"gorm.io/gorm"
)

// Guard serializes every access to the store. Run holds a single mutex for
// the whole transaction, commits when fn returns nil and rolls back on an
// error or a panic, so the next caller always finds the connection clean.
type Guard interface {
	Run(ctx context.Context, fn func(opts ...utils.DBOption) error) error
	Close() error
}

type guard struct {
	mu  sync.Mutex
	db  *sqlite.DB
	log *logger.Logger
}

func NewGuard(db *sqlite.DB, log *logger.Logger) Guard {
	return &guard{db: db, log: log}
}

func (g *guard) Run(ctx context.Context, fn func(opts ...utils.DBOption) error) (err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.db.Available() {
		return fmt.Errorf("%w: database not initialized", sqlite.ErrStorageUnavailable)
	}

	// Storage work is not cancellable mid-flight: an abandoned request still
	// reaches commit or rollback.
	tx := g.db.WithContext(context.WithoutCancel(ctx)).Begin()
	if tx.Error != nil {
		return fmt.Errorf("%w: begin transaction: %w", sqlite.ErrStorageUnavailable, tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			g.rollback(ctx, tx)
			panic(r)
		}
		if err != nil {
			g.rollback(ctx, tx)
			return
		}
		if commitErr := tx.Commit().Error; commitErr != nil {
			err = fmt.Errorf("%w: commit failed: %w", sqlite.ErrStorageWrite, commitErr)
		}
	}()

	err = fn(utils.WithTx(tx))
	return
}

func (g *guard) rollback(ctx context.Context, tx *gorm.DB) {
	if err := tx.Rollback().Error; err != nil && !errors.Is(err, sql.ErrTxDone) {
		g.log.WarnContext(ctx, "Rollback failed", logger.ErrorField(err))
	}
}

// Close waits for the in-flight unit of work and closes the handle.
func (g *guard) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.db.Close()
}
