package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"reportdesk/config"
	"reportdesk/migrations"
	"reportdesk/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T, path string) *DB {
	t.Helper()

	db, err := Open(config.Database{Path: path, LogLevel: "Silent"}, logger.NewNop(), migrations.Files)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpen_CreatesDirectoryAndTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "database.sqlite")
	db := openTestDB(t, path)

	_, err := os.Stat(path)
	require.NoError(t, err)

	info, err := db.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, path, info.Path)
	assert.Equal(t, []string{"reports", "tasks"}, info.Tables)
	assert.Greater(t, info.Size, int64(0))
	assert.False(t, info.LastModified.IsZero())
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.sqlite")

	first := openTestDB(t, path)
	require.NoError(t, first.Exec("INSERT INTO reports (name, created_by) VALUES ('kept', 'u')").Error)
	require.NoError(t, first.Close())

	second := openTestDB(t, path)
	require.NoError(t, second.Migrate(migrations.Files))

	var count int64
	require.NoError(t, second.Table("reports").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestOpen_InitError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	tests := []struct {
		name string
		path string
	}{
		{name: "empty path", path: ""},
		{name: "parent is a regular file", path: filepath.Join(blocker, "sub", "database.sqlite")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(config.Database{Path: tt.path}, logger.NewNop(), migrations.Files)
			assert.ErrorIs(t, err, ErrStorageInit)
		})
	}
}

func TestPing(t *testing.T) {
	db := openTestDB(t, filepath.Join(t.TempDir(), "database.sqlite"))
	ctx := context.Background()

	require.NoError(t, db.Ping(ctx))

	require.NoError(t, db.Close())
	assert.ErrorIs(t, db.Ping(ctx), ErrStorageUnavailable)
	assert.NoError(t, db.Close())

	_, err := db.Info(ctx)
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	var nilDB *DB
	assert.False(t, nilDB.Available())
}

func TestTruncate(t *testing.T) {
	db := openTestDB(t, filepath.Join(t.TempDir(), "database.sqlite"))
	ctx := context.Background()

	require.NoError(t, db.Exec("INSERT INTO reports (name, created_by) VALUES ('a', 'u')").Error)
	require.NoError(t, db.Exec("INSERT INTO tasks (name, type, report_id) VALUES ('t', 'report', 1)").Error)

	require.NoError(t, db.Truncate(ctx, "tasks", "reports"))

	for _, table := range []string{"reports", "tasks"} {
		var count int64
		require.NoError(t, db.Table(table).Count(&count).Error)
		assert.Zero(t, count, table)
	}
}
