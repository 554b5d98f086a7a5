// Package testdb opens throwaway sqlite databases for tests.
package testdb

import (
	"path/filepath"
	"testing"

	"github.com/shinyyama/items-api/internal/config"
	"github.com/shinyyama/items-api/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Open connects to a fresh sqlite file under t.TempDir with the items table
// already migrated. The pool is closed when the test ends.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	cfg := &config.Config{
		DBDriver:       config.DriverSQLite,
		DBPath:         filepath.Join(t.TempDir(), "items.db"),
		DBLogLevel:     "silent",
		DBMaxOpenConns: 4,
		DBMaxIdleConns: 4,
	}
	gdb, err := db.Connect(cfg)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}
