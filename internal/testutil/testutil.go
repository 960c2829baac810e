// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/alloy/db"
	"github.com/Ramsey-B/alloy/pkg/database"
	"github.com/Ramsey-B/alloy/pkg/logging"
)

// Logger returns a logger that discards output.
func Logger() ectologger.Logger {
	return logging.Nop()
}

// NewSQLiteDB opens a fresh SQLite database in a temp dir and applies the
// embedded migrations. The database is closed when the test ends.
func NewSQLiteDB(t *testing.T) database.DB {
	t.Helper()

	cfg := database.Config{
		Driver:     database.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "alloy.db"),
	}

	store, err := database.Open(context.Background(), cfg, Logger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	Migrate(t, store)
	return store
}

// Migrate applies the embedded migrations to store.
func Migrate(t *testing.T, store database.DB) {
	t.Helper()

	svc := database.NewMigrationService(Logger(), &database.MigrationConfig{Embedded: db.Migrations})
	require.NoError(t, svc.Migrate(store))
}

// Insert writes rows into table in a single statement.
func Insert(t *testing.T, store database.DB, table string, cols []string, rows ...[]any) {
	t.Helper()

	query, args := database.MultiInsert(store.Flavor(), table, cols, rows)
	_, err := store.ExecContext(context.Background(), query, args...)
	require.NoError(t, err)
}

// Count returns the number of rows in table.
func Count(t *testing.T, store database.DB, table string) int {
	t.Helper()

	var n int
	require.NoError(t, store.GetContext(context.Background(), &n, "SELECT COUNT(*) FROM "+table))
	return n
}

func Ptr[T any](v T) *T {
	return &v
}
