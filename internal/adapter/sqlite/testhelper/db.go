// Package testhelper provides a migrated in-memory SQLite database for tests.
package testhelper

import (
	"context"
	"database/sql"
	"testing"

	"github.com/heartmarshall/lexicon-builder/internal/adapter/sqlite"
)

// SetupTestDB opens a private in-memory database, applies the embedded
// migrations and closes it via t.Cleanup.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.Open(ctx, sqlite.MemoryPath)
	if err != nil {
		t.Fatalf("testhelper: open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := sqlite.Migrate(ctx, db); err != nil {
		t.Fatalf("testhelper: migrate sqlite: %v", err)
	}
	return db
}

// CountRows returns the number of rows in table.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var n int
	if err := db.QueryRow(`SELECT count(*) FROM ` + table).Scan(&n); err != nil {
		t.Fatalf("testhelper: count %s: %v", table, err)
	}
	return n
}
