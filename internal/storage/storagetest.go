package storage

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

// NewTestDB returns a migrated SQLite database in a per-test temp dir.
// It lives in a non-test file so other packages' tests can share it.
func NewTestDB(t testing.TB) *DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "candidates.db")
	if err := Migrate("sqlite", path, zap.NewNop()); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	db, err := NewDB("sqlite", path, Options{}, zap.NewNop())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(db.Close)
	return db
}
