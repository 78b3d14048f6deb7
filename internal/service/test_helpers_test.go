package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/ccamposlozano/fitness-tracker-ai/internal/db"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fittrack.db")
	sqldb, err := db.OpenMigrated(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { sqldb.Close() })
	return sqldb
}
