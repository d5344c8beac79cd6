package migration

import (
	"database/sql"
	"io/fs"
	"os"
	"testing"

	_ "github.com/lib/pq"

	"github.com/julianstephens/rihla/migrations"
)

// Set RIHLA_TEST_POSTGRES to a connection string to run these tests, e.g.
// RIHLA_TEST_POSTGRES="postgres://user@localhost:5432/rihla_test?sslmode=disable"
func setupPostgresTestDB(t *testing.T) *sql.DB {
	t.Helper()
	connStr := os.Getenv("RIHLA_TEST_POSTGRES")
	if connStr == "" {
		t.Skip("RIHLA_TEST_POSTGRES not set, skipping PostgreSQL integration test")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("failed to open postgres database: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Fatalf("failed to ping postgres database: %v", err)
	}

	t.Cleanup(func() {
		db.Exec("DROP TABLE IF EXISTS schema_version")
		db.Exec("DROP TABLE IF EXISTS snapshots")
		db.Close()
	})
	return db
}

func TestPostgresSetVersion(t *testing.T) {
	db := setupPostgresTestDB(t)
	runner, err := NewRunner(db, mapFS(map[string]string{"001_init.sql": "SELECT 1;"}), DriverPostgres)
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}

	for _, v := range []int{1, 2} {
		if err := runner.SetVersion(v); err != nil {
			t.Fatalf("SetVersion(%d) failed: %v", v, err)
		}
		got, err := runner.GetCurrentVersion()
		if err != nil {
			t.Fatalf("GetCurrentVersion failed: %v", err)
		}
		if got != v {
			t.Errorf("expected version %d, got %d", v, got)
		}
	}
}

func TestPostgresEmbeddedMigrations(t *testing.T) {
	db := setupPostgresTestDB(t)
	sub, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		t.Fatalf("fs.Sub failed: %v", err)
	}
	runner, err := NewRunner(db, sub, DriverPostgres)
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}

	count, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if count == 0 {
		t.Error("expected migrations to be applied on a fresh schema")
	}

	count, err = runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("second ApplyMigrations failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no-op on second run, got %d", count)
	}
}
