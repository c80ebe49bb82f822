package testutils

import (
	"context"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// TestDB connects to the integration-test database named by
// TEST_DATABASE_URL and ensures the schema exists. Tests that need it are
// skipped when the variable is unset.
func TestDB(t testing.TB) *sqlx.DB {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database test")
	}

	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		t.Fatalf("Could not connect to database: %s", err)
	}
	t.Cleanup(func() { db.Close() })

	var count int
	err = db.GetContext(context.Background(), &count, "SELECT COUNT(*) FROM pg_tables WHERE tablename = 'events'")
	if err != nil || count == 0 {
		migration, err := os.ReadFile("../../migrations/001_initial_schema.up.sql")
		if err != nil {
			t.Fatalf("Could not read migration file: %s", err)
		}
		if _, err := db.ExecContext(context.Background(), string(migration)); err != nil {
			t.Fatalf("Could not run migrations: %s", err)
		}
	}

	return db
}
