// Package testutil provisions a throwaway run-history schema for integration tests.
package testutil

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stockops/adjustment-e2e/internal/config"
	"github.com/stockops/adjustment-e2e/internal/database"
)

// TestDatabase is a migrated connection scoped to a private schema
type TestDatabase struct {
	DB     *sql.DB
	Schema string
}

// SetupTestDatabase creates a uniquely named schema, connects with it as the
// search_path and runs the run-history migrations inside it. The schema is
// dropped when the test finishes.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()

	cfg := &config.PostgresConfig{
		Host:     envOr("RESULTS_DB_HOST", "localhost"),
		User:     envOr("RESULTS_DB_USER", "postgres"),
		Password: envOr("RESULTS_DB_PASSWORD", "postgres"),
		Database: envOr("RESULTS_DB_NAME", "postgres"),
	}

	admin, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to run-history database: %v", err)
	}

	schema := "runs_test_" + uuid.NewString()[:8]
	quoted := pq.QuoteIdentifier(schema)
	if _, err := admin.Exec("CREATE SCHEMA " + quoted); err != nil {
		admin.Close()
		t.Fatalf("Failed to create schema %s: %v", schema, err)
	}
	t.Cleanup(func() {
		if _, err := admin.Exec("DROP SCHEMA IF EXISTS " + quoted + " CASCADE"); err != nil {
			t.Logf("Failed to drop schema %s: %v", schema, err)
		}
		admin.Close()
	})

	scoped := *cfg
	scoped.Schema = schema
	db, err := database.Connect(&scoped)
	if err != nil {
		t.Fatalf("Failed to connect to schema %s: %v", schema, err)
	}
	// Registered after the drop so it runs first
	t.Cleanup(func() { db.Close() })

	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("Failed to migrate schema %s: %v", schema, err)
	}

	return &TestDatabase{DB: db, Schema: schema}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
