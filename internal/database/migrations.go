package database

import (
	"database/sql"
	"fmt"
)

// Schema creates the run-history tables
const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	id UUID PRIMARY KEY,
	suite VARCHAR(255) NOT NULL,
	status VARCHAR(50) NOT NULL,
	started_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	finished_at TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC);
CREATE INDEX IF NOT EXISTS idx_runs_suite ON runs(suite);

CREATE TABLE IF NOT EXISTS scenario_results (
	id UUID PRIMARY KEY,
	run_id UUID NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	name VARCHAR(512) NOT NULL,
	status VARCHAR(50) NOT NULL,
	duration_ms BIGINT NOT NULL DEFAULT 0,
	message TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_scenario_results_run_id ON scenario_results(run_id);
`

// RunMigrations creates the necessary database tables
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("database connection not initialized")
	}

	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create run-history tables: %w", err)
	}

	return nil
}
