package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/stockops/adjustment-e2e/internal/models"
)

// RunRepository handles database operations for suite runs
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a run repository over an open connection
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{
		db: db,
	}
}

// CreateRun inserts a new run
func (r *RunRepository) CreateRun(run *models.Run) error {
	query := `
		INSERT INTO runs (id, suite, status, started_at)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := r.db.Exec(query, run.ID, run.Suite, run.Status, run.StartedAt); err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	return nil
}

// FinishRun stores the final status of a run
func (r *RunRepository) FinishRun(run *models.Run) error {
	query := `
		UPDATE runs
		SET status = $1, finished_at = $2
		WHERE id = $3
	`

	result, err := r.db.Exec(query, run.Status, run.FinishedAt, run.ID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrRunNotFound
	}

	return nil
}

// AddScenario stores one scenario outcome
func (r *RunRepository) AddScenario(res *models.ScenarioResult) error {
	query := `
		INSERT INTO scenario_results (id, run_id, name, status, duration_ms, message)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(query,
		res.ID,
		res.RunID,
		res.Name,
		res.Status,
		res.Duration.Milliseconds(),
		res.Message,
	)
	if err != nil {
		return fmt.Errorf("failed to add scenario result: %w", err)
	}

	return nil
}

// ListRuns returns the most recent runs, newest first, without scenarios
func (r *RunRepository) ListRuns(limit int) ([]*models.Run, error) {
	query := `
		SELECT id, suite, status, started_at, finished_at
		FROM runs
		ORDER BY started_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	return runs, nil
}

// GetRun returns a run with its scenarios in recording order
func (r *RunRepository) GetRun(id string) (*models.Run, error) {
	query := `
		SELECT id, suite, status, started_at, finished_at
		FROM runs
		WHERE id = $1
	`

	run, err := scanRun(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}

	scenarios, err := r.scenarios(id)
	if err != nil {
		return nil, err
	}
	run.Scenarios = scenarios

	return run, nil
}

func (r *RunRepository) scenarios(runID string) ([]models.ScenarioResult, error) {
	query := `
		SELECT id, run_id, name, status, duration_ms, message
		FROM scenario_results
		WHERE run_id = $1
		ORDER BY created_at, name
	`

	rows, err := r.db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get scenario results: %w", err)
	}
	defer rows.Close()

	var results []models.ScenarioResult
	for rows.Next() {
		var (
			res models.ScenarioResult
			ms  int64
		)
		if err := rows.Scan(&res.ID, &res.RunID, &res.Name, &res.Status, &ms, &res.Message); err != nil {
			return nil, fmt.Errorf("failed to scan scenario result: %w", err)
		}
		res.Duration = time.Duration(ms) * time.Millisecond
		results = append(results, res)
	}

	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*models.Run, error) {
	var (
		run      models.Run
		finished sql.NullTime
	)
	if err := s.Scan(&run.ID, &run.Suite, &run.Status, &run.StartedAt, &finished); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}
	if finished.Valid {
		t := finished.Time
		run.FinishedAt = &t
	}
	return &run, nil
}
