package browser

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/stockops/adjustment-e2e/internal/config"
	"github.com/stockops/adjustment-e2e/internal/database"
	"github.com/stockops/adjustment-e2e/internal/logger"
	"github.com/stockops/adjustment-e2e/internal/models"
	"github.com/stockops/adjustment-e2e/internal/repository"
	"github.com/stockops/adjustment-e2e/internal/services"
)

// Recorder writes scenario outcomes to the run history.
// A nil Recorder discards everything. Write failures are logged, never fatal.
type Recorder struct {
	runs services.RunService
	run  *models.Run
	log  *logger.Logger
	db   *sql.DB
}

// NewRecorder starts a run for suite on runs
func NewRecorder(runs services.RunService, suite string, log *logger.Logger) (*Recorder, error) {
	run, err := runs.StartRun(suite)
	if err != nil {
		return nil, err
	}
	log.Info().Str("run_id", run.ID).Msg("recording run history")
	return &Recorder{runs: runs, run: run, log: log}, nil
}

// OpenRecorder connects to the configured run-history database.
// It returns nil, nil when recording is not configured.
func OpenRecorder(suite string, log *logger.Logger) (*Recorder, error) {
	pgConfig, err := config.LoadPostgresConfig(os.Getenv)
	if errors.Is(err, config.ErrResultsDBDisabled) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run-history config: %w", err)
	}

	db, err := database.Connect(pgConfig)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	rec, err := NewRecorder(services.NewRunService(repository.NewRunRepository(db)), suite, log)
	if err != nil {
		db.Close()
		return nil, err
	}
	rec.db = db
	return rec, nil
}

// RunID returns the current run id, empty for a nil recorder
func (r *Recorder) RunID() string {
	if r == nil {
		return ""
	}
	return r.run.ID
}

// Record stores one scenario outcome
func (r *Recorder) Record(name string, status models.ScenarioStatus, duration time.Duration, message string) {
	if r == nil {
		return
	}
	if err := r.runs.RecordScenario(r.run.ID, name, status, duration, message); err != nil {
		r.log.Warn().Err(err).Str("scenario", name).Msg("failed to record scenario")
	}
}

// Finish closes the run and the database connection
func (r *Recorder) Finish() {
	if r == nil {
		return
	}
	run, err := r.runs.FinishRun(r.run.ID)
	if err != nil {
		r.log.Warn().Err(err).Msg("failed to finish run")
	} else {
		r.log.Info().Str("run_id", run.ID).Str("status", string(run.Status)).Msg("run finished")
	}
	if r.db != nil {
		r.db.Close()
	}
}
