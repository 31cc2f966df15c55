package services

import (
	"fmt"
	"time"

	"github.com/stockops/adjustment-e2e/internal/models"
)

// RunRepository defines the interface for run-history persistence
type RunRepository interface {
	CreateRun(run *models.Run) error
	FinishRun(run *models.Run) error
	AddScenario(res *models.ScenarioResult) error
	ListRuns(limit int) ([]*models.Run, error)
	GetRun(id string) (*models.Run, error)
}

// RunService handles suite run bookkeeping
type RunService interface {
	StartRun(suite string) (*models.Run, error)
	RecordScenario(runID, name string, status models.ScenarioStatus, duration time.Duration, message string) error
	FinishRun(runID string) (*models.Run, error)
	Recent(limit int) ([]*models.Run, error)
	Get(id string) (*models.Run, error)
}

// RunServiceImpl implements RunService
type RunServiceImpl struct {
	runRepo RunRepository
}

// NewRunService creates a new run service
func NewRunService(runRepo RunRepository) RunService {
	return &RunServiceImpl{
		runRepo: runRepo,
	}
}

// StartRun creates and persists a running run
func (s *RunServiceImpl) StartRun(suite string) (*models.Run, error) {
	run, err := models.NewRun(suite)
	if err != nil {
		return nil, fmt.Errorf("invalid run: %w", err)
	}

	if err := s.runRepo.CreateRun(run); err != nil {
		return nil, fmt.Errorf("failed to start run: %w", err)
	}

	return run, nil
}

// RecordScenario stores one scenario outcome against a run
func (s *RunServiceImpl) RecordScenario(runID, name string, status models.ScenarioStatus, duration time.Duration, message string) error {
	res, err := models.NewScenarioResult(runID, name, status, duration, message)
	if err != nil {
		return fmt.Errorf("invalid scenario result: %w", err)
	}

	if err := s.runRepo.AddScenario(res); err != nil {
		return fmt.Errorf("failed to record scenario: %w", err)
	}

	return nil
}

// FinishRun closes a run, failing it when any recorded scenario failed
func (s *RunServiceImpl) FinishRun(runID string) (*models.Run, error) {
	run, err := s.runRepo.GetRun(runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	if err := run.Finish(run.HasFailures()); err != nil {
		return nil, err
	}

	if err := s.runRepo.FinishRun(run); err != nil {
		return nil, fmt.Errorf("failed to finish run: %w", err)
	}

	return run, nil
}

// Recent lists the newest runs
func (s *RunServiceImpl) Recent(limit int) ([]*models.Run, error) {
	if limit <= 0 {
		limit = 20
	}
	runs, err := s.runRepo.ListRuns(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// Get returns one run with its scenarios
func (s *RunServiceImpl) Get(id string) (*models.Run, error) {
	run, err := s.runRepo.GetRun(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}
