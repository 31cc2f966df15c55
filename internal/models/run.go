package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunStatus represents valid suite run states
type RunStatus string

// Run statuses
const (
	RunStatusRunning RunStatus = "running"
	RunStatusPassed  RunStatus = "passed"
	RunStatusFailed  RunStatus = "failed"
)

// ScenarioStatus is the outcome of a single scenario
type ScenarioStatus string

// Scenario statuses
const (
	ScenarioPassed  ScenarioStatus = "passed"
	ScenarioFailed  ScenarioStatus = "failed"
	ScenarioSkipped ScenarioStatus = "skipped"
)

// Run is one execution of a browser suite
type Run struct {
	ID         string
	Suite      string
	Status     RunStatus
	StartedAt  time.Time
	FinishedAt *time.Time
	Scenarios  []ScenarioResult
}

// ScenarioResult is the outcome of one test inside a run
type ScenarioResult struct {
	ID       string
	RunID    string
	Name     string
	Status   ScenarioStatus
	Duration time.Duration
	Message  string
}

// Domain errors
var (
	ErrInvalidSuite            = errors.New("suite name cannot be empty")
	ErrInvalidScenarioName     = errors.New("scenario name cannot be empty")
	ErrInvalidScenarioStatus   = errors.New("invalid scenario status")
	ErrInvalidStatusTransition = errors.New("invalid run status transition")
	ErrRunNotFound             = errors.New("run not found")
)

// NewRun starts a run for the named suite
func NewRun(suite string) (*Run, error) {
	if suite == "" {
		return nil, ErrInvalidSuite
	}
	return &Run{
		ID:        uuid.New().String(),
		Suite:     suite,
		Status:    RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}, nil
}

// NewScenarioResult validates and builds a scenario outcome for a run
func NewScenarioResult(runID, name string, status ScenarioStatus, duration time.Duration, message string) (*ScenarioResult, error) {
	if name == "" {
		return nil, ErrInvalidScenarioName
	}
	switch status {
	case ScenarioPassed, ScenarioFailed, ScenarioSkipped:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidScenarioStatus, status)
	}
	if duration < 0 {
		duration = 0
	}
	return &ScenarioResult{
		ID:       uuid.New().String(),
		RunID:    runID,
		Name:     name,
		Status:   status,
		Duration: duration,
		Message:  message,
	}, nil
}

// Finish closes a running run as passed or failed
func (r *Run) Finish(failed bool) error {
	if r.Status != RunStatusRunning {
		return fmt.Errorf("%w: cannot finish run with status %s", ErrInvalidStatusTransition, r.Status)
	}

	r.Status = RunStatusPassed
	if failed {
		r.Status = RunStatusFailed
	}
	now := time.Now().UTC()
	r.FinishedAt = &now
	return nil
}

// IsRunning returns true while the run has not finished
func (r *Run) IsRunning() bool {
	return r.Status == RunStatusRunning
}

// Duration is the wall time of a finished run, zero while running
func (r *Run) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Counts tallies scenarios by status
func (r *Run) Counts() map[ScenarioStatus]int {
	counts := map[ScenarioStatus]int{ScenarioPassed: 0, ScenarioFailed: 0, ScenarioSkipped: 0}
	for _, s := range r.Scenarios {
		counts[s.Status]++
	}
	return counts
}

// HasFailures reports whether any scenario failed
func (r *Run) HasFailures() bool {
	for _, s := range r.Scenarios {
		if s.Status == ScenarioFailed {
			return true
		}
	}
	return false
}
