package models

import (
	"errors"
	"testing"
	"time"
)

func TestNewRun(t *testing.T) {
	tests := []struct {
		name    string
		suite   string
		wantErr error
	}{
		{name: "valid suite", suite: "adjustmentlist"},
		{name: "empty suite", suite: "", wantErr: ErrInvalidSuite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run, err := NewRun(tt.suite)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewRun() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if run.ID == "" {
				t.Error("Run ID should not be empty")
			}
			if run.Status != RunStatusRunning {
				t.Errorf("Expected status %s, got %s", RunStatusRunning, run.Status)
			}
			if run.FinishedAt != nil {
				t.Error("FinishedAt should be nil for a new run")
			}
			if run.Duration() != 0 {
				t.Errorf("Expected zero duration while running, got %s", run.Duration())
			}
		})
	}
}

func TestRun_Finish(t *testing.T) {
	tests := []struct {
		name       string
		failed     bool
		wantStatus RunStatus
	}{
		{name: "passed run", failed: false, wantStatus: RunStatusPassed},
		{name: "failed run", failed: true, wantStatus: RunStatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run, _ := NewRun("adjustmentform")
			if err := run.Finish(tt.failed); err != nil {
				t.Fatalf("Finish() error = %v", err)
			}
			if run.Status != tt.wantStatus {
				t.Errorf("Expected status %s, got %s", tt.wantStatus, run.Status)
			}
			if run.FinishedAt == nil {
				t.Fatal("FinishedAt should be set")
			}
			if run.IsRunning() {
				t.Error("Run should not be running after Finish")
			}

			err := run.Finish(false)
			if !errors.Is(err, ErrInvalidStatusTransition) {
				t.Errorf("Expected ErrInvalidStatusTransition on second Finish, got %v", err)
			}
		})
	}
}

func TestNewScenarioResult(t *testing.T) {
	tests := []struct {
		name     string
		scenario string
		status   ScenarioStatus
		duration time.Duration
		wantErr  error
	}{
		{name: "passed", scenario: "TestList/pagination", status: ScenarioPassed, duration: time.Second},
		{name: "skipped", scenario: "TestList/download", status: ScenarioSkipped},
		{name: "empty name", scenario: "", status: ScenarioPassed, wantErr: ErrInvalidScenarioName},
		{name: "unknown status", scenario: "TestList/x", status: "flaky", wantErr: ErrInvalidScenarioStatus},
		{name: "negative duration clamps", scenario: "TestList/y", status: ScenarioFailed, duration: -time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewScenarioResult("run-1", tt.scenario, tt.status, tt.duration, "")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewScenarioResult() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if res.RunID != "run-1" {
				t.Errorf("Expected run ID run-1, got %s", res.RunID)
			}
			if res.Duration < 0 {
				t.Errorf("Duration should never be negative, got %s", res.Duration)
			}
		})
	}
}

func TestRun_Counts(t *testing.T) {
	run := &Run{Scenarios: []ScenarioResult{
		{Status: ScenarioPassed},
		{Status: ScenarioPassed},
		{Status: ScenarioSkipped},
	}}

	counts := run.Counts()
	if counts[ScenarioPassed] != 2 || counts[ScenarioSkipped] != 1 || counts[ScenarioFailed] != 0 {
		t.Errorf("Unexpected counts: %v", counts)
	}
	if run.HasFailures() {
		t.Error("Run without failed scenarios should not report failures")
	}

	run.Scenarios = append(run.Scenarios, ScenarioResult{Status: ScenarioFailed})
	if !run.HasFailures() {
		t.Error("Run with a failed scenario should report failures")
	}
}
