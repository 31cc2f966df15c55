package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stockops/adjustment-e2e/internal/models"
)

// MockRunRepository is a mock implementation of RunRepository for testing
type MockRunRepository struct {
	CreateRunFunc   func(*models.Run) error
	FinishRunFunc   func(*models.Run) error
	AddScenarioFunc func(*models.ScenarioResult) error
	ListRunsFunc    func(int) ([]*models.Run, error)
	GetRunFunc      func(string) (*models.Run, error)
}

func (m *MockRunRepository) CreateRun(run *models.Run) error {
	if m.CreateRunFunc != nil {
		return m.CreateRunFunc(run)
	}
	return nil
}

func (m *MockRunRepository) FinishRun(run *models.Run) error {
	if m.FinishRunFunc != nil {
		return m.FinishRunFunc(run)
	}
	return nil
}

func (m *MockRunRepository) AddScenario(res *models.ScenarioResult) error {
	if m.AddScenarioFunc != nil {
		return m.AddScenarioFunc(res)
	}
	return nil
}

func (m *MockRunRepository) ListRuns(limit int) ([]*models.Run, error) {
	if m.ListRunsFunc != nil {
		return m.ListRunsFunc(limit)
	}
	return nil, nil
}

func (m *MockRunRepository) GetRun(id string) (*models.Run, error) {
	if m.GetRunFunc != nil {
		return m.GetRunFunc(id)
	}
	return &models.Run{ID: id, Status: models.RunStatusRunning}, nil
}

func TestRunService_StartRun(t *testing.T) {
	tests := []struct {
		name      string
		suite     string
		mockError error
		wantErr   bool
	}{
		{name: "successful start", suite: "adjustmentlist"},
		{name: "empty suite", suite: "", wantErr: true},
		{name: "repository error", suite: "adjustmentlist", mockError: errors.New("database error"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockRunRepository{
				CreateRunFunc: func(run *models.Run) error {
					if run.ID == "" {
						t.Error("Run ID should not be empty")
					}
					return tt.mockError
				},
			}

			run, err := NewRunService(mockRepo).StartRun(tt.suite)
			if (err != nil) != tt.wantErr {
				t.Fatalf("StartRun() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && run.Status != models.RunStatusRunning {
				t.Errorf("Expected status running, got %s", run.Status)
			}
		})
	}
}

func TestRunService_RecordScenario(t *testing.T) {
	var stored *models.ScenarioResult
	mockRepo := &MockRunRepository{
		AddScenarioFunc: func(res *models.ScenarioResult) error {
			stored = res
			return nil
		},
	}
	svc := NewRunService(mockRepo)

	if err := svc.RecordScenario("run-1", "TestList/render", models.ScenarioPassed, 2*time.Second, ""); err != nil {
		t.Fatalf("RecordScenario() error = %v", err)
	}
	if stored == nil || stored.RunID != "run-1" || stored.Name != "TestList/render" {
		t.Errorf("Unexpected stored scenario %+v", stored)
	}

	err := svc.RecordScenario("run-1", "", models.ScenarioPassed, 0, "")
	if !errors.Is(err, models.ErrInvalidScenarioName) {
		t.Errorf("Expected ErrInvalidScenarioName, got %v", err)
	}
}

func TestRunService_FinishRun(t *testing.T) {
	tests := []struct {
		name       string
		scenarios  []models.ScenarioResult
		status     models.RunStatus
		getErr     error
		wantStatus models.RunStatus
		wantErr    bool
	}{
		{
			name:       "all passed",
			scenarios:  []models.ScenarioResult{{Status: models.ScenarioPassed}, {Status: models.ScenarioSkipped}},
			status:     models.RunStatusRunning,
			wantStatus: models.RunStatusPassed,
		},
		{
			name:       "one failed",
			scenarios:  []models.ScenarioResult{{Status: models.ScenarioPassed}, {Status: models.ScenarioFailed}},
			status:     models.RunStatusRunning,
			wantStatus: models.RunStatusFailed,
		},
		{
			name:    "already finished",
			status:  models.RunStatusPassed,
			wantErr: true,
		},
		{
			name:    "run not found",
			getErr:  models.ErrRunNotFound,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finished := false
			mockRepo := &MockRunRepository{
				GetRunFunc: func(id string) (*models.Run, error) {
					if tt.getErr != nil {
						return nil, tt.getErr
					}
					return &models.Run{ID: id, Status: tt.status, Scenarios: tt.scenarios}, nil
				},
				FinishRunFunc: func(run *models.Run) error {
					finished = true
					return nil
				},
			}

			run, err := NewRunService(mockRepo).FinishRun("run-1")
			if (err != nil) != tt.wantErr {
				t.Fatalf("FinishRun() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if finished {
					t.Error("Repository FinishRun should not be called on error")
				}
				return
			}
			if run.Status != tt.wantStatus {
				t.Errorf("Expected status %s, got %s", tt.wantStatus, run.Status)
			}
			if !finished {
				t.Error("Repository FinishRun should be called")
			}
		})
	}
}

func TestRunService_Recent(t *testing.T) {
	var gotLimit int
	mockRepo := &MockRunRepository{
		ListRunsFunc: func(limit int) ([]*models.Run, error) {
			gotLimit = limit
			return []*models.Run{{ID: "a"}}, nil
		},
	}
	svc := NewRunService(mockRepo)

	runs, err := svc.Recent(0)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if gotLimit != 20 {
		t.Errorf("Expected default limit 20, got %d", gotLimit)
	}
	if len(runs) != 1 {
		t.Errorf("Expected 1 run, got %d", len(runs))
	}
}
