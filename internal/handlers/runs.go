package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/stockops/adjustment-e2e/internal/logger"
	"github.com/stockops/adjustment-e2e/internal/models"
	"github.com/stockops/adjustment-e2e/internal/services"
)

const maxListLimit = 200

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ScenarioResponse is the JSON form of a scenario result
type ScenarioResponse struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	DurationMS int64  `json:"durationMs"`
	Message    string `json:"message,omitempty"`
}

// RunResponse is the JSON form of a run
type RunResponse struct {
	ID         string             `json:"id"`
	Suite      string             `json:"suite"`
	Status     string             `json:"status"`
	StartedAt  time.Time          `json:"startedAt"`
	FinishedAt *time.Time         `json:"finishedAt,omitempty"`
	DurationMS int64              `json:"durationMs"`
	Counts     map[string]int     `json:"counts,omitempty"`
	Scenarios  []ScenarioResponse `json:"scenarios,omitempty"`
}

func newRunResponse(run *models.Run, withScenarios bool) RunResponse {
	resp := RunResponse{
		ID:         run.ID,
		Suite:      run.Suite,
		Status:     string(run.Status),
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
		DurationMS: run.Duration().Milliseconds(),
	}
	if !withScenarios {
		return resp
	}

	resp.Counts = make(map[string]int)
	for status, n := range run.Counts() {
		resp.Counts[string(status)] = n
	}
	resp.Scenarios = make([]ScenarioResponse, 0, len(run.Scenarios))
	for _, s := range run.Scenarios {
		resp.Scenarios = append(resp.Scenarios, ScenarioResponse{
			Name:       s.Name,
			Status:     string(s.Status),
			DurationMS: s.Duration.Milliseconds(),
			Message:    s.Message,
		})
	}
	return resp
}

// RunsHandler lists recent suite runs
type RunsHandler struct {
	runService services.RunService
	log        *logger.Logger
}

// NewRunsHandler creates a new runs handler
func NewRunsHandler(runService services.RunService, log *logger.Logger) *RunsHandler {
	return &RunsHandler{
		runService: runService,
		log:        log,
	}
}

// ServeHTTP handles GET /runs?limit=N
func (h *RunsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			sendErrorResponse(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = min(n, maxListLimit)
	}

	runs, err := h.runService.Recent(limit)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list runs")
		sendErrorResponse(w, "Failed to list runs", http.StatusInternalServerError)
		return
	}

	resp := make([]RunResponse, 0, len(runs))
	for _, run := range runs {
		resp = append(resp, newRunResponse(run, false))
	}
	writeJSON(w, h.log, resp)
}

// RunHandler shows one run with its scenarios
type RunHandler struct {
	runService services.RunService
	log        *logger.Logger
}

// NewRunHandler creates a new run handler
func NewRunHandler(runService services.RunService, log *logger.Logger) *RunHandler {
	return &RunHandler{
		runService: runService,
		log:        log,
	}
}

// ServeHTTP handles GET /runs/{id}
func (h *RunHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		sendErrorResponse(w, "Missing run id", http.StatusBadRequest)
		return
	}

	run, err := h.runService.Get(id)
	if errors.Is(err, models.ErrRunNotFound) {
		sendErrorResponse(w, "Run not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("run_id", id).Msg("failed to get run")
		sendErrorResponse(w, "Failed to get run", http.StatusInternalServerError)
		return
	}

	writeJSON(w, h.log, newRunResponse(run, true))
}

func writeJSON(w http.ResponseWriter, log *logger.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// sendErrorResponse sends a JSON error response
func sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
