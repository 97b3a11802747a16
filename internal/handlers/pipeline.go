package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mosesab/viralytics/internal/models"
	"github.com/mosesab/viralytics/internal/repository"
)

type workflowRunner interface {
	RunStage(ctx context.Context, step string, projectID int64) error
	RunAll(ctx context.Context, projectID int64) error
}

// PipelineHandler triggers pipeline work. Runs happen in the background;
// callers follow progress over the websocket event stream.
type PipelineHandler struct {
	runner workflowRunner
	store  projectStore
}

var validSteps = map[string]bool{
	models.StepTrends:   true,
	models.StepFetch:    true,
	models.StepAnalyze:  true,
	models.StepGenerate: true,
}

func NewPipelineHandler(runner workflowRunner, store projectStore) *PipelineHandler {
	return &PipelineHandler{runner: runner, store: store}
}

func (h *PipelineHandler) RunStep(w http.ResponseWriter, r *http.Request) {
	step := chi.URLParam(r, "step")
	if !validSteps[step] {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Unknown pipeline step"))
		return
	}

	projectID, ok := h.resolveProject(w, r)
	if !ok {
		return
	}

	// Detached from the request context so the run outlives the response.
	go func() {
		if err := h.runner.RunStage(context.Background(), step, projectID); err != nil {
			log.Printf("pipeline step %s failed for project %d: %v", step, projectID, err)
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"status":     "started",
		"step":       step,
		"project_id": projectID,
	})
}

func (h *PipelineHandler) RunAll(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.resolveProject(w, r)
	if !ok {
		return
	}

	go func() {
		if err := h.runner.RunAll(context.Background(), projectID); err != nil {
			log.Printf("pipeline workflow failed for project %d: %v", projectID, err)
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"status":     "started",
		"step":       "all",
		"project_id": projectID,
	})
}

func (h *PipelineHandler) resolveProject(w http.ResponseWriter, r *http.Request) (int64, bool) {
	projectID, ok := projectIDParam(w, r)
	if !ok {
		return 0, false
	}
	if _, err := h.store.GetProject(r.Context(), projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Project not found"))
			return 0, false
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load project"))
		return 0, false
	}
	return projectID, true
}
