package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mosesab/viralytics/internal/models"
	"github.com/mosesab/viralytics/internal/repository"
)

type projectStore interface {
	CreateProject(ctx context.Context, name, channelDescription string) (*models.Project, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id int64) (*models.Project, error)
	SetPaused(ctx context.Context, id int64, paused bool) error
	ProjectSummary(ctx context.Context, projectID int64) (*models.ProjectSummary, error)
}

type ProjectHandler struct {
	store projectStore
}

func NewProjectHandler(store projectStore) *ProjectHandler {
	return &ProjectHandler{store: store}
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body"))
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.ChannelDescription = strings.TrimSpace(req.ChannelDescription)
	if req.Name == "" || req.ChannelDescription == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "name and channel_description are required"))
		return
	}

	project, err := h.store.CreateProject(r.Context(), req.Name, req.ChannelDescription)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create project"))
		return
	}

	writeJSON(w, http.StatusCreated, project)
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.store.ListProjects(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list projects"))
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) Summary(w http.ResponseWriter, r *http.Request) {
	projectID, ok := projectIDParam(w, r)
	if !ok {
		return
	}

	if _, err := h.store.GetProject(r.Context(), projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Project not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load project"))
		return
	}

	summary, err := h.store.ProjectSummary(r.Context(), projectID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load project summary"))
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *ProjectHandler) TogglePause(w http.ResponseWriter, r *http.Request) {
	projectID, ok := projectIDParam(w, r)
	if !ok {
		return
	}

	var req models.TogglePauseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body"))
		return
	}

	if err := h.store.SetPaused(r.Context(), projectID, req.IsPaused); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Project not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update project"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":        projectID,
		"is_paused": req.IsPaused,
	})
}

func projectIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid project id"))
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:    code,
			Message: message,
		},
	}
}
