package models

// WebSocket message types

type WSMessage struct {
	Type      string `json:"type"` // "log" | "error" | "status_update" | "workflow_complete"
	Message   string `json:"message,omitempty"`
	Step      string `json:"step,omitempty"`
	Status    string `json:"status,omitempty"`
	ProjectID int64  `json:"project_id,omitempty"`
}

// Pipeline step names as they appear in status_update events.
const (
	StepTrends   = "trends"
	StepFetch    = "fetch"
	StepAnalyze  = "analyze"
	StepGenerate = "generate"
)

// Step statuses.
const (
	StatusRunning  = "running"
	StatusComplete = "complete"
	StatusError    = "error"
	StatusPaused   = "paused"
)

type ErrorResponse struct {
	Error APIError `json:"error"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
