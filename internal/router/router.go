package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mosesab/viralytics/internal/handlers"
	"github.com/mosesab/viralytics/internal/websocket"
)

func New(
	projectHandler *handlers.ProjectHandler,
	pipelineHandler *handlers.PipelineHandler,
	wsHub *websocket.Hub,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Project Routes ────
		r.Route("/projects", func(r chi.Router) {
			r.Post("/", projectHandler.Create)
			r.Get("/", projectHandler.List)
			r.Get("/{id}/summary", projectHandler.Summary)
			r.Post("/{id}/pause", projectHandler.TogglePause)
		})

		// ──── Pipeline Routes ────
		r.Route("/run", func(r chi.Router) {
			r.Post("/all/{id}", pipelineHandler.RunAll)
			r.Post("/{step}/{id}", pipelineHandler.RunStep)
		})

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}
