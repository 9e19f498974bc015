package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/BuzzLyutic/motion-bridge/pkg/respond"
)

// Routes mounts the full HTTP surface. Anything non-POST gets 405 no matter
// the path; a POST to an unknown path gets 404.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respond.Error(w, r, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		respond.Error(w, r, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok"}`)
	})

	r.Post("/bridge", h.Bridge)
	r.Post("/add-tasks", h.AddTasks)
	r.Post("/route", h.Route)

	return r
}
