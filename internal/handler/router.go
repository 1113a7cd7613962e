package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the full HTTP surface with the global middleware stack.
func NewRouter(h *Handler, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(AccessLog(log))
	r.Use(CORS)

	r.Get("/health", HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Get("/events", h.ListEvents)
		r.Post("/events/register", h.RegisterEvent)
		r.Get("/animals", h.ListAnimals)
		r.Post("/contact", h.SubmitContact)
		r.Post("/volunteer", h.SubmitVolunteer)
	})

	return r
}
