package control

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/dennisdiepolder/workforcesim/internal/metrics"
	"github.com/dennisdiepolder/workforcesim/pkg/middleware"
)

// NewRouter builds the chi router for the control surface.
func NewRouter(ctrl *Controller, allowedOrigins []string, log zerolog.Logger) chi.Router {
	h := NewHandler(ctrl, log)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(allowedOrigins))

	r.Get("/health", h.Health)
	r.Get("/metrics", metrics.Get().Handler())

	r.Route("/sim", func(r chi.Router) {
		r.Post("/start", h.Start)
		r.Post("/pause", h.Pause)
		r.Post("/resume", h.Resume)
		r.Post("/reset", h.Reset)
		r.Post("/speed", h.Speed)
		r.Get("/snapshot", h.Snapshot)
		r.Get("/forecast", h.Forecast)
	})

	return r
}
