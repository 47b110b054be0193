package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vivasim/viva-api/internal/api/middleware"
)

// RouterDeps are the services the HTTP surface is built from.
type RouterDeps struct {
	Sessions   SessionService
	Portfolios PortfolioService
	Audio      AudioService
	Logger     *slog.Logger
}

// NewRouter assembles the service's HTTP routes.
func NewRouter(deps RouterDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Trace)
	r.Use(middleware.Metrics)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	sessions := NewSessionHandler(deps.Sessions, deps.Logger)
	portfolios := NewPortfolioHandler(deps.Portfolios, deps.Logger)
	audio := NewAudioHandler(deps.Audio, deps.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessions.Start)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", sessions.Get)
				r.Delete("/", sessions.End)
				r.Post("/answers", sessions.SubmitAnswer)
			})
		})
		r.Post("/portfolios/validate", portfolios.Validate)
		r.Route("/audio", func(r chi.Router) {
			r.Post("/transcriptions", audio.Transcribe)
			r.Post("/speech", audio.Synthesize)
		})
	})

	return r
}
