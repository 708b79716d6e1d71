package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sivalingapandian/therapist-checkin/internal/directory"
	httpmiddleware "github.com/sivalingapandian/therapist-checkin/internal/http/middleware"
	"github.com/sivalingapandian/therapist-checkin/internal/scheduling"
	"github.com/sivalingapandian/therapist-checkin/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	DirectoryHandler   *directory.Handler
	SchedulingHandler  *scheduling.Handler
	APIToken           string
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}
	if cfg.RateLimitRPS > 0 {
		r.Use(httpmiddleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}

	// Public endpoints (health check, metrics)
	r.Group(func(public chi.Router) {
		public.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ok"))
		})
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	// API endpoints, protected by the static API token
	r.Group(func(api chi.Router) {
		api.Use(httpmiddleware.APIKey(cfg.APIToken))

		api.Route("/therapists", func(r chi.Router) {
			r.Get("/", cfg.DirectoryHandler.List)
			r.Post("/", cfg.DirectoryHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", cfg.DirectoryHandler.Get)
				r.Put("/", cfg.DirectoryHandler.Update)
				r.Delete("/", cfg.DirectoryHandler.Delete)
			})
		})

		api.Route("/appointments", func(r chi.Router) {
			r.Get("/", cfg.SchedulingHandler.List)
			r.Post("/", cfg.SchedulingHandler.CreateAppointment)
		})

		api.Post("/check-in", cfg.SchedulingHandler.CreateCheckIn)
	})

	return r
}
