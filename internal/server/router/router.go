// Package router assembles the HTTP surface of the server.
package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/iudanet/futbol/internal/server/handlers"
	"github.com/iudanet/futbol/internal/server/middleware"
)

type Config struct {
	Logger        *slog.Logger
	AuthHandler   *handlers.AuthHandler
	MatchHandler  *handlers.MatchHandler
	HealthHandler *handlers.HealthHandler
	RequireAuth   func(http.Handler) http.Handler
	Secure        func(http.Handler) http.Handler // security headers, optional
	AuthRateLimit func(http.Handler) http.Handler // register and login, optional
	Metrics       *middleware.Metrics             // nil disables /metrics
	CORSOrigins   []string
}

func New(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(middleware.RecoveryMiddleware(cfg.Logger))
	r.Use(middleware.LoggingWithSkip(cfg.Logger, []string{"/ping", "/health", "/metrics"}))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	r.Get("/ping", cfg.HealthHandler.Ping)
	r.Get("/health", cfg.HealthHandler.Health)
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler())
	}

	rateLimit := cfg.AuthRateLimit
	if rateLimit == nil {
		rateLimit = func(next http.Handler) http.Handler { return next }
	}

	r.Route("/auth", func(r chi.Router) {
		r.With(rateLimit).Post("/register", cfg.AuthHandler.Register)
		r.With(rateLimit).Post("/login", cfg.AuthHandler.Login)
		r.Post("/logout", cfg.AuthHandler.Logout)
		r.With(cfg.RequireAuth).Get("/me", cfg.AuthHandler.Me)
	})

	r.Route("/matches", func(r chi.Router) {
		r.Use(cfg.RequireAuth)
		r.Get("/", cfg.MatchHandler.List)
		r.Post("/", cfg.MatchHandler.Create)
		r.Get("/summary", cfg.MatchHandler.Summary)
		r.Get("/{id}", cfg.MatchHandler.Get)
		r.Put("/{id}", cfg.MatchHandler.Update)
		r.Delete("/{id}", cfg.MatchHandler.Delete)
	})

	return r
}
