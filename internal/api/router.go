package api

import (
	"log/slog"
	"net/http"
	"stop-viewer-service/internal/api/handlers"
	"stop-viewer-service/internal/api/sessions"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type RouterConfig struct {
	Sessions       *sessions.Registry
	AllowedOrigins []string
	StaticDir      string
	Logger         *slog.Logger
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	healthHandler := &handlers.HealthHandler{Sessions: cfg.Sessions}
	stopHandler := &handlers.StopHandler{Sessions: cfg.Sessions}
	viewHandler := &handlers.ViewHandler{}
	filterHandler := &handlers.FilterHandler{}
	eventHandler := handlers.NewEventHandler(cfg.AllowedOrigins)

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Use(recoveryMiddleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
	}))

	r.Get("/health", healthHandler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/stops", stopHandler.List)

		r.Group(func(r chi.Router) {
			r.Use(sessionMiddleware(cfg.Sessions))

			r.Get("/view", viewHandler.View)
			r.Get("/events", eventHandler.Stream)

			r.Post("/stops/{id}/favorite", viewHandler.ToggleFavorite)
			r.Post("/stops/{id}/select", viewHandler.Select)
			r.Delete("/selection", viewHandler.ClearSelection)
			r.Put("/detail/suppressed", viewHandler.SetDetailSuppressed)

			r.Put("/filters", filterHandler.Update)
			r.Put("/filters/diet/{tag}", filterHandler.SetDietTag)
			r.Put("/filters/favorites-only", filterHandler.SetFavoritesOnly)
			r.Put("/filters/search", filterHandler.SetSearch)
			r.Post("/filters/reset", filterHandler.Reset)
		})
	})

	if cfg.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	return r
}
