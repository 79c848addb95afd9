// Package server provides the HTTP server and routing for the watchlist
// aggregation service.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/quotewatch/quotewatch/internal/config"
	alerthandlers "github.com/quotewatch/quotewatch/internal/modules/alerts/handlers"
	detailhandlers "github.com/quotewatch/quotewatch/internal/modules/details/handlers"
	"github.com/quotewatch/quotewatch/internal/modules/directory"
	directoryhandlers "github.com/quotewatch/quotewatch/internal/modules/directory/handlers"
	newshandlers "github.com/quotewatch/quotewatch/internal/modules/news/handlers"
	recommendationhandlers "github.com/quotewatch/quotewatch/internal/modules/recommendations/handlers"
	sessionhandlers "github.com/quotewatch/quotewatch/internal/modules/session/handlers"
)

// Config holds server configuration and the per-module handlers.
type Config struct {
	Log                    zerolog.Logger
	Config                 *config.Config
	Port                   int
	DevMode                bool
	Directory              *directory.Directory
	DirectoryHandlers      *directoryhandlers.Handler
	SessionHandlers        *sessionhandlers.Handler
	NewsHandlers           *newshandlers.Handler
	AlertHandlers          *alerthandlers.Handler
	RecommendationHandlers *recommendationhandlers.Handler
	DetailHandlers         *detailhandlers.Handler
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	cfg            *config.Config
	directory      *directory.Directory
	systemHandlers *SystemHandlers

	directoryHandlers      *directoryhandlers.Handler
	sessionHandlers        *sessionhandlers.Handler
	newsHandlers           *newshandlers.Handler
	alertHandlers          *alerthandlers.Handler
	recommendationHandlers *recommendationhandlers.Handler
	detailHandlers         *detailhandlers.Handler
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:                 chi.NewRouter(),
		log:                    cfg.Log.With().Str("component", "server").Logger(),
		cfg:                    cfg.Config,
		directory:              cfg.Directory,
		systemHandlers:         NewSystemHandlers(cfg.Log, cfg.Config.DataDir, cfg.Directory),
		directoryHandlers:      cfg.DirectoryHandlers,
		sessionHandlers:        cfg.SessionHandlers,
		newsHandlers:           cfg.NewsHandlers,
		alertHandlers:          cfg.AlertHandlers,
		recommendationHandlers: cfg.RecommendationHandlers,
		detailHandlers:         cfg.DetailHandlers,
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// Timeout
	s.router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Compress responses
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/companies", s.directoryHandlers.HandleCompanies)

		r.Get("/favorites", s.sessionHandlers.HandleGetFavorites)
		r.Post("/favorites", s.sessionHandlers.HandleSetFavorites)
		r.Get("/recent-searches", s.sessionHandlers.HandleRecentSearches)

		r.Get("/news", s.newsHandlers.HandleNews)
		r.Get("/alerts", s.alertHandlers.HandleAlerts)
		r.Get("/recommendations", s.recommendationHandlers.HandleRecommendations)
		r.Get("/company-details/{symbol}", s.detailHandlers.HandleCompanyDetails)

		r.Get("/system/status", s.systemHandlers.HandleSystemStatus)
	})
}

// Start begins serving HTTP requests. It blocks until the server stops.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP server starting")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("HTTP server shutting down")
	return s.server.Shutdown(ctx)
}

// Router exposes the configured router. Used by tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
