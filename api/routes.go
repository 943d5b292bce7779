package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (s *Server) setupRoutes() {
	// Middleware stack
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(LoggerMiddleware(s.logger))
	s.router.Use(middleware.Recoverer)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("OK"))
		})

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/admission", s.handleCheckAdmission)
			r.Get("/preferences/{key}", s.handleGetPreference)
			r.Put("/preferences/{key}", s.handleSetPreference)
		})

		r.Get("/catalog", s.handleGetCatalog)
		r.Get("/quota", s.handleGetQuota)
	})
}
