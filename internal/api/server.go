package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/docpage/internal/config"
	"github.com/dgallion1/docpage/internal/page"
	"github.com/dgallion1/docpage/internal/site"
)

// Server is the HTTP server for docpage.
type Server struct {
	router    chi.Router
	site      *site.Site
	assembler *page.Assembler
	metrics   *Metrics
	log       *slog.Logger
	cfg       config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(s *site.Site, metrics *Metrics, log *slog.Logger, cfg config.Config) *Server {
	srv := &Server{
		site:      s,
		assembler: page.NewAssembler(log),
		metrics:   metrics,
		log:       log,
		cfg:       cfg,
	}
	srv.setupRoutes()
	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())

	// API endpoints, authenticated when a key is configured.
	r.Route("/api", func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}
		r.Get("/pages", s.handleListPages)
		r.Get("/pages/{id}/toc", s.handlePageTOC)
		r.Post("/transform", s.handleTransform)
	})

	// Everything else is a documentation page.
	r.Get("/*", s.handlePage)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
