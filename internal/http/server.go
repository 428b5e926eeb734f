// Package http serves the sales dataset as a JSON API: filtered records,
// facet lists, revenue summaries, dataset status, refresh triggering and
// XLSX export.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"salesdash/internal/cache"
	"salesdash/internal/core"
	"salesdash/internal/dataset"
)

type Server struct {
	http.Server

	store   *dataset.Store
	limiter *rateLimiter
	logger  *slog.Logger

	// Summaries are cheap to recompute but requested on every filter
	// change, so they are cached keyed on dataset version + query.
	summaryCache *cache.LRU[core.Summary]

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, store *dataset.Store, logger *slog.Logger) *Server {
	s := &Server{
		store:        store,
		limiter:      newRateLimiter(),
		logger:       logger,
		summaryCache: cache.NewLRU[core.Summary](200, 5*time.Minute),
	}

	r := chi.NewRouter()
	r.Use(requestLogger(logger))
	r.Use(securityHeaders)
	r.Use(s.rateLimit)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/records", s.handleRecords)
		r.Get("/facets", s.handleFacets)
		r.Get("/summary", s.handleSummary)
		r.Get("/status", s.handleStatus)
		r.Get("/export", s.handleExport)
		r.Post("/refresh", s.handleRefresh)
	})

	s.Server = http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Shutdown gracefully shuts down the server and its cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.limiter != nil {
			s.limiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
