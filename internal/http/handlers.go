package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"salesdash/internal/core"
	"salesdash/internal/exporter"
	"salesdash/internal/filter"
)

type recordsResponse struct {
	Records []core.SaleRecord `json:"records"`
	Matched int               `json:"matched"`
	Total   int               `json:"total"`
	Version uint64            `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	spec, err := filterFromQuery(r.URL.Query())
	if err != nil {
		badRequest(w, r, err)
		return
	}

	records := s.store.Records()
	matched := filter.Apply(records, spec)
	render.JSON(w, r, recordsResponse{
		Records: matched,
		Matched: len(matched),
		Total:   len(records),
		Version: s.store.Version(),
	})
}

// handleFacets returns the distinct values of each filterable dimension,
// always derived from the full dataset so choice lists stay stable while
// filters are active.
func (s *Server) handleFacets(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, filter.ExtractFacets(s.store.Records()))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	spec, err := filterFromQuery(r.URL.Query())
	if err != nil {
		badRequest(w, r, err)
		return
	}

	// Encode() sorts keys, so equivalent queries share a cache entry.
	key := fmt.Sprintf("%d|%s", s.store.Version(), r.URL.Query().Encode())
	if sum, ok := s.summaryCache.Get(key); ok {
		render.JSON(w, r, sum)
		return
	}

	sum := core.Summarize(filter.Apply(s.store.Records(), spec))
	s.summaryCache.Set(key, sum)
	render.JSON(w, r, sum)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.store.Status())
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Refresh(r.Context()); err != nil {
		s.logger.ErrorContext(r.Context(), "refresh failed", "error", err)
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, map[string]any{"error": err.Error(), "status": s.store.Status()})
		return
	}
	render.JSON(w, r, s.store.Status())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	spec, err := filterFromQuery(r.URL.Query())
	if err != nil {
		badRequest(w, r, err)
		return
	}

	matched := filter.Apply(s.store.Records(), spec)
	filename := "sales-" + time.Now().Format("2006-01-02") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := exporter.WriteXLSX(w, matched); err != nil {
		// Headers are already out; all we can do is log.
		s.logger.ErrorContext(r.Context(), "export failed", "error", err, "records", len(matched))
	}
}

func badRequest(w http.ResponseWriter, r *http.Request, err error) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, map[string]any{"error": err.Error()})
}
