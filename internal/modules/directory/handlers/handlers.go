// Package handlers provides HTTP handlers for company search.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/quotewatch/quotewatch/internal/domain"
	"github.com/quotewatch/quotewatch/internal/modules/directory"
)

// Enricher attaches live prices to search results.
type Enricher interface {
	Enrich(ctx context.Context, records []domain.CompanyRecord) []domain.EnrichedCompany
}

// SearchRecorder tracks queries in the session's recent-search log.
type SearchRecorder interface {
	RecordSearch(rawQuery string)
}

// Handler provides HTTP handlers for the company search endpoint.
type Handler struct {
	directory   *directory.Directory
	enricher    Enricher
	recorder    SearchRecorder
	resultLimit int
	log         zerolog.Logger
}

// NewHandler creates a company search handler. resultLimit caps results
// per request; enrichment is only attempted for the capped result set.
func NewHandler(dir *directory.Directory, enricher Enricher, recorder SearchRecorder, resultLimit int, log zerolog.Logger) *Handler {
	return &Handler{
		directory:   dir,
		enricher:    enricher,
		recorder:    recorder,
		resultLimit: resultLimit,
		log:         log.With().Str("handler", "companies").Logger(),
	}
}

// HandleCompanies handles GET /api/companies?search=
// Searching is a read plus one side effect: a non-empty query is recorded
// in the recent-search log.
func (h *Handler) HandleCompanies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("search")

	matches := h.directory.Search(query)
	if len(matches) > h.resultLimit {
		matches = matches[:h.resultLimit]
	}

	enriched := h.enricher.Enrich(r.Context(), matches)

	h.recorder.RecordSearch(query)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(enriched); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode companies response")
	}
}
