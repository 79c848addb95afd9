// Package handlers provides the HTTP handler for company details.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/quotewatch/quotewatch/internal/modules/details"
)

// Handler provides the company-details endpoint.
type Handler struct {
	service *details.Service
	log     zerolog.Logger
}

// NewHandler creates a details handler.
func NewHandler(service *details.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "details").Logger(),
	}
}

// HandleCompanyDetails handles GET /api/company-details/{symbol}.
// Unknown symbols are a client error; upstream failures degrade the
// response rather than failing it.
func (h *Handler) HandleCompanyDetails(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	if symbol == "" {
		http.Error(w, "Symbol is required", http.StatusBadRequest)
		return
	}

	response, err := h.service.Get(r.Context(), symbol)
	if err != nil {
		if errors.Is(err, details.ErrUnknownSymbol) {
			http.Error(w, "Unknown symbol", http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Str("symbol", symbol).Msg("Details lookup failed")
		http.Error(w, "Failed to load company details", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode details response")
	}
}
