// Package handlers provides the HTTP handler for threshold alerts.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/quotewatch/quotewatch/internal/modules/alerts"
)

// FavoritesReader exposes the watchlist the evaluation runs over.
type FavoritesReader interface {
	Favorites() []string
}

// Handler provides the alerts endpoint.
type Handler struct {
	evaluator *alerts.Evaluator
	favorites FavoritesReader
	log       zerolog.Logger
}

// NewHandler creates an alerts handler.
func NewHandler(evaluator *alerts.Evaluator, favorites FavoritesReader, log zerolog.Logger) *Handler {
	return &Handler{
		evaluator: evaluator,
		favorites: favorites,
		log:       log.With().Str("handler", "alerts").Logger(),
	}
}

// HandleAlerts handles GET /api/alerts
func (h *Handler) HandleAlerts(w http.ResponseWriter, r *http.Request) {
	triggered := h.evaluator.Evaluate(r.Context(), h.favorites.Favorites())

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(triggered); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode alerts response")
	}
}
