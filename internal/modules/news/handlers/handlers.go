// Package handlers provides the HTTP handler for aggregated news.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/quotewatch/quotewatch/internal/modules/news"
)

// FavoritesReader exposes the watchlist the aggregation runs over.
type FavoritesReader interface {
	Favorites() []string
}

// Handler provides the news endpoint.
type Handler struct {
	aggregator *news.Aggregator
	favorites  FavoritesReader
	log        zerolog.Logger
}

// NewHandler creates a news handler.
func NewHandler(aggregator *news.Aggregator, favorites FavoritesReader, log zerolog.Logger) *Handler {
	return &Handler{
		aggregator: aggregator,
		favorites:  favorites,
		log:        log.With().Str("handler", "news").Logger(),
	}
}

// HandleNews handles GET /api/news
func (h *Handler) HandleNews(w http.ResponseWriter, r *http.Request) {
	items := h.aggregator.Aggregate(r.Context(), h.favorites.Favorites())

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(items); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode news response")
	}
}
