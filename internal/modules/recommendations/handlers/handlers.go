// Package handlers provides the HTTP handler for recommendations.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/quotewatch/quotewatch/internal/modules/recommendations"
)

// Handler provides the recommendations endpoint.
type Handler struct {
	engine          *recommendations.Engine
	defaultCategory string
	log             zerolog.Logger
}

// NewHandler creates a recommendations handler. defaultCategory is used
// when the request carries no category parameter.
func NewHandler(engine *recommendations.Engine, defaultCategory string, log zerolog.Logger) *Handler {
	return &Handler{
		engine:          engine,
		defaultCategory: defaultCategory,
		log:             log.With().Str("handler", "recommendations").Logger(),
	}
}

// HandleRecommendations handles GET /api/recommendations?category=
func (h *Handler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = h.defaultCategory
	}

	results := h.engine.Recommend(category)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(results); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode recommendations response")
	}
}
