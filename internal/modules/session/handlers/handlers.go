// Package handlers provides HTTP handlers for the user session state.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/quotewatch/quotewatch/internal/modules/session"
)

// Handler provides HTTP handlers for favorites and recent searches.
type Handler struct {
	session      *session.Session
	recentWindow int
	log          zerolog.Logger
}

// NewHandler creates a session handler. recentWindow is the number of
// recent searches returned by the recent-searches endpoint.
func NewHandler(sess *session.Session, recentWindow int, log zerolog.Logger) *Handler {
	return &Handler{
		session:      sess,
		recentWindow: recentWindow,
		log:          log.With().Str("handler", "session").Logger(),
	}
}

// HandleGetFavorites handles GET /api/favorites
func (h *Handler) HandleGetFavorites(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.log, h.session.Favorites())
}

// favoritesRequest is the PUT/POST payload for the favorites endpoint.
type favoritesRequest struct {
	Favorites []string `json:"favorites"`
}

// HandleSetFavorites handles POST /api/favorites. The payload replaces the
// whole watchlist; a malformed body (not an object with a list of strings)
// is a client error, never retried.
func (h *Handler) HandleSetFavorites(w http.ResponseWriter, r *http.Request) {
	var req favoritesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug().Err(err).Msg("Malformed favorites payload")
		http.Error(w, "favorites must be a list of symbols", http.StatusBadRequest)
		return
	}

	current := h.session.SetFavorites(req.Favorites)

	writeJSON(w, h.log, map[string]interface{}{
		"success":   true,
		"favorites": current,
	})
}

// HandleRecentSearches handles GET /api/recent-searches
func (h *Handler) HandleRecentSearches(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.log, h.session.RecentSearches(h.recentWindow))
}

func writeJSON(w http.ResponseWriter, log zerolog.Logger, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
