package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotewatch/quotewatch/internal/modules/session"
)

func newTestHandler() (*Handler, *session.Session) {
	sess := session.New(20, zerolog.Nop())
	return NewHandler(sess, 5, zerolog.Nop()), sess
}

func TestHandleSetFavorites_ReplacesAndConfirms(t *testing.T) {
	handler, sess := newTestHandler()
	sess.SetFavorites([]string{"TSLA"})

	req := httptest.NewRequest(http.MethodPost, "/api/favorites", strings.NewReader(`{"favorites":["aapl","MSFT"]}`))
	rec := httptest.NewRecorder()
	handler.HandleSetFavorites(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success   bool     `json:"success"`
		Favorites []string `json:"favorites"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, []string{"AAPL", "MSFT"}, body.Favorites)
	assert.False(t, sess.HasFavorite("TSLA"))
}

func TestHandleSetFavorites_MalformedBodyIsBadRequest(t *testing.T) {
	handler, sess := newTestHandler()
	sess.SetFavorites([]string{"TSLA"})

	req := httptest.NewRequest(http.MethodPost, "/api/favorites", strings.NewReader(`{"favorites":"AAPL"}`))
	rec := httptest.NewRecorder()
	handler.HandleSetFavorites(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	// State is untouched on a rejected payload.
	assert.True(t, sess.HasFavorite("TSLA"))
}

func TestHandleGetFavorites_ReturnsCurrentWatchlist(t *testing.T) {
	handler, sess := newTestHandler()
	sess.SetFavorites([]string{"MSFT", "AAPL"})

	req := httptest.NewRequest(http.MethodGet, "/api/favorites", nil)
	rec := httptest.NewRecorder()
	handler.HandleGetFavorites(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var favorites []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &favorites))
	assert.Equal(t, []string{"AAPL", "MSFT"}, favorites)
}

func TestHandleRecentSearches_ReturnsWindowedLog(t *testing.T) {
	handler, sess := newTestHandler()
	for _, q := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		sess.RecordSearch(q)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/recent-searches", nil)
	rec := httptest.NewRecorder()
	handler.HandleRecentSearches(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var searches []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &searches))
	assert.Equal(t, []string{"C", "D", "E", "F", "G"}, searches)
}
