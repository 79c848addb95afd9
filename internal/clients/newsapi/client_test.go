package newsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_MapsArticlesToNewsItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "AAPL", r.URL.Query().Get("q"))
		assert.Equal(t, "10", r.URL.Query().Get("pageSize"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"articles":[
			{"title":"Apple ships new chip","description":"Details inside","url":"https://example.com/a1","publishedAt":"2026-08-30T10:00:00Z"}
		]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", 5*time.Second, zerolog.Nop())
	client.SetBaseURL(server.URL)

	items, err := client.Fetch(context.Background(), "AAPL", 10)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "https://example.com/a1", items[0].NewsID)
	assert.Equal(t, "AAPL", items[0].Company)
	assert.Equal(t, "Apple ships new chip", items[0].Headline)
	assert.Equal(t, "2026-08-30T10:00:00Z", items[0].Timestamp)
	assert.Equal(t, "News", items[0].Category)
}

func TestFetch_MissingKeyFailsWithoutRequest(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := NewClient("", 5*time.Second, zerolog.Nop())
	client.SetBaseURL(server.URL)

	_, err := client.Fetch(context.Background(), "AAPL", 10)

	assert.ErrorIs(t, err, ErrNoAPIKey)
	assert.Zero(t, requests)
}

func TestFetch_NonOKStatusIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("test-key", 5*time.Second, zerolog.Nop())
	client.SetBaseURL(server.URL)

	_, err := client.Fetch(context.Background(), "AAPL", 10)

	assert.ErrorContains(t, err, "429")
}
