// Package newsapi provides a news provider backed by newsapi.org.
package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/quotewatch/quotewatch/internal/domain"
)

// ErrNoAPIKey is returned when the client was constructed without a key.
// Callers treat it like any other provider failure: zero items.
var ErrNoAPIKey = errors.New("newsapi key not configured")

// Client for newsapi.org
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a newsapi.org client. An empty apiKey yields a client
// whose fetches fail with ErrNoAPIKey instead of failing startup - every
// other surface of the service works without news.
func NewClient(apiKey string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: "https://newsapi.org/v2/everything",
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		log:     log.With().Str("client", "newsapi").Logger(),
	}
}

// article is the newsapi.org wire shape.
type article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// Fetch implements domain.NewsProvider: up to limit recent English
// articles mentioning the symbol, newest first.
func (c *Client) Fetch(ctx context.Context, symbol string, limit int) ([]domain.NewsItem, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	params := url.Values{}
	params.Set("q", symbol)
	params.Set("pageSize", strconv.Itoa(limit))
	params.Set("sortBy", "publishedAt")
	params.Set("language", "en")
	params.Set("apiKey", c.apiKey)

	requestURL := c.baseURL + "?" + params.Encode()
	c.log.Debug().Str("symbol", symbol).Msg("Fetching news")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build news request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi returned status %d", resp.StatusCode)
	}

	var result struct {
		Articles []article `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse news response: %w", err)
	}

	items := make([]domain.NewsItem, 0, len(result.Articles))
	for _, a := range result.Articles {
		items = append(items, domain.NewsItem{
			NewsID:    a.URL,
			Company:   symbol,
			Headline:  a.Title,
			Content:   a.Description,
			Timestamp: a.PublishedAt,
			URL:       a.URL,
			Category:  "News",
		})
	}
	return items, nil
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}
