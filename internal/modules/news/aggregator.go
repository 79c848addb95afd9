// Package news aggregates provider news across the favorites watchlist.
package news

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/quotewatch/quotewatch/internal/domain"
)

// Aggregator fans out to the news provider for every favorite symbol,
// flattens the results, orders them newest first and truncates. One
// symbol's provider failure never affects the others; that symbol simply
// contributes zero items.
//
// Items are deliberately not deduplicated across symbols: the same story
// may legitimately appear for two favorites, and newsId uniqueness is a
// provider guarantee, not a derived one.
type Aggregator struct {
	provider       domain.NewsProvider
	perSymbolLimit int
	resultLimit    int
	log            zerolog.Logger
}

// NewAggregator creates a news aggregator. perSymbolLimit bounds each
// provider fetch; resultLimit caps the flattened result.
func NewAggregator(provider domain.NewsProvider, perSymbolLimit, resultLimit int, log zerolog.Logger) *Aggregator {
	return &Aggregator{
		provider:       provider,
		perSymbolLimit: perSymbolLimit,
		resultLimit:    resultLimit,
		log:            log.With().Str("component", "news_aggregator").Logger(),
	}
}

// Aggregate collects news for favorites. An empty watchlist returns an
// empty slice without issuing any provider calls.
func (a *Aggregator) Aggregate(ctx context.Context, favorites []string) []domain.NewsItem {
	if len(favorites) == 0 {
		return []domain.NewsItem{}
	}

	perSymbol := make([][]domain.NewsItem, len(favorites))

	var wg sync.WaitGroup
	for i, symbol := range favorites {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()

			items, err := a.provider.Fetch(ctx, symbol, a.perSymbolLimit)
			if err != nil {
				a.log.Warn().Err(err).Str("symbol", symbol).Msg("News fetch failed")
				return
			}
			perSymbol[i] = normalize(items, symbol)
		}(i, symbol)
	}
	wg.Wait()

	// Flatten in favorites order so the pre-sort order is deterministic
	// and the stable sort yields reproducible output.
	flattened := make([]domain.NewsItem, 0, len(favorites)*a.perSymbolLimit)
	for _, items := range perSymbol {
		flattened = append(flattened, items...)
	}

	// ISO-8601 UTC timestamps order lexicographically; the empty string
	// sorts below every real timestamp, so absent timestamps end up last.
	sort.SliceStable(flattened, func(i, j int) bool {
		return flattened[i].Timestamp > flattened[j].Timestamp
	})

	if len(flattened) > a.resultLimit {
		flattened = flattened[:a.resultLimit]
	}
	return flattened
}

// normalize stamps the owning symbol on each item and fills missing news
// ids with a deterministic symbol+timestamp fallback.
func normalize(items []domain.NewsItem, symbol string) []domain.NewsItem {
	for i := range items {
		items[i].Company = symbol
		if items[i].NewsID == "" {
			items[i].NewsID = symbol + "-" + items[i].Timestamp
		}
	}
	return items
}
