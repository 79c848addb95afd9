package news

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotewatch/quotewatch/internal/domain"
)

type fakeNewsProvider struct {
	mu      sync.Mutex
	items   map[string][]domain.NewsItem
	errs    map[string]error
	calls   int
	limits  []int
	symbols []string
}

func (f *fakeNewsProvider) Fetch(ctx context.Context, symbol string, limit int) ([]domain.NewsItem, error) {
	f.mu.Lock()
	f.calls++
	f.limits = append(f.limits, limit)
	f.symbols = append(f.symbols, symbol)
	f.mu.Unlock()

	if err := f.errs[symbol]; err != nil {
		return nil, err
	}
	return f.items[symbol], nil
}

func item(id, timestamp string) domain.NewsItem {
	return domain.NewsItem{NewsID: id, Headline: "headline " + id, Timestamp: timestamp}
}

func TestAggregate_EmptyWatchlistIssuesNoFetches(t *testing.T) {
	provider := &fakeNewsProvider{}
	aggregator := NewAggregator(provider, 10, 50, zerolog.Nop())

	items := aggregator.Aggregate(context.Background(), nil)

	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.Zero(t, provider.calls)
}

func TestAggregate_SortsNewestFirstAcrossSymbols(t *testing.T) {
	provider := &fakeNewsProvider{items: map[string][]domain.NewsItem{
		"AAPL": {item("a1", "2026-08-30T10:00:00Z"), item("a2", "2026-09-01T09:00:00Z")},
		"MSFT": {item("m1", "2026-08-31T12:00:00Z")},
	}}
	aggregator := NewAggregator(provider, 10, 50, zerolog.Nop())

	items := aggregator.Aggregate(context.Background(), []string{"AAPL", "MSFT"})

	require.Len(t, items, 3)
	assert.Equal(t, "a2", items[0].NewsID)
	assert.Equal(t, "m1", items[1].NewsID)
	assert.Equal(t, "a1", items[2].NewsID)
}

func TestAggregate_AbsentTimestampsSortLast(t *testing.T) {
	provider := &fakeNewsProvider{items: map[string][]domain.NewsItem{
		"AAPL": {item("dated", "2026-08-30T10:00:00Z"), {NewsID: "undated"}},
	}}
	aggregator := NewAggregator(provider, 10, 50, zerolog.Nop())

	items := aggregator.Aggregate(context.Background(), []string{"AAPL"})

	require.Len(t, items, 2)
	assert.Equal(t, "dated", items[0].NewsID)
	assert.Equal(t, "undated", items[1].NewsID)
}

func TestAggregate_OneSymbolFailureDoesNotAffectOthers(t *testing.T) {
	provider := &fakeNewsProvider{
		items: map[string][]domain.NewsItem{
			"AAPL": {item("a1", "2026-08-30T10:00:00Z")},
		},
		errs: map[string]error{"MSFT": errors.New("rate limited")},
	}
	aggregator := NewAggregator(provider, 10, 50, zerolog.Nop())

	items := aggregator.Aggregate(context.Background(), []string{"AAPL", "MSFT"})

	require.Len(t, items, 1)
	assert.Equal(t, "a1", items[0].NewsID)
}

func TestAggregate_TruncatesToResultLimit(t *testing.T) {
	many := make([]domain.NewsItem, 8)
	for i := range many {
		many[i] = item(string(rune('a'+i)), "2026-08-30T10:00:00Z")
	}
	provider := &fakeNewsProvider{items: map[string][]domain.NewsItem{"AAPL": many}}
	aggregator := NewAggregator(provider, 10, 5, zerolog.Nop())

	items := aggregator.Aggregate(context.Background(), []string{"AAPL"})

	assert.Len(t, items, 5)
}

func TestAggregate_StampsCompanyAndFallbackID(t *testing.T) {
	provider := &fakeNewsProvider{items: map[string][]domain.NewsItem{
		"AAPL": {{Headline: "no id", Timestamp: "2026-08-30T10:00:00Z"}},
	}}
	aggregator := NewAggregator(provider, 10, 50, zerolog.Nop())

	items := aggregator.Aggregate(context.Background(), []string{"AAPL"})

	require.Len(t, items, 1)
	assert.Equal(t, "AAPL", items[0].Company)
	assert.Equal(t, "AAPL-2026-08-30T10:00:00Z", items[0].NewsID)
}

func TestAggregate_PassesPerSymbolLimit(t *testing.T) {
	provider := &fakeNewsProvider{}
	aggregator := NewAggregator(provider, 7, 50, zerolog.Nop())

	aggregator.Aggregate(context.Background(), []string{"AAPL", "MSFT"})

	assert.Equal(t, 2, provider.calls)
	assert.Equal(t, []int{7, 7}, provider.limits)
}
