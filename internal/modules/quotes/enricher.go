// Package quotes merges live market quotes into directory entries.
package quotes

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/quotewatch/quotewatch/internal/domain"
)

// Enricher attaches live prices to company records. Upstream failures are
// isolated per symbol: a record whose lookup failed keeps a nil LivePrice
// while the rest of the batch is unaffected.
type Enricher struct {
	provider domain.QuoteProvider
	log      zerolog.Logger
}

// NewEnricher creates a quote enricher.
func NewEnricher(provider domain.QuoteProvider, log zerolog.Logger) *Enricher {
	return &Enricher{
		provider: provider,
		log:      log.With().Str("component", "quote_enricher").Logger(),
	}
}

// Enrich fetches quotes for the unique symbols of records and returns one
// EnrichedCompany per input record, in input order. Each unique symbol is
// looked up at most once per call. Present prices are rounded to 2 decimal
// places.
func (e *Enricher) Enrich(ctx context.Context, records []domain.CompanyRecord) []domain.EnrichedCompany {
	enriched := make([]domain.EnrichedCompany, 0, len(records))
	if len(records) == 0 {
		return enriched
	}

	seen := make(map[string]struct{}, len(records))
	symbols := make([]string, 0, len(records))
	for _, record := range records {
		if _, ok := seen[record.Symbol]; ok {
			continue
		}
		seen[record.Symbol] = struct{}{}
		symbols = append(symbols, record.Symbol)
	}

	results := e.provider.Fetch(ctx, symbols)

	for _, record := range records {
		company := domain.EnrichedCompany{CompanyRecord: record}
		if result, ok := results[record.Symbol]; ok {
			if result.Err != nil {
				e.log.Debug().
					Err(result.Err).
					Str("symbol", record.Symbol).
					Msg("Quote lookup failed, leaving price empty")
			} else if result.Quote.Price != nil {
				rounded := roundPrice(*result.Quote.Price)
				company.LivePrice = &rounded
			}
		}
		enriched = append(enriched, company)
	}

	return enriched
}

// roundPrice rounds to 2 decimal places using decimal arithmetic to avoid
// float artifacts at the cent boundary.
func roundPrice(price float64) float64 {
	rounded, _ := decimal.NewFromFloat(price).Round(2).Float64()
	return rounded
}
