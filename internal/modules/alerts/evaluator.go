// Package alerts derives threshold-crossing alerts from the quotes of the
// favorites watchlist.
package alerts

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/quotewatch/quotewatch/internal/domain"
)

// Evaluator emits an alert for every favorite whose absolute change percent
// meets the threshold. A missing changePercent counts as 0, so a symbol
// with no data never alerts merely by existing. Per-symbol provider errors
// are logged and skipped without aborting the rest of the evaluation.
type Evaluator struct {
	provider  domain.QuoteProvider
	threshold float64
	now       func() time.Time
	log       zerolog.Logger
}

// NewEvaluator creates an alert evaluator with the given threshold.
func NewEvaluator(provider domain.QuoteProvider, threshold float64, log zerolog.Logger) *Evaluator {
	return &Evaluator{
		provider:  provider,
		threshold: threshold,
		now:       time.Now,
		log:       log.With().Str("component", "alert_evaluator").Logger(),
	}
}

// Evaluate fetches quotes for favorites and returns the triggered alerts.
// Output order follows the favorites slice; callers must not rely on any
// particular ordering. Alert timestamps are evaluation wall-clock time in
// UTC, not market time.
func (e *Evaluator) Evaluate(ctx context.Context, favorites []string) []domain.Alert {
	alerts := make([]domain.Alert, 0, len(favorites))
	if len(favorites) == 0 {
		return alerts
	}

	results := e.provider.Fetch(ctx, favorites)
	evaluatedAt := e.now().UTC().Format(time.RFC3339)

	for _, symbol := range favorites {
		result, ok := results[symbol]
		if !ok {
			continue
		}
		if result.Err != nil {
			e.log.Warn().Err(result.Err).Str("symbol", symbol).Msg("Quote fetch failed, no alert for symbol")
			continue
		}

		change := 0.0
		if result.Quote.ChangePercent != nil {
			change = *result.Quote.ChangePercent
		}
		if math.Abs(change) < e.threshold {
			continue
		}

		var volume int64
		if result.Quote.Volume != nil {
			volume = *result.Quote.Volume
		}

		alerts = append(alerts, domain.Alert{
			AlertID:     symbol + "_alert",
			Company:     symbol,
			PriceChange: change,
			Volume:      volume,
			Timestamp:   evaluatedAt,
		})
	}

	return alerts
}
