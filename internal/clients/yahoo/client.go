// Package yahoo implements the quote and fundamentals providers on top of
// Yahoo Finance.
package yahoo

import (
	"context"
	"fmt"
	"sync"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/equity"
	"github.com/piquette/finance-go/quote"
	"github.com/rs/zerolog"

	"github.com/quotewatch/quotewatch/internal/domain"
	"github.com/quotewatch/quotewatch/internal/modules/details"
)

// Client fetches quotes from Yahoo Finance. Batch fetches fan out one
// lookup per unique symbol, bounded by maxInFlight, each with its own
// timeout so a single slow upstream call cannot stall the batch.
type Client struct {
	maxInFlight int
	timeout     time.Duration
	log         zerolog.Logger
}

// NewClient creates a Yahoo Finance client.
func NewClient(maxInFlight int, timeout time.Duration, log zerolog.Logger) *Client {
	if maxInFlight <= 0 {
		maxInFlight = 8
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		maxInFlight: maxInFlight,
		timeout:     timeout,
		log:         log.With().Str("client", "yahoo").Logger(),
	}
}

// Fetch implements domain.QuoteProvider. Every unique requested symbol gets
// exactly one entry in the result; failures are carried per symbol.
func (c *Client) Fetch(ctx context.Context, symbols []string) map[string]domain.QuoteResult {
	results := make(map[string]domain.QuoteResult, len(symbols))
	if len(symbols) == 0 {
		return results
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, c.maxInFlight)

	for _, symbol := range symbols {
		mu.Lock()
		if _, dup := results[symbol]; dup {
			mu.Unlock()
			continue
		}
		results[symbol] = domain.QuoteResult{} // reserve
		mu.Unlock()

		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			result := c.fetchOne(ctx, symbol)

			mu.Lock()
			results[symbol] = result
			mu.Unlock()
		}(symbol)
	}

	wg.Wait()
	return results
}

// fetchOne performs one quote lookup under the per-symbol timeout. The
// finance-go API takes no context, so the call runs in its own goroutine
// and its result is discarded once the deadline passes.
func (c *Client) fetchOne(ctx context.Context, symbol string) domain.QuoteResult {
	type outcome struct {
		quote *finance.Quote
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		q, err := quote.Get(symbol)
		done <- outcome{quote: q, err: err}
	}()

	select {
	case <-ctx.Done():
		return domain.QuoteResult{Quote: domain.Quote{Symbol: symbol}, Err: ctx.Err()}
	case <-time.After(c.timeout):
		c.log.Warn().Str("symbol", symbol).Dur("timeout", c.timeout).Msg("Quote lookup timed out")
		return domain.QuoteResult{Quote: domain.Quote{Symbol: symbol}, Err: fmt.Errorf("quote lookup for %s timed out after %s", symbol, c.timeout)}
	case out := <-done:
		if out.err != nil {
			return domain.QuoteResult{Quote: domain.Quote{Symbol: symbol}, Err: fmt.Errorf("quote lookup for %s failed: %w", symbol, out.err)}
		}
		if out.quote == nil {
			return domain.QuoteResult{Quote: domain.Quote{Symbol: symbol}, Err: fmt.Errorf("no quote returned for %s", symbol)}
		}
		return domain.QuoteResult{Quote: mapQuote(symbol, out.quote)}
	}
}

// mapQuote converts a Yahoo quote to the domain shape. Yahoo reports a
// missing price as 0, matching the upstream convention, so a zero price
// maps to absent rather than a live zero value.
func mapQuote(symbol string, q *finance.Quote) domain.Quote {
	mapped := domain.Quote{Symbol: symbol}

	if q.RegularMarketPrice != 0 {
		price := q.RegularMarketPrice
		mapped.Price = &price
	}
	change := q.RegularMarketChangePercent
	mapped.ChangePercent = &change
	if q.RegularMarketVolume != 0 {
		volume := int64(q.RegularMarketVolume)
		mapped.Volume = &volume
	}
	return mapped
}

// Fundamentals implements details.FundamentalsProvider via the Yahoo equity
// endpoint.
func (c *Client) Fundamentals(ctx context.Context, symbol string) (details.Fundamentals, error) {
	type outcome struct {
		equity *finance.Equity
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		e, err := equity.Get(symbol)
		done <- outcome{equity: e, err: err}
	}()

	select {
	case <-ctx.Done():
		return details.Fundamentals{}, ctx.Err()
	case <-time.After(c.timeout):
		return details.Fundamentals{}, fmt.Errorf("equity lookup for %s timed out after %s", symbol, c.timeout)
	case out := <-done:
		if out.err != nil {
			return details.Fundamentals{}, fmt.Errorf("equity lookup for %s failed: %w", symbol, out.err)
		}
		if out.equity == nil {
			return details.Fundamentals{}, fmt.Errorf("no equity data returned for %s", symbol)
		}
		return mapFundamentals(out.equity), nil
	}
}

func mapFundamentals(e *finance.Equity) details.Fundamentals {
	f := details.Fundamentals{}

	setFloat := func(dst **float64, v float64) {
		if v != 0 {
			value := v
			*dst = &value
		}
	}

	setFloat(&f.Price, e.RegularMarketPrice)
	setFloat(&f.ChangePercent, e.RegularMarketChangePercent)
	setFloat(&f.FiftyTwoWeekHigh, e.FiftyTwoWeekHigh)
	setFloat(&f.FiftyTwoWeekLow, e.FiftyTwoWeekLow)
	setFloat(&f.TrailingPE, e.TrailingPE)
	setFloat(&f.TrailingEPS, e.EpsTrailingTwelveMonths)
	setFloat(&f.DividendYield, e.TrailingAnnualDividendYield)

	if e.MarketCap != 0 {
		marketCap := e.MarketCap
		f.MarketCap = &marketCap
	}

	return f
}
