// Package domain holds the shared models and collaborator interfaces for
// the watchlist aggregation core. Provider-backed services (quotes, news,
// summaries) are consumed through narrow interfaces so any vendor backend
// can be substituted, including deterministic fakes in tests.
package domain

import "context"

// CompanyRecord is one entry of the company universe. Records are loaded in
// bulk at startup and never mutated; a reload replaces the whole directory.
type CompanyRecord struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// EnrichedCompany is a CompanyRecord augmented with a live price for a
// single response. LivePrice is nil whenever the quote lookup failed or
// returned no price - never substituted with zero or stale data.
type EnrichedCompany struct {
	CompanyRecord
	LivePrice *float64 `json:"livePrice"`
}

// Quote is a point-in-time market quote. Nil fields mean the provider could
// not supply the value; a legitimate zero is always a non-nil pointer.
type Quote struct {
	Symbol        string   `json:"symbol"`
	Price         *float64 `json:"price"`
	ChangePercent *float64 `json:"changePercent"`
	Volume        *int64   `json:"volume"`
}

// QuoteResult carries one symbol's quote or the error that prevented it.
// Threading errors as values keeps "one failure doesn't sink the batch" a
// structural property of the aggregation code.
type QuoteResult struct {
	Quote Quote
	Err   error
}

// NewsItem is one normalized news article attributed to a symbol.
// Timestamp is an ISO-8601 UTC string and may be empty (absent sorts last).
type NewsItem struct {
	NewsID    string `json:"newsId"`
	Company   string `json:"company"`
	Headline  string `json:"headline"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	Category  string `json:"category"`
}

// Alert is a threshold-crossing notification for a favorite symbol.
// AlertID is deterministic (symbol + "_alert") so repeated evaluation of
// the same state is idempotent. Timestamp is evaluation time, not market
// time.
type Alert struct {
	AlertID     string  `json:"alertId"`
	Company     string  `json:"company"`
	PriceChange float64 `json:"priceChange"`
	Volume      int64   `json:"volume"`
	Timestamp   string  `json:"timestamp"`
}

// QuoteProvider returns quotes for a batch of symbols. The returned map has
// one entry per unique requested symbol; per-symbol failures are carried in
// QuoteResult.Err. A complete upstream failure yields an entry with Err set
// for every symbol rather than an error for the whole call.
type QuoteProvider interface {
	Fetch(ctx context.Context, symbols []string) map[string]QuoteResult
}

// NewsProvider returns up to limit news items for one symbol. An error and
// an empty result are treated identically by callers (zero items).
type NewsProvider interface {
	Fetch(ctx context.Context, symbol string, limit int) ([]NewsItem, error)
}

// SummaryProvider produces a best-effort narrative summary for a company.
// Implementations never fail the caller: on error they return a visible
// placeholder string instead.
type SummaryProvider interface {
	Summarize(ctx context.Context, companyName string) string
}
