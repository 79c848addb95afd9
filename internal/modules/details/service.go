// Package details serves single-symbol company detail lookups, merging the
// static directory record with live fundamentals and a narrative summary.
package details

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/quotewatch/quotewatch/internal/domain"
)

// ErrUnknownSymbol marks a symbol absent from the company directory.
var ErrUnknownSymbol = errors.New("unknown symbol")

// Fundamentals carries the live per-company figures shown on the detail
// view. Nil fields mean the provider could not supply the value.
type Fundamentals struct {
	Price            *float64 `json:"regularMarketPrice"`
	ChangePercent    *float64 `json:"regularMarketChangePercent"`
	FiftyTwoWeekHigh *float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow  *float64 `json:"fiftyTwoWeekLow"`
	MarketCap        *int64   `json:"marketCap"`
	TrailingPE       *float64 `json:"trailingPE"`
	TrailingEPS      *float64 `json:"trailingEps"`
	DividendYield    *float64 `json:"dividendYield"`
}

// FundamentalsProvider fetches live fundamentals for one symbol.
type FundamentalsProvider interface {
	Fundamentals(ctx context.Context, symbol string) (Fundamentals, error)
}

// DirectoryReader is the directory slice the service needs.
type DirectoryReader interface {
	Lookup(symbol string) (domain.CompanyRecord, bool)
}

// CompanyDetails is the full detail response for one company.
type CompanyDetails struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Fundamentals
	Summary string `json:"summary"`
}

// Service builds company detail responses.
type Service struct {
	directory    DirectoryReader
	fundamentals FundamentalsProvider
	summary      domain.SummaryProvider
	log          zerolog.Logger
}

// NewService creates a details service.
func NewService(directory DirectoryReader, fundamentals FundamentalsProvider, summary domain.SummaryProvider, log zerolog.Logger) *Service {
	return &Service{
		directory:    directory,
		fundamentals: fundamentals,
		summary:      summary,
		log:          log.With().Str("component", "details").Logger(),
	}
}

// Get returns the detail view for symbol. An unknown symbol yields
// ErrUnknownSymbol (a client error); upstream failures degrade the
// response instead of failing it - fundamentals stay nil and the summary
// falls back to the provider's placeholder text.
func (s *Service) Get(ctx context.Context, symbol string) (CompanyDetails, error) {
	record, found := s.directory.Lookup(symbol)
	if !found {
		return CompanyDetails{}, ErrUnknownSymbol
	}

	response := CompanyDetails{
		Symbol:   record.Symbol,
		Name:     record.Name,
		Category: record.Category,
	}

	fundamentals, err := s.fundamentals.Fundamentals(ctx, record.Symbol)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", record.Symbol).Msg("Fundamentals fetch failed, serving degraded details")
	} else {
		response.Fundamentals = fundamentals
	}

	if s.summary != nil {
		response.Summary = s.summary.Summarize(ctx, record.Name)
	}

	return response, nil
}
