package news

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/quotewatch/quotewatch/internal/domain"
)

// HeadlineSummarizer builds a short narrative for a company from its most
// recent headlines. It never fails the caller: when nothing usable comes
// back it returns a visible placeholder string instead of an error.
type HeadlineSummarizer struct {
	provider  domain.NewsProvider
	headlines int
	log       zerolog.Logger
}

// NewHeadlineSummarizer creates a summarizer reading up to headlines items
// per company.
func NewHeadlineSummarizer(provider domain.NewsProvider, headlines int, log zerolog.Logger) *HeadlineSummarizer {
	if headlines <= 0 {
		headlines = 3
	}
	return &HeadlineSummarizer{
		provider:  provider,
		headlines: headlines,
		log:       log.With().Str("component", "summarizer").Logger(),
	}
}

// Summarize implements domain.SummaryProvider.
func (s *HeadlineSummarizer) Summarize(ctx context.Context, companyName string) string {
	placeholder := fmt.Sprintf("No summary available for %s.", companyName)

	items, err := s.provider.Fetch(ctx, companyName, s.headlines)
	if err != nil {
		s.log.Warn().Err(err).Str("company", companyName).Msg("Summary fetch failed")
		return placeholder
	}

	var headlines []string
	for _, item := range items {
		headline := strings.TrimSpace(item.Headline)
		if headline != "" {
			headlines = append(headlines, headline)
		}
	}
	if len(headlines) == 0 {
		return placeholder
	}

	return fmt.Sprintf("Recent coverage of %s: %s.", companyName, strings.Join(headlines, "; "))
}
