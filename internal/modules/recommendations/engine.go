// Package recommendations suggests companies by category, excluding
// anything the user already knows about.
package recommendations

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/quotewatch/quotewatch/internal/domain"
)

// DirectoryReader is the slice of the company directory the engine needs.
type DirectoryReader interface {
	Records() []domain.CompanyRecord
}

// SessionReader exposes the session state consumed for exclusion.
type SessionReader interface {
	Favorites() []string
	RecentSearches(limit int) []string
}

// Engine filters the directory by category and removes symbols the user
// has already favorited or searched for. No ranking beyond category match
// and exclusion: results come back in directory order.
type Engine struct {
	directory DirectoryReader
	session   SessionReader
	limit     int
	log       zerolog.Logger
}

// NewEngine creates a recommendation engine returning at most limit items.
func NewEngine(directory DirectoryReader, session SessionReader, limit int, log zerolog.Logger) *Engine {
	return &Engine{
		directory: directory,
		session:   session,
		limit:     limit,
		log:       log.With().Str("component", "recommendations").Logger(),
	}
}

// Recommend returns the first candidates (in directory order) whose
// category matches exactly and whose symbol is in neither favorites nor
// the uppercased recent searches.
func (e *Engine) Recommend(category string) []domain.CompanyRecord {
	exclude := make(map[string]struct{})
	for _, symbol := range e.session.Favorites() {
		exclude[symbol] = struct{}{}
	}
	for _, query := range e.session.RecentSearches(0) {
		exclude[strings.ToUpper(query)] = struct{}{}
	}

	results := make([]domain.CompanyRecord, 0, e.limit)
	for _, record := range e.directory.Records() {
		if record.Category != category {
			continue
		}
		if _, excluded := exclude[record.Symbol]; excluded {
			continue
		}
		results = append(results, record)
		if len(results) >= e.limit {
			break
		}
	}
	return results
}
