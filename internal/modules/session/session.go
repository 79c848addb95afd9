// Package session holds the shared in-memory user state: the favorites
// watchlist and the recent-search log. A single instance is shared by all
// request handlers; every mutation is atomic with respect to concurrent
// readers.
package session

import (
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Session is the process-wide user state. Favorites use full-replace
// semantics; recent searches form a bounded, deduplicated, insertion-
// ordered log (oldest evicted first).
type Session struct {
	mu             sync.RWMutex
	favorites      map[string]struct{}
	recentSearches []string
	searchCap      int
	log            zerolog.Logger
}

// New creates an empty session. searchCap bounds the recent-search log.
func New(searchCap int, log zerolog.Logger) *Session {
	return &Session{
		favorites: make(map[string]struct{}),
		searchCap: searchCap,
		log:       log.With().Str("component", "session").Logger(),
	}
}

// Favorites returns the current watchlist as a sorted slice. Sorting is for
// stable JSON output only; favorites carry no ordering semantics.
func (s *Session) Favorites() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	symbols := make([]string, 0, len(s.favorites))
	for symbol := range s.favorites {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// SetFavorites replaces the whole watchlist (never a merge) and returns the
// now-current set for confirmation.
func (s *Session) SetFavorites(symbols []string) []string {
	s.mu.Lock()
	replaced := make(map[string]struct{}, len(symbols))
	for _, symbol := range symbols {
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol == "" {
			continue
		}
		replaced[symbol] = struct{}{}
	}
	s.favorites = replaced
	s.mu.Unlock()

	s.log.Debug().Int("count", len(replaced)).Msg("Favorites replaced")
	return s.Favorites()
}

// HasFavorite reports whether symbol is on the watchlist.
func (s *Session) HasFavorite(symbol string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.favorites[strings.ToUpper(symbol)]
	return ok
}

// RecordSearch appends a query to the recent-search log. Empty queries are
// never recorded; duplicates (by uppercase form) are skipped; the oldest
// entry is evicted once the log exceeds its cap.
func (s *Session) RecordSearch(rawQuery string) {
	if rawQuery == "" {
		return
	}
	normalized := strings.ToUpper(rawQuery)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.recentSearches {
		if existing == normalized {
			return
		}
	}

	s.recentSearches = append(s.recentSearches, normalized)
	for len(s.recentSearches) > s.searchCap {
		s.recentSearches = s.recentSearches[1:]
	}
}

// RecentSearches returns the last limit entries in insertion order (most
// recent last). limit <= 0 returns the full log.
func (s *Session) RecentSearches(limit int) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := 0
	if limit > 0 && len(s.recentSearches) > limit {
		start = len(s.recentSearches) - limit
	}

	results := make([]string, len(s.recentSearches)-start)
	copy(results, s.recentSearches[start:])
	return results
}
