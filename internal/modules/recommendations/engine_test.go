package recommendations

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotewatch/quotewatch/internal/domain"
)

type fakeDirectory struct {
	records []domain.CompanyRecord
}

func (f *fakeDirectory) Records() []domain.CompanyRecord { return f.records }

type fakeSession struct {
	favorites []string
	searches  []string
}

func (f *fakeSession) Favorites() []string { return f.favorites }

func (f *fakeSession) RecentSearches(limit int) []string { return f.searches }

func techDirectory() *fakeDirectory {
	return &fakeDirectory{records: []domain.CompanyRecord{
		{Symbol: "AAPL", Name: "Apple Inc.", Category: "Technology"},
		{Symbol: "MSFT", Name: "Microsoft Corporation", Category: "Technology"},
		{Symbol: "JNJ", Name: "Johnson & Johnson", Category: "Healthcare"},
		{Symbol: "GOOGL", Name: "Alphabet Inc.", Category: "Technology"},
		{Symbol: "NVDA", Name: "NVIDIA Corporation", Category: "Technology"},
		{Symbol: "META", Name: "Meta Platforms", Category: "Technology"},
		{Symbol: "AMD", Name: "Advanced Micro Devices", Category: "Technology"},
	}}
}

func TestRecommend_FiltersByExactCategory(t *testing.T) {
	engine := NewEngine(techDirectory(), &fakeSession{}, 5, zerolog.Nop())

	results := engine.Recommend("Healthcare")

	require.Len(t, results, 1)
	assert.Equal(t, "JNJ", results[0].Symbol)
}

func TestRecommend_ExcludesFavorites(t *testing.T) {
	session := &fakeSession{favorites: []string{"AAPL", "MSFT"}}
	engine := NewEngine(techDirectory(), session, 5, zerolog.Nop())

	results := engine.Recommend("Technology")

	symbols := make([]string, 0, len(results))
	for _, record := range results {
		symbols = append(symbols, record.Symbol)
	}
	assert.Equal(t, []string{"GOOGL", "NVDA", "META", "AMD"}, symbols)
}

func TestRecommend_ExcludesRecentSearchesCaseInsensitively(t *testing.T) {
	session := &fakeSession{searches: []string{"googl"}}
	engine := NewEngine(techDirectory(), session, 5, zerolog.Nop())

	results := engine.Recommend("Technology")

	for _, record := range results {
		assert.NotEqual(t, "GOOGL", record.Symbol)
	}
}

func TestRecommend_CapsAtLimitInDirectoryOrder(t *testing.T) {
	engine := NewEngine(techDirectory(), &fakeSession{}, 5, zerolog.Nop())

	results := engine.Recommend("Technology")

	require.Len(t, results, 5)
	assert.Equal(t, "AAPL", results[0].Symbol)
	assert.Equal(t, "META", results[4].Symbol)
}

func TestRecommend_UnknownCategoryReturnsEmpty(t *testing.T) {
	engine := NewEngine(techDirectory(), &fakeSession{}, 5, zerolog.Nop())

	results := engine.Recommend("Utilities")

	assert.NotNil(t, results)
	assert.Empty(t, results)
}
