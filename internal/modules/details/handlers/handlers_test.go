package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotewatch/quotewatch/internal/domain"
	"github.com/quotewatch/quotewatch/internal/modules/details"
)

type fakeDirectory struct {
	records map[string]domain.CompanyRecord
}

func (f *fakeDirectory) Lookup(symbol string) (domain.CompanyRecord, bool) {
	record, ok := f.records[symbol]
	return record, ok
}

type fakeFundamentals struct{}

func (f *fakeFundamentals) Fundamentals(ctx context.Context, symbol string) (details.Fundamentals, error) {
	price := 190.5
	return details.Fundamentals{Price: &price}, nil
}

type fakeSummary struct{}

func (f *fakeSummary) Summarize(ctx context.Context, companyName string) string {
	return "A phone maker."
}

func newTestRouter() http.Handler {
	directory := &fakeDirectory{records: map[string]domain.CompanyRecord{
		"AAPL": {Symbol: "AAPL", Name: "Apple Inc.", Category: "Technology"},
	}}
	service := details.NewService(directory, &fakeFundamentals{}, &fakeSummary{}, zerolog.Nop())
	handler := NewHandler(service, zerolog.Nop())

	router := chi.NewRouter()
	router.Get("/api/company-details/{symbol}", handler.HandleCompanyDetails)
	return router
}

func TestHandleCompanyDetails_KnownSymbol(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/company-details/AAPL", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response details.CompanyDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "AAPL", response.Symbol)
	assert.Equal(t, "Apple Inc.", response.Name)
	assert.Equal(t, 190.5, *response.Price)
	assert.Equal(t, "A phone maker.", response.Summary)
}

func TestHandleCompanyDetails_UnknownSymbolIsNotFound(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/company-details/ZZZZ", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
