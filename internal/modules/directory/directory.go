// Package directory maintains the company universe: a static, loaded-once
// index over tradable companies supporting case-folded substring search.
package directory

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/quotewatch/quotewatch/internal/domain"
)

// Source loads the company universe from an external origin (CSV file,
// scraped index page, ...). A failed load is expected and must degrade to
// an empty directory, never crash the process.
type Source interface {
	Load(ctx context.Context) ([]domain.CompanyRecord, error)
}

// Directory is the in-process company index. The record slice is published
// through an atomic pointer: readers are lock-free and always observe
// either the old or the new universe in full, never a mix.
type Directory struct {
	records  atomic.Pointer[[]domain.CompanyRecord]
	source   Source
	snapshot *SnapshotRepository // optional last-good fallback
	log      zerolog.Logger
}

// New creates an empty directory. snapshot may be nil to disable the
// last-good fallback.
func New(source Source, snapshot *SnapshotRepository, log zerolog.Logger) *Directory {
	d := &Directory{
		source:   source,
		snapshot: snapshot,
		log:      log.With().Str("component", "directory").Logger(),
	}
	empty := make([]domain.CompanyRecord, 0)
	d.records.Store(&empty)
	return d
}

// Load populates the directory from the source. Load never returns an
// error: an unavailable source yields an empty directory per the
// degradation policy.
func (d *Directory) Load(ctx context.Context) {
	_ = d.Reload(ctx)
}

// Reload re-reads the source and atomically swaps the published universe.
// On source failure it falls back to whatever universe is already published
// (stale data > no data), then to the last-good snapshot, and reports the
// source error so periodic refresh jobs can log the degraded outcome.
func (d *Directory) Reload(ctx context.Context) error {
	records, err := d.source.Load(ctx)
	if err == nil {
		d.publish(records)
		d.log.Info().Int("companies", len(records)).Msg("Directory loaded")
		if d.snapshot != nil {
			if err := d.snapshot.Save(records); err != nil {
				d.log.Warn().Err(err).Msg("Failed to save directory snapshot")
			}
		}
		return nil
	}

	d.log.Warn().Err(err).Msg("Failed to load companies from source")

	if d.Size() > 0 {
		d.log.Info().Int("companies", d.Size()).Msg("Keeping previously loaded universe")
		return err
	}

	if d.snapshot != nil {
		cached, snapErr := d.snapshot.Load()
		if snapErr == nil && len(cached) > 0 {
			d.publish(cached)
			d.log.Info().Int("companies", len(cached)).Msg("Directory restored from snapshot")
			return err
		}
		if snapErr != nil {
			d.log.Warn().Err(snapErr).Msg("Failed to load directory snapshot")
		}
	}

	d.log.Warn().Msg("Directory is empty; search will return no results")
	return err
}

func (d *Directory) publish(records []domain.CompanyRecord) {
	copied := make([]domain.CompanyRecord, len(records))
	copy(copied, records)
	d.records.Store(&copied)
}

// Search returns records matching query in directory (load) order.
// An empty query matches everything; otherwise the query must be a
// case-folded substring of the symbol or the name. Search never truncates -
// callers cap results after composing their own filters.
func (d *Directory) Search(query string) []domain.CompanyRecord {
	records := *d.records.Load()

	if query == "" {
		results := make([]domain.CompanyRecord, len(records))
		copy(results, records)
		return results
	}

	q := strings.ToLower(query)
	var results []domain.CompanyRecord
	for _, record := range records {
		if strings.Contains(strings.ToLower(record.Symbol), q) ||
			strings.Contains(strings.ToLower(record.Name), q) {
			results = append(results, record)
		}
	}
	return results
}

// Lookup finds a record by symbol (case-insensitive).
func (d *Directory) Lookup(symbol string) (domain.CompanyRecord, bool) {
	for _, record := range *d.records.Load() {
		if strings.EqualFold(record.Symbol, symbol) {
			return record, true
		}
	}
	return domain.CompanyRecord{}, false
}

// Records returns the current universe in directory order.
func (d *Directory) Records() []domain.CompanyRecord {
	records := *d.records.Load()
	results := make([]domain.CompanyRecord, len(records))
	copy(results, records)
	return results
}

// Size returns the number of companies currently published.
func (d *Directory) Size() int {
	return len(*d.records.Load())
}
