package directory

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/quotewatch/quotewatch/internal/domain"
)

// CSVSource loads the company universe from a CSV file with
// symbol,name,category columns. A header row is skipped when present.
type CSVSource struct {
	path string
}

// NewCSVSource creates a CSV-backed directory source.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Load reads and parses the company file.
func (s *CSVSource) Load(ctx context.Context) ([]domain.CompanyRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open company file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse company file: %w", err)
	}

	var records []domain.CompanyRecord
	for i, row := range rows {
		if len(row) < 2 {
			continue
		}
		if i == 0 && strings.EqualFold(strings.TrimSpace(row[0]), "symbol") {
			continue
		}

		record := domain.CompanyRecord{
			Symbol:   strings.ToUpper(strings.TrimSpace(row[0])),
			Name:     strings.TrimSpace(row[1]),
			Category: "Unknown",
		}
		if len(row) > 2 && strings.TrimSpace(row[2]) != "" {
			record.Category = strings.TrimSpace(row[2])
		}
		if record.Symbol == "" {
			continue
		}
		records = append(records, record)
	}

	return records, nil
}
