package directory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCompanyFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "companies.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCSVSource_ParsesRowsAndSkipsHeader(t *testing.T) {
	path := writeCompanyFile(t, "Symbol,Name,Category\naapl,Apple Inc.,Technology\nJNJ,Johnson & Johnson,Healthcare\n")
	source := NewCSVSource(path)

	records, err := source.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "AAPL", records[0].Symbol)
	assert.Equal(t, "Technology", records[0].Category)
	assert.Equal(t, "JNJ", records[1].Symbol)
}

func TestCSVSource_MissingCategoryDefaultsToUnknown(t *testing.T) {
	path := writeCompanyFile(t, "AAPL,Apple Inc.\n")
	source := NewCSVSource(path)

	records, err := source.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Unknown", records[0].Category)
}

func TestCSVSource_MissingFileReturnsError(t *testing.T) {
	source := NewCSVSource(filepath.Join(t.TempDir(), "does-not-exist.csv"))

	_, err := source.Load(context.Background())

	assert.Error(t, err)
}
