package directory

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotewatch/quotewatch/internal/database"
	"github.com/quotewatch/quotewatch/internal/domain"
)

func newTestSnapshotRepo(t *testing.T) *SnapshotRepository {
	t.Helper()

	db, err := database.New(database.Config{
		Path: filepath.Join(t.TempDir(), "directory.db"),
		Name: "directory-test",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo, err := NewSnapshotRepository(db.Conn(), zerolog.Nop())
	require.NoError(t, err)
	return repo
}

func TestSnapshotRepository_SaveAndLoadPreservesOrder(t *testing.T) {
	repo := newTestSnapshotRepo(t)

	require.NoError(t, repo.Save(sampleRecords()))

	loaded, err := repo.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, sampleRecords(), loaded)
}

func TestSnapshotRepository_SaveReplacesPreviousSnapshot(t *testing.T) {
	repo := newTestSnapshotRepo(t)
	require.NoError(t, repo.Save(sampleRecords()))

	replacement := []domain.CompanyRecord{{Symbol: "MSFT", Name: "Microsoft Corporation", Category: "Technology"}}
	require.NoError(t, repo.Save(replacement))

	loaded, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, replacement, loaded)
}

func TestSnapshotRepository_EmptyDatabaseLoadsNothing(t *testing.T) {
	repo := newTestSnapshotRepo(t)

	loaded, err := repo.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestReload_FailureFallsBackToSnapshot(t *testing.T) {
	repo := newTestSnapshotRepo(t)

	// First process: successful load persists the snapshot.
	source := &fakeSource{records: sampleRecords()}
	dir := New(source, repo, zerolog.Nop())
	dir.Load(context.Background())
	require.Equal(t, 3, dir.Size())

	// Second process: the source is down from the start.
	broken := &fakeSource{err: errors.New("fetch failed")}
	restarted := New(broken, repo, zerolog.Nop())
	restarted.Load(context.Background())

	assert.Equal(t, 3, restarted.Size())
	record, found := restarted.Lookup("AAPL")
	require.True(t, found)
	assert.Equal(t, "Apple Inc.", record.Name)
}
