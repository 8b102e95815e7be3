package history

import (
	"os"
	"path/filepath"
	"testing"

	"perfgate/internal/compare"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_AppendAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history", "runs.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	agg := compare.Aggregate{Count: 3, Mean: 1.02, Min: 0.95, Max: 1.12}
	require.NoError(t, store.Append(NewEntry(agg, "abc123", false)))
	require.NoError(t, store.Append(NewEntry(compare.Aggregate{Count: 3, Mean: 1.08, Errors: 1}, "def456", true)))

	entries, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "abc123", entries[0].Commit)
	assert.False(t, entries[0].Failed)
	assert.InDelta(t, 1.02, entries[0].Mean, 1e-9)

	latest, err := store.LoadLatest()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "def456", latest.Commit)
	assert.True(t, latest.Failed)
	assert.Equal(t, 1, latest.Errors)
}

func TestFileStore_EmptyHistory(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "runs.json"))
	require.NoError(t, err)

	entries, err := store.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, entries)

	latest, err := store.LoadLatest()
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestFileStore_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.json")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	entries, err := store.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0644))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = store.LoadAll()
	assert.Error(t, err)
}
