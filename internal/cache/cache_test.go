package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/codalab/lazyworksheets/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissing(t *testing.T) {
	store := Open(t.TempDir())

	snap, ok, err := store.Load("http://localhost:8000")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, snap.Worksheets)
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	store := Open(dir)
	fixed := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	worksheets := []models.Worksheet{
		{UUID: "0x1", Name: "alpha", OwnerID: "7", OwnerName: "ann", Permission: models.PermissionWrite},
		{UUID: "0x2", Name: "beta", OwnerID: "8", Permission: models.PermissionRead},
	}
	require.NoError(t, store.Save("http://localhost:8000/", worksheets))

	// A fresh store reads from disk rather than the in-memory cache.
	snap, ok, err := Open(dir).Load("http://localhost:8000")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:8000", snap.Server)
	assert.Equal(t, fixed, snap.SavedAt)
	assert.Equal(t, worksheets, snap.Worksheets)

	_, err = os.Stat(filepath.Join(dir, models.CacheKeyPrefix, keyToPathTransform(keyFor("http://localhost:8000")).FileName))
	assert.NoError(t, err)
}

func TestServersAreIsolated(t *testing.T) {
	store := Open(t.TempDir())
	require.NoError(t, store.Save("https://a.example.org", []models.Worksheet{{UUID: "a"}}))
	require.NoError(t, store.Save("https://b.example.org", []models.Worksheet{{UUID: "b"}}))

	snap, ok, err := store.Load("https://a.example.org")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, snap.Worksheets, 1)
	assert.Equal(t, "a", snap.Worksheets[0].UUID)
}

func TestSaveNilStoresEmptyList(t *testing.T) {
	store := Open(t.TempDir())
	require.NoError(t, store.Save("https://a.example.org", nil))

	snap, ok, err := store.Load("https://a.example.org")
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotNil(t, snap.Worksheets)
	assert.Empty(t, snap.Worksheets)
}

func TestCorruptEntry(t *testing.T) {
	store := Open(t.TempDir())
	require.NoError(t, store.d.Write(keyFor("https://a.example.org"), []byte("{not json")))

	_, ok, err := store.Load("https://a.example.org")
	require.Error(t, err)
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	store := Open(t.TempDir())
	require.NoError(t, store.Clear("https://a.example.org"))

	require.NoError(t, store.Save("https://a.example.org", []models.Worksheet{{UUID: "a"}}))
	require.NoError(t, store.Clear("https://a.example.org"))

	_, ok, err := store.Load("https://a.example.org")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKeyTransformRoundTrip(t *testing.T) {
	key := keyFor("https://a.example.org")
	assert.Equal(t, key, pathToKeyTransform(keyToPathTransform(key)))
}
