package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocalStore(t *testing.T) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(t.TempDir(), "http://localhost:5000")
	require.NoError(t, err)
	return store
}

func TestLocalStorePut(t *testing.T) {
	store := newTestLocalStore(t)

	loc, err := store.Put(context.Background(), []byte("mp3 bytes"), "audio/mpeg", "media_files")
	require.NoError(t, err)

	assert.Equal(t, KindLocal, loc.Kind)
	assert.Equal(t, ResourceAudio, loc.Resource)
	assert.True(t, strings.HasPrefix(loc.PublicURL, "http://localhost:5000/api/files/media_files/"))
	assert.True(t, strings.HasSuffix(loc.PublicURL, ".mp3"))
	assert.False(t, loc.IsZero())

	data, err := os.ReadFile(loc.DeleteKey)
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3 bytes"), data)
}

func TestLocalStorePutRejectsEmptyPayload(t *testing.T) {
	store := newTestLocalStore(t)

	loc, err := store.Put(context.Background(), nil, "audio/mpeg", "media_files")
	assert.ErrorIs(t, err, ErrInvalidPayload)
	assert.True(t, loc.IsZero())
}

func TestLocalStorePutRejectsUnknownMIME(t *testing.T) {
	store := newTestLocalStore(t)

	loc, err := store.Put(context.Background(), []byte("data"), "application/zip", "media_files")
	assert.ErrorIs(t, err, ErrInvalidPayload)
	assert.True(t, loc.IsZero())
}

func TestLocalStorePutLeavesNoPartialFile(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root, "http://localhost:5000")
	require.NoError(t, err)

	loc, err := store.Put(context.Background(), []byte{0x89, 0x50, 0x4e, 0x47}, "image/png", "news_images")
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Dir(loc.DeleteKey))
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, strings.HasSuffix(entry.Name(), ".part"))
	}
}

func TestLocalStoreDelete(t *testing.T) {
	store := newTestLocalStore(t)

	loc, err := store.Put(context.Background(), []byte("bytes"), "image/jpeg", "news_images")
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), loc))

	exists, err := store.Exists(context.Background(), loc)
	require.NoError(t, err)
	assert.False(t, exists)

	// deleting an absent blob is success, not an error
	assert.NoError(t, store.Delete(context.Background(), loc))
}

func TestLocalStoreDeleteZeroLocator(t *testing.T) {
	store := newTestLocalStore(t)
	assert.NoError(t, store.Delete(context.Background(), Locator{}))
}

func TestLocalStoreExists(t *testing.T) {
	store := newTestLocalStore(t)

	loc, err := store.Put(context.Background(), []byte("bytes"), "image/webp", "news_images")
	require.NoError(t, err)

	exists, err := store.Exists(context.Background(), loc)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.Exists(context.Background(), Locator{})
	require.NoError(t, err)
	assert.False(t, exists)
}
