package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arabianblog/backend/internal/storage"
)

func TestPutAndExists(t *testing.T) {
	store := New()

	loc, err := store.Put(context.Background(), []byte("bytes"), "audio/mpeg", "media_files")
	require.NoError(t, err)
	assert.Equal(t, storage.KindMemory, loc.Kind)
	assert.Equal(t, storage.ResourceAudio, loc.Resource)
	assert.Equal(t, 1, store.Len())

	exists, err := store.Exists(context.Background(), loc)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPutRejectsInvalidPayload(t *testing.T) {
	store := New()

	_, err := store.Put(context.Background(), nil, "audio/mpeg", "media_files")
	assert.ErrorIs(t, err, storage.ErrInvalidPayload)

	_, err = store.Put(context.Background(), []byte("x"), "text/plain", "media_files")
	assert.ErrorIs(t, err, storage.ErrInvalidPayload)
	assert.Equal(t, 0, store.Len())
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := New()

	loc, err := store.Put(context.Background(), []byte("bytes"), "image/png", "news_images")
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), loc))
	require.NoError(t, store.Delete(context.Background(), loc))
	require.NoError(t, store.Delete(context.Background(), storage.Locator{}))
	assert.Equal(t, 0, store.Len())
}

func TestInjectedErrors(t *testing.T) {
	store := New()
	boom := errors.New("backend down")

	store.PutErr = boom
	_, err := store.Put(context.Background(), []byte("bytes"), "image/png", "news_images")
	assert.ErrorIs(t, err, boom)

	store.PutErr = nil
	loc, err := store.Put(context.Background(), []byte("bytes"), "image/png", "news_images")
	require.NoError(t, err)

	store.DeleteErr = boom
	assert.ErrorIs(t, store.Delete(context.Background(), loc), boom)
}
