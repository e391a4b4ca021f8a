package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arabianblog/backend/internal/apperr"
	"github.com/arabianblog/backend/internal/intake"
	repomem "github.com/arabianblog/backend/internal/repository/memory"
)

func imagePayload() *intake.Payload {
	return &intake.Payload{Field: "image", Filename: "cover.jpg", MIME: "image/jpeg", Data: []byte("jpg bytes")}
}

func newArticleFixture() (*ArticleService, *repomem.ArticleRepository, *trackingStore) {
	repo := repomem.NewArticleRepository()
	store := newTrackingStore()
	return NewArticleService(repo, store), repo, store
}

func TestArticleCreate(t *testing.T) {
	svc, repo, store := newArticleFixture()
	author := uuid.New()

	article, err := svc.Create(context.Background(), ArticleFields{Title: "Headline", Content: "Body"}, author, imagePayload())
	require.NoError(t, err)

	assert.Equal(t, "Headline", article.Title)
	assert.Equal(t, "geral", article.Category)
	require.NotNil(t, article.AuthorID)
	assert.Equal(t, author, *article.AuthorID)
	assert.False(t, article.ImageLocator.IsZero())
	assert.Equal(t, 1, store.Len())

	saved, err := repo.FindByID(context.Background(), article.ID)
	require.NoError(t, err)
	assert.Equal(t, article.ImageLocator, saved.ImageLocator)
}

func TestArticleCreateWithoutImage(t *testing.T) {
	svc, _, store := newArticleFixture()

	article, err := svc.Create(context.Background(), ArticleFields{Title: "Headline", Content: "Body", Category: "cultura"}, uuid.New(), nil)
	require.NoError(t, err)

	assert.Equal(t, "cultura", article.Category)
	assert.True(t, article.ImageLocator.IsZero())
	assert.Equal(t, 0, store.Len())
}

func TestArticleCreateValidation(t *testing.T) {
	svc, _, store := newArticleFixture()

	_, err := svc.Create(context.Background(), ArticleFields{Content: "Body"}, uuid.New(), imagePayload())
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Create(context.Background(), ArticleFields{Title: "Headline"}, uuid.New(), imagePayload())
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	assert.Equal(t, 0, store.putCalls)
}

func TestArticleCreatePersistFailureRemovesImage(t *testing.T) {
	svc, repo, store := newArticleFixture()
	repo.CreateErr = errors.New("connection reset")

	_, err := svc.Create(context.Background(), ArticleFields{Title: "Headline", Content: "Body"}, uuid.New(), imagePayload())
	require.Error(t, err)
	assert.Equal(t, apperr.KindPersistence, apperr.KindOf(err))
	assert.Equal(t, 0, store.Len())
}

func TestArticleUpdateAuthorOnly(t *testing.T) {
	svc, _, _ := newArticleFixture()
	author := uuid.New()

	article, err := svc.Create(context.Background(), ArticleFields{Title: "Headline", Content: "Body"}, author, nil)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), article.ID, uuid.New(), ArticleFields{Title: "Hijacked"}, nil)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	updated, err := svc.Update(context.Background(), article.ID, author, ArticleFields{Title: "Edited"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Title)
	assert.Equal(t, "Body", updated.Content)
}

func TestArticleUpdateReplacesImage(t *testing.T) {
	svc, _, store := newArticleFixture()
	author := uuid.New()

	article, err := svc.Create(context.Background(), ArticleFields{Title: "Headline", Content: "Body"}, author, imagePayload())
	require.NoError(t, err)
	oldLoc := article.ImageLocator

	updated, err := svc.Update(context.Background(), article.ID, author, ArticleFields{}, imagePayload())
	require.NoError(t, err)

	assert.NotEqual(t, oldLoc, updated.ImageLocator)
	exists, err := store.Exists(context.Background(), oldLoc)
	require.NoError(t, err)
	assert.False(t, exists, "replaced image should be deleted")
	assert.Equal(t, 1, store.Len())
}

func TestArticleUpdatePersistFailureKeepsOldImage(t *testing.T) {
	svc, repo, store := newArticleFixture()
	author := uuid.New()

	article, err := svc.Create(context.Background(), ArticleFields{Title: "Headline", Content: "Body"}, author, imagePayload())
	require.NoError(t, err)
	oldLoc := article.ImageLocator

	repo.SaveErr = errors.New("connection reset")
	_, err = svc.Update(context.Background(), article.ID, author, ArticleFields{}, imagePayload())
	assert.Equal(t, apperr.KindPersistence, apperr.KindOf(err))

	saved, findErr := repo.FindByID(context.Background(), article.ID)
	require.NoError(t, findErr)
	assert.Equal(t, oldLoc, saved.ImageLocator)

	exists, existsErr := store.Exists(context.Background(), oldLoc)
	require.NoError(t, existsErr)
	assert.True(t, exists)
	assert.Equal(t, 1, store.Len(), "new image should be compensated away")
}

func TestArticleUpdateVideoURL(t *testing.T) {
	svc, _, _ := newArticleFixture()
	author := uuid.New()
	link := "https://youtube.com/watch?v=abc"

	article, err := svc.Create(context.Background(), ArticleFields{Title: "Headline", Content: "Body", VideoURL: &link}, author, nil)
	require.NoError(t, err)
	assert.Equal(t, link, article.VideoURL)

	// absent field leaves the link alone
	updated, err := svc.Update(context.Background(), article.ID, author, ArticleFields{Title: "Edited"}, nil)
	require.NoError(t, err)
	assert.Equal(t, link, updated.VideoURL)

	// explicit empty value clears it
	empty := ""
	updated, err = svc.Update(context.Background(), article.ID, author, ArticleFields{VideoURL: &empty}, nil)
	require.NoError(t, err)
	assert.Equal(t, "", updated.VideoURL)
}

func TestArticleUpdateNotFound(t *testing.T) {
	svc, _, store := newArticleFixture()

	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), ArticleFields{Title: "x"}, imagePayload())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, 0, store.putCalls)
}

func TestArticleDelete(t *testing.T) {
	svc, repo, store := newArticleFixture()
	author := uuid.New()

	article, err := svc.Create(context.Background(), ArticleFields{Title: "Headline", Content: "Body"}, author, imagePayload())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), article.ID))

	_, err = repo.FindByID(context.Background(), article.ID)
	assert.Error(t, err)
	assert.Equal(t, 0, store.Len())
}

func TestArticleDeleteNotFound(t *testing.T) {
	svc, _, store := newArticleFixture()

	err := svc.Delete(context.Background(), uuid.New())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, 0, store.deleteCalls)
}
