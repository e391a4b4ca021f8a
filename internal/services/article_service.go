package services

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"github.com/arabianblog/backend/internal/apperr"
	"github.com/arabianblog/backend/internal/intake"
	"github.com/arabianblog/backend/internal/models"
	"github.com/arabianblog/backend/internal/repository"
	"github.com/arabianblog/backend/internal/storage"
)

// ArticleFields carries the mutable text fields of an article form.
// Empty strings mean "leave unchanged" on update. VideoURL is nil when
// the field was absent, so an explicit empty value can clear the link.
type ArticleFields struct {
	Title    string
	Content  string
	Category string
	VideoURL *string
}

// ArticleService is the lifecycle manager for news articles and their
// optional cover image.
type ArticleService struct {
	articles repository.ArticleRepository
	store    storage.Store
}

func NewArticleService(articles repository.ArticleRepository, store storage.Store) *ArticleService {
	return &ArticleService{articles: articles, store: store}
}

// Create validates the fields, stores the optional image and persists
// the article. A persist failure deletes the image just written.
func (s *ArticleService) Create(ctx context.Context, fields ArticleFields, authorID uuid.UUID, image *intake.Payload) (*models.ArticleAsset, error) {
	if fields.Title == "" || fields.Content == "" {
		return nil, apperr.Validation("title and content are required")
	}

	undo := newCleanups(s.store)

	var imageLoc storage.Locator
	if image != nil {
		loc, err := s.put(ctx, image)
		if err != nil {
			return nil, err
		}
		imageLoc = loc
		undo.add(loc)
	}

	article := &models.ArticleAsset{
		Title:        fields.Title,
		Content:      fields.Content,
		Category:     fields.Category,
		ImageLocator: imageLoc,
	}
	if article.Category == "" {
		article.Category = models.CategoryGeneral
	}
	if fields.VideoURL != nil {
		article.VideoURL = *fields.VideoURL
	}
	if authorID != uuid.Nil {
		article.AuthorID = &authorID
	}

	if err := s.articles.Create(ctx, article); err != nil {
		undo.run(ctx, "article persist failure")
		return nil, apperr.Persistence("failed to save article", err)
	}

	return article, nil
}

// Update merges fields and replaces the image when a new one is
// supplied. Only the owning author may update an article. The new
// image is written first and the superseded one is deleted only after
// the record persisted, so the stored article never references a blob
// that is already gone.
func (s *ArticleService) Update(ctx context.Context, id, actorID uuid.UUID, fields ArticleFields, image *intake.Payload) (*models.ArticleAsset, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("article not found")
		}
		return nil, apperr.Persistence("failed to load article", err)
	}

	if article.AuthorID == nil || *article.AuthorID != actorID {
		return nil, apperr.Forbidden("permission denied")
	}

	undo := newCleanups(s.store)
	var superseded storage.Locator
	if image != nil {
		newLoc, err := s.put(ctx, image)
		if err != nil {
			return nil, err
		}
		undo.add(newLoc)
		superseded = article.ImageLocator
		article.ImageLocator = newLoc
	}

	if fields.Title != "" {
		article.Title = fields.Title
	}
	if fields.Content != "" {
		article.Content = fields.Content
	}
	if fields.Category != "" {
		article.Category = fields.Category
	}
	if fields.VideoURL != nil {
		article.VideoURL = *fields.VideoURL
	}

	if err := s.articles.Save(ctx, article); err != nil {
		undo.run(ctx, "article persist failure")
		return nil, apperr.Persistence("failed to update article", err)
	}

	s.deleteOld(ctx, superseded)

	return article, nil
}

// Delete removes the article record, then its image blob. A failed
// blob delete is logged as an orphan and does not fail the operation.
func (s *ArticleService) Delete(ctx context.Context, id uuid.UUID) error {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("article not found")
		}
		return apperr.Persistence("failed to load article", err)
	}

	if err := s.articles.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("article not found")
		}
		return apperr.Persistence("failed to delete article", err)
	}

	if err := s.store.Delete(ctx, article.ImageLocator); err != nil {
		log.Printf("[Article] record %s deleted but image blob left behind: %v", id, err)
	}

	return nil
}

// List returns all articles, newest first, with authors populated
func (s *ArticleService) List(ctx context.Context) ([]models.ArticleAsset, error) {
	articles, err := s.articles.FindAll(ctx)
	if err != nil {
		return nil, apperr.Persistence("failed to list articles", err)
	}
	return articles, nil
}

// Get returns one article by id
func (s *ArticleService) Get(ctx context.Context, id uuid.UUID) (*models.ArticleAsset, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("article not found")
		}
		return nil, apperr.Persistence("failed to load article", err)
	}
	return article, nil
}

func (s *ArticleService) put(ctx context.Context, payload *intake.Payload) (storage.Locator, error) {
	loc, err := s.store.Put(ctx, payload.Data, payload.MIME, nsNewsImages)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidPayload) {
			return storage.Locator{}, apperr.UnsupportedMedia(err.Error())
		}
		return storage.Locator{}, apperr.Storage("failed to store image", err)
	}
	return loc, nil
}

func (s *ArticleService) deleteOld(ctx context.Context, loc storage.Locator) {
	if loc.IsZero() {
		return
	}
	if err := s.store.Delete(ctx, loc); err != nil {
		log.Printf("[Article] failed to delete replaced blob %s: %v", loc.DeleteKey, err)
	}
}
