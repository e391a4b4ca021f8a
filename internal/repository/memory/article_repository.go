package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/arabianblog/backend/internal/models"
	"github.com/arabianblog/backend/internal/repository"
)

// ArticleRepository is an in-memory ArticleRepository used by tests
type ArticleRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]models.ArticleAsset

	CreateErr error
	SaveErr   error
}

func NewArticleRepository() *ArticleRepository {
	return &ArticleRepository{items: make(map[uuid.UUID]models.ArticleAsset)}
}

func (r *ArticleRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.ArticleAsset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &item, nil
}

func (r *ArticleRepository) FindAll(ctx context.Context) ([]models.ArticleAsset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.ArticleAsset, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ArticleRepository) Create(ctx context.Context, article *models.ArticleAsset) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	if article.ID == uuid.Nil {
		article.ID = uuid.New()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[article.ID] = *article
	return nil
}

func (r *ArticleRepository) Save(ctx context.Context, article *models.ArticleAsset) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[article.ID] = *article
	return nil
}

func (r *ArticleRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}
