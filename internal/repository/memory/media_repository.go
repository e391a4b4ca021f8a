package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/arabianblog/backend/internal/models"
	"github.com/arabianblog/backend/internal/repository"
)

// MediaRepository is an in-memory MediaRepository used by tests
type MediaRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]models.MediaAsset

	// CreateErr and SaveErr let tests inject persistence failures
	CreateErr error
	SaveErr   error
}

func NewMediaRepository() *MediaRepository {
	return &MediaRepository{items: make(map[uuid.UUID]models.MediaAsset)}
}

func (r *MediaRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.MediaAsset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &item, nil
}

func (r *MediaRepository) FindAll(ctx context.Context) ([]models.MediaAsset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.MediaAsset, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MediaRepository) Create(ctx context.Context, media *models.MediaAsset) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	if media.ID == uuid.Nil {
		media.ID = uuid.New()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[media.ID] = *media
	return nil
}

func (r *MediaRepository) Save(ctx context.Context, media *models.MediaAsset) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[media.ID] = *media
	return nil
}

func (r *MediaRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *MediaRepository) IncrementDownloads(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	item.Downloads++
	r.items[id] = item
	return nil
}
