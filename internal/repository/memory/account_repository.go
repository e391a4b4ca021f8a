package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/arabianblog/backend/internal/models"
	"github.com/arabianblog/backend/internal/repository"
)

// AccountRepository is an in-memory AccountRepository used by tests
type AccountRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]models.Account
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{items: make(map[uuid.UUID]models.Account)}
}

func (r *AccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &item, nil
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, item := range r.items {
		if item.Username == username {
			account := item
			return &account, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *AccountRepository) FindByRole(ctx context.Context, role models.Role) ([]models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Account
	for _, item := range r.items {
		if item.Role == role {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[account.ID] = *account
	return nil
}

func (r *AccountRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}
