package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/arabianblog/backend/internal/models"
)

// ErrNotFound is returned when the referenced document does not exist
var ErrNotFound = errors.New("record not found")

// MediaRepository stores MediaAsset documents
type MediaRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.MediaAsset, error)
	FindAll(ctx context.Context) ([]models.MediaAsset, error)
	Create(ctx context.Context, media *models.MediaAsset) error
	Save(ctx context.Context, media *models.MediaAsset) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
	IncrementDownloads(ctx context.Context, id uuid.UUID) error
}

// ArticleRepository stores ArticleAsset documents
type ArticleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.ArticleAsset, error)
	FindAll(ctx context.Context) ([]models.ArticleAsset, error)
	Create(ctx context.Context, article *models.ArticleAsset) error
	Save(ctx context.Context, article *models.ArticleAsset) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// AccountRepository stores Account documents
type AccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	FindByUsername(ctx context.Context, username string) (*models.Account, error)
	FindByRole(ctx context.Context, role models.Role) ([]models.Account, error)
	Create(ctx context.Context, account *models.Account) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
