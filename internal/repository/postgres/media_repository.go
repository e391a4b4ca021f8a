package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arabianblog/backend/internal/models"
	"github.com/arabianblog/backend/internal/repository"
)

type MediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

func (r *MediaRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.MediaAsset, error) {
	var media models.MediaAsset
	if err := r.db.WithContext(ctx).First(&media, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &media, nil
}

func (r *MediaRepository) FindAll(ctx context.Context) ([]models.MediaAsset, error) {
	var media []models.MediaAsset
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&media).Error; err != nil {
		return nil, err
	}
	return media, nil
}

func (r *MediaRepository) Create(ctx context.Context, media *models.MediaAsset) error {
	return r.db.WithContext(ctx).Create(media).Error
}

func (r *MediaRepository) Save(ctx context.Context, media *models.MediaAsset) error {
	return r.db.WithContext(ctx).Save(media).Error
}

func (r *MediaRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MediaAsset{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MediaRepository) IncrementDownloads(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.MediaAsset{}).
		Where("id = ?", id).
		UpdateColumn("downloads", gorm.Expr("downloads + 1")).Error
}
