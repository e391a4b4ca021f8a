package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arabianblog/backend/internal/models"
	"github.com/arabianblog/backend/internal/repository"
)

type ArticleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.ArticleAsset, error) {
	var article models.ArticleAsset
	if err := r.db.WithContext(ctx).Preload("Author").First(&article, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &article, nil
}

func (r *ArticleRepository) FindAll(ctx context.Context) ([]models.ArticleAsset, error) {
	var articles []models.ArticleAsset
	if err := r.db.WithContext(ctx).Preload("Author").Order("created_at DESC").Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *ArticleRepository) Create(ctx context.Context, article *models.ArticleAsset) error {
	return r.db.WithContext(ctx).Create(article).Error
}

func (r *ArticleRepository) Save(ctx context.Context, article *models.ArticleAsset) error {
	return r.db.WithContext(ctx).Save(article).Error
}

func (r *ArticleRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ArticleAsset{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
