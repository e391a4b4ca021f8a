package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arabianblog/backend/internal/storage"
)

// CategoryGeneral is the default article category
const CategoryGeneral = "geral"

// ArticleAsset is a news article. The image locator is optional; the
// video URL is an external link, not a managed blob.
type ArticleAsset struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string          `gorm:"size:255;not null" json:"title"`
	Content      string          `gorm:"type:text;not null" json:"content"`
	Category     string          `gorm:"size:64;default:'geral'" json:"category"`
	ImageLocator storage.Locator `gorm:"embedded;embeddedPrefix:image_" json:"image"`
	VideoURL     string          `gorm:"size:1024" json:"video_url,omitempty"`
	AuthorID     *uuid.UUID      `gorm:"type:uuid" json:"author_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`

	Author *Account `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (a *ArticleAsset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
