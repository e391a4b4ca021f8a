package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arabianblog/backend/internal/storage"
)

// CategoryMusic is the only media category the platform accepts
const CategoryMusic = "music"

// MediaAsset is a published music track. The audio locator is always
// present on a persisted record; the thumbnail is optional.
type MediaAsset struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Title            string          `gorm:"size:255;not null" json:"title"`
	Artist           string          `gorm:"size:255;not null" json:"artist"`
	Category         string          `gorm:"size:32;default:'music'" json:"category"`
	DurationSeconds  int             `gorm:"default:0" json:"duration"`
	Downloads        int64           `gorm:"default:0" json:"downloads"`
	AudioLocator     storage.Locator `gorm:"embedded;embeddedPrefix:audio_" json:"audio"`
	ThumbnailLocator storage.Locator `gorm:"embedded;embeddedPrefix:thumbnail_" json:"thumbnail"`
	UploadedByID     *uuid.UUID      `gorm:"type:uuid" json:"uploaded_by,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`

	UploadedBy *Account `gorm:"foreignKey:UploadedByID" json:"-"`
}

func (m *MediaAsset) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
