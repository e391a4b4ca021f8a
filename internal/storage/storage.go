package storage

import (
	"context"
	"errors"
)

// Kind identifies which backend wrote a blob
type Kind string

const (
	KindLocal  Kind = "local"
	KindRemote Kind = "remote"
	KindMemory Kind = "memory"
)

// Resource is the backend-side classification of a blob. Both backends
// require the same classification on delete that was used on put, so it
// is recorded in the Locator.
type Resource string

const (
	ResourceImage Resource = "image"
	ResourceAudio Resource = "audio"
)

// ErrInvalidPayload is returned by Put for empty payloads or MIME types
// the store does not accept.
var ErrInvalidPayload = errors.New("invalid payload")

// Locator records where a blob lives and how to delete it later.
// It is either fully populated or zero, never partial. Only the public
// URL is serialized; the delete key stays internal.
type Locator struct {
	Kind      Kind     `gorm:"size:16" json:"-"`
	Resource  Resource `gorm:"size:16" json:"-"`
	PublicURL string   `gorm:"size:1024" json:"url"`
	DeleteKey string   `gorm:"size:512" json:"-"`
}

// IsZero reports whether the locator is absent
func (l Locator) IsZero() bool {
	return l == Locator{}
}

// Store is the uniform contract over blob backends. Delete is
// idempotent: deleting an already-absent blob is not an error.
type Store interface {
	Put(ctx context.Context, data []byte, mimeType, namespace string) (Locator, error)
	Delete(ctx context.Context, loc Locator) error
	Exists(ctx context.Context, loc Locator) (bool, error)
}

var extensionByMIME = map[string]string{
	"audio/mpeg": ".mp3",
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ResourceForMIME derives the blob classification from its MIME type
func ResourceForMIME(mimeType string) (Resource, bool) {
	switch {
	case mimeType == "audio/mpeg":
		return ResourceAudio, true
	case mimeType == "image/jpeg", mimeType == "image/png", mimeType == "image/webp":
		return ResourceImage, true
	}
	return "", false
}

// ExtensionForMIME returns the file extension used for stored objects
func ExtensionForMIME(mimeType string) string {
	if ext, ok := extensionByMIME[mimeType]; ok {
		return ext
	}
	return ""
}
