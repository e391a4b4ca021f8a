package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/arabianblog/backend/internal/apperr"
	"github.com/arabianblog/backend/internal/intake"
	"github.com/arabianblog/backend/internal/models"
	"github.com/arabianblog/backend/internal/repository"
	"github.com/arabianblog/backend/internal/storage"
	"github.com/arabianblog/backend/pkg/validation"
)

const defaultArtist = "Artista Desconhecido"

// MediaFields carries the mutable text fields of a media upload form.
// Empty strings mean "leave unchanged" on update; Duration is nil when
// the form did not include one.
type MediaFields struct {
	Title    string
	Artist   string
	Category string
	Duration *int
}

// MediaService is the lifecycle manager for music tracks. Every
// operation keeps the document and its blobs consistent: a blob write
// is always followed by either a successful persist or a compensating
// delete, and a replacement always writes the new blob before deleting
// the one it supersedes.
type MediaService struct {
	media repository.MediaRepository
	store storage.Store

	// probeDuration fills in DurationSeconds when the form omits it.
	// Optional; probing failures fall back to the submitted value.
	probeDuration func(ctx context.Context, audioData []byte) (int, error)
}

func NewMediaService(media repository.MediaRepository, store storage.Store) *MediaService {
	return &MediaService{media: media, store: store}
}

// WithDurationProbe enables ffprobe-backed duration extraction for
// uploads that do not declare one
func (s *MediaService) WithDurationProbe(probe func(ctx context.Context, audioData []byte) (int, error)) *MediaService {
	s.probeDuration = probe
	return s
}

// Create validates the fields, stores the audio (and optional
// thumbnail) and persists the document. Any failure after a blob write
// deletes what was written before the error is surfaced.
func (s *MediaService) Create(ctx context.Context, fields MediaFields, actorID uuid.UUID, audio, thumbnail *intake.Payload) (*models.MediaAsset, error) {
	if fields.Title == "" || audio == nil {
		return nil, apperr.Validation("title and media file are required")
	}
	if fields.Category != "" && fields.Category != models.CategoryMusic {
		return nil, apperr.Validation("category must be music")
	}
	if fields.Duration != nil && *fields.Duration < 0 {
		return nil, apperr.Validation("duration cannot be negative")
	}

	undo := newCleanups(s.store)

	audioLoc, err := s.put(ctx, audio, nsMediaFiles)
	if err != nil {
		return nil, err
	}
	undo.add(audioLoc)

	var thumbLoc storage.Locator
	if thumbnail != nil {
		thumbLoc, err = s.put(ctx, thumbnail, nsMediaThumbnails)
		if err != nil {
			undo.run(ctx, "thumbnail store failure")
			return nil, err
		}
		undo.add(thumbLoc)
	}

	media := &models.MediaAsset{
		Title:            fields.Title,
		Artist:           fields.Artist,
		Category:         models.CategoryMusic,
		AudioLocator:     audioLoc,
		ThumbnailLocator: thumbLoc,
	}
	if media.Artist == "" {
		media.Artist = defaultArtist
	}
	if fields.Duration != nil {
		media.DurationSeconds = *fields.Duration
	} else if s.probeDuration != nil {
		if seconds, err := s.probeDuration(ctx, audio.Data); err != nil {
			log.Printf("[Media] duration probe failed: %v", err)
		} else {
			media.DurationSeconds = seconds
		}
	}
	if actorID != uuid.Nil {
		media.UploadedByID = &actorID
	}

	if err := s.media.Create(ctx, media); err != nil {
		undo.run(ctx, "media persist failure")
		return nil, apperr.Persistence("failed to save media", err)
	}

	return media, nil
}

// Update replaces any payload slots present in the request and merges
// the text fields. Replacement order is write-new-before-delete-old,
// and the deletes of superseded blobs are deferred until the document
// persisted: at no point does the stored record reference a blob that
// is already gone. Any failure before the persist compensates the new
// writes and leaves both record and blobs exactly as they were.
func (s *MediaService) Update(ctx context.Context, id uuid.UUID, fields MediaFields, audio, thumbnail *intake.Payload) (*models.MediaAsset, error) {
	media, err := s.media.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("media not found")
		}
		return nil, apperr.Persistence("failed to load media", err)
	}
	if fields.Category != "" && fields.Category != models.CategoryMusic {
		return nil, apperr.Validation("category must be music")
	}
	if fields.Duration != nil && *fields.Duration < 0 {
		return nil, apperr.Validation("duration cannot be negative")
	}

	undo := newCleanups(s.store)
	var superseded []storage.Locator

	if audio != nil {
		newLoc, err := s.put(ctx, audio, nsMediaFiles)
		if err != nil {
			return nil, err
		}
		undo.add(newLoc)
		if !media.AudioLocator.IsZero() {
			superseded = append(superseded, media.AudioLocator)
		}
		media.AudioLocator = newLoc
	}

	if thumbnail != nil {
		newLoc, err := s.put(ctx, thumbnail, nsMediaThumbnails)
		if err != nil {
			undo.run(ctx, "thumbnail store failure")
			return nil, err
		}
		undo.add(newLoc)
		if !media.ThumbnailLocator.IsZero() {
			superseded = append(superseded, media.ThumbnailLocator)
		}
		media.ThumbnailLocator = newLoc
	}

	if fields.Title != "" {
		media.Title = fields.Title
	}
	if fields.Artist != "" {
		media.Artist = fields.Artist
	}
	if fields.Duration != nil {
		media.DurationSeconds = *fields.Duration
	}

	if err := s.media.Save(ctx, media); err != nil {
		undo.run(ctx, "media persist failure")
		return nil, apperr.Persistence("failed to update media", err)
	}

	// only now that the record points at the new blobs are the old
	// ones safe to reclaim
	for _, loc := range superseded {
		s.deleteOld(ctx, loc)
	}

	return media, nil
}

// Delete removes the document record first, then its blobs. A blob
// delete failing afterwards leaves an orphan, which is logged and
// reclaimed out of band; the record removal still counts as success.
func (s *MediaService) Delete(ctx context.Context, id uuid.UUID) error {
	media, err := s.media.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("media not found")
		}
		return apperr.Persistence("failed to load media", err)
	}

	if err := s.media.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("media not found")
		}
		return apperr.Persistence("failed to delete media", err)
	}

	if err := s.store.Delete(ctx, media.AudioLocator); err != nil {
		log.Printf("[Media] record %s deleted but audio blob left behind: %v", id, err)
	}
	if err := s.store.Delete(ctx, media.ThumbnailLocator); err != nil {
		log.Printf("[Media] record %s deleted but thumbnail blob left behind: %v", id, err)
	}

	return nil
}

// List returns all media, newest first
func (s *MediaService) List(ctx context.Context) ([]models.MediaAsset, error) {
	media, err := s.media.FindAll(ctx)
	if err != nil {
		return nil, apperr.Persistence("failed to list media", err)
	}
	return media, nil
}

// Get returns one media document by id
func (s *MediaService) Get(ctx context.Context, id uuid.UUID) (*models.MediaAsset, error) {
	media, err := s.media.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("media not found")
		}
		return nil, apperr.Persistence("failed to load media", err)
	}
	return media, nil
}

// Download resolves the media for a download request and counts it.
// The counter update is best-effort and never fails the download.
func (s *MediaService) Download(ctx context.Context, id uuid.UUID) (*models.MediaAsset, error) {
	media, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.media.IncrementDownloads(ctx, id); err != nil {
		log.Printf("[Media] failed to count download for %s: %v", id, err)
	}
	return media, nil
}

// DownloadFilename derives the attachment name served for a track
func DownloadFilename(media *models.MediaAsset) string {
	name := fmt.Sprintf("%s - %s", validation.SanitizeFilename(media.Artist), validation.SanitizeFilename(media.Title))
	ext := storage.ExtensionForMIME("audio/mpeg")
	return name + ext
}

func (s *MediaService) put(ctx context.Context, payload *intake.Payload, namespace string) (storage.Locator, error) {
	loc, err := s.store.Put(ctx, payload.Data, payload.MIME, namespace)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidPayload) {
			return storage.Locator{}, apperr.UnsupportedMedia(err.Error())
		}
		return storage.Locator{}, apperr.Storage("failed to store file", err)
	}
	return loc, nil
}

// deleteOld reclaims the blob a successful replacement superseded
func (s *MediaService) deleteOld(ctx context.Context, loc storage.Locator) {
	if loc.IsZero() {
		return
	}
	if err := s.store.Delete(ctx, loc); err != nil {
		log.Printf("[Media] failed to delete replaced blob %s: %v", loc.DeleteKey, err)
	}
}
