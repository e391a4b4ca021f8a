package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/arabianblog/backend/internal/intake"
	"github.com/arabianblog/backend/internal/middleware"
	"github.com/arabianblog/backend/internal/models"
	"github.com/arabianblog/backend/internal/services"
	"github.com/arabianblog/backend/internal/storage"
)

type MediaHandler struct {
	mediaService *services.MediaService
	intake       *intake.Intake
}

func NewMediaHandler(mediaService *services.MediaService, in *intake.Intake) *MediaHandler {
	return &MediaHandler{mediaService: mediaService, intake: in}
}

// Upload handles a new media upload
// POST /api/media
// Multipart form: file (required audio), thumbnail (optional image),
// title, artist, category, duration
func (h *MediaHandler) Upload(c *gin.Context) {
	actorID, _ := middleware.UserID(c)

	audio, thumbnail, err := h.intake.MediaForm(c.Request)
	if err != nil {
		respondError(c, err)
		return
	}

	fields, err := mediaFieldsFromForm(c)
	if err != nil {
		respondError(c, err)
		return
	}

	media, err := h.mediaService.Create(c.Request.Context(), fields, actorID, audio, thumbnail)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "media uploaded successfully",
		"media":   mediaResponse(media),
	})
}

// Update replaces media fields and payloads
// PUT /api/media/:id
func (h *MediaHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media ID"})
		return
	}

	audio, thumbnail, err := h.intake.MediaForm(c.Request)
	if err != nil {
		respondError(c, err)
		return
	}

	fields, err := mediaFieldsFromForm(c)
	if err != nil {
		respondError(c, err)
		return
	}

	media, err := h.mediaService.Update(c.Request.Context(), id, fields, audio, thumbnail)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "media updated successfully",
		"media":   mediaResponse(media),
	})
}

// Delete removes a media record and its blobs
// DELETE /api/media/:id
func (h *MediaHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media ID"})
		return
	}

	if err := h.mediaService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "media removed successfully"})
}

// List returns all media, newest first
// GET /api/media
func (h *MediaHandler) List(c *gin.Context) {
	media, err := h.mediaService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, len(media))
	for i := range media {
		out[i] = mediaResponse(&media[i])
	}
	c.JSON(http.StatusOK, out)
}

// Download counts the download and hands the caller the audio: a
// redirect for remote blobs, a streamed attachment for local ones
// GET /api/media/download/:id
func (h *MediaHandler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media ID"})
		return
	}

	media, err := h.mediaService.Download(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	if media.AudioLocator.Kind == storage.KindLocal {
		c.FileAttachment(media.AudioLocator.DeleteKey, services.DownloadFilename(media))
		return
	}
	c.Redirect(http.StatusFound, media.AudioLocator.PublicURL)
}

func mediaFieldsFromForm(c *gin.Context) (services.MediaFields, error) {
	fields := services.MediaFields{
		Title:    c.PostForm("title"),
		Artist:   c.PostForm("artist"),
		Category: c.PostForm("category"),
	}
	if raw := c.PostForm("duration"); raw != "" {
		duration, err := strconv.Atoi(raw)
		if err != nil {
			return fields, errInvalidDuration
		}
		fields.Duration = &duration
	}
	return fields, nil
}

func mediaResponse(media *models.MediaAsset) gin.H {
	resp := gin.H{
		"id":         media.ID,
		"title":      media.Title,
		"artist":     media.Artist,
		"category":   media.Category,
		"duration":   media.DurationSeconds,
		"downloads":  media.Downloads,
		"url":        media.AudioLocator.PublicURL,
		"created_at": media.CreatedAt,
	}
	if !media.ThumbnailLocator.IsZero() {
		resp["thumbnail_url"] = media.ThumbnailLocator.PublicURL
	}
	if media.UploadedByID != nil {
		resp["uploaded_by"] = media.UploadedByID
	}
	return resp
}
