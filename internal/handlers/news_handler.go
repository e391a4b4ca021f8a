package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/arabianblog/backend/internal/intake"
	"github.com/arabianblog/backend/internal/middleware"
	"github.com/arabianblog/backend/internal/models"
	"github.com/arabianblog/backend/internal/services"
)

type NewsHandler struct {
	articleService *services.ArticleService
	intake         *intake.Intake
}

func NewNewsHandler(articleService *services.ArticleService, in *intake.Intake) *NewsHandler {
	return &NewsHandler{articleService: articleService, intake: in}
}

// List returns all articles, newest first
// GET /api/news
func (h *NewsHandler) List(c *gin.Context) {
	articles, err := h.articleService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, len(articles))
	for i := range articles {
		out[i] = articleResponse(&articles[i])
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(out),
		"data":    out,
	})
}

// Get returns one article
// GET /api/news/:id
func (h *NewsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article ID"})
		return
	}

	article, err := h.articleService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    articleResponse(article),
	})
}

// Create publishes a new article
// POST /api/news
// Multipart form: title, content, category, videoUrl, image (optional)
func (h *NewsHandler) Create(c *gin.Context) {
	authorID, _ := middleware.UserID(c)

	image, err := h.intake.ArticleImage(c.Request)
	if err != nil {
		respondError(c, err)
		return
	}

	article, err := h.articleService.Create(c.Request.Context(), articleFieldsFromForm(c), authorID, image)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    articleResponse(article),
	})
}

// Update edits an article owned by the caller
// PUT /api/news/:id
func (h *NewsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article ID"})
		return
	}
	actorID, _ := middleware.UserID(c)

	image, err := h.intake.ArticleImage(c.Request)
	if err != nil {
		respondError(c, err)
		return
	}

	article, err := h.articleService.Update(c.Request.Context(), id, actorID, articleFieldsFromForm(c), image)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    articleResponse(article),
	})
}

// Delete removes an article and its image
// DELETE /api/news/:id
func (h *NewsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article ID"})
		return
	}

	if err := h.articleService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "article removed successfully"})
}

// articleFieldsFromForm reads the text fields of an article form. The
// video URL keeps its presence separate from its value so an explicit
// empty field clears a previously set link.
func articleFieldsFromForm(c *gin.Context) services.ArticleFields {
	fields := services.ArticleFields{
		Title:    c.PostForm("title"),
		Content:  c.PostForm("content"),
		Category: c.PostForm("category"),
	}
	if form := c.Request.MultipartForm; form != nil {
		if values, ok := form.Value["videoUrl"]; ok && len(values) > 0 {
			fields.VideoURL = &values[0]
		}
	}
	return fields
}

func articleResponse(article *models.ArticleAsset) gin.H {
	resp := gin.H{
		"id":         article.ID,
		"title":      article.Title,
		"content":    article.Content,
		"category":   article.Category,
		"created_at": article.CreatedAt,
	}
	if !article.ImageLocator.IsZero() {
		resp["image_url"] = article.ImageLocator.PublicURL
	}
	if article.VideoURL != "" {
		resp["video_url"] = article.VideoURL
	}
	if article.Author != nil {
		resp["author"] = gin.H{
			"id":        article.Author.ID,
			"full_name": article.Author.FullName,
			"username":  article.Author.Username,
		}
	} else if article.AuthorID != nil {
		resp["author"] = gin.H{"id": article.AuthorID}
	}
	return resp
}
