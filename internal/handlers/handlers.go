package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/arabianblog/backend/internal/apperr"
)

// respondError maps a service error onto the HTTP status and the
// caller-safe message for it
func respondError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
}

var errInvalidDuration = apperr.Validation("duration must be a number")
