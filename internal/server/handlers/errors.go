package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkpatel/salestrack/internal/apperrors"
)

// respondError maps the service error taxonomy onto HTTP statuses. Store and
// transport failures are deliberately generic: the caller can only retry, and
// prior on-screen state stays intact.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "store request failed"})
	}
}
