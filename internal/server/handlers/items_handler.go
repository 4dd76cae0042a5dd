package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dkpatel/salestrack/internal/domain/models"
)

// ItemsService is the slice of the items service the HTTP layer depends on.
type ItemsService interface {
	Add(ctx context.Context, req models.AddItemRequest) (models.Item, error)
	List(ctx context.Context) ([]models.Item, error)
	Search(ctx context.Context, term string) ([]models.Item, error)
	Get(ctx context.Context, uid string) (models.Item, error)
	Update(ctx context.Context, uid string, req models.UpdateItemRequest) (models.Item, error)
	Delete(ctx context.Context, uid string) error
	BulkDelete(ctx context.Context, uids []string) (models.BulkDeleteResult, error)
}

// ItemsHandler adapts record operations to HTTP.
type ItemsHandler struct {
	svc    ItemsService
	logger *zap.Logger
}

// NewItemsHandler constructs the HTTP handler adapter.
func NewItemsHandler(svc ItemsService, logger *zap.Logger) *ItemsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ItemsHandler{svc: svc, logger: logger}
}

// List returns all records sorted latest first, optionally filtered by the
// `search` query parameter.
func (h *ItemsHandler) List(c *gin.Context) {
	term := c.Query("search")

	var (
		items []models.Item
		err   error
	)
	if term == "" {
		items, err = h.svc.List(c.Request.Context())
	} else {
		items, err = h.svc.Search(c.Request.Context(), term)
	}
	if err != nil {
		h.logger.Error("failed listing records", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

// Create adds a new record.
func (h *ItemsHandler) Create(c *gin.Context) {
	var req models.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid add payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.svc.Add(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("failed adding record", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// Get returns a single record by uid.
func (h *ItemsHandler) Get(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), c.Param("uid"))
	if err != nil {
		h.logger.Warn("failed fetching record", zap.String("uid", c.Param("uid")), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// Update patches a record by uid.
func (h *ItemsHandler) Update(c *gin.Context) {
	var req models.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.svc.Update(c.Request.Context(), c.Param("uid"), req)
	if err != nil {
		h.logger.Error("failed updating record", zap.String("uid", c.Param("uid")), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// Delete removes a record by uid.
func (h *ItemsHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("uid")); err != nil {
		h.logger.Error("failed deleting record", zap.String("uid", c.Param("uid")), zap.Error(err))
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// BulkDelete removes many records. Every uid is attempted; a partial failure
// reports which deletes went through alongside the aggregate error.
func (h *ItemsHandler) BulkDelete(c *gin.Context) {
	var req models.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid bulk delete payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.svc.BulkDelete(c.Request.Context(), req.UIDs)
	if err != nil {
		h.logger.Error("bulk delete finished with failures",
			zap.Int("deleted", len(result.Deleted)),
			zap.Int("failed", len(result.Failed)),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "some items failed to delete",
			"deleted": result.Deleted,
			"failed":  result.Failed,
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
