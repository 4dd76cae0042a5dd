package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dkpatel/salestrack/internal/domain/models"
	"github.com/dkpatel/salestrack/internal/service/export"
)

// ExportService is the slice of the export service the HTTP layer depends on.
type ExportService interface {
	Export(ctx context.Context, req models.ExportRequest) (export.File, error)
}

// ExportHandler serves CSV downloads.
type ExportHandler struct {
	svc    ExportService
	logger *zap.Logger
}

// NewExportHandler constructs the HTTP handler adapter.
func NewExportHandler(svc ExportService, logger *zap.Logger) *ExportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportHandler{svc: svc, logger: logger}
}

// Export renders the selected days as an attached CSV file.
func (h *ExportHandler) Export(c *gin.Context) {
	var req models.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid export payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	file, err := h.svc.Export(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("export failed", zap.Error(err))
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, "text/csv", file.Content)
}
