package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"recibo/internal/service"
)

// ExportHandler handles accounting export downloads.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Export handles GET /api/v1/export
func (h *ExportHandler) Export(c *gin.Context) {
	var input service.ExportInput
	if err := c.ShouldBindQuery(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "type and format query parameters are required")
		return
	}

	result, err := h.exportService.Export(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
