package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"recibo/internal/service"
)

// AnalyticsHandler handles dashboard analytics endpoints.
type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Summary handles GET /api/v1/analytics/summary
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	months, _ := strconv.Atoi(c.DefaultQuery("months", "12"))

	summary, err := h.analyticsService.Summary(c.Request.Context(), months)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, summary)
}
