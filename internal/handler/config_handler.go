package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"recibo/internal/domain"
	"recibo/internal/service"
)

// ConfigHandler handles application configuration endpoints.
type ConfigHandler struct {
	configService service.ConfigService
}

// NewConfigHandler creates a new ConfigHandler.
func NewConfigHandler(configService service.ConfigService) *ConfigHandler {
	return &ConfigHandler{configService: configService}
}

// Get handles GET /api/v1/config/:key
func (h *ConfigHandler) Get(c *gin.Context) {
	entry, err := h.configService.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, entry)
}

// Set handles PUT /api/v1/config/:key
func (h *ConfigHandler) Set(c *gin.Context) {
	var req struct {
		Value json.RawMessage `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "value is required")
		return
	}

	entry, err := h.configService.Set(c.Request.Context(), c.Param("key"), req.Value)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, entry)
}

// GetFreelancerInfo handles GET /api/v1/config/freelancer-info
func (h *ConfigHandler) GetFreelancerInfo(c *gin.Context) {
	info, err := h.configService.GetFreelancerInfo(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, info)
}

// SetFreelancerInfo handles PUT /api/v1/config/freelancer-info
func (h *ConfigHandler) SetFreelancerInfo(c *gin.Context) {
	var info domain.FreelancerInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.configService.SetFreelancerInfo(c.Request.Context(), info); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, info)
}
