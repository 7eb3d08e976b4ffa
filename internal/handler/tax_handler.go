package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"recibo/internal/service"
)

// TaxHandler handles tax setting endpoints.
type TaxHandler struct {
	taxService service.TaxService
}

// NewTaxHandler creates a new TaxHandler.
func NewTaxHandler(taxService service.TaxService) *TaxHandler {
	return &TaxHandler{taxService: taxService}
}

// Create handles POST /api/v1/tax-settings
func (h *TaxHandler) Create(c *gin.Context) {
	var input service.CreateTaxSettingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	setting, err := h.taxService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, setting)
}

// Get handles GET /api/v1/tax-settings/:id
func (h *TaxHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid tax setting ID")
		return
	}

	setting, err := h.taxService.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, setting)
}

// List handles GET /api/v1/tax-settings
func (h *TaxHandler) List(c *gin.Context) {
	region := c.Query("region")
	activeOnly := c.DefaultQuery("active", "true") != "false"

	settings, err := h.taxService.List(c.Request.Context(), region, activeOnly)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, settings)
}

// Update handles PUT /api/v1/tax-settings/:id
func (h *TaxHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid tax setting ID")
		return
	}

	var input service.UpdateTaxSettingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	setting, err := h.taxService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, setting)
}

// SetDefault handles PUT /api/v1/tax-settings/:id/default
func (h *TaxHandler) SetDefault(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid tax setting ID")
		return
	}

	if err := h.taxService.SetDefault(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "default tax setting updated"})
}

// Delete handles DELETE /api/v1/tax-settings/:id
func (h *TaxHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid tax setting ID")
		return
	}

	if err := h.taxService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "tax setting deleted"})
}
