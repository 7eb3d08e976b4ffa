package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"recibo/internal/domain"
	"recibo/internal/service"
)

// EmailTemplateHandler handles notification template endpoints.
type EmailTemplateHandler struct {
	templateService service.EmailTemplateService
}

// NewEmailTemplateHandler creates a new EmailTemplateHandler.
func NewEmailTemplateHandler(templateService service.EmailTemplateService) *EmailTemplateHandler {
	return &EmailTemplateHandler{templateService: templateService}
}

// Create handles POST /api/v1/email-templates
func (h *EmailTemplateHandler) Create(c *gin.Context) {
	var input service.CreateEmailTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	tmpl, err := h.templateService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, tmpl)
}

// Get handles GET /api/v1/email-templates/:id
func (h *EmailTemplateHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid email template ID")
		return
	}

	tmpl, err := h.templateService.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tmpl)
}

// List handles GET /api/v1/email-templates
func (h *EmailTemplateHandler) List(c *gin.Context) {
	tmplType := domain.EmailTemplateType(c.Query("type"))
	activeOnly := c.DefaultQuery("active", "true") != "false"

	templates, err := h.templateService.List(c.Request.Context(), tmplType, activeOnly)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, templates)
}

// Update handles PUT /api/v1/email-templates/:id
func (h *EmailTemplateHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid email template ID")
		return
	}

	var input service.UpdateEmailTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	tmpl, err := h.templateService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tmpl)
}

// SetDefault handles PUT /api/v1/email-templates/:id/default
func (h *EmailTemplateHandler) SetDefault(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid email template ID")
		return
	}

	if err := h.templateService.SetDefault(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "default email template updated"})
}

// Delete handles DELETE /api/v1/email-templates/:id
func (h *EmailTemplateHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid email template ID")
		return
	}

	if err := h.templateService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "email template deleted"})
}
