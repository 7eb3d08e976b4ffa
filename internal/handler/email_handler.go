package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recibo/internal/service"
)

// EmailHandler handles ad-hoc email sending and the delivery log.
type EmailHandler struct {
	emailService service.EmailService
}

// NewEmailHandler creates a new EmailHandler.
func NewEmailHandler(emailService service.EmailService) *EmailHandler {
	return &EmailHandler{emailService: emailService}
}

// Send handles POST /api/v1/emails
func (h *EmailHandler) Send(c *gin.Context) {
	var input service.SendEmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	messageID, err := h.emailService.Send(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message_id": messageID})
}

// ListLogs handles GET /api/v1/emails/logs
func (h *EmailHandler) ListLogs(c *gin.Context) {
	page, pageSize := parsePageQuery(c)

	logs, total, err := h.emailService.ListLogs(c.Request.Context(), page, pageSize)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, logs, PagMeta{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: service.TotalPages(total, pageSize),
	})
}
