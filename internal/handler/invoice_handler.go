package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"recibo/internal/domain"
	"recibo/internal/service"
)

// InvoiceHandler handles invoice endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
	clientService  service.ClientService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService, clientService service.ClientService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, clientService: clientService}
}

// Create handles POST /api/v1/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	var input service.CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	summary, err := h.invoiceService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	if input.ClientInfo.Email != "" {
		status := input.Status
		if status == "" {
			status = domain.InvoiceStatusDraft
		}
		_ = h.clientService.RecordInvoice(
			c.Request.Context(),
			input.ClientInfo.Email,
			summary.InvoiceID,
			summary.Total,
			status,
		)
	}

	RespondCreated(c, summary)
}

// Get handles GET /api/v1/invoices/:invoiceId and the public
// GET /api/v1/public/invoices/:invoiceId
func (h *InvoiceHandler) Get(c *gin.Context) {
	view, err := h.invoiceService.Get(c.Request.Context(), c.Param("invoiceId"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// List handles GET /api/v1/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	var input service.ListInvoicesInput
	if err := c.ShouldBindQuery(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	page, pageSize := parsePageQuery(c)
	RespondPaginated(c, invoices, PagMeta{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: service.TotalPages(total, pageSize),
	})
}

// Update handles PUT /api/v1/invoices/:invoiceId
func (h *InvoiceHandler) Update(c *gin.Context) {
	var input service.UpdateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	view, err := h.invoiceService.Update(c.Request.Context(), c.Param("invoiceId"), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// Delete handles DELETE /api/v1/invoices/:invoiceId
func (h *InvoiceHandler) Delete(c *gin.Context) {
	if err := h.invoiceService.Delete(c.Request.Context(), c.Param("invoiceId")); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "invoice deleted"})
}

// DownloadPDF handles GET /api/v1/invoices/:invoiceId/pdf
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	invoiceID := c.Param("invoiceId")
	data, err := h.invoiceService.RenderPDF(c.Request.Context(), invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", invoiceID))
	c.Data(http.StatusOK, "application/pdf", data)
}
