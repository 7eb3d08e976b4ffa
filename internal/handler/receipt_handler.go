package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"recibo/internal/service"
)

// ReceiptHandler handles receipt endpoints. The public lookup route serves
// the QR code landing page; everything else requires an admin token.
type ReceiptHandler struct {
	receiptService service.ReceiptService
	clientService  service.ClientService
}

// NewReceiptHandler creates a new ReceiptHandler.
func NewReceiptHandler(receiptService service.ReceiptService, clientService service.ClientService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService, clientService: clientService}
}

// Create handles POST /api/v1/receipts
func (h *ReceiptHandler) Create(c *gin.Context) {
	var input service.CreateReceiptInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	summary, err := h.receiptService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	// Client bookkeeping is best effort; the receipt already exists.
	if input.ClientInfo.Email != "" {
		_ = h.clientService.RecordReceipt(
			c.Request.Context(),
			input.ClientInfo.Email,
			summary.ReceiptID,
			input.PaymentInfo.Amount,
			input.PaymentInfo.Status,
		)
	}

	RespondCreated(c, summary)
}

// Get handles GET /api/v1/receipts/:receiptId and the public
// GET /api/v1/public/receipts/:receiptId
func (h *ReceiptHandler) Get(c *gin.Context) {
	view, err := h.receiptService.Get(c.Request.Context(), c.Param("receiptId"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// List handles GET /api/v1/receipts
func (h *ReceiptHandler) List(c *gin.Context) {
	var input service.ListReceiptsInput
	if err := c.ShouldBindQuery(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	receipts, total, err := h.receiptService.List(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	page, pageSize := parsePageQuery(c)
	RespondPaginated(c, receipts, PagMeta{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: service.TotalPages(total, pageSize),
	})
}

// Update handles PUT /api/v1/receipts/:receiptId
func (h *ReceiptHandler) Update(c *gin.Context) {
	var input service.UpdateReceiptInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	view, err := h.receiptService.Update(c.Request.Context(), c.Param("receiptId"), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// Delete handles DELETE /api/v1/receipts/:receiptId
func (h *ReceiptHandler) Delete(c *gin.Context) {
	if err := h.receiptService.Delete(c.Request.Context(), c.Param("receiptId")); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "receipt deleted"})
}

// DownloadPDF handles GET /api/v1/receipts/:receiptId/pdf
func (h *ReceiptHandler) DownloadPDF(c *gin.Context) {
	receiptID := c.Param("receiptId")
	data, err := h.receiptService.RenderPDF(c.Request.Context(), receiptID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", receiptID))
	c.Data(http.StatusOK, "application/pdf", data)
}
