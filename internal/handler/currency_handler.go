package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recibo/internal/service"
)

// CurrencyHandler handles currency endpoints.
type CurrencyHandler struct {
	currencyService service.CurrencyService
}

// NewCurrencyHandler creates a new CurrencyHandler.
func NewCurrencyHandler(currencyService service.CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{currencyService: currencyService}
}

// Create handles POST /api/v1/currencies
func (h *CurrencyHandler) Create(c *gin.Context) {
	var input service.CreateCurrencyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	currency, err := h.currencyService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, currency)
}

// Get handles GET /api/v1/currencies/:code
func (h *CurrencyHandler) Get(c *gin.Context) {
	currency, err := h.currencyService.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, currency)
}

// List handles GET /api/v1/currencies
func (h *CurrencyHandler) List(c *gin.Context) {
	activeOnly := c.DefaultQuery("active", "true") != "false"

	currencies, err := h.currencyService.List(c.Request.Context(), activeOnly)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, currencies)
}

// Update handles PUT /api/v1/currencies/:code
func (h *CurrencyHandler) Update(c *gin.Context) {
	var input service.UpdateCurrencyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	currency, err := h.currencyService.Update(c.Request.Context(), c.Param("code"), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, currency)
}

// UpdateRate handles PUT /api/v1/currencies/:code/rate
func (h *CurrencyHandler) UpdateRate(c *gin.Context) {
	var req struct {
		ExchangeRate float64 `json:"exchange_rate" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "exchange_rate is required")
		return
	}

	currency, err := h.currencyService.UpdateRate(c.Request.Context(), c.Param("code"), req.ExchangeRate)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, currency)
}
