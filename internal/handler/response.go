package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"recibo/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrAdminInactive):
		return http.StatusForbidden, "ADMIN_INACTIVE", "admin account is inactive"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_FAILED", err.Error()
	case errors.Is(err, domain.ErrInvalidPaymentStatus):
		return http.StatusBadRequest, "INVALID_PAYMENT_STATUS", "payment status must be paid, pending or partial"
	case errors.Is(err, domain.ErrInvalidInvoiceStatus):
		return http.StatusBadRequest, "INVALID_INVOICE_STATUS", "invoice status must be draft, sent, paid, overdue or cancelled"
	case errors.Is(err, domain.ErrInvalidTaxRate):
		return http.StatusBadRequest, "INVALID_TAX_RATE", "tax rate must be between 0 and 100"
	case errors.Is(err, domain.ErrInvalidCurrencyCode):
		return http.StatusBadRequest, "INVALID_CURRENCY_CODE", "currency code must be 3 letters"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, "DUPLICATE_EMAIL", "a record with this email already exists"
	case errors.Is(err, domain.ErrDuplicateCurrency):
		return http.StatusConflict, "DUPLICATE_CURRENCY", "currency code already exists"
	case errors.Is(err, domain.ErrDuplicateReceiptID):
		return http.StatusConflict, "DUPLICATE_RECEIPT_ID", "receipt id already exists"
	case errors.Is(err, domain.ErrDuplicateInvoiceID):
		return http.StatusConflict, "DUPLICATE_INVOICE_ID", "invoice id already exists"
	case errors.Is(err, domain.ErrConfigKeyNotFound):
		return http.StatusNotFound, "CONFIG_KEY_NOT_FOUND", "configuration key not found"
	case errors.Is(err, domain.ErrEmailDeliveryFailed):
		return http.StatusBadGateway, "EMAIL_DELIVERY_FAILED", "email delivery failed"
	case errors.Is(err, domain.ErrDecryption):
		return http.StatusInternalServerError, "DECRYPTION_FAILED", "stored record could not be decrypted"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
