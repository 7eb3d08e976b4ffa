package domain

import "errors"

var (
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrAdminInactive         = errors.New("admin account is inactive")
	ErrValidation            = errors.New("validation failed")
	ErrDecryption            = errors.New("failed to decrypt envelope")
	ErrDuplicateEmail        = errors.New("client with this email already exists")
	ErrDuplicateCurrency     = errors.New("currency with this code already exists")
	ErrDuplicateReceiptID    = errors.New("receipt id already exists")
	ErrDuplicateInvoiceID    = errors.New("invoice id already exists")
	ErrInvalidPaymentStatus  = errors.New("invalid payment status")
	ErrInvalidInvoiceStatus  = errors.New("invalid invoice status")
	ErrInvalidTaxRate        = errors.New("tax rate must be between 0 and 100")
	ErrInvalidCurrencyCode   = errors.New("currency code must be 3 letters")
	ErrEmailDeliveryFailed   = errors.New("email delivery failed")
	ErrConfigKeyNotFound     = errors.New("configuration key not found")
	ErrEncryptionKeyRequired = errors.New("encryption key is required")
)
