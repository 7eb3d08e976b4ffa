package port

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"recibo/internal/domain"
)

// ReceiptFilter narrows receipt listings. Search matches receipt_id and
// project_title case-insensitively; Status filters on payment status.
type ReceiptFilter struct {
	Status domain.PaymentStatus
	Search string
}

// ReceiptRepository defines the contract for receipt persistence. All read
// paths see active rows only; deletion is a soft flag flip.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *domain.Receipt) error
	GetByReceiptID(ctx context.Context, receiptID string) (*domain.Receipt, error)
	List(ctx context.Context, filter ReceiptFilter, offset, limit int) ([]domain.Receipt, int, error)
	ListAllActive(ctx context.Context) ([]domain.Receipt, error)
	Update(ctx context.Context, receipt *domain.Receipt) error
	UpdateQRCodeURL(ctx context.Context, id uuid.UUID, url string) error
	SoftDelete(ctx context.Context, receiptID string) error
	CountByStatus(ctx context.Context) (map[domain.PaymentStatus]int, error)
	RevenueByCurrency(ctx context.Context) ([]domain.CurrencyRevenue, error)
	MonthlyRevenue(ctx context.Context, months int) ([]domain.MonthlyRevenue, error)
}

// InvoiceFilter narrows invoice listings.
type InvoiceFilter struct {
	Status domain.InvoiceStatus
	Search string
}

// InvoiceRepository defines the contract for invoice persistence.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByInvoiceID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	List(ctx context.Context, filter InvoiceFilter, offset, limit int) ([]domain.Invoice, int, error)
	ListAllActive(ctx context.Context) ([]domain.Invoice, error)
	Update(ctx context.Context, invoice *domain.Invoice) error
	UpdateQRCodeURL(ctx context.Context, id uuid.UUID, url string) error
	SoftDelete(ctx context.Context, invoiceID string) error
	CountByStatus(ctx context.Context) (map[domain.InvoiceStatus]int, error)
}

// ClientFilter narrows client listings. Search matches name, email and
// company name case-insensitively.
type ClientFilter struct {
	Search     string
	ActiveOnly bool
}

// ClientRepository defines the contract for client persistence. Listings
// sort by last_contact descending.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByClientID(ctx context.Context, clientID string) (*domain.Client, error)
	GetByEmail(ctx context.Context, email string) (*domain.Client, error)
	List(ctx context.Context, filter ClientFilter, offset, limit int) ([]domain.Client, int, error)
	Update(ctx context.Context, client *domain.Client) error
	SoftDelete(ctx context.Context, clientID string) error
}

// TemplateRepository defines the contract for document template persistence.
// SetDefault clears is_default on every sibling of the same type and sets it
// on the target, in one transaction.
type TemplateRepository interface {
	Create(ctx context.Context, tmpl *domain.Template) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Template, error)
	List(ctx context.Context, tmplType domain.TemplateType, activeOnly bool) ([]domain.Template, error)
	Update(ctx context.Context, tmpl *domain.Template) error
	SetDefault(ctx context.Context, id uuid.UUID) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// EmailTemplateRepository defines the contract for notification template
// persistence. GetDefaultByType returns the active template of the given
// type, preferring the default one, or ErrNotFound.
type EmailTemplateRepository interface {
	Create(ctx context.Context, tmpl *domain.EmailTemplate) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.EmailTemplate, error)
	GetDefaultByType(ctx context.Context, tmplType domain.EmailTemplateType) (*domain.EmailTemplate, error)
	List(ctx context.Context, tmplType domain.EmailTemplateType, activeOnly bool) ([]domain.EmailTemplate, error)
	Update(ctx context.Context, tmpl *domain.EmailTemplate) error
	SetDefault(ctx context.Context, id uuid.UUID) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// EmailLogRepository records delivery attempts.
type EmailLogRepository interface {
	Create(ctx context.Context, log *domain.EmailLog) error
	List(ctx context.Context, offset, limit int) ([]domain.EmailLog, int, error)
}

// CurrencyRepository defines the contract for currency persistence.
type CurrencyRepository interface {
	Create(ctx context.Context, currency *domain.Currency) error
	GetByCode(ctx context.Context, code string) (*domain.Currency, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Currency, error)
	Update(ctx context.Context, currency *domain.Currency) error
	UpdateRate(ctx context.Context, code string, rate float64) (*domain.Currency, error)
}

// TaxSettingRepository defines the contract for tax setting persistence.
// SetDefault clears is_default on every sibling in the same region and sets
// it on the target, in one transaction.
type TaxSettingRepository interface {
	Create(ctx context.Context, setting *domain.TaxSetting) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TaxSetting, error)
	List(ctx context.Context, region string, activeOnly bool) ([]domain.TaxSetting, error)
	Update(ctx context.Context, setting *domain.TaxSetting) error
	SetDefault(ctx context.Context, id uuid.UUID) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// ConfigRepository is the generic key/value store.
type ConfigRepository interface {
	Get(ctx context.Context, key string) (*domain.ConfigEntry, error)
	Upsert(ctx context.Context, key string, value json.RawMessage) (*domain.ConfigEntry, error)
}

// AdminRepository defines the contract for admin account persistence.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
}
