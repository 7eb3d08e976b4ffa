package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ClientInfo is the client side of a receipt or invoice. Stored only inside
// the encrypted envelope, never as plaintext columns.
type ClientInfo struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	TaxID       string `json:"taxId,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
}

// FreelancerInfo is the issuing side of a receipt or invoice.
type FreelancerInfo struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Website     string `json:"website,omitempty"`
	TaxID       string `json:"taxId,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
}

// ProjectDetails describes the delivered work on a receipt.
type ProjectDetails struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Technologies  []string `json:"technologies"`
	Deliverables  []string `json:"deliverables"`
	WebsiteURL    string   `json:"websiteUrl,omitempty"`
	ProjectImages []string `json:"projectImages,omitempty"`
}

// PaymentInfo describes the payment on a receipt.
type PaymentInfo struct {
	Amount   float64       `json:"amount"`
	Currency string        `json:"currency"`
	Method   string        `json:"method"`
	Status   PaymentStatus `json:"status"`
	DueDate  string        `json:"dueDate,omitempty"`
}

// ReceiptSensitive is the sub-document serialized to JSON and sealed into a
// receipt's encrypted envelope.
type ReceiptSensitive struct {
	ClientInfo     ClientInfo     `json:"clientInfo"`
	FreelancerInfo FreelancerInfo `json:"freelancerInfo"`
	ProjectDetails ProjectDetails `json:"projectDetails"`
	PaymentInfo    PaymentInfo    `json:"paymentInfo"`
}

// Receipt is the stored receipt row. Indexable scalars are plaintext;
// everything identifying a person lives in EncryptedData.
type Receipt struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	ReceiptID     string        `db:"receipt_id" json:"receipt_id"`
	Date          time.Time     `db:"date" json:"date"`
	ProjectTitle  string        `db:"project_title" json:"project_title"`
	Amount        float64       `db:"amount" json:"amount"`
	Currency      string        `db:"currency" json:"currency"`
	PaymentStatus PaymentStatus `db:"payment_status" json:"payment_status"`
	EncryptedData string        `db:"encrypted_data" json:"-"`
	QRCodeURL     string        `db:"qr_code_url" json:"qr_code_url"`
	PDFURL        string        `db:"pdf_url" json:"pdf_url"`
	IsActive      bool          `db:"is_active" json:"is_active"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

// ReceiptView is a receipt with its envelope decrypted and merged, the shape
// returned to readers and fed to the PDF renderer.
type ReceiptView struct {
	ReceiptID      string         `json:"receipt_id"`
	Date           time.Time      `json:"date"`
	ClientInfo     ClientInfo     `json:"clientInfo"`
	FreelancerInfo FreelancerInfo `json:"freelancerInfo"`
	ProjectDetails ProjectDetails `json:"projectDetails"`
	PaymentInfo    PaymentInfo    `json:"paymentInfo"`
	QRCodeURL      string         `json:"qr_code_url"`
	PDFURL         string         `json:"pdf_url"`
	CreatedAt      time.Time      `json:"created_at"`
}

// InvoiceItem is a single line item. Amount and TaxAmount are derived and
// recomputed server-side whenever items change.
type InvoiceItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
	TaxRate     float64 `json:"taxRate,omitempty"`
	TaxAmount   float64 `json:"taxAmount,omitempty"`
}

// InvoicePayment records how a sent invoice was settled.
type InvoicePayment struct {
	Method        string `json:"method"`
	TransactionID string `json:"transactionId,omitempty"`
	PaidDate      string `json:"paidDate,omitempty"`
}

// InvoiceSensitive is the sub-document sealed into an invoice's envelope.
type InvoiceSensitive struct {
	ClientInfo     ClientInfo      `json:"clientInfo"`
	FreelancerInfo FreelancerInfo  `json:"freelancerInfo"`
	Items          []InvoiceItem   `json:"items"`
	PaymentInfo    *InvoicePayment `json:"paymentInfo,omitempty"`
}

// Invoice is the stored invoice row.
type Invoice struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	InvoiceID     string        `db:"invoice_id" json:"invoice_id"`
	ReceiptID     *string       `db:"receipt_id" json:"receipt_id,omitempty"`
	Date          time.Time     `db:"date" json:"date"`
	DueDate       time.Time     `db:"due_date" json:"due_date"`
	Subtotal      float64       `db:"subtotal" json:"subtotal"`
	TaxTotal      float64       `db:"tax_total" json:"tax_total"`
	Total         float64       `db:"total" json:"total"`
	Currency      string        `db:"currency" json:"currency"`
	PaymentTerms  string        `db:"payment_terms" json:"payment_terms"`
	Notes         string        `db:"notes" json:"notes,omitempty"`
	Status        InvoiceStatus `db:"status" json:"status"`
	EncryptedData string        `db:"encrypted_data" json:"-"`
	QRCodeURL     string        `db:"qr_code_url" json:"qr_code_url"`
	PDFURL        string        `db:"pdf_url" json:"pdf_url"`
	IsActive      bool          `db:"is_active" json:"is_active"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

// InvoiceView is an invoice with its envelope decrypted and merged.
type InvoiceView struct {
	InvoiceID      string          `json:"invoice_id"`
	ReceiptID      *string         `json:"receipt_id,omitempty"`
	Date           time.Time       `json:"date"`
	DueDate        time.Time       `json:"due_date"`
	ClientInfo     ClientInfo      `json:"clientInfo"`
	FreelancerInfo FreelancerInfo  `json:"freelancerInfo"`
	Items          []InvoiceItem   `json:"items"`
	Subtotal       float64         `json:"subtotal"`
	TaxTotal       float64         `json:"tax_total"`
	Total          float64         `json:"total"`
	Currency       string          `json:"currency"`
	PaymentTerms   string          `json:"payment_terms"`
	Notes          string          `json:"notes,omitempty"`
	Status         InvoiceStatus   `json:"status"`
	PaymentInfo    *InvoicePayment `json:"paymentInfo,omitempty"`
	QRCodeURL      string          `json:"qr_code_url"`
	PDFURL         string          `json:"pdf_url"`
	CreatedAt      time.Time       `json:"created_at"`
}

// StringList stores a list of strings as a JSONB column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("StringList: unsupported scan type %T", src)
	}
}

// Client is a stored client record.
type Client struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	ClientID          string     `db:"client_id" json:"client_id"`
	Name              string     `db:"name" json:"name"`
	Email             string     `db:"email" json:"email"`
	Phone             string     `db:"phone" json:"phone"`
	Address           string     `db:"address" json:"address"`
	CompanyName       string     `db:"company_name" json:"company_name,omitempty"`
	TaxID             string     `db:"tax_id" json:"tax_id,omitempty"`
	PreferredCurrency string     `db:"preferred_currency" json:"preferred_currency"`
	PaymentTerms      string     `db:"payment_terms" json:"payment_terms"`
	Receipts          StringList `db:"receipts" json:"receipts"`
	Invoices          StringList `db:"invoices" json:"invoices"`
	TotalPaid         float64    `db:"total_paid" json:"total_paid"`
	TotalPending      float64    `db:"total_pending" json:"total_pending"`
	LastContact       time.Time  `db:"last_contact" json:"last_contact"`
	IsActive          bool       `db:"is_active" json:"is_active"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
}

// TemplateField describes one input field a document template expects.
type TemplateField struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder,omitempty"`
}

// FieldList stores template fields as a JSONB column.
type FieldList []TemplateField

// Value implements driver.Valuer.
func (l FieldList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *FieldList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("FieldList: unsupported scan type %T", src)
	}
}

// Template is a stored receipt/invoice document layout. At most one template
// per type has IsDefault set; the repository enforces it transactionally.
type Template struct {
	ID           uuid.UUID    `db:"id" json:"id"`
	Name         string       `db:"name" json:"name"`
	Type         TemplateType `db:"type" json:"type"`
	Description  string       `db:"description" json:"description"`
	HTMLTemplate string       `db:"html_template" json:"html_template"`
	CSSStyles    string       `db:"css_styles" json:"css_styles"`
	Fields       FieldList    `db:"fields" json:"fields"`
	IsDefault    bool         `db:"is_default" json:"is_default"`
	IsActive     bool         `db:"is_active" json:"is_active"`
	CreatedBy    string       `db:"created_by" json:"created_by"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}

// EmailTemplate is a stored notification layout. Subject, HTMLContent and
// TextContent use {{name}} markers resolved by the template engine.
type EmailTemplate struct {
	ID          uuid.UUID         `db:"id" json:"id"`
	Name        string            `db:"name" json:"name"`
	Type        EmailTemplateType `db:"type" json:"type"`
	Subject     string            `db:"subject" json:"subject"`
	HTMLContent string            `db:"html_content" json:"html_content"`
	TextContent string            `db:"text_content" json:"text_content"`
	Variables   StringList        `db:"variables" json:"variables"`
	IsDefault   bool              `db:"is_default" json:"is_default"`
	IsActive    bool              `db:"is_active" json:"is_active"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time         `db:"updated_at" json:"updated_at"`
}

// EmailLog records every delivery attempt, successful or not.
type EmailLog struct {
	ID           uuid.UUID   `db:"id" json:"id"`
	To           string      `db:"recipient" json:"to"`
	Subject      string      `db:"subject" json:"subject"`
	TemplateType string      `db:"template_type" json:"template_type"`
	Status       EmailStatus `db:"status" json:"status"`
	Error        string      `db:"error" json:"error,omitempty"`
	SentAt       *time.Time  `db:"sent_at" json:"sent_at,omitempty"`
	ReceiptID    string      `db:"receipt_id" json:"receipt_id,omitempty"`
	InvoiceID    string      `db:"invoice_id" json:"invoice_id,omitempty"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
}

// Currency is a supported billing currency.
type Currency struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Code         string    `db:"code" json:"code"`
	Name         string    `db:"name" json:"name"`
	Symbol       string    `db:"symbol" json:"symbol"`
	ExchangeRate float64   `db:"exchange_rate" json:"exchange_rate"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	LastUpdated  time.Time `db:"last_updated" json:"last_updated"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// TaxSetting is a configurable tax rate. At most one setting per region has
// IsDefault set.
type TaxSetting struct {
	ID           uuid.UUID    `db:"id" json:"id"`
	Name         string       `db:"name" json:"name"`
	Region       string       `db:"region" json:"region"`
	TaxType      TaxType      `db:"tax_type" json:"tax_type"`
	Rate         float64      `db:"rate" json:"rate"`
	Description  string       `db:"description" json:"description"`
	ApplicableTo ApplicableTo `db:"applicable_to" json:"applicable_to"`
	IsDefault    bool         `db:"is_default" json:"is_default"`
	IsActive     bool         `db:"is_active" json:"is_active"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}

// ConfigEntry is a generic key/value configuration row. The only key the
// application reads today is ConfigKeyFreelancerInfo.
type ConfigEntry struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	Key       string          `db:"key" json:"key"`
	Value     json.RawMessage `db:"value" json:"value"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// ConfigKeyFreelancerInfo holds the admin's own contact block, used as the
// default FROM side of new receipts and the read-path fallback identity.
const ConfigKeyFreelancerInfo = "freelancer_info"

// Admin is the single operator account.
type Admin struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
