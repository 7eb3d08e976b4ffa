package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"recibo/internal/config"
	"recibo/internal/crypto"
	"recibo/internal/domain"
	"recibo/internal/port"
)

// CreateInvoiceInput is the DTO for invoice creation. Line-item amounts and
// the three totals are always recomputed server-side, never trusted from
// the caller.
type CreateInvoiceInput struct {
	Date           string                 `json:"date"`
	DueDate        string                 `json:"dueDate" binding:"required"`
	ClientInfo     domain.ClientInfo      `json:"clientInfo"`
	FreelancerInfo domain.FreelancerInfo  `json:"freelancerInfo"`
	Items          []domain.InvoiceItem   `json:"items"`
	Currency       string                 `json:"currency"`
	PaymentTerms   string                 `json:"paymentTerms"`
	Notes          string                 `json:"notes"`
	Status         domain.InvoiceStatus   `json:"status"`
	ReceiptID      *string                `json:"receiptId"`
	PaymentInfo    *domain.InvoicePayment `json:"paymentInfo"`
	SendEmail      *bool                  `json:"sendEmail"`
}

// UpdateInvoiceInput is the DTO for invoice updates. Nil sub-objects are
// left unchanged; changing items, client, freelancer or payment recomputes
// the envelope, and changing items recomputes all derived totals.
type UpdateInvoiceInput struct {
	Date           *string                `json:"date"`
	DueDate        *string                `json:"dueDate"`
	ClientInfo     *domain.ClientInfo     `json:"clientInfo"`
	FreelancerInfo *domain.FreelancerInfo `json:"freelancerInfo"`
	Items          *[]domain.InvoiceItem  `json:"items"`
	Currency       *string                `json:"currency"`
	PaymentTerms   *string                `json:"paymentTerms"`
	Notes          *string                `json:"notes"`
	Status         *domain.InvoiceStatus  `json:"status"`
	PaymentInfo    *domain.InvoicePayment `json:"paymentInfo"`
}

// ListInvoicesInput narrows and paginates invoice listings.
type ListInvoicesInput struct {
	Status   string `form:"status"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// InvoiceSummary is the public-safe response to a creation request.
type InvoiceSummary struct {
	ID        uuid.UUID `json:"id"`
	InvoiceID string    `json:"invoice_id"`
	Subtotal  float64   `json:"subtotal"`
	TaxTotal  float64   `json:"tax_total"`
	Total     float64   `json:"total"`
	QRCodeURL string    `json:"qr_code_url"`
	Date      time.Time `json:"date"`
	Warnings  []string  `json:"warnings,omitempty"`
}

// InvoiceService orchestrates the invoice lifecycle.
type InvoiceService interface {
	Create(ctx context.Context, input CreateInvoiceInput) (*InvoiceSummary, error)
	Get(ctx context.Context, invoiceID string) (*domain.InvoiceView, error)
	List(ctx context.Context, input ListInvoicesInput) ([]domain.Invoice, int, error)
	Update(ctx context.Context, invoiceID string, input UpdateInvoiceInput) (*domain.InvoiceView, error)
	Delete(ctx context.Context, invoiceID string) error
	RenderPDF(ctx context.Context, invoiceID string) ([]byte, error)
}

type invoiceService struct {
	invoiceRepo port.InvoiceRepository
	configSvc   ConfigService
	emailSvc    EmailService
	cipher      *crypto.Cipher
	qrPub       qrPublisher
	pdf         port.PDFRenderer
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(
	invoiceRepo port.InvoiceRepository,
	configSvc ConfigService,
	emailSvc EmailService,
	cipher *crypto.Cipher,
	qr port.QREncoder,
	storage port.ObjectStorage,
	pdf port.PDFRenderer,
	s3cfg config.S3Config,
	appCfg config.AppConfig,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		configSvc:   configSvc,
		emailSvc:    emailSvc,
		cipher:      cipher,
		qrPub:       qrPublisher{qr: qr, storage: storage, s3cfg: s3cfg, appCfg: appCfg},
		pdf:         pdf,
	}
}

// ComputeInvoiceTotals recomputes per-item amounts and the three derived
// totals from quantity, rate and tax rate. The input slice is modified in
// place.
func ComputeInvoiceTotals(items []domain.InvoiceItem) (subtotal, taxTotal, total float64) {
	for i := range items {
		items[i].Amount = items[i].Quantity * items[i].Rate
		items[i].TaxAmount = items[i].Amount * items[i].TaxRate / 100
		subtotal += items[i].Amount
		taxTotal += items[i].TaxAmount
	}
	return subtotal, taxTotal, subtotal + taxTotal
}

func (s *invoiceService) Create(ctx context.Context, input CreateInvoiceInput) (*InvoiceSummary, error) {
	if input.FreelancerInfo.Name == "" && input.FreelancerInfo.Email == "" {
		if info, err := s.configSvc.GetFreelancerInfo(ctx); err == nil {
			input.FreelancerInfo = *info
		}
	}

	if err := validateInvoiceInput(input); err != nil {
		return nil, err
	}

	date := time.Now().UTC()
	if input.Date != "" {
		parsed, err := parseDate(input.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date format", domain.ErrValidation)
		}
		date = parsed
	}
	dueDate, err := parseDate(input.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid due date format", domain.ErrValidation)
	}

	status := input.Status
	if status == "" {
		status = domain.InvoiceStatusDraft
	}

	subtotal, taxTotal, total := ComputeInvoiceTotals(input.Items)

	sensitive := domain.InvoiceSensitive{
		ClientInfo:     input.ClientInfo,
		FreelancerInfo: input.FreelancerInfo,
		Items:          input.Items,
		PaymentInfo:    input.PaymentInfo,
	}
	envelope, err := s.cipher.EncryptJSON(sensitive)
	if err != nil {
		return nil, fmt.Errorf("invoice.Create: %w", err)
	}

	invoice := &domain.Invoice{
		InvoiceID:     domain.NewInvoiceID(),
		ReceiptID:     input.ReceiptID,
		Date:          date,
		DueDate:       dueDate,
		Subtotal:      subtotal,
		TaxTotal:      taxTotal,
		Total:         total,
		Currency:      input.Currency,
		PaymentTerms:  input.PaymentTerms,
		Notes:         input.Notes,
		Status:        status,
		EncryptedData: envelope,
		IsActive:      true,
	}
	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	var warnings []string

	publicURL := s.qrPub.publicURL("invoices", invoice.InvoiceID)
	qrValue, warn := s.qrPub.publish(ctx, invoice.InvoiceID, publicURL)
	if warn != "" {
		warnings = append(warnings, warn)
	}
	if qrValue != "" {
		if err := s.invoiceRepo.UpdateQRCodeURL(ctx, invoice.ID, qrValue); err != nil {
			log.Printf("invoice %s: persisting qr url: %v", invoice.InvoiceID, err)
			warnings = append(warnings, "qr_code_not_saved")
		} else {
			invoice.QRCodeURL = qrValue
		}
	}

	if shouldSendEmail(input.SendEmail) && input.ClientInfo.Email != "" {
		vars := map[string]string{
			"client_name":     input.ClientInfo.Name,
			"freelancer_name": input.FreelancerInfo.Name,
			"invoice_id":      invoice.InvoiceID,
			"amount":          formatAmount(total),
			"currency":        input.Currency,
			"status":          string(status),
			"date":            date.Format("January 2, 2006"),
			"due_date":        dueDate.Format("January 2, 2006"),
			"invoice_url":     publicURL,
		}
		if _, err := s.emailSvc.SendTemplated(ctx, domain.EmailTemplateInvoiceSent, input.ClientInfo.Email, vars, "", invoice.InvoiceID); err != nil {
			log.Printf("invoice %s: notification email: %v", invoice.InvoiceID, err)
			warnings = append(warnings, "email_not_sent")
		}
	}

	return &InvoiceSummary{
		ID:        invoice.ID,
		InvoiceID: invoice.InvoiceID,
		Subtotal:  subtotal,
		TaxTotal:  taxTotal,
		Total:     total,
		QRCodeURL: invoice.QRCodeURL,
		Date:      invoice.Date,
		Warnings:  warnings,
	}, nil
}

func (s *invoiceService) Get(ctx context.Context, invoiceID string) (*domain.InvoiceView, error) {
	invoice, err := s.invoiceRepo.GetByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, invoice)
}

func (s *invoiceService) List(ctx context.Context, input ListInvoicesInput) ([]domain.Invoice, int, error) {
	if input.Status != "" && !domain.ValidInvoiceStatuses[domain.InvoiceStatus(input.Status)] {
		return nil, 0, domain.ErrInvalidInvoiceStatus
	}
	offset, limit := paginate(input.Page, input.PageSize)
	filter := port.InvoiceFilter{
		Status: domain.InvoiceStatus(input.Status),
		Search: input.Search,
	}
	return s.invoiceRepo.List(ctx, filter, offset, limit)
}

func (s *invoiceService) Update(ctx context.Context, invoiceID string, input UpdateInvoiceInput) (*domain.InvoiceView, error) {
	invoice, err := s.invoiceRepo.GetByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	var sensitive domain.InvoiceSensitive
	if err := s.cipher.DecryptJSON(invoice.EncryptedData, &sensitive); err != nil {
		return nil, err
	}

	changed := false
	if input.ClientInfo != nil {
		sensitive.ClientInfo = *input.ClientInfo
		changed = true
	}
	if input.FreelancerInfo != nil {
		sensitive.FreelancerInfo = *input.FreelancerInfo
		changed = true
	}
	if input.Items != nil {
		if len(*input.Items) == 0 {
			return nil, fmt.Errorf("%w: items must not be empty", domain.ErrValidation)
		}
		sensitive.Items = *input.Items
		invoice.Subtotal, invoice.TaxTotal, invoice.Total = ComputeInvoiceTotals(sensitive.Items)
		changed = true
	}
	if input.PaymentInfo != nil {
		sensitive.PaymentInfo = input.PaymentInfo
		changed = true
	}
	if input.Date != nil {
		parsed, err := parseDate(*input.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date format", domain.ErrValidation)
		}
		invoice.Date = parsed
	}
	if input.DueDate != nil {
		parsed, err := parseDate(*input.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid due date format", domain.ErrValidation)
		}
		invoice.DueDate = parsed
	}
	if input.Currency != nil {
		invoice.Currency = strings.ToUpper(*input.Currency)
	}
	if input.PaymentTerms != nil {
		invoice.PaymentTerms = *input.PaymentTerms
	}
	if input.Notes != nil {
		invoice.Notes = *input.Notes
	}
	if input.Status != nil {
		if !domain.ValidInvoiceStatuses[*input.Status] {
			return nil, domain.ErrInvalidInvoiceStatus
		}
		invoice.Status = *input.Status
	}

	if changed {
		envelope, err := s.cipher.EncryptJSON(sensitive)
		if err != nil {
			return nil, fmt.Errorf("invoice.Update: %w", err)
		}
		invoice.EncryptedData = envelope
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return s.buildView(ctx, invoice)
}

func (s *invoiceService) Delete(ctx context.Context, invoiceID string) error {
	return s.invoiceRepo.SoftDelete(ctx, invoiceID)
}

func (s *invoiceService) RenderPDF(ctx context.Context, invoiceID string) ([]byte, error) {
	view, err := s.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return s.pdf.RenderInvoice(view)
}

func (s *invoiceService) buildView(ctx context.Context, invoice *domain.Invoice) (*domain.InvoiceView, error) {
	var sensitive domain.InvoiceSensitive
	if err := s.cipher.DecryptJSON(invoice.EncryptedData, &sensitive); err != nil {
		return nil, err
	}

	var fallback *domain.FreelancerInfo
	if info, err := s.configSvc.GetFreelancerInfo(ctx); err == nil {
		fallback = info
	}

	applyClientDefaults(&sensitive.ClientInfo)
	applyFreelancerDefaults(&sensitive.FreelancerInfo, fallback)
	if sensitive.Items == nil {
		sensitive.Items = []domain.InvoiceItem{}
	}

	return &domain.InvoiceView{
		InvoiceID:      invoice.InvoiceID,
		ReceiptID:      invoice.ReceiptID,
		Date:           invoice.Date,
		DueDate:        invoice.DueDate,
		ClientInfo:     sensitive.ClientInfo,
		FreelancerInfo: sensitive.FreelancerInfo,
		Items:          sensitive.Items,
		Subtotal:       invoice.Subtotal,
		TaxTotal:       invoice.TaxTotal,
		Total:          invoice.Total,
		Currency:       invoice.Currency,
		PaymentTerms:   invoice.PaymentTerms,
		Notes:          invoice.Notes,
		Status:         invoice.Status,
		PaymentInfo:    sensitive.PaymentInfo,
		QRCodeURL:      invoice.QRCodeURL,
		PDFURL:         invoice.PDFURL,
		CreatedAt:      invoice.CreatedAt,
	}, nil
}

func validateInvoiceInput(input CreateInvoiceInput) error {
	var missing []string
	if input.ClientInfo.Name == "" {
		missing = append(missing, "clientInfo.name")
	}
	if input.ClientInfo.Email == "" {
		missing = append(missing, "clientInfo.email")
	}
	if input.FreelancerInfo.Name == "" {
		missing = append(missing, "freelancerInfo.name")
	}
	if input.FreelancerInfo.Email == "" {
		missing = append(missing, "freelancerInfo.email")
	}
	if len(input.Items) == 0 {
		missing = append(missing, "items")
	}
	if input.Currency == "" {
		missing = append(missing, "currency")
	}
	if input.DueDate == "" {
		missing = append(missing, "dueDate")
	}
	for i, item := range input.Items {
		if item.Description == "" {
			missing = append(missing, fmt.Sprintf("items[%d].description", i))
		}
		if item.Quantity <= 0 {
			missing = append(missing, fmt.Sprintf("items[%d].quantity", i))
		}
		if item.Rate < 0 {
			missing = append(missing, fmt.Sprintf("items[%d].rate", i))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", domain.ErrValidation, strings.Join(missing, ", "))
	}
	if input.Status != "" && !domain.ValidInvoiceStatuses[input.Status] {
		return domain.ErrInvalidInvoiceStatus
	}
	return nil
}
