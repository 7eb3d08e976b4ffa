package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"recibo/internal/config"
	"recibo/internal/crypto"
	"recibo/internal/domain"
	"recibo/internal/port"
)

// CreateReceiptInput is the DTO for receipt creation. SendEmail defaults to
// true when omitted.
type CreateReceiptInput struct {
	Date           string                `json:"date"`
	ClientInfo     domain.ClientInfo     `json:"clientInfo"`
	FreelancerInfo domain.FreelancerInfo `json:"freelancerInfo"`
	ProjectDetails domain.ProjectDetails `json:"projectDetails"`
	PaymentInfo    domain.PaymentInfo    `json:"paymentInfo"`
	SendEmail      *bool                 `json:"sendEmail"`
}

// UpdateReceiptInput is the DTO for receipt updates. Nil sub-objects are
// left unchanged; any non-nil sub-object triggers envelope recomputation.
type UpdateReceiptInput struct {
	Date           *string                `json:"date"`
	ClientInfo     *domain.ClientInfo     `json:"clientInfo"`
	FreelancerInfo *domain.FreelancerInfo `json:"freelancerInfo"`
	ProjectDetails *domain.ProjectDetails `json:"projectDetails"`
	PaymentInfo    *domain.PaymentInfo    `json:"paymentInfo"`
}

// ListReceiptsInput narrows and paginates receipt listings.
type ListReceiptsInput struct {
	Status   string `form:"status"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// ReceiptSummary is the public-safe response to a creation request.
// Warnings lists secondary steps (QR upload, email) that did not complete.
type ReceiptSummary struct {
	ID        uuid.UUID `json:"id"`
	ReceiptID string    `json:"receipt_id"`
	QRCodeURL string    `json:"qr_code_url"`
	Date      time.Time `json:"date"`
	Warnings  []string  `json:"warnings,omitempty"`
}

// ReceiptService orchestrates the receipt lifecycle: validate, encrypt,
// persist, then best-effort QR and email side effects.
type ReceiptService interface {
	Create(ctx context.Context, input CreateReceiptInput) (*ReceiptSummary, error)
	Get(ctx context.Context, receiptID string) (*domain.ReceiptView, error)
	List(ctx context.Context, input ListReceiptsInput) ([]domain.Receipt, int, error)
	Update(ctx context.Context, receiptID string, input UpdateReceiptInput) (*domain.ReceiptView, error)
	Delete(ctx context.Context, receiptID string) error
	RenderPDF(ctx context.Context, receiptID string) ([]byte, error)
}

type receiptService struct {
	receiptRepo port.ReceiptRepository
	configSvc   ConfigService
	emailSvc    EmailService
	cipher      *crypto.Cipher
	qrPub       qrPublisher
	pdf         port.PDFRenderer
}

// NewReceiptService creates a new ReceiptService implementation.
func NewReceiptService(
	receiptRepo port.ReceiptRepository,
	configSvc ConfigService,
	emailSvc EmailService,
	cipher *crypto.Cipher,
	qr port.QREncoder,
	storage port.ObjectStorage,
	pdf port.PDFRenderer,
	s3cfg config.S3Config,
	appCfg config.AppConfig,
) ReceiptService {
	return &receiptService{
		receiptRepo: receiptRepo,
		configSvc:   configSvc,
		emailSvc:    emailSvc,
		cipher:      cipher,
		qrPub:       qrPublisher{qr: qr, storage: storage, s3cfg: s3cfg, appCfg: appCfg},
		pdf:         pdf,
	}
}

func (s *receiptService) Create(ctx context.Context, input CreateReceiptInput) (*ReceiptSummary, error) {
	// An empty issuer block falls back to the stored operator identity
	// before validation runs.
	if input.FreelancerInfo.Name == "" && input.FreelancerInfo.Email == "" {
		if info, err := s.configSvc.GetFreelancerInfo(ctx); err == nil {
			input.FreelancerInfo = *info
		}
	}

	if err := validateReceiptInput(input); err != nil {
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

	sensitive := domain.ReceiptSensitive{
		ClientInfo:     input.ClientInfo,
		FreelancerInfo: input.FreelancerInfo,
		ProjectDetails: input.ProjectDetails,
		PaymentInfo:    input.PaymentInfo,
	}
	envelope, err := s.cipher.EncryptJSON(sensitive)
	if err != nil {
		return nil, fmt.Errorf("receipt.Create: %w", err)
	}

	receipt := &domain.Receipt{
		ReceiptID:     domain.NewReceiptID(),
		Date:          date,
		ProjectTitle:  input.ProjectDetails.Title,
		Amount:        input.PaymentInfo.Amount,
		Currency:      input.PaymentInfo.Currency,
		PaymentStatus: input.PaymentInfo.Status,
		EncryptedData: envelope,
		IsActive:      true,
	}
	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		return nil, err
	}

	var warnings []string

	publicURL := s.qrPub.publicURL("receipts", receipt.ReceiptID)
	qrValue, warn := s.qrPub.publish(ctx, receipt.ReceiptID, publicURL)
	if warn != "" {
		warnings = append(warnings, warn)
	}
	if qrValue != "" {
		if err := s.receiptRepo.UpdateQRCodeURL(ctx, receipt.ID, qrValue); err != nil {
			log.Printf("receipt %s: persisting qr url: %v", receipt.ReceiptID, err)
			warnings = append(warnings, "qr_code_not_saved")
		} else {
			receipt.QRCodeURL = qrValue
		}
	}

	if shouldSendEmail(input.SendEmail) && input.ClientInfo.Email != "" {
		vars := map[string]string{
			"client_name":     input.ClientInfo.Name,
			"freelancer_name": input.FreelancerInfo.Name,
			"receipt_id":      receipt.ReceiptID,
			"project_title":   input.ProjectDetails.Title,
			"amount":          formatAmount(input.PaymentInfo.Amount),
			"currency":        input.PaymentInfo.Currency,
			"status":          string(input.PaymentInfo.Status),
			"date":            date.Format("January 2, 2006"),
			"receipt_url":     publicURL,
		}
		if _, err := s.emailSvc.SendTemplated(ctx, domain.EmailTemplateReceiptSent, input.ClientInfo.Email, vars, receipt.ReceiptID, ""); err != nil {
			log.Printf("receipt %s: notification email: %v", receipt.ReceiptID, err)
			warnings = append(warnings, "email_not_sent")
		}
	}

	return &ReceiptSummary{
		ID:        receipt.ID,
		ReceiptID: receipt.ReceiptID,
		QRCodeURL: receipt.QRCodeURL,
		Date:      receipt.Date,
		Warnings:  warnings,
	}, nil
}

func (s *receiptService) Get(ctx context.Context, receiptID string) (*domain.ReceiptView, error) {
	receipt, err := s.receiptRepo.GetByReceiptID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, receipt)
}

func (s *receiptService) List(ctx context.Context, input ListReceiptsInput) ([]domain.Receipt, int, error) {
	if input.Status != "" && !domain.ValidPaymentStatuses[domain.PaymentStatus(input.Status)] {
		return nil, 0, domain.ErrInvalidPaymentStatus
	}
	offset, limit := paginate(input.Page, input.PageSize)
	filter := port.ReceiptFilter{
		Status: domain.PaymentStatus(input.Status),
		Search: input.Search,
	}
	return s.receiptRepo.List(ctx, filter, offset, limit)
}

func (s *receiptService) Update(ctx context.Context, receiptID string, input UpdateReceiptInput) (*domain.ReceiptView, error) {
	receipt, err := s.receiptRepo.GetByReceiptID(ctx, receiptID)
	if err != nil {
		return nil, err
	}

	var sensitive domain.ReceiptSensitive
	if err := s.cipher.DecryptJSON(receipt.EncryptedData, &sensitive); err != nil {
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
	if input.ProjectDetails != nil {
		sensitive.ProjectDetails = *input.ProjectDetails
		receipt.ProjectTitle = input.ProjectDetails.Title
		changed = true
	}
	if input.PaymentInfo != nil {
		if !domain.ValidPaymentStatuses[input.PaymentInfo.Status] {
			return nil, domain.ErrInvalidPaymentStatus
		}
		sensitive.PaymentInfo = *input.PaymentInfo
		receipt.Amount = input.PaymentInfo.Amount
		receipt.Currency = input.PaymentInfo.Currency
		receipt.PaymentStatus = input.PaymentInfo.Status
		changed = true
	}
	if input.Date != nil {
		parsed, err := parseDate(*input.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date format", domain.ErrValidation)
		}
		receipt.Date = parsed
	}

	// The envelope is recomputed whenever any sensitive sub-object changed
	// in the same operation.
	if changed {
		envelope, err := s.cipher.EncryptJSON(sensitive)
		if err != nil {
			return nil, fmt.Errorf("receipt.Update: %w", err)
		}
		receipt.EncryptedData = envelope
	}

	if err := s.receiptRepo.Update(ctx, receipt); err != nil {
		return nil, err
	}
	return s.buildView(ctx, receipt)
}

func (s *receiptService) Delete(ctx context.Context, receiptID string) error {
	return s.receiptRepo.SoftDelete(ctx, receiptID)
}

func (s *receiptService) RenderPDF(ctx context.Context, receiptID string) ([]byte, error) {
	view, err := s.Get(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	return s.pdf.RenderReceipt(view)
}

// buildView decrypts the envelope and merges it with the plaintext columns,
// filling every missing leaf with an explicit fallback.
func (s *receiptService) buildView(ctx context.Context, receipt *domain.Receipt) (*domain.ReceiptView, error) {
	var sensitive domain.ReceiptSensitive
	if err := s.cipher.DecryptJSON(receipt.EncryptedData, &sensitive); err != nil {
		return nil, err
	}

	var fallback *domain.FreelancerInfo
	if info, err := s.configSvc.GetFreelancerInfo(ctx); err == nil {
		fallback = info
	}

	applyClientDefaults(&sensitive.ClientInfo)
	applyFreelancerDefaults(&sensitive.FreelancerInfo, fallback)
	applyProjectDefaults(&sensitive.ProjectDetails)
	applyPaymentDefaults(&sensitive.PaymentInfo)

	if sensitive.ProjectDetails.Title == fieldFallback && receipt.ProjectTitle != "" {
		sensitive.ProjectDetails.Title = receipt.ProjectTitle
	}
	if sensitive.PaymentInfo.Amount == 0 && receipt.Amount != 0 {
		sensitive.PaymentInfo.Amount = receipt.Amount
	}
	if receipt.Currency != "" {
		sensitive.PaymentInfo.Currency = receipt.Currency
	}
	if receipt.PaymentStatus != "" {
		sensitive.PaymentInfo.Status = receipt.PaymentStatus
	}

	return &domain.ReceiptView{
		ReceiptID:      receipt.ReceiptID,
		Date:           receipt.Date,
		ClientInfo:     sensitive.ClientInfo,
		FreelancerInfo: sensitive.FreelancerInfo,
		ProjectDetails: sensitive.ProjectDetails,
		PaymentInfo:    sensitive.PaymentInfo,
		QRCodeURL:      receipt.QRCodeURL,
		PDFURL:         receipt.PDFURL,
		CreatedAt:      receipt.CreatedAt,
	}, nil
}

func validateReceiptInput(input CreateReceiptInput) error {
	var missing []string
	if input.ClientInfo.Name == "" {
		missing = append(missing, "clientInfo.name")
	}
	if input.ClientInfo.Email == "" {
		missing = append(missing, "clientInfo.email")
	}
	if input.ClientInfo.Phone == "" {
		missing = append(missing, "clientInfo.phone")
	}
	if input.ClientInfo.Address == "" {
		missing = append(missing, "clientInfo.address")
	}
	if input.FreelancerInfo.Name == "" {
		missing = append(missing, "freelancerInfo.name")
	}
	if input.FreelancerInfo.Email == "" {
		missing = append(missing, "freelancerInfo.email")
	}
	if input.FreelancerInfo.Phone == "" {
		missing = append(missing, "freelancerInfo.phone")
	}
	if input.FreelancerInfo.Address == "" {
		missing = append(missing, "freelancerInfo.address")
	}
	if input.ProjectDetails.Title == "" {
		missing = append(missing, "projectDetails.title")
	}
	if input.ProjectDetails.Description == "" {
		missing = append(missing, "projectDetails.description")
	}
	if input.PaymentInfo.Amount <= 0 {
		missing = append(missing, "paymentInfo.amount")
	}
	if input.PaymentInfo.Currency == "" {
		missing = append(missing, "paymentInfo.currency")
	}
	if input.PaymentInfo.Method == "" {
		missing = append(missing, "paymentInfo.method")
	}
	if input.PaymentInfo.Status == "" {
		missing = append(missing, "paymentInfo.status")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", domain.ErrValidation, strings.Join(missing, ", "))
	}
	if !domain.ValidPaymentStatuses[input.PaymentInfo.Status] {
		return domain.ErrInvalidPaymentStatus
	}
	return nil
}

func shouldSendEmail(flag *bool) bool {
	return flag == nil || *flag
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

// parseDate accepts RFC 3339 timestamps and bare dates.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, errors.New("unrecognized date format")
}
