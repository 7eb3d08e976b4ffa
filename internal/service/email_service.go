package service

import (
	"context"
	"fmt"
	"time"

	"recibo/internal/config"
	"recibo/internal/domain"
	"recibo/internal/port"
	"recibo/internal/template"
)

// SendEmailInput is the DTO for ad-hoc email requests.
type SendEmailInput struct {
	To      string `json:"to" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	HTML    string `json:"html" binding:"required"`
	Text    string `json:"text"`
}

// EmailService renders and delivers notification emails, recording every
// attempt in the email log.
type EmailService interface {
	Send(ctx context.Context, input SendEmailInput) (string, error)
	SendTemplated(ctx context.Context, tmplType domain.EmailTemplateType, to string, vars map[string]string, receiptID, invoiceID string) (string, error)
	ListLogs(ctx context.Context, page, pageSize int) ([]domain.EmailLog, int, error)
}

type emailService struct {
	sender       port.EmailSender
	templateRepo port.EmailTemplateRepository
	logRepo      port.EmailLogRepository
	cfg          config.EmailConfig
}

// NewEmailService creates a new EmailService implementation.
func NewEmailService(
	sender port.EmailSender,
	templateRepo port.EmailTemplateRepository,
	logRepo port.EmailLogRepository,
	cfg config.EmailConfig,
) EmailService {
	return &emailService{
		sender:       sender,
		templateRepo: templateRepo,
		logRepo:      logRepo,
		cfg:          cfg,
	}
}

func (s *emailService) Send(ctx context.Context, input SendEmailInput) (string, error) {
	return s.deliver(ctx, port.EmailMessage{
		To:      input.To,
		Subject: input.Subject,
		HTML:    input.HTML,
		Text:    input.Text,
	}, string(domain.EmailTemplateCustom), "", "")
}

// SendTemplated looks up the default active template of the given type,
// renders subject and body with the supplied variables, and delivers the
// result. The delivery attempt is logged whether it succeeds or not.
func (s *emailService) SendTemplated(ctx context.Context, tmplType domain.EmailTemplateType, to string, vars map[string]string, receiptID, invoiceID string) (string, error) {
	tmpl, err := s.templateRepo.GetDefaultByType(ctx, tmplType)
	if err != nil {
		return "", fmt.Errorf("email.SendTemplated: %w", err)
	}

	msg := port.EmailMessage{
		To:      to,
		Subject: template.Render(tmpl.Subject, vars),
		HTML:    template.Render(tmpl.HTMLContent, vars),
		Text:    template.Render(tmpl.TextContent, vars),
	}
	return s.deliver(ctx, msg, string(tmplType), receiptID, invoiceID)
}

func (s *emailService) ListLogs(ctx context.Context, page, pageSize int) ([]domain.EmailLog, int, error) {
	offset, limit := paginate(page, pageSize)
	return s.logRepo.List(ctx, offset, limit)
}

func (s *emailService) deliver(ctx context.Context, msg port.EmailMessage, templateType, receiptID, invoiceID string) (string, error) {
	sendCtx := ctx
	if s.cfg.SendTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, s.cfg.SendTimeout)
		defer cancel()
	}

	messageID, sendErr := s.sender.Send(sendCtx, msg)

	entry := &domain.EmailLog{
		To:           msg.To,
		Subject:      msg.Subject,
		TemplateType: templateType,
		ReceiptID:    receiptID,
		InvoiceID:    invoiceID,
	}
	if sendErr != nil {
		entry.Status = domain.EmailStatusFailed
		entry.Error = sendErr.Error()
	} else {
		now := time.Now().UTC()
		entry.Status = domain.EmailStatusSent
		entry.SentAt = &now
	}

	// The log row is secondary to the delivery outcome; a logging failure
	// never masks a successful send.
	if err := s.logRepo.Create(ctx, entry); err != nil && sendErr == nil {
		return messageID, nil
	}

	if sendErr != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrEmailDeliveryFailed, sendErr.Error())
	}
	return messageID, nil
}
