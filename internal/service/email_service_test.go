package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"recibo/internal/config"
	"recibo/internal/domain"
	"recibo/internal/port"
	"recibo/internal/service"
	"recibo/mocks"
)

func setupEmail() (*mocks.MockEmailSender, *mocks.MockEmailTemplateRepo, *mocks.MockEmailLogRepo, service.EmailService) {
	sender := new(mocks.MockEmailSender)
	templateRepo := new(mocks.MockEmailTemplateRepo)
	logRepo := new(mocks.MockEmailLogRepo)
	svc := service.NewEmailService(sender, templateRepo, logRepo, config.EmailConfig{})
	return sender, templateRepo, logRepo, svc
}

func TestEmailSend_LogsSuccess(t *testing.T) {
	sender, _, logRepo, svc := setupEmail()

	sender.On("Send", mock.Anything, port.EmailMessage{
		To:      "client@acme.test",
		Subject: "Hello",
		HTML:    "<p>Hi</p>",
	}).Return("msg-42", nil)

	var logged *domain.EmailLog
	logRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.EmailLog")).
		Run(func(args mock.Arguments) {
			logged = args.Get(1).(*domain.EmailLog)
		}).Return(nil)

	messageID, err := svc.Send(context.Background(), service.SendEmailInput{
		To:      "client@acme.test",
		Subject: "Hello",
		HTML:    "<p>Hi</p>",
	})

	assert.NoError(t, err)
	assert.Equal(t, "msg-42", messageID)
	assert.Equal(t, domain.EmailStatusSent, logged.Status)
	assert.Equal(t, "client@acme.test", logged.To)
	assert.Equal(t, string(domain.EmailTemplateCustom), logged.TemplateType)
	assert.NotNil(t, logged.SentAt)
	assert.Empty(t, logged.Error)
	sender.AssertExpectations(t)
	logRepo.AssertExpectations(t)
}

func TestEmailSend_LogsFailureAndWrapsError(t *testing.T) {
	sender, _, logRepo, svc := setupEmail()

	sender.On("Send", mock.Anything, mock.AnythingOfType("port.EmailMessage")).
		Return("", errors.New("ses: rate exceeded"))

	var logged *domain.EmailLog
	logRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.EmailLog")).
		Run(func(args mock.Arguments) {
			logged = args.Get(1).(*domain.EmailLog)
		}).Return(nil)

	_, err := svc.Send(context.Background(), service.SendEmailInput{
		To:      "client@acme.test",
		Subject: "Hello",
		HTML:    "<p>Hi</p>",
	})

	assert.ErrorIs(t, err, domain.ErrEmailDeliveryFailed)
	assert.Contains(t, err.Error(), "rate exceeded")
	assert.Equal(t, domain.EmailStatusFailed, logged.Status)
	assert.Equal(t, "ses: rate exceeded", logged.Error)
	assert.Nil(t, logged.SentAt)
}

func TestEmailSend_LogInsertFailureDoesNotMaskDelivery(t *testing.T) {
	sender, _, logRepo, svc := setupEmail()

	sender.On("Send", mock.Anything, mock.AnythingOfType("port.EmailMessage")).Return("msg-42", nil)
	logRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.EmailLog")).
		Return(errors.New("db down"))

	messageID, err := svc.Send(context.Background(), service.SendEmailInput{
		To:      "client@acme.test",
		Subject: "Hello",
		HTML:    "<p>Hi</p>",
	})

	assert.NoError(t, err)
	assert.Equal(t, "msg-42", messageID)
}

func TestSendTemplated_RendersSubjectAndBody(t *testing.T) {
	sender, templateRepo, logRepo, svc := setupEmail()

	templateRepo.On("GetDefaultByType", mock.Anything, domain.EmailTemplatePaymentReminder).
		Return(&domain.EmailTemplate{
			ID:          uuid.New(),
			Type:        domain.EmailTemplatePaymentReminder,
			Subject:     "Reminder: invoice {{invoice_id}}",
			HTMLContent: "<p>{{client_name}}, {{amount}} {{currency}} is due. {{unknown}}</p>",
			TextContent: "{{client_name}}",
			IsDefault:   true,
			IsActive:    true,
		}, nil)

	var sent port.EmailMessage
	sender.On("Send", mock.Anything, mock.AnythingOfType("port.EmailMessage")).
		Run(func(args mock.Arguments) {
			sent = args.Get(1).(port.EmailMessage)
		}).Return("msg-1", nil)

	var logged *domain.EmailLog
	logRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.EmailLog")).
		Run(func(args mock.Arguments) {
			logged = args.Get(1).(*domain.EmailLog)
		}).Return(nil)

	vars := map[string]string{
		"invoice_id":  "INV123",
		"client_name": "Acme Corp",
		"amount":      "220.00",
		"currency":    "USD",
	}
	_, err := svc.SendTemplated(context.Background(), domain.EmailTemplatePaymentReminder, "client@acme.test", vars, "", "INV123")

	assert.NoError(t, err)
	assert.Equal(t, "Reminder: invoice INV123", sent.Subject)
	assert.Contains(t, sent.HTML, "Acme Corp, 220.00 USD is due.")
	// Markers without a binding pass through untouched.
	assert.Contains(t, sent.HTML, "{{unknown}}")
	assert.Equal(t, "INV123", logged.InvoiceID)
	assert.Equal(t, string(domain.EmailTemplatePaymentReminder), logged.TemplateType)
}

func TestSendTemplated_NoDefaultTemplate(t *testing.T) {
	sender, templateRepo, _, svc := setupEmail()

	templateRepo.On("GetDefaultByType", mock.Anything, domain.EmailTemplateReceiptSent).
		Return(nil, domain.ErrNotFound)

	_, err := svc.SendTemplated(context.Background(), domain.EmailTemplateReceiptSent, "client@acme.test", nil, "RCP1", "")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestListLogs_Paginates(t *testing.T) {
	_, _, logRepo, svc := setupEmail()

	logRepo.On("List", mock.Anything, 20, 20).Return([]domain.EmailLog{{To: "a@b.test"}}, 41, nil)

	logs, total, err := svc.ListLogs(context.Background(), 2, 20)

	assert.NoError(t, err)
	assert.Equal(t, 41, total)
	assert.Len(t, logs, 1)
	logRepo.AssertExpectations(t)
}
