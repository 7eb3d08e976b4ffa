package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"recibo/internal/config"
	"recibo/internal/crypto"
	"recibo/internal/domain"
	"recibo/internal/port"
	"recibo/internal/service"
	"recibo/mocks"
)

type receiptFixture struct {
	receiptRepo  *mocks.MockReceiptRepo
	configRepo   *mocks.MockConfigRepo
	templateRepo *mocks.MockEmailTemplateRepo
	logRepo      *mocks.MockEmailLogRepo
	sender       *mocks.MockEmailSender
	qr           *mocks.MockQREncoder
	storage      *mocks.MockObjectStorage
	pdf          *mocks.MockPDFRenderer
	cipher       *crypto.Cipher
	svc          service.ReceiptService
}

func setupReceipt(t *testing.T) *receiptFixture {
	t.Helper()
	return setupReceiptWithPrefix(t, "qr/")
}

func setupReceiptWithPrefix(t *testing.T, qrPrefix string) *receiptFixture {
	t.Helper()

	cipher, err := crypto.New(bytes.Repeat([]byte("k"), 32))
	assert.NoError(t, err)

	f := &receiptFixture{
		receiptRepo:  new(mocks.MockReceiptRepo),
		configRepo:   new(mocks.MockConfigRepo),
		templateRepo: new(mocks.MockEmailTemplateRepo),
		logRepo:      new(mocks.MockEmailLogRepo),
		sender:       new(mocks.MockEmailSender),
		qr:           new(mocks.MockQREncoder),
		storage:      new(mocks.MockObjectStorage),
		pdf:          new(mocks.MockPDFRenderer),
		cipher:       cipher,
	}

	configSvc := service.NewConfigService(f.configRepo)
	emailSvc := service.NewEmailService(f.sender, f.templateRepo, f.logRepo, config.EmailConfig{})

	f.svc = service.NewReceiptService(
		f.receiptRepo,
		configSvc,
		emailSvc,
		cipher,
		f.qr,
		f.storage,
		f.pdf,
		config.S3Config{Bucket: "recibo-test", QRPrefix: qrPrefix},
		config.AppConfig{PublicBaseURL: "https://recibo.test"},
	)
	return f
}

func validCreateInput() service.CreateReceiptInput {
	return service.CreateReceiptInput{
		Date: "2026-03-15",
		ClientInfo: domain.ClientInfo{
			Name:    "Acme Corp",
			Email:   "billing@acme.test",
			Phone:   "+1-555-0100",
			Address: "1 Acme Way",
		},
		FreelancerInfo: domain.FreelancerInfo{
			Name:    "Jordan Rivera",
			Email:   "jordan@rivera.test",
			Phone:   "+1-555-0200",
			Address: "2 Studio Ln",
		},
		ProjectDetails: domain.ProjectDetails{
			Title:       "Portfolio Site",
			Description: "Design and build",
		},
		PaymentInfo: domain.PaymentInfo{
			Amount:   1500,
			Currency: "USD",
			Method:   "bank_transfer",
			Status:   domain.PaymentStatusPaid,
		},
	}
}

func receiptSentTemplate() *domain.EmailTemplate {
	return &domain.EmailTemplate{
		ID:          uuid.New(),
		Name:        "Receipt Sent",
		Type:        domain.EmailTemplateReceiptSent,
		Subject:     "Receipt {{receipt_id}} from {{freelancer_name}}",
		HTMLContent: "<p>Hi {{client_name}}, {{amount}} {{currency}} received.</p>",
		TextContent: "Hi {{client_name}}",
		IsDefault:   true,
		IsActive:    true,
	}
}

func TestReceiptCreate_Success(t *testing.T) {
	f := setupReceipt(t)

	var stored *domain.Receipt
	f.receiptRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Receipt")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*domain.Receipt)
			stored.ID = uuid.New()
		}).Return(nil)

	f.qr.On("EncodePNG", mock.AnythingOfType("string")).Return([]byte{0x89, 0x50}, nil)
	f.storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{Location: "https://cdn.test/qr/stored.png"}, nil)
	f.receiptRepo.On("UpdateQRCodeURL", mock.Anything, mock.AnythingOfType("uuid.UUID"), "https://cdn.test/qr/stored.png").Return(nil)

	f.templateRepo.On("GetDefaultByType", mock.Anything, domain.EmailTemplateReceiptSent).
		Return(receiptSentTemplate(), nil)
	f.sender.On("Send", mock.Anything, mock.AnythingOfType("port.EmailMessage")).Return("msg-1", nil)
	f.logRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.EmailLog")).Return(nil)

	summary, err := f.svc.Create(context.Background(), validCreateInput())

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(summary.ReceiptID, "RCP"))
	assert.Empty(t, summary.Warnings)
	assert.Equal(t, "https://cdn.test/qr/stored.png", summary.QRCodeURL)

	assert.Equal(t, "Portfolio Site", stored.ProjectTitle)
	assert.Equal(t, float64(1500), stored.Amount)
	assert.Equal(t, "USD", stored.Currency)
	assert.Equal(t, domain.PaymentStatusPaid, stored.PaymentStatus)
	assert.True(t, stored.IsActive)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), stored.Date)

	// The envelope must round-trip back to the submitted sub-documents.
	var sensitive domain.ReceiptSensitive
	assert.NoError(t, f.cipher.DecryptJSON(stored.EncryptedData, &sensitive))
	assert.Equal(t, "Acme Corp", sensitive.ClientInfo.Name)
	assert.Equal(t, "Jordan Rivera", sensitive.FreelancerInfo.Name)

	sentMsg := f.sender.Calls[0].Arguments.Get(1).(port.EmailMessage)
	assert.Equal(t, "billing@acme.test", sentMsg.To)
	assert.Equal(t, "Receipt "+summary.ReceiptID+" from Jordan Rivera", sentMsg.Subject)
	assert.Contains(t, sentMsg.HTML, "1500.00 USD")

	f.receiptRepo.AssertExpectations(t)
	f.sender.AssertExpectations(t)
}

func TestReceiptCreate_MissingFields(t *testing.T) {
	f := setupReceipt(t)

	input := validCreateInput()
	input.ClientInfo.Name = ""
	input.PaymentInfo.Amount = 0

	_, err := f.svc.Create(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "clientInfo.name")
	assert.Contains(t, err.Error(), "paymentInfo.amount")
	f.receiptRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReceiptCreate_InvalidStatus(t *testing.T) {
	f := setupReceipt(t)

	input := validCreateInput()
	input.PaymentInfo.Status = "refunded"

	_, err := f.svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentStatus)
}

func TestReceiptCreate_FreelancerFallbackFromConfig(t *testing.T) {
	f := setupReceipt(t)

	f.configRepo.On("Get", mock.Anything, domain.ConfigKeyFreelancerInfo).Return(&domain.ConfigEntry{
		Key:   domain.ConfigKeyFreelancerInfo,
		Value: []byte(`{"name":"Jordan Rivera","email":"jordan@rivera.test","phone":"+1-555-0200","address":"2 Studio Ln"}`),
	}, nil)

	var stored *domain.Receipt
	f.receiptRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Receipt")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*domain.Receipt)
			stored.ID = uuid.New()
		}).Return(nil)

	f.qr.On("EncodePNG", mock.AnythingOfType("string")).Return([]byte{1}, nil)
	f.storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{Location: "https://cdn.test/qr/x.png"}, nil)
	f.receiptRepo.On("UpdateQRCodeURL", mock.Anything, mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("string")).Return(nil)
	f.templateRepo.On("GetDefaultByType", mock.Anything, domain.EmailTemplateReceiptSent).
		Return(receiptSentTemplate(), nil)
	f.sender.On("Send", mock.Anything, mock.AnythingOfType("port.EmailMessage")).Return("msg-1", nil)
	f.logRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.EmailLog")).Return(nil)

	input := validCreateInput()
	input.FreelancerInfo = domain.FreelancerInfo{}

	_, err := f.svc.Create(context.Background(), input)
	assert.NoError(t, err)

	var sensitive domain.ReceiptSensitive
	assert.NoError(t, f.cipher.DecryptJSON(stored.EncryptedData, &sensitive))
	assert.Equal(t, "Jordan Rivera", sensitive.FreelancerInfo.Name)
	f.configRepo.AssertExpectations(t)
}

func TestReceiptCreate_QRUploadFails_FallsBackToDataURL(t *testing.T) {
	f := setupReceipt(t)

	f.receiptRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Receipt")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Receipt).ID = uuid.New()
		}).Return(nil)

	f.qr.On("EncodePNG", mock.AnythingOfType("string")).Return([]byte{1}, nil)
	f.storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(nil, errors.New("bucket unavailable"))
	f.qr.On("EncodeDataURL", mock.AnythingOfType("string")).Return("data:image/png;base64,AQ==", nil)
	f.receiptRepo.On("UpdateQRCodeURL", mock.Anything, mock.AnythingOfType("uuid.UUID"), "data:image/png;base64,AQ==").Return(nil)

	f.templateRepo.On("GetDefaultByType", mock.Anything, domain.EmailTemplateReceiptSent).
		Return(receiptSentTemplate(), nil)
	f.sender.On("Send", mock.Anything, mock.AnythingOfType("port.EmailMessage")).Return("msg-1", nil)
	f.logRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.EmailLog")).Return(nil)

	summary, err := f.svc.Create(context.Background(), validCreateInput())

	assert.NoError(t, err)
	assert.Contains(t, summary.Warnings, "qr_code_not_uploaded")
	assert.Equal(t, "data:image/png;base64,AQ==", summary.QRCodeURL)
	f.storage.AssertExpectations(t)
}

func TestReceiptCreate_QRKeyJoinsPrefixWithSeparator(t *testing.T) {
	f := setupReceiptWithPrefix(t, "receipt-qr-codes")

	f.receiptRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Receipt")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Receipt).ID = uuid.New()
		}).Return(nil)

	f.qr.On("EncodePNG", mock.AnythingOfType("string")).Return([]byte{1}, nil)

	var key string
	f.storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Run(func(args mock.Arguments) {
			key = args.Get(1).(port.UploadInput).Key
		}).
		Return(&port.UploadOutput{Location: "https://cdn.test/qr/x.png"}, nil)
	f.receiptRepo.On("UpdateQRCodeURL", mock.Anything, mock.AnythingOfType("uuid.UUID"), "https://cdn.test/qr/x.png").Return(nil)

	f.templateRepo.On("GetDefaultByType", mock.Anything, domain.EmailTemplateReceiptSent).
		Return(receiptSentTemplate(), nil)
	f.sender.On("Send", mock.Anything, mock.AnythingOfType("port.EmailMessage")).Return("msg-1", nil)
	f.logRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.EmailLog")).Return(nil)

	summary, err := f.svc.Create(context.Background(), validCreateInput())

	assert.NoError(t, err)
	assert.Equal(t, "receipt-qr-codes/"+summary.ReceiptID+".png", key)
	f.storage.AssertExpectations(t)
}

func TestReceiptCreate_EmailFails_IsWarningOnly(t *testing.T) {
	f := setupReceipt(t)

	f.receiptRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Receipt")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Receipt).ID = uuid.New()
		}).Return(nil)
	f.qr.On("EncodePNG", mock.AnythingOfType("string")).Return([]byte{1}, nil)
	f.storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{Location: "https://cdn.test/qr/x.png"}, nil)
	f.receiptRepo.On("UpdateQRCodeURL", mock.Anything, mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("string")).Return(nil)

	f.templateRepo.On("GetDefaultByType", mock.Anything, domain.EmailTemplateReceiptSent).
		Return(receiptSentTemplate(), nil)
	f.sender.On("Send", mock.Anything, mock.AnythingOfType("port.EmailMessage")).
		Return("", errors.New("ses throttled"))
	f.logRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.EmailLog")).Return(nil)

	summary, err := f.svc.Create(context.Background(), validCreateInput())

	assert.NoError(t, err)
	assert.Contains(t, summary.Warnings, "email_not_sent")
}

func TestReceiptCreate_SendEmailDisabled(t *testing.T) {
	f := setupReceipt(t)

	f.receiptRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Receipt")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Receipt).ID = uuid.New()
		}).Return(nil)
	f.qr.On("EncodePNG", mock.AnythingOfType("string")).Return([]byte{1}, nil)
	f.storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{Location: "https://cdn.test/qr/x.png"}, nil)
	f.receiptRepo.On("UpdateQRCodeURL", mock.Anything, mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("string")).Return(nil)

	off := false
	input := validCreateInput()
	input.SendEmail = &off

	summary, err := f.svc.Create(context.Background(), input)

	assert.NoError(t, err)
	assert.Empty(t, summary.Warnings)
	f.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestReceiptGet_MergesConfigFallbackAndDefaults(t *testing.T) {
	f := setupReceipt(t)

	// Envelope from before the freelancer block was captured: only client
	// and payment data are present.
	envelope, err := f.cipher.EncryptJSON(domain.ReceiptSensitive{
		ClientInfo:  domain.ClientInfo{Name: "Acme Corp", Email: "billing@acme.test"},
		PaymentInfo: domain.PaymentInfo{Amount: 900},
	})
	assert.NoError(t, err)

	row := &domain.Receipt{
		ID:            uuid.New(),
		ReceiptID:     "RCP1700000000000AAAAA",
		Date:          time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		ProjectTitle:  "Retainer",
		Amount:        900,
		Currency:      "EUR",
		PaymentStatus: domain.PaymentStatusPending,
		EncryptedData: envelope,
		IsActive:      true,
	}
	f.receiptRepo.On("GetByReceiptID", mock.Anything, row.ReceiptID).Return(row, nil)
	f.configRepo.On("Get", mock.Anything, domain.ConfigKeyFreelancerInfo).Return(&domain.ConfigEntry{
		Key:   domain.ConfigKeyFreelancerInfo,
		Value: []byte(`{"name":"Jordan Rivera","email":"jordan@rivera.test"}`),
	}, nil)

	view, err := f.svc.Get(context.Background(), row.ReceiptID)

	assert.NoError(t, err)
	assert.Equal(t, "Jordan Rivera", view.FreelancerInfo.Name)
	assert.Equal(t, "N/A", view.ClientInfo.Phone)
	assert.Equal(t, "Retainer", view.ProjectDetails.Title)
	assert.Equal(t, "EUR", view.PaymentInfo.Currency)
	assert.Equal(t, domain.PaymentStatusPending, view.PaymentInfo.Status)
	assert.NotNil(t, view.ProjectDetails.Technologies)
}

func TestReceiptGet_NotFound(t *testing.T) {
	f := setupReceipt(t)

	f.receiptRepo.On("GetByReceiptID", mock.Anything, "RCP-missing").Return(nil, domain.ErrNotFound)

	_, err := f.svc.Get(context.Background(), "RCP-missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceiptList_InvalidStatus(t *testing.T) {
	f := setupReceipt(t)

	_, _, err := f.svc.List(context.Background(), service.ListReceiptsInput{Status: "bogus"})
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentStatus)
}

func TestReceiptList_DefaultsPagination(t *testing.T) {
	f := setupReceipt(t)

	f.receiptRepo.On("List", mock.Anything, port.ReceiptFilter{}, 0, 20).
		Return([]domain.Receipt{{ReceiptID: "RCP1"}}, 1, nil)

	receipts, total, err := f.svc.List(context.Background(), service.ListReceiptsInput{})

	assert.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, receipts, 1)
	f.receiptRepo.AssertExpectations(t)
}

func TestReceiptUpdate_PaymentRewritesEnvelopeAndColumns(t *testing.T) {
	f := setupReceipt(t)

	envelope, err := f.cipher.EncryptJSON(domain.ReceiptSensitive{
		ClientInfo:  domain.ClientInfo{Name: "Acme Corp", Email: "billing@acme.test"},
		PaymentInfo: domain.PaymentInfo{Amount: 900, Currency: "USD", Status: domain.PaymentStatusPending},
	})
	assert.NoError(t, err)

	row := &domain.Receipt{
		ID:            uuid.New(),
		ReceiptID:     "RCP1700000000000AAAAA",
		Amount:        900,
		Currency:      "USD",
		PaymentStatus: domain.PaymentStatusPending,
		EncryptedData: envelope,
		IsActive:      true,
	}
	f.receiptRepo.On("GetByReceiptID", mock.Anything, row.ReceiptID).Return(row, nil)

	var updated *domain.Receipt
	f.receiptRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Receipt")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(*domain.Receipt)
		}).Return(nil)
	f.configRepo.On("Get", mock.Anything, domain.ConfigKeyFreelancerInfo).Return(nil, domain.ErrNotFound)

	view, err := f.svc.Update(context.Background(), row.ReceiptID, service.UpdateReceiptInput{
		PaymentInfo: &domain.PaymentInfo{Amount: 950, Currency: "USD", Method: "card", Status: domain.PaymentStatusPaid},
	})

	assert.NoError(t, err)
	assert.Equal(t, float64(950), updated.Amount)
	assert.Equal(t, domain.PaymentStatusPaid, updated.PaymentStatus)
	assert.NotEqual(t, envelope, updated.EncryptedData)
	assert.Equal(t, float64(950), view.PaymentInfo.Amount)

	var sensitive domain.ReceiptSensitive
	assert.NoError(t, f.cipher.DecryptJSON(updated.EncryptedData, &sensitive))
	assert.Equal(t, float64(950), sensitive.PaymentInfo.Amount)
	// Untouched sub-objects survive the rewrite.
	assert.Equal(t, "Acme Corp", sensitive.ClientInfo.Name)
}

func TestReceiptUpdate_InvalidStatus(t *testing.T) {
	f := setupReceipt(t)

	envelope, err := f.cipher.EncryptJSON(domain.ReceiptSensitive{})
	assert.NoError(t, err)
	row := &domain.Receipt{ReceiptID: "RCP1", EncryptedData: envelope}
	f.receiptRepo.On("GetByReceiptID", mock.Anything, "RCP1").Return(row, nil)

	_, err = f.svc.Update(context.Background(), "RCP1", service.UpdateReceiptInput{
		PaymentInfo: &domain.PaymentInfo{Amount: 10, Status: "bogus"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentStatus)
	f.receiptRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestReceiptDelete_PassesThroughNotFound(t *testing.T) {
	f := setupReceipt(t)

	f.receiptRepo.On("SoftDelete", mock.Anything, "RCP-missing").Return(domain.ErrNotFound)

	err := f.svc.Delete(context.Background(), "RCP-missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceiptRenderPDF(t *testing.T) {
	f := setupReceipt(t)

	envelope, err := f.cipher.EncryptJSON(domain.ReceiptSensitive{
		ClientInfo: domain.ClientInfo{Name: "Acme Corp", Email: "billing@acme.test"},
	})
	assert.NoError(t, err)
	row := &domain.Receipt{ReceiptID: "RCP1", EncryptedData: envelope}

	f.receiptRepo.On("GetByReceiptID", mock.Anything, "RCP1").Return(row, nil)
	f.configRepo.On("Get", mock.Anything, domain.ConfigKeyFreelancerInfo).Return(nil, domain.ErrNotFound)
	f.pdf.On("RenderReceipt", mock.AnythingOfType("*domain.ReceiptView")).Return([]byte("%PDF-1.7"), nil)

	data, err := f.svc.RenderPDF(context.Background(), "RCP1")

	assert.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7"), data)
	f.pdf.AssertExpectations(t)
}
