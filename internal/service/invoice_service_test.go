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

type invoiceFixture struct {
	invoiceRepo  *mocks.MockInvoiceRepo
	configRepo   *mocks.MockConfigRepo
	templateRepo *mocks.MockEmailTemplateRepo
	logRepo      *mocks.MockEmailLogRepo
	sender       *mocks.MockEmailSender
	qr           *mocks.MockQREncoder
	storage      *mocks.MockObjectStorage
	pdf          *mocks.MockPDFRenderer
	cipher       *crypto.Cipher
	svc          service.InvoiceService
}

func setupInvoice(t *testing.T) *invoiceFixture {
	t.Helper()

	cipher, err := crypto.New(bytes.Repeat([]byte("k"), 32))
	assert.NoError(t, err)

	f := &invoiceFixture{
		invoiceRepo:  new(mocks.MockInvoiceRepo),
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

	f.svc = service.NewInvoiceService(
		f.invoiceRepo,
		configSvc,
		emailSvc,
		cipher,
		f.qr,
		f.storage,
		f.pdf,
		config.S3Config{Bucket: "recibo-test", QRPrefix: "qr/"},
		config.AppConfig{PublicBaseURL: "https://recibo.test"},
	)
	return f
}

func validInvoiceInput() service.CreateInvoiceInput {
	off := false
	return service.CreateInvoiceInput{
		Date:    "2026-04-01",
		DueDate: "2026-04-30",
		ClientInfo: domain.ClientInfo{
			Name:  "Acme Corp",
			Email: "billing@acme.test",
		},
		FreelancerInfo: domain.FreelancerInfo{
			Name:  "Jordan Rivera",
			Email: "jordan@rivera.test",
		},
		Items: []domain.InvoiceItem{
			{Description: "Design", Quantity: 2, Rate: 100, TaxRate: 10},
		},
		Currency:  "USD",
		SendEmail: &off,
	}
}

func stubInvoiceQR(f *invoiceFixture) {
	f.qr.On("EncodePNG", mock.AnythingOfType("string")).Return([]byte{1}, nil)
	f.storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{Location: "https://cdn.test/qr/x.png"}, nil)
	f.invoiceRepo.On("UpdateQRCodeURL", mock.Anything, mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("string")).Return(nil)
}

func TestComputeInvoiceTotals(t *testing.T) {
	items := []domain.InvoiceItem{
		{Description: "Design", Quantity: 2, Rate: 100, TaxRate: 10},
		{Description: "Hosting", Quantity: 1, Rate: 50},
	}

	subtotal, taxTotal, total := service.ComputeInvoiceTotals(items)

	assert.Equal(t, float64(250), subtotal)
	assert.Equal(t, float64(20), taxTotal)
	assert.Equal(t, float64(270), total)
	assert.Equal(t, float64(200), items[0].Amount)
	assert.Equal(t, float64(20), items[0].TaxAmount)
	assert.Equal(t, float64(0), items[1].TaxAmount)
}

func TestInvoiceCreate_Success(t *testing.T) {
	f := setupInvoice(t)

	var stored *domain.Invoice
	f.invoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*domain.Invoice)
			stored.ID = uuid.New()
		}).Return(nil)
	stubInvoiceQR(f)

	summary, err := f.svc.Create(context.Background(), validInvoiceInput())

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(summary.InvoiceID, "INV"))
	assert.Equal(t, float64(200), summary.Subtotal)
	assert.Equal(t, float64(20), summary.TaxTotal)
	assert.Equal(t, float64(220), summary.Total)
	assert.Empty(t, summary.Warnings)

	assert.Equal(t, domain.InvoiceStatusDraft, stored.Status)
	assert.Equal(t, time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC), stored.DueDate)
	assert.True(t, stored.IsActive)

	var sensitive domain.InvoiceSensitive
	assert.NoError(t, f.cipher.DecryptJSON(stored.EncryptedData, &sensitive))
	assert.Equal(t, float64(200), sensitive.Items[0].Amount)
	assert.Equal(t, "Acme Corp", sensitive.ClientInfo.Name)

	f.invoiceRepo.AssertExpectations(t)
}

func TestInvoiceCreate_SendsEmailWithTotals(t *testing.T) {
	f := setupInvoice(t)

	f.invoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Invoice).ID = uuid.New()
		}).Return(nil)
	stubInvoiceQR(f)

	f.templateRepo.On("GetDefaultByType", mock.Anything, domain.EmailTemplateInvoiceSent).
		Return(&domain.EmailTemplate{
			ID:          uuid.New(),
			Type:        domain.EmailTemplateInvoiceSent,
			Subject:     "Invoice {{invoice_id}}",
			HTMLContent: "<p>{{amount}} {{currency}} due {{due_date}}</p>",
			IsDefault:   true,
			IsActive:    true,
		}, nil)
	f.sender.On("Send", mock.Anything, mock.AnythingOfType("port.EmailMessage")).Return("msg-1", nil)
	f.logRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.EmailLog")).Return(nil)

	input := validInvoiceInput()
	input.SendEmail = nil

	summary, err := f.svc.Create(context.Background(), input)

	assert.NoError(t, err)
	assert.Empty(t, summary.Warnings)

	sentMsg := f.sender.Calls[0].Arguments.Get(1).(port.EmailMessage)
	assert.Equal(t, "Invoice "+summary.InvoiceID, sentMsg.Subject)
	assert.Contains(t, sentMsg.HTML, "220.00 USD due April 30, 2026")
	f.sender.AssertExpectations(t)
}

func TestInvoiceCreate_MissingDueDateAndItems(t *testing.T) {
	f := setupInvoice(t)

	input := validInvoiceInput()
	input.DueDate = ""
	input.Items = nil

	_, err := f.svc.Create(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "dueDate")
	assert.Contains(t, err.Error(), "items")
	f.invoiceRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInvoiceCreate_InvalidStatus(t *testing.T) {
	f := setupInvoice(t)

	input := validInvoiceInput()
	input.Status = "archived"

	_, err := f.svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrInvalidInvoiceStatus)
}

func TestInvoiceCreate_QRNotGenerated(t *testing.T) {
	f := setupInvoice(t)

	f.invoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Invoice).ID = uuid.New()
		}).Return(nil)
	f.qr.On("EncodePNG", mock.AnythingOfType("string")).Return(nil, errors.New("encoder error"))

	summary, err := f.svc.Create(context.Background(), validInvoiceInput())

	assert.NoError(t, err)
	assert.Contains(t, summary.Warnings, "qr_code_not_generated")
	assert.Empty(t, summary.QRCodeURL)
	f.invoiceRepo.AssertNotCalled(t, "UpdateQRCodeURL", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceGet_MergesEnvelope(t *testing.T) {
	f := setupInvoice(t)

	envelope, err := f.cipher.EncryptJSON(domain.InvoiceSensitive{
		ClientInfo: domain.ClientInfo{Name: "Acme Corp", Email: "billing@acme.test"},
		Items:      []domain.InvoiceItem{{Description: "Design", Quantity: 2, Rate: 100, Amount: 200}},
	})
	assert.NoError(t, err)

	row := &domain.Invoice{
		ID:            uuid.New(),
		InvoiceID:     "INV1700000000000AAAAA",
		Subtotal:      200,
		Total:         200,
		Currency:      "USD",
		Status:        domain.InvoiceStatusSent,
		EncryptedData: envelope,
		IsActive:      true,
	}
	f.invoiceRepo.On("GetByInvoiceID", mock.Anything, row.InvoiceID).Return(row, nil)
	f.configRepo.On("Get", mock.Anything, domain.ConfigKeyFreelancerInfo).Return(nil, domain.ErrNotFound)

	view, err := f.svc.Get(context.Background(), row.InvoiceID)

	assert.NoError(t, err)
	assert.Equal(t, "Acme Corp", view.ClientInfo.Name)
	// No stored identity to fall back to, so the neutral placeholder wins.
	assert.Equal(t, "Freelancer", view.FreelancerInfo.Name)
	assert.Equal(t, domain.InvoiceStatusSent, view.Status)
	assert.Len(t, view.Items, 1)
}

func TestInvoiceList_InvalidStatus(t *testing.T) {
	f := setupInvoice(t)

	_, _, err := f.svc.List(context.Background(), service.ListInvoicesInput{Status: "bogus"})
	assert.ErrorIs(t, err, domain.ErrInvalidInvoiceStatus)
}

func TestInvoiceUpdate_ItemsRecomputeTotals(t *testing.T) {
	f := setupInvoice(t)

	envelope, err := f.cipher.EncryptJSON(domain.InvoiceSensitive{
		ClientInfo: domain.ClientInfo{Name: "Acme Corp", Email: "billing@acme.test"},
		Items:      []domain.InvoiceItem{{Description: "Design", Quantity: 2, Rate: 100, Amount: 200}},
	})
	assert.NoError(t, err)

	row := &domain.Invoice{
		ID:            uuid.New(),
		InvoiceID:     "INV1700000000000AAAAA",
		Subtotal:      200,
		Total:         200,
		Currency:      "USD",
		Status:        domain.InvoiceStatusDraft,
		EncryptedData: envelope,
		IsActive:      true,
	}
	f.invoiceRepo.On("GetByInvoiceID", mock.Anything, row.InvoiceID).Return(row, nil)

	var updated *domain.Invoice
	f.invoiceRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Invoice")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(*domain.Invoice)
		}).Return(nil)
	f.configRepo.On("Get", mock.Anything, domain.ConfigKeyFreelancerInfo).Return(nil, domain.ErrNotFound)

	items := []domain.InvoiceItem{
		{Description: "Design", Quantity: 3, Rate: 100, TaxRate: 10},
	}
	view, err := f.svc.Update(context.Background(), row.InvoiceID, service.UpdateInvoiceInput{Items: &items})

	assert.NoError(t, err)
	assert.Equal(t, float64(300), updated.Subtotal)
	assert.Equal(t, float64(30), updated.TaxTotal)
	assert.Equal(t, float64(330), updated.Total)
	assert.Equal(t, float64(330), view.Total)
	assert.NotEqual(t, envelope, updated.EncryptedData)
}

func TestInvoiceUpdate_EmptyItemsRejected(t *testing.T) {
	f := setupInvoice(t)

	envelope, err := f.cipher.EncryptJSON(domain.InvoiceSensitive{})
	assert.NoError(t, err)
	row := &domain.Invoice{InvoiceID: "INV1", EncryptedData: envelope}
	f.invoiceRepo.On("GetByInvoiceID", mock.Anything, "INV1").Return(row, nil)

	items := []domain.InvoiceItem{}
	_, err = f.svc.Update(context.Background(), "INV1", service.UpdateInvoiceInput{Items: &items})

	assert.ErrorIs(t, err, domain.ErrValidation)
	f.invoiceRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestInvoiceUpdate_StatusTransition(t *testing.T) {
	f := setupInvoice(t)

	envelope, err := f.cipher.EncryptJSON(domain.InvoiceSensitive{})
	assert.NoError(t, err)
	row := &domain.Invoice{InvoiceID: "INV1", Status: domain.InvoiceStatusSent, EncryptedData: envelope}
	f.invoiceRepo.On("GetByInvoiceID", mock.Anything, "INV1").Return(row, nil)
	f.invoiceRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil)
	f.configRepo.On("Get", mock.Anything, domain.ConfigKeyFreelancerInfo).Return(nil, domain.ErrNotFound)

	paid := domain.InvoiceStatusPaid
	view, err := f.svc.Update(context.Background(), "INV1", service.UpdateInvoiceInput{Status: &paid})

	assert.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, view.Status)
}

func TestInvoiceDelete_PassesThroughNotFound(t *testing.T) {
	f := setupInvoice(t)

	f.invoiceRepo.On("SoftDelete", mock.Anything, "INV-missing").Return(domain.ErrNotFound)

	err := f.svc.Delete(context.Background(), "INV-missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
