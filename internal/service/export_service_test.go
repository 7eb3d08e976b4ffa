package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"recibo/internal/crypto"
	"recibo/internal/domain"
	"recibo/internal/export"
	"recibo/internal/service"
	"recibo/mocks"
)

type exportFixture struct {
	receiptRepo *mocks.MockReceiptRepo
	invoiceRepo *mocks.MockInvoiceRepo
	configRepo  *mocks.MockConfigRepo
	cipher      *crypto.Cipher
	svc         service.ExportService
}

func setupExport(t *testing.T) *exportFixture {
	t.Helper()

	cipher, err := crypto.New(bytes.Repeat([]byte("k"), 32))
	assert.NoError(t, err)

	f := &exportFixture{
		receiptRepo: new(mocks.MockReceiptRepo),
		invoiceRepo: new(mocks.MockInvoiceRepo),
		configRepo:  new(mocks.MockConfigRepo),
		cipher:      cipher,
	}
	f.svc = service.NewExportService(f.receiptRepo, f.invoiceRepo, service.NewConfigService(f.configRepo), cipher)
	return f
}

func (f *exportFixture) storedReceipt(t *testing.T) domain.Receipt {
	t.Helper()
	envelope, err := f.cipher.EncryptJSON(domain.ReceiptSensitive{
		ClientInfo:     domain.ClientInfo{Name: "Acme Corp", Email: "billing@acme.test"},
		ProjectDetails: domain.ProjectDetails{Title: "Portfolio Site", Description: "Design and build"},
		PaymentInfo:    domain.PaymentInfo{Amount: 1500, Currency: "USD", Method: "bank_transfer", Status: domain.PaymentStatusPaid},
	})
	assert.NoError(t, err)
	return domain.Receipt{
		ReceiptID:     "RCP1700000000000AAAAA",
		Date:          time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		ProjectTitle:  "Portfolio Site",
		Amount:        1500,
		Currency:      "USD",
		PaymentStatus: domain.PaymentStatusPaid,
		EncryptedData: envelope,
		IsActive:      true,
	}
}

func TestExport_ReceiptsCSVCarriesBOM(t *testing.T) {
	f := setupExport(t)

	f.receiptRepo.On("ListAllActive", mock.Anything).Return([]domain.Receipt{f.storedReceipt(t)}, nil)
	f.configRepo.On("Get", mock.Anything, domain.ConfigKeyFreelancerInfo).Return(nil, domain.ErrNotFound)

	result, err := f.svc.Export(context.Background(), service.ExportInput{Type: "receipts", Format: "csv"})

	assert.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.True(t, strings.HasPrefix(result.Filename, "receipts_export_"))
	assert.True(t, bytes.HasPrefix(result.Data, export.BOM))
	assert.Contains(t, string(result.Data), "RCP1700000000000AAAAA")
	assert.Contains(t, string(result.Data), "Acme Corp")
}

func TestExport_ReceiptsQuickBooksJSON(t *testing.T) {
	f := setupExport(t)

	f.receiptRepo.On("ListAllActive", mock.Anything).Return([]domain.Receipt{f.storedReceipt(t)}, nil)
	f.configRepo.On("Get", mock.Anything, domain.ConfigKeyFreelancerInfo).Return(nil, domain.ErrNotFound)

	result, err := f.svc.Export(context.Background(), service.ExportInput{Type: "receipts", Format: "quickbooks"})

	assert.NoError(t, err)
	assert.Equal(t, "application/json", result.ContentType)

	var txns []export.QuickBooksTxn
	assert.NoError(t, json.Unmarshal(result.Data, &txns))
	assert.Len(t, txns, 1)
	assert.Equal(t, "RCP1700000000000AAAAA", txns[0].TxnID)
	assert.True(t, txns[0].IsPaid)
}

func TestExport_InvoicesXeroJSON(t *testing.T) {
	f := setupExport(t)

	envelope, err := f.cipher.EncryptJSON(domain.InvoiceSensitive{
		ClientInfo: domain.ClientInfo{Name: "Acme Corp", Email: "billing@acme.test"},
		Items:      []domain.InvoiceItem{{Description: "Design", Quantity: 2, Rate: 100, Amount: 200, TaxRate: 10, TaxAmount: 20}},
	})
	assert.NoError(t, err)

	f.invoiceRepo.On("ListAllActive", mock.Anything).Return([]domain.Invoice{{
		InvoiceID:     "INV1700000000000AAAAA",
		Date:          time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
		Subtotal:      200,
		TaxTotal:      20,
		Total:         220,
		Currency:      "USD",
		Status:        domain.InvoiceStatusSent,
		EncryptedData: envelope,
		IsActive:      true,
	}}, nil)
	f.configRepo.On("Get", mock.Anything, domain.ConfigKeyFreelancerInfo).Return(nil, domain.ErrNotFound)

	result, err := f.svc.Export(context.Background(), service.ExportInput{Type: "invoices", Format: "xero"})

	assert.NoError(t, err)

	var invoices []export.XeroInvoice
	assert.NoError(t, json.Unmarshal(result.Data, &invoices))
	assert.Len(t, invoices, 1)
	assert.Equal(t, "ACCREC", invoices[0].Type)
	assert.Equal(t, "AUTHORISED", invoices[0].Status)
	assert.Equal(t, float64(220), invoices[0].Total)
}

func TestExport_UnknownTypeAndFormat(t *testing.T) {
	f := setupExport(t)

	_, err := f.svc.Export(context.Background(), service.ExportInput{Type: "payments", Format: "csv"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	f.receiptRepo.On("ListAllActive", mock.Anything).Return([]domain.Receipt{}, nil)
	f.configRepo.On("Get", mock.Anything, domain.ConfigKeyFreelancerInfo).Return(nil, domain.ErrNotFound)

	_, err = f.svc.Export(context.Background(), service.ExportInput{Type: "receipts", Format: "pdf"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExport_ReceiptsXLSX(t *testing.T) {
	f := setupExport(t)

	f.receiptRepo.On("ListAllActive", mock.Anything).Return([]domain.Receipt{f.storedReceipt(t)}, nil)
	f.configRepo.On("Get", mock.Anything, domain.ConfigKeyFreelancerInfo).Return(nil, domain.ErrNotFound)

	result, err := f.svc.Export(context.Background(), service.ExportInput{Type: "receipts", Format: "xlsx"})

	assert.NoError(t, err)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", result.ContentType)
	// XLSX files are zip archives.
	assert.True(t, bytes.HasPrefix(result.Data, []byte("PK")))
}
