package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"recibo/internal/crypto"
	"recibo/internal/domain"
	"recibo/internal/export"
	"recibo/internal/port"
)

// ExportInput selects what to export and in which accounting format.
type ExportInput struct {
	Type   string `form:"type" binding:"required"`
	Format string `form:"format" binding:"required"`
}

// ExportResult is a downloadable export artifact.
type ExportResult struct {
	Data        []byte
	ContentType string
	Filename    string
}

// ExportService converts stored documents into accounting exchange formats,
// decrypting each envelope along the way.
type ExportService interface {
	Export(ctx context.Context, input ExportInput) (*ExportResult, error)
}

type exportService struct {
	receiptRepo port.ReceiptRepository
	invoiceRepo port.InvoiceRepository
	configSvc   ConfigService
	cipher      *crypto.Cipher
}

// NewExportService creates a new ExportService implementation.
func NewExportService(
	receiptRepo port.ReceiptRepository,
	invoiceRepo port.InvoiceRepository,
	configSvc ConfigService,
	cipher *crypto.Cipher,
) ExportService {
	return &exportService{
		receiptRepo: receiptRepo,
		invoiceRepo: invoiceRepo,
		configSvc:   configSvc,
		cipher:      cipher,
	}
}

func (s *exportService) Export(ctx context.Context, input ExportInput) (*ExportResult, error) {
	switch input.Type {
	case "receipts":
		views, err := s.receiptViews(ctx)
		if err != nil {
			return nil, err
		}
		return buildReceiptExport(input.Format, views)
	case "invoices":
		views, err := s.invoiceViews(ctx)
		if err != nil {
			return nil, err
		}
		return buildInvoiceExport(input.Format, views)
	default:
		return nil, fmt.Errorf("%w: unknown export type %q", domain.ErrValidation, input.Type)
	}
}

func (s *exportService) receiptViews(ctx context.Context) ([]domain.ReceiptView, error) {
	receipts, err := s.receiptRepo.ListAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	fallback := s.freelancerFallback(ctx)
	views := make([]domain.ReceiptView, 0, len(receipts))
	for i := range receipts {
		r := &receipts[i]
		var sensitive domain.ReceiptSensitive
		if err := s.cipher.DecryptJSON(r.EncryptedData, &sensitive); err != nil {
			return nil, fmt.Errorf("export: receipt %s: %w", r.ReceiptID, err)
		}
		applyClientDefaults(&sensitive.ClientInfo)
		applyFreelancerDefaults(&sensitive.FreelancerInfo, fallback)
		applyProjectDefaults(&sensitive.ProjectDetails)
		applyPaymentDefaults(&sensitive.PaymentInfo)
		views = append(views, domain.ReceiptView{
			ReceiptID:      r.ReceiptID,
			Date:           r.Date,
			ClientInfo:     sensitive.ClientInfo,
			FreelancerInfo: sensitive.FreelancerInfo,
			ProjectDetails: sensitive.ProjectDetails,
			PaymentInfo:    sensitive.PaymentInfo,
			QRCodeURL:      r.QRCodeURL,
			PDFURL:         r.PDFURL,
			CreatedAt:      r.CreatedAt,
		})
	}
	return views, nil
}

func (s *exportService) invoiceViews(ctx context.Context) ([]domain.InvoiceView, error) {
	invoices, err := s.invoiceRepo.ListAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	fallback := s.freelancerFallback(ctx)
	views := make([]domain.InvoiceView, 0, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		var sensitive domain.InvoiceSensitive
		if err := s.cipher.DecryptJSON(inv.EncryptedData, &sensitive); err != nil {
			return nil, fmt.Errorf("export: invoice %s: %w", inv.InvoiceID, err)
		}
		applyClientDefaults(&sensitive.ClientInfo)
		applyFreelancerDefaults(&sensitive.FreelancerInfo, fallback)
		if sensitive.Items == nil {
			sensitive.Items = []domain.InvoiceItem{}
		}
		views = append(views, domain.InvoiceView{
			InvoiceID:      inv.InvoiceID,
			ReceiptID:      inv.ReceiptID,
			Date:           inv.Date,
			DueDate:        inv.DueDate,
			ClientInfo:     sensitive.ClientInfo,
			FreelancerInfo: sensitive.FreelancerInfo,
			Items:          sensitive.Items,
			Subtotal:       inv.Subtotal,
			TaxTotal:       inv.TaxTotal,
			Total:          inv.Total,
			Currency:       inv.Currency,
			PaymentTerms:   inv.PaymentTerms,
			Notes:          inv.Notes,
			Status:         inv.Status,
			PaymentInfo:    sensitive.PaymentInfo,
			QRCodeURL:      inv.QRCodeURL,
			PDFURL:         inv.PDFURL,
			CreatedAt:      inv.CreatedAt,
		})
	}
	return views, nil
}

func (s *exportService) freelancerFallback(ctx context.Context) *domain.FreelancerInfo {
	info, err := s.configSvc.GetFreelancerInfo(ctx)
	if err != nil {
		return nil
	}
	return info
}

func buildReceiptExport(format string, views []domain.ReceiptView) (*ExportResult, error) {
	stamp := time.Now().UTC().Format("2006-01-02")
	switch format {
	case "quickbooks":
		return jsonExport(export.ReceiptsQuickBooks(views), "receipts_quickbooks_"+stamp+".json")
	case "xero":
		return jsonExport(export.ReceiptsXero(views), "receipts_xero_"+stamp+".json")
	case "csv":
		var buf bytes.Buffer
		buf.Write(export.BOM)
		w := export.NewWriter(&buf)
		if err := w.WriteReceipts(views); err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		return &ExportResult{
			Data:        buf.Bytes(),
			ContentType: "text/csv",
			Filename:    "receipts_export_" + stamp + ".csv",
		}, nil
	case "xlsx":
		f, err := export.ReceiptsXLSX(views)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		buf, err := f.WriteToBuffer()
		if err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		return &ExportResult{
			Data:        buf.Bytes(),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Filename:    "receipts_export_" + stamp + ".xlsx",
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", domain.ErrValidation, format)
	}
}

func buildInvoiceExport(format string, views []domain.InvoiceView) (*ExportResult, error) {
	stamp := time.Now().UTC().Format("2006-01-02")
	switch format {
	case "quickbooks":
		return jsonExport(export.InvoicesQuickBooks(views), "invoices_quickbooks_"+stamp+".json")
	case "xero":
		return jsonExport(export.InvoicesXero(views), "invoices_xero_"+stamp+".json")
	case "csv":
		var buf bytes.Buffer
		buf.Write(export.BOM)
		w := export.NewWriter(&buf)
		if err := w.WriteInvoices(views); err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		return &ExportResult{
			Data:        buf.Bytes(),
			ContentType: "text/csv",
			Filename:    "invoices_export_" + stamp + ".csv",
		}, nil
	case "xlsx":
		f, err := export.InvoicesXLSX(views)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		buf, err := f.WriteToBuffer()
		if err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		return &ExportResult{
			Data:        buf.Bytes(),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Filename:    "invoices_export_" + stamp + ".xlsx",
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", domain.ErrValidation, format)
	}
}

func jsonExport(v interface{}, filename string) (*ExportResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return &ExportResult{
		Data:        data,
		ContentType: "application/json",
		Filename:    filename,
	}, nil
}
