package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"recibo/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

var receiptColumns = []string{
	"Receipt ID",
	"Date",
	"Client Name",
	"Client Email",
	"Project Title",
	"Amount",
	"Currency",
	"Status",
	"Payment Method",
	"Created At",
}

var invoiceColumns = []string{
	"Invoice ID",
	"Date",
	"Due Date",
	"Client Name",
	"Client Email",
	"Subtotal",
	"Tax Total",
	"Total",
	"Currency",
	"Status",
	"Created At",
}

// Writer wraps csv.Writer for exporting decrypted document views as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteReceipts writes the receipt header row followed by one row per view.
func (w *Writer) WriteReceipts(views []domain.ReceiptView) error {
	if err := w.csv.Write(receiptColumns); err != nil {
		return err
	}
	for i := range views {
		if err := w.csv.Write(receiptToRow(&views[i])); err != nil {
			return err
		}
	}
	return nil
}

// WriteInvoices writes the invoice header row followed by one row per view.
func (w *Writer) WriteInvoices(views []domain.InvoiceView) error {
	if err := w.csv.Write(invoiceColumns); err != nil {
		return err
	}
	for i := range views {
		if err := w.csv.Write(invoiceToRow(&views[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func receiptToRow(v *domain.ReceiptView) []string {
	return []string{
		v.ReceiptID,
		formatDate(v.Date),
		v.ClientInfo.Name,
		v.ClientInfo.Email,
		v.ProjectDetails.Title,
		formatMoney(v.PaymentInfo.Amount),
		v.PaymentInfo.Currency,
		string(v.PaymentInfo.Status),
		v.PaymentInfo.Method,
		formatDate(v.CreatedAt),
	}
}

func invoiceToRow(v *domain.InvoiceView) []string {
	return []string{
		v.InvoiceID,
		formatDate(v.Date),
		formatDate(v.DueDate),
		v.ClientInfo.Name,
		v.ClientInfo.Email,
		formatMoney(v.Subtotal),
		formatMoney(v.TaxTotal),
		formatMoney(v.Total),
		v.Currency,
		string(v.Status),
		formatDate(v.CreatedAt),
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
