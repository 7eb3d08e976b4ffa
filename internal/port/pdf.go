package port

import "recibo/internal/domain"

// PDFRenderer renders decrypted receipt/invoice views into paginated PDF
// documents. Purely a function of its input; no storage access.
type PDFRenderer interface {
	RenderReceipt(view *domain.ReceiptView) ([]byte, error)
	RenderInvoice(view *domain.InvoiceView) ([]byte, error)
}
