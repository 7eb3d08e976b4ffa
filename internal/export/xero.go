package export

import "recibo/internal/domain"

// XeroContact identifies the billed party in the Xero invoice format.
type XeroContact struct {
	ContactID    string `json:"ContactID"`
	Name         string `json:"Name"`
	EmailAddress string `json:"EmailAddress"`
}

// XeroLineItem is one accounts-receivable invoice line.
type XeroLineItem struct {
	Description string  `json:"Description"`
	Quantity    float64 `json:"Quantity"`
	UnitAmount  float64 `json:"UnitAmount"`
	LineAmount  float64 `json:"LineAmount"`
	TaxAmount   float64 `json:"TaxAmount,omitempty"`
	AccountCode string  `json:"AccountCode"`
}

// XeroInvoice is a receipt or invoice in the Xero ACCREC import shape.
type XeroInvoice struct {
	Type          string         `json:"Type"`
	InvoiceID     string         `json:"InvoiceID"`
	InvoiceNumber string         `json:"InvoiceNumber"`
	Date          string         `json:"Date"`
	DueDate       string         `json:"DueDate"`
	Status        string         `json:"Status"`
	Contact       XeroContact    `json:"Contact"`
	LineItems     []XeroLineItem `json:"LineItems"`
	SubTotal      float64        `json:"SubTotal"`
	TotalTax      float64        `json:"TotalTax"`
	Total         float64        `json:"Total"`
	CurrencyCode  string         `json:"CurrencyCode"`
}

const xeroRevenueAccount = "200"

func xeroStatus(paid bool) string {
	if paid {
		return "PAID"
	}
	return "AUTHORISED"
}

// ReceiptsXero converts decrypted receipt views into Xero ACCREC invoices.
func ReceiptsXero(views []domain.ReceiptView) []XeroInvoice {
	out := make([]XeroInvoice, 0, len(views))
	for i := range views {
		v := &views[i]
		date := formatDate(v.Date)
		out = append(out, XeroInvoice{
			Type:          "ACCREC",
			InvoiceID:     v.ReceiptID,
			InvoiceNumber: v.ReceiptID,
			Date:          date,
			DueDate:       date,
			Status:        xeroStatus(v.PaymentInfo.Status == domain.PaymentStatusPaid),
			Contact: XeroContact{
				ContactID:    v.ReceiptID,
				Name:         v.ClientInfo.Name,
				EmailAddress: v.ClientInfo.Email,
			},
			LineItems: []XeroLineItem{{
				Description: v.ProjectDetails.Title + " - " + v.ProjectDetails.Description,
				Quantity:    1,
				UnitAmount:  v.PaymentInfo.Amount,
				LineAmount:  v.PaymentInfo.Amount,
				AccountCode: xeroRevenueAccount,
			}},
			SubTotal:     v.PaymentInfo.Amount,
			TotalTax:     0,
			Total:        v.PaymentInfo.Amount,
			CurrencyCode: v.PaymentInfo.Currency,
		})
	}
	return out
}

// InvoicesXero converts decrypted invoice views into Xero ACCREC invoices.
func InvoicesXero(views []domain.InvoiceView) []XeroInvoice {
	out := make([]XeroInvoice, 0, len(views))
	for i := range views {
		v := &views[i]
		lines := make([]XeroLineItem, 0, len(v.Items))
		for _, item := range v.Items {
			lines = append(lines, XeroLineItem{
				Description: item.Description,
				Quantity:    item.Quantity,
				UnitAmount:  item.Rate,
				LineAmount:  item.Amount,
				TaxAmount:   item.TaxAmount,
				AccountCode: xeroRevenueAccount,
			})
		}
		out = append(out, XeroInvoice{
			Type:          "ACCREC",
			InvoiceID:     v.InvoiceID,
			InvoiceNumber: v.InvoiceID,
			Date:          formatDate(v.Date),
			DueDate:       formatDate(v.DueDate),
			Status:        xeroStatus(v.Status == domain.InvoiceStatusPaid),
			Contact: XeroContact{
				ContactID:    v.InvoiceID,
				Name:         v.ClientInfo.Name,
				EmailAddress: v.ClientInfo.Email,
			},
			LineItems:    lines,
			SubTotal:     v.Subtotal,
			TotalTax:     v.TaxTotal,
			Total:        v.Total,
			CurrencyCode: v.Currency,
		})
	}
	return out
}
