package export

import (
	"fmt"
	"time"

	"recibo/internal/domain"
)

// QuickBooksRef is an entity reference in the QuickBooks transaction format.
type QuickBooksRef struct {
	ListID   string `json:"ListID"`
	FullName string `json:"FullName"`
}

// QuickBooksLine is one transaction line.
type QuickBooksLine struct {
	TxnLineID     string        `json:"TxnLineID,omitempty"`
	ItemRef       QuickBooksRef `json:"ItemRef"`
	Desc          string        `json:"Desc"`
	Quantity      float64       `json:"Quantity"`
	UnitOfMeasure string        `json:"UnitOfMeasure,omitempty"`
	Rate          float64       `json:"Rate"`
	Amount        float64       `json:"Amount"`
}

// QuickBooksTxn is a receipt or invoice in the QuickBooks import shape.
type QuickBooksTxn struct {
	TxnID          string           `json:"TxnID"`
	TimeCreated    time.Time        `json:"TimeCreated"`
	CustomerRef    QuickBooksRef    `json:"CustomerRef"`
	ItemLineRet    []QuickBooksLine `json:"ItemLineRet,omitempty"`
	InvoiceLineRet []QuickBooksLine `json:"InvoiceLineRet,omitempty"`
	Subtotal       float64          `json:"Subtotal"`
	TaxTotal       float64          `json:"TaxTotal,omitempty"`
	TotalAmount    float64          `json:"TotalAmount"`
	IsPaid         bool             `json:"IsPaid"`
	Currency       string           `json:"Currency"`
	DueDate        string           `json:"DueDate,omitempty"`
}

// ReceiptsQuickBooks converts decrypted receipt views into QuickBooks
// transactions. A receipt maps to a single line covering the whole project.
func ReceiptsQuickBooks(views []domain.ReceiptView) []QuickBooksTxn {
	txns := make([]QuickBooksTxn, 0, len(views))
	for i := range views {
		v := &views[i]
		txns = append(txns, QuickBooksTxn{
			TxnID:       v.ReceiptID,
			TimeCreated: v.Date,
			CustomerRef: QuickBooksRef{ListID: v.ReceiptID, FullName: v.ClientInfo.Name},
			ItemLineRet: []QuickBooksLine{{
				ItemRef:       QuickBooksRef{ListID: "1", FullName: v.ProjectDetails.Title},
				Desc:          v.ProjectDetails.Description,
				Quantity:      1,
				UnitOfMeasure: "Each",
				Rate:          v.PaymentInfo.Amount,
				Amount:        v.PaymentInfo.Amount,
			}},
			Subtotal:    v.PaymentInfo.Amount,
			TotalAmount: v.PaymentInfo.Amount,
			IsPaid:      v.PaymentInfo.Status == domain.PaymentStatusPaid,
			Currency:    v.PaymentInfo.Currency,
		})
	}
	return txns
}

// InvoicesQuickBooks converts decrypted invoice views into QuickBooks
// transactions, one line per invoice item.
func InvoicesQuickBooks(views []domain.InvoiceView) []QuickBooksTxn {
	txns := make([]QuickBooksTxn, 0, len(views))
	for i := range views {
		v := &views[i]
		lines := make([]QuickBooksLine, 0, len(v.Items))
		for j, item := range v.Items {
			lines = append(lines, QuickBooksLine{
				TxnLineID: fmt.Sprintf("%s-%d", v.InvoiceID, j),
				ItemRef:   QuickBooksRef{ListID: fmt.Sprintf("item-%d", j), FullName: item.Description},
				Desc:      item.Description,
				Quantity:  item.Quantity,
				Rate:      item.Rate,
				Amount:    item.Amount,
			})
		}
		txns = append(txns, QuickBooksTxn{
			TxnID:          v.InvoiceID,
			TimeCreated:    v.Date,
			CustomerRef:    QuickBooksRef{ListID: v.InvoiceID, FullName: v.ClientInfo.Name},
			InvoiceLineRet: lines,
			Subtotal:       v.Subtotal,
			TaxTotal:       v.TaxTotal,
			TotalAmount:    v.Total,
			IsPaid:         v.Status == domain.InvoiceStatusPaid,
			Currency:       v.Currency,
			DueDate:        formatDate(v.DueDate),
		})
	}
	return txns
}
