package domain

// PaymentStatus is the settlement state of a receipt's payment.
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPartial PaymentStatus = "partial"
)

// ValidPaymentStatuses lists the accepted payment statuses.
var ValidPaymentStatuses = map[PaymentStatus]bool{
	PaymentStatusPaid:    true,
	PaymentStatusPending: true,
	PaymentStatusPartial: true,
}

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// ValidInvoiceStatuses lists the accepted invoice statuses.
var ValidInvoiceStatuses = map[InvoiceStatus]bool{
	InvoiceStatusDraft:     true,
	InvoiceStatusSent:      true,
	InvoiceStatusPaid:      true,
	InvoiceStatusOverdue:   true,
	InvoiceStatusCancelled: true,
}

// TemplateType discriminates document templates.
type TemplateType string

const (
	TemplateTypeReceipt TemplateType = "receipt"
	TemplateTypeInvoice TemplateType = "invoice"
)

// EmailTemplateType discriminates notification templates.
type EmailTemplateType string

const (
	EmailTemplateReceiptSent     EmailTemplateType = "receipt_sent"
	EmailTemplateInvoiceSent     EmailTemplateType = "invoice_sent"
	EmailTemplatePaymentReminder EmailTemplateType = "payment_reminder"
	EmailTemplatePaymentReceived EmailTemplateType = "payment_received"
	EmailTemplateCustom          EmailTemplateType = "custom"
)

// EmailStatus is the delivery state of a logged email.
type EmailStatus string

const (
	EmailStatusSent    EmailStatus = "sent"
	EmailStatusFailed  EmailStatus = "failed"
	EmailStatusPending EmailStatus = "pending"
)

// TaxType classifies a tax setting.
type TaxType string

const (
	TaxTypeVAT        TaxType = "VAT"
	TaxTypeGST        TaxType = "GST"
	TaxTypeSalesTax   TaxType = "Sales Tax"
	TaxTypeServiceTax TaxType = "Service Tax"
)

// ApplicableTo scopes what a tax setting applies to.
type ApplicableTo string

const (
	ApplicableToServices ApplicableTo = "services"
	ApplicableToProducts ApplicableTo = "products"
	ApplicableToBoth     ApplicableTo = "both"
)
