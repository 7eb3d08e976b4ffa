package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"recibo/internal/domain"
	"recibo/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	invoice.ID = uuid.New()
	now := time.Now().UTC()
	invoice.CreatedAt = now
	invoice.UpdatedAt = now

	query := `INSERT INTO invoices
		(id, invoice_id, receipt_id, date, due_date, subtotal, tax_total, total,
		 currency, payment_terms, notes, status, encrypted_data, qr_code_url,
		 pdf_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err := r.db.ExecContext(ctx, query,
		invoice.ID, invoice.InvoiceID, invoice.ReceiptID, invoice.Date,
		invoice.DueDate, invoice.Subtotal, invoice.TaxTotal, invoice.Total,
		invoice.Currency, invoice.PaymentTerms, invoice.Notes, invoice.Status,
		invoice.EncryptedData, invoice.QRCodeURL, invoice.PDFURL,
		invoice.IsActive, invoice.CreatedAt, invoice.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "invoice_id") {
			return domain.ErrDuplicateInvoiceID
		}
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByInvoiceID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.GetContext(ctx, &invoice,
		"SELECT * FROM invoices WHERE invoice_id = $1 AND is_active = TRUE", invoiceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByInvoiceID: %w", err)
	}
	return &invoice, nil
}

func (r *invoiceRepo) List(ctx context.Context, filter port.InvoiceFilter, offset, limit int) ([]domain.Invoice, int, error) {
	where := []string{"is_active = TRUE"}
	args := []interface{}{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("invoice_id ILIKE $%d", n))
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM invoices WHERE "+whereClause, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List count: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(
		"SELECT * FROM invoices WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		whereClause, len(args)-1, len(args))

	var invoices []domain.Invoice
	if err := r.db.SelectContext(ctx, &invoices, query, args...); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
	}
	return invoices, total, nil
}

func (r *invoiceRepo) ListAllActive(ctx context.Context) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := r.db.SelectContext(ctx, &invoices,
		"SELECT * FROM invoices WHERE is_active = TRUE ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListAllActive: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepo) Update(ctx context.Context, invoice *domain.Invoice) error {
	invoice.UpdatedAt = time.Now().UTC()
	query := `UPDATE invoices SET
		receipt_id = $1, date = $2, due_date = $3, subtotal = $4, tax_total = $5,
		total = $6, currency = $7, payment_terms = $8, notes = $9, status = $10,
		encrypted_data = $11, qr_code_url = $12, pdf_url = $13, updated_at = $14
		WHERE id = $15 AND is_active = TRUE`

	result, err := r.db.ExecContext(ctx, query,
		invoice.ReceiptID, invoice.Date, invoice.DueDate, invoice.Subtotal,
		invoice.TaxTotal, invoice.Total, invoice.Currency, invoice.PaymentTerms,
		invoice.Notes, invoice.Status, invoice.EncryptedData, invoice.QRCodeURL,
		invoice.PDFURL, invoice.UpdatedAt, invoice.ID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *invoiceRepo) UpdateQRCodeURL(ctx context.Context, id uuid.UUID, url string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE invoices SET qr_code_url = $1, updated_at = $2 WHERE id = $3",
		url, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateQRCodeURL: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *invoiceRepo) SoftDelete(ctx context.Context, invoiceID string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE invoices SET is_active = FALSE, updated_at = $1 WHERE invoice_id = $2 AND is_active = TRUE",
		time.Now().UTC(), invoiceID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.SoftDelete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *invoiceRepo) CountByStatus(ctx context.Context) (map[domain.InvoiceStatus]int, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT status, COUNT(*) FROM invoices WHERE is_active = TRUE GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.CountByStatus: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.InvoiceStatus]int)
	for rows.Next() {
		var status domain.InvoiceStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("invoiceRepo.CountByStatus scan: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
