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

type receiptRepo struct {
	db *sqlx.DB
}

// NewReceiptRepo creates a new PostgreSQL-backed ReceiptRepository.
func NewReceiptRepo(db *sqlx.DB) port.ReceiptRepository {
	return &receiptRepo{db: db}
}

func (r *receiptRepo) Create(ctx context.Context, receipt *domain.Receipt) error {
	receipt.ID = uuid.New()
	now := time.Now().UTC()
	receipt.CreatedAt = now
	receipt.UpdatedAt = now

	query := `INSERT INTO receipts
		(id, receipt_id, date, project_title, amount, currency, payment_status,
		 encrypted_data, qr_code_url, pdf_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.ExecContext(ctx, query,
		receipt.ID, receipt.ReceiptID, receipt.Date, receipt.ProjectTitle,
		receipt.Amount, receipt.Currency, receipt.PaymentStatus,
		receipt.EncryptedData, receipt.QRCodeURL, receipt.PDFURL,
		receipt.IsActive, receipt.CreatedAt, receipt.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "receipt_id") {
			return domain.ErrDuplicateReceiptID
		}
		return fmt.Errorf("receiptRepo.Create: %w", err)
	}
	return nil
}

func (r *receiptRepo) GetByReceiptID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	var receipt domain.Receipt
	err := r.db.GetContext(ctx, &receipt,
		"SELECT * FROM receipts WHERE receipt_id = $1 AND is_active = TRUE", receiptID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("receiptRepo.GetByReceiptID: %w", err)
	}
	return &receipt, nil
}

func (r *receiptRepo) List(ctx context.Context, filter port.ReceiptFilter, offset, limit int) ([]domain.Receipt, int, error) {
	where := []string{"is_active = TRUE"}
	args := []interface{}{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("payment_status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(receipt_id ILIKE $%d OR project_title ILIKE $%d)", n, n))
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM receipts WHERE "+whereClause, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("receiptRepo.List count: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(
		"SELECT * FROM receipts WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		whereClause, len(args)-1, len(args))

	var receipts []domain.Receipt
	if err := r.db.SelectContext(ctx, &receipts, query, args...); err != nil {
		return nil, 0, fmt.Errorf("receiptRepo.List: %w", err)
	}
	return receipts, total, nil
}

func (r *receiptRepo) ListAllActive(ctx context.Context) ([]domain.Receipt, error) {
	var receipts []domain.Receipt
	err := r.db.SelectContext(ctx, &receipts,
		"SELECT * FROM receipts WHERE is_active = TRUE ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("receiptRepo.ListAllActive: %w", err)
	}
	return receipts, nil
}

func (r *receiptRepo) Update(ctx context.Context, receipt *domain.Receipt) error {
	receipt.UpdatedAt = time.Now().UTC()
	query := `UPDATE receipts SET
		date = $1, project_title = $2, amount = $3, currency = $4,
		payment_status = $5, encrypted_data = $6, qr_code_url = $7,
		pdf_url = $8, updated_at = $9
		WHERE id = $10 AND is_active = TRUE`

	result, err := r.db.ExecContext(ctx, query,
		receipt.Date, receipt.ProjectTitle, receipt.Amount, receipt.Currency,
		receipt.PaymentStatus, receipt.EncryptedData, receipt.QRCodeURL,
		receipt.PDFURL, receipt.UpdatedAt, receipt.ID)
	if err != nil {
		return fmt.Errorf("receiptRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *receiptRepo) UpdateQRCodeURL(ctx context.Context, id uuid.UUID, url string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE receipts SET qr_code_url = $1, updated_at = $2 WHERE id = $3",
		url, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("receiptRepo.UpdateQRCodeURL: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *receiptRepo) SoftDelete(ctx context.Context, receiptID string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE receipts SET is_active = FALSE, updated_at = $1 WHERE receipt_id = $2 AND is_active = TRUE",
		time.Now().UTC(), receiptID)
	if err != nil {
		return fmt.Errorf("receiptRepo.SoftDelete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		// Already inactive counts as not found; the flag never flips twice.
		return domain.ErrNotFound
	}
	return nil
}

func (r *receiptRepo) CountByStatus(ctx context.Context) (map[domain.PaymentStatus]int, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT payment_status, COUNT(*) FROM receipts WHERE is_active = TRUE GROUP BY payment_status")
	if err != nil {
		return nil, fmt.Errorf("receiptRepo.CountByStatus: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.PaymentStatus]int)
	for rows.Next() {
		var status domain.PaymentStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("receiptRepo.CountByStatus scan: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *receiptRepo) RevenueByCurrency(ctx context.Context) ([]domain.CurrencyRevenue, error) {
	var revenue []domain.CurrencyRevenue
	err := r.db.SelectContext(ctx, &revenue, `
		SELECT currency, SUM(amount) AS total_revenue, COUNT(*) AS count
		FROM receipts
		WHERE is_active = TRUE AND payment_status = 'paid'
		GROUP BY currency
		ORDER BY total_revenue DESC`)
	if err != nil {
		return nil, fmt.Errorf("receiptRepo.RevenueByCurrency: %w", err)
	}
	return revenue, nil
}

func (r *receiptRepo) MonthlyRevenue(ctx context.Context, months int) ([]domain.MonthlyRevenue, error) {
	var revenue []domain.MonthlyRevenue
	err := r.db.SelectContext(ctx, &revenue, `
		SELECT EXTRACT(YEAR FROM date)::int AS year,
		       EXTRACT(MONTH FROM date)::int AS month,
		       SUM(amount) AS revenue,
		       COUNT(*) AS count
		FROM receipts
		WHERE is_active = TRUE
		  AND payment_status = 'paid'
		  AND date >= date_trunc('month', NOW()) - make_interval(months => $1 - 1)
		GROUP BY 1, 2
		ORDER BY 1, 2`, months)
	if err != nil {
		return nil, fmt.Errorf("receiptRepo.MonthlyRevenue: %w", err)
	}
	return revenue, nil
}
