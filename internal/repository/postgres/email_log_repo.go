package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"recibo/internal/domain"
	"recibo/internal/port"
)

type emailLogRepo struct {
	db *sqlx.DB
}

// NewEmailLogRepo creates a new PostgreSQL-backed EmailLogRepository.
func NewEmailLogRepo(db *sqlx.DB) port.EmailLogRepository {
	return &emailLogRepo{db: db}
}

func (r *emailLogRepo) Create(ctx context.Context, log *domain.EmailLog) error {
	log.ID = uuid.New()
	log.CreatedAt = time.Now().UTC()

	query := `INSERT INTO email_logs
		(id, recipient, subject, template_type, status, error, sent_at,
		 receipt_id, invoice_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		log.ID, log.To, log.Subject, log.TemplateType, log.Status,
		log.Error, log.SentAt, log.ReceiptID, log.InvoiceID, log.CreatedAt)
	if err != nil {
		return fmt.Errorf("emailLogRepo.Create: %w", err)
	}
	return nil
}

func (r *emailLogRepo) List(ctx context.Context, offset, limit int) ([]domain.EmailLog, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM email_logs"); err != nil {
		return nil, 0, fmt.Errorf("emailLogRepo.List count: %w", err)
	}

	var logs []domain.EmailLog
	err := r.db.SelectContext(ctx, &logs,
		"SELECT * FROM email_logs ORDER BY created_at DESC LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("emailLogRepo.List: %w", err)
	}
	return logs, total, nil
}
