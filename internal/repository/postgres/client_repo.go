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

type clientRepo struct {
	db *sqlx.DB
}

// NewClientRepo creates a new PostgreSQL-backed ClientRepository.
func NewClientRepo(db *sqlx.DB) port.ClientRepository {
	return &clientRepo{db: db}
}

func (r *clientRepo) Create(ctx context.Context, client *domain.Client) error {
	client.ID = uuid.New()
	now := time.Now().UTC()
	client.CreatedAt = now
	client.UpdatedAt = now
	if client.LastContact.IsZero() {
		client.LastContact = now
	}

	query := `INSERT INTO clients
		(id, client_id, name, email, phone, address, company_name, tax_id,
		 preferred_currency, payment_terms, receipts, invoices, total_paid,
		 total_pending, last_contact, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err := r.db.ExecContext(ctx, query,
		client.ID, client.ClientID, client.Name, client.Email, client.Phone,
		client.Address, client.CompanyName, client.TaxID,
		client.PreferredCurrency, client.PaymentTerms, client.Receipts,
		client.Invoices, client.TotalPaid, client.TotalPending,
		client.LastContact, client.IsActive, client.CreatedAt, client.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "email") {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("clientRepo.Create: %w", err)
	}
	return nil
}

func (r *clientRepo) GetByClientID(ctx context.Context, clientID string) (*domain.Client, error) {
	var client domain.Client
	err := r.db.GetContext(ctx, &client,
		"SELECT * FROM clients WHERE client_id = $1 AND is_active = TRUE", clientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("clientRepo.GetByClientID: %w", err)
	}
	return &client, nil
}

func (r *clientRepo) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	var client domain.Client
	err := r.db.GetContext(ctx, &client,
		"SELECT * FROM clients WHERE email = $1", email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("clientRepo.GetByEmail: %w", err)
	}
	return &client, nil
}

func (r *clientRepo) List(ctx context.Context, filter port.ClientFilter, offset, limit int) ([]domain.Client, int, error) {
	where := []string{"TRUE"}
	args := []interface{}{}

	if filter.ActiveOnly {
		where = append(where, "is_active = TRUE")
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d OR company_name ILIKE $%d)", n, n, n))
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM clients WHERE "+whereClause, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("clientRepo.List count: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(
		"SELECT * FROM clients WHERE %s ORDER BY last_contact DESC LIMIT $%d OFFSET $%d",
		whereClause, len(args)-1, len(args))

	var clients []domain.Client
	if err := r.db.SelectContext(ctx, &clients, query, args...); err != nil {
		return nil, 0, fmt.Errorf("clientRepo.List: %w", err)
	}
	return clients, total, nil
}

func (r *clientRepo) Update(ctx context.Context, client *domain.Client) error {
	client.UpdatedAt = time.Now().UTC()
	query := `UPDATE clients SET
		name = $1, email = $2, phone = $3, address = $4, company_name = $5,
		tax_id = $6, preferred_currency = $7, payment_terms = $8, receipts = $9,
		invoices = $10, total_paid = $11, total_pending = $12, last_contact = $13,
		is_active = $14, updated_at = $15
		WHERE id = $16`

	result, err := r.db.ExecContext(ctx, query,
		client.Name, client.Email, client.Phone, client.Address,
		client.CompanyName, client.TaxID, client.PreferredCurrency,
		client.PaymentTerms, client.Receipts, client.Invoices,
		client.TotalPaid, client.TotalPending, client.LastContact,
		client.IsActive, client.UpdatedAt, client.ID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "email") {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("clientRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *clientRepo) SoftDelete(ctx context.Context, clientID string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE clients SET is_active = FALSE, updated_at = $1 WHERE client_id = $2 AND is_active = TRUE",
		time.Now().UTC(), clientID)
	if err != nil {
		return fmt.Errorf("clientRepo.SoftDelete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
