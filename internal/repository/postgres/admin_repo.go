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

type adminRepo struct {
	db *sqlx.DB
}

// NewAdminRepo creates a new PostgreSQL-backed AdminRepository.
func NewAdminRepo(db *sqlx.DB) port.AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) Create(ctx context.Context, admin *domain.Admin) error {
	admin.ID = uuid.New()
	now := time.Now().UTC()
	admin.CreatedAt = now
	admin.UpdatedAt = now

	query := `INSERT INTO admins
		(id, email, password_hash, name, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		admin.ID, admin.Email, admin.PasswordHash, admin.Name,
		admin.IsActive, admin.CreatedAt, admin.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("adminRepo.Create: %w", err)
	}
	return nil
}

func (r *adminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	var admin domain.Admin
	err := r.db.GetContext(ctx, &admin,
		"SELECT * FROM admins WHERE email = $1", email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("adminRepo.GetByEmail: %w", err)
	}
	return &admin, nil
}
