package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"recibo/internal/domain"
	"recibo/internal/port"
)

type taxSettingRepo struct {
	db *sqlx.DB
}

// NewTaxSettingRepo creates a new PostgreSQL-backed TaxSettingRepository.
func NewTaxSettingRepo(db *sqlx.DB) port.TaxSettingRepository {
	return &taxSettingRepo{db: db}
}

func (r *taxSettingRepo) Create(ctx context.Context, setting *domain.TaxSetting) error {
	setting.ID = uuid.New()
	now := time.Now().UTC()
	setting.CreatedAt = now
	setting.UpdatedAt = now

	query := `INSERT INTO tax_settings
		(id, name, region, tax_type, rate, description, applicable_to,
		 is_default, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		setting.ID, setting.Name, setting.Region, setting.TaxType,
		setting.Rate, setting.Description, setting.ApplicableTo,
		setting.IsDefault, setting.IsActive, setting.CreatedAt, setting.UpdatedAt)
	if err != nil {
		return fmt.Errorf("taxSettingRepo.Create: %w", err)
	}
	return nil
}

func (r *taxSettingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.TaxSetting, error) {
	var setting domain.TaxSetting
	err := r.db.GetContext(ctx, &setting, "SELECT * FROM tax_settings WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("taxSettingRepo.GetByID: %w", err)
	}
	return &setting, nil
}

func (r *taxSettingRepo) List(ctx context.Context, region string, activeOnly bool) ([]domain.TaxSetting, error) {
	query := "SELECT * FROM tax_settings WHERE TRUE"
	args := []interface{}{}
	if region != "" {
		args = append(args, region)
		query += fmt.Sprintf(" AND region = $%d", len(args))
	}
	if activeOnly {
		query += " AND is_active = TRUE"
	}
	query += " ORDER BY region, is_default DESC, name"

	var settings []domain.TaxSetting
	if err := r.db.SelectContext(ctx, &settings, query, args...); err != nil {
		return nil, fmt.Errorf("taxSettingRepo.List: %w", err)
	}
	return settings, nil
}

func (r *taxSettingRepo) Update(ctx context.Context, setting *domain.TaxSetting) error {
	setting.UpdatedAt = time.Now().UTC()
	query := `UPDATE tax_settings SET
		name = $1, region = $2, tax_type = $3, rate = $4, description = $5,
		applicable_to = $6, is_default = $7, is_active = $8, updated_at = $9
		WHERE id = $10`

	result, err := r.db.ExecContext(ctx, query,
		setting.Name, setting.Region, setting.TaxType, setting.Rate,
		setting.Description, setting.ApplicableTo, setting.IsDefault,
		setting.IsActive, setting.UpdatedAt, setting.ID)
	if err != nil {
		return fmt.Errorf("taxSettingRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetDefault promotes one tax setting to default for its region. Siblings in
// the same region are demoted in the same transaction.
func (r *taxSettingRepo) SetDefault(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("taxSettingRepo.SetDefault begin: %w", err)
	}
	defer tx.Rollback()

	var region string
	err = tx.GetContext(ctx, &region,
		"SELECT region FROM tax_settings WHERE id = $1 AND is_active = TRUE", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("taxSettingRepo.SetDefault lookup: %w", err)
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		"UPDATE tax_settings SET is_default = FALSE, updated_at = $1 WHERE region = $2 AND id <> $3 AND is_default = TRUE",
		now, region, id)
	if err != nil {
		return fmt.Errorf("taxSettingRepo.SetDefault unset: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE tax_settings SET is_default = TRUE, updated_at = $1 WHERE id = $2",
		now, id)
	if err != nil {
		return fmt.Errorf("taxSettingRepo.SetDefault set: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("taxSettingRepo.SetDefault commit: %w", err)
	}
	return nil
}

func (r *taxSettingRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE tax_settings SET is_active = FALSE, updated_at = $1 WHERE id = $2 AND is_active = TRUE",
		time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("taxSettingRepo.SoftDelete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
