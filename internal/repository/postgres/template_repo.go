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

type templateRepo struct {
	db *sqlx.DB
}

// NewTemplateRepo creates a new PostgreSQL-backed TemplateRepository.
func NewTemplateRepo(db *sqlx.DB) port.TemplateRepository {
	return &templateRepo{db: db}
}

func (r *templateRepo) Create(ctx context.Context, tmpl *domain.Template) error {
	tmpl.ID = uuid.New()
	now := time.Now().UTC()
	tmpl.CreatedAt = now
	tmpl.UpdatedAt = now

	query := `INSERT INTO templates
		(id, name, type, description, html_template, css_styles, fields,
		 is_default, is_active, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		tmpl.ID, tmpl.Name, tmpl.Type, tmpl.Description, tmpl.HTMLTemplate,
		tmpl.CSSStyles, tmpl.Fields, tmpl.IsDefault, tmpl.IsActive,
		tmpl.CreatedBy, tmpl.CreatedAt, tmpl.UpdatedAt)
	if err != nil {
		return fmt.Errorf("templateRepo.Create: %w", err)
	}
	return nil
}

func (r *templateRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Template, error) {
	var tmpl domain.Template
	err := r.db.GetContext(ctx, &tmpl, "SELECT * FROM templates WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("templateRepo.GetByID: %w", err)
	}
	return &tmpl, nil
}

func (r *templateRepo) List(ctx context.Context, tmplType domain.TemplateType, activeOnly bool) ([]domain.Template, error) {
	query := "SELECT * FROM templates WHERE TRUE"
	args := []interface{}{}
	if tmplType != "" {
		args = append(args, tmplType)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if activeOnly {
		query += " AND is_active = TRUE"
	}
	query += " ORDER BY is_default DESC, created_at DESC"

	var templates []domain.Template
	if err := r.db.SelectContext(ctx, &templates, query, args...); err != nil {
		return nil, fmt.Errorf("templateRepo.List: %w", err)
	}
	return templates, nil
}

func (r *templateRepo) Update(ctx context.Context, tmpl *domain.Template) error {
	tmpl.UpdatedAt = time.Now().UTC()
	query := `UPDATE templates SET
		name = $1, description = $2, html_template = $3, css_styles = $4,
		fields = $5, is_active = $6, updated_at = $7
		WHERE id = $8`

	result, err := r.db.ExecContext(ctx, query,
		tmpl.Name, tmpl.Description, tmpl.HTMLTemplate, tmpl.CSSStyles,
		tmpl.Fields, tmpl.IsActive, tmpl.UpdatedAt, tmpl.ID)
	if err != nil {
		return fmt.Errorf("templateRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetDefault promotes one template to default for its type. Siblings of the
// same type are demoted in the same transaction.
func (r *templateRepo) SetDefault(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("templateRepo.SetDefault begin: %w", err)
	}
	defer tx.Rollback()

	var tmplType domain.TemplateType
	err = tx.GetContext(ctx, &tmplType,
		"SELECT type FROM templates WHERE id = $1 AND is_active = TRUE", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("templateRepo.SetDefault lookup: %w", err)
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		"UPDATE templates SET is_default = FALSE, updated_at = $1 WHERE type = $2 AND id <> $3 AND is_default = TRUE",
		now, tmplType, id)
	if err != nil {
		return fmt.Errorf("templateRepo.SetDefault unset: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE templates SET is_default = TRUE, updated_at = $1 WHERE id = $2",
		now, id)
	if err != nil {
		return fmt.Errorf("templateRepo.SetDefault set: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("templateRepo.SetDefault commit: %w", err)
	}
	return nil
}

func (r *templateRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE templates SET is_active = FALSE, updated_at = $1 WHERE id = $2 AND is_active = TRUE",
		time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("templateRepo.SoftDelete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
