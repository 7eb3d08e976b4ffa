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

type emailTemplateRepo struct {
	db *sqlx.DB
}

// NewEmailTemplateRepo creates a new PostgreSQL-backed EmailTemplateRepository.
func NewEmailTemplateRepo(db *sqlx.DB) port.EmailTemplateRepository {
	return &emailTemplateRepo{db: db}
}

func (r *emailTemplateRepo) Create(ctx context.Context, tmpl *domain.EmailTemplate) error {
	tmpl.ID = uuid.New()
	now := time.Now().UTC()
	tmpl.CreatedAt = now
	tmpl.UpdatedAt = now

	query := `INSERT INTO email_templates
		(id, name, type, subject, html_content, text_content, variables,
		 is_default, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		tmpl.ID, tmpl.Name, tmpl.Type, tmpl.Subject, tmpl.HTMLContent,
		tmpl.TextContent, tmpl.Variables, tmpl.IsDefault, tmpl.IsActive,
		tmpl.CreatedAt, tmpl.UpdatedAt)
	if err != nil {
		return fmt.Errorf("emailTemplateRepo.Create: %w", err)
	}
	return nil
}

func (r *emailTemplateRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.EmailTemplate, error) {
	var tmpl domain.EmailTemplate
	err := r.db.GetContext(ctx, &tmpl, "SELECT * FROM email_templates WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("emailTemplateRepo.GetByID: %w", err)
	}
	return &tmpl, nil
}

func (r *emailTemplateRepo) GetDefaultByType(ctx context.Context, tmplType domain.EmailTemplateType) (*domain.EmailTemplate, error) {
	var tmpl domain.EmailTemplate
	err := r.db.GetContext(ctx, &tmpl,
		`SELECT * FROM email_templates
		 WHERE type = $1 AND is_default = TRUE AND is_active = TRUE
		 LIMIT 1`, tmplType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("emailTemplateRepo.GetDefaultByType: %w", err)
	}
	return &tmpl, nil
}

func (r *emailTemplateRepo) List(ctx context.Context, tmplType domain.EmailTemplateType, activeOnly bool) ([]domain.EmailTemplate, error) {
	query := "SELECT * FROM email_templates WHERE TRUE"
	args := []interface{}{}
	if tmplType != "" {
		args = append(args, tmplType)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if activeOnly {
		query += " AND is_active = TRUE"
	}
	query += " ORDER BY is_default DESC, created_at DESC"

	var templates []domain.EmailTemplate
	if err := r.db.SelectContext(ctx, &templates, query, args...); err != nil {
		return nil, fmt.Errorf("emailTemplateRepo.List: %w", err)
	}
	return templates, nil
}

func (r *emailTemplateRepo) Update(ctx context.Context, tmpl *domain.EmailTemplate) error {
	tmpl.UpdatedAt = time.Now().UTC()
	query := `UPDATE email_templates SET
		name = $1, subject = $2, html_content = $3, text_content = $4,
		variables = $5, is_active = $6, updated_at = $7
		WHERE id = $8`

	result, err := r.db.ExecContext(ctx, query,
		tmpl.Name, tmpl.Subject, tmpl.HTMLContent, tmpl.TextContent,
		tmpl.Variables, tmpl.IsActive, tmpl.UpdatedAt, tmpl.ID)
	if err != nil {
		return fmt.Errorf("emailTemplateRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *emailTemplateRepo) SetDefault(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("emailTemplateRepo.SetDefault begin: %w", err)
	}
	defer tx.Rollback()

	var tmplType domain.EmailTemplateType
	err = tx.GetContext(ctx, &tmplType,
		"SELECT type FROM email_templates WHERE id = $1 AND is_active = TRUE", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("emailTemplateRepo.SetDefault lookup: %w", err)
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		"UPDATE email_templates SET is_default = FALSE, updated_at = $1 WHERE type = $2 AND id <> $3 AND is_default = TRUE",
		now, tmplType, id)
	if err != nil {
		return fmt.Errorf("emailTemplateRepo.SetDefault unset: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE email_templates SET is_default = TRUE, updated_at = $1 WHERE id = $2",
		now, id)
	if err != nil {
		return fmt.Errorf("emailTemplateRepo.SetDefault set: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("emailTemplateRepo.SetDefault commit: %w", err)
	}
	return nil
}

func (r *emailTemplateRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE email_templates SET is_active = FALSE, updated_at = $1 WHERE id = $2 AND is_active = TRUE",
		time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("emailTemplateRepo.SoftDelete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
