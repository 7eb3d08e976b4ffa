package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"recibo/internal/domain"
	"recibo/internal/port"
	"recibo/internal/template"
)

// CreateTemplateInput is the DTO for document template creation.
type CreateTemplateInput struct {
	Name         string              `json:"name" binding:"required"`
	Type         domain.TemplateType `json:"type" binding:"required"`
	Description  string              `json:"description"`
	HTMLTemplate string              `json:"html_template" binding:"required"`
	CSSStyles    string              `json:"css_styles"`
	Fields       domain.FieldList    `json:"fields"`
	IsDefault    bool                `json:"is_default"`
	CreatedBy    string              `json:"created_by"`
}

// UpdateTemplateInput is the DTO for document template updates.
type UpdateTemplateInput struct {
	Name         *string           `json:"name"`
	Description  *string           `json:"description"`
	HTMLTemplate *string           `json:"html_template"`
	CSSStyles    *string           `json:"css_styles"`
	Fields       *domain.FieldList `json:"fields"`
}

// TemplateService manages document templates and the default-per-type
// invariant.
type TemplateService interface {
	Create(ctx context.Context, input CreateTemplateInput) (*domain.Template, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Template, error)
	List(ctx context.Context, tmplType domain.TemplateType, activeOnly bool) ([]domain.Template, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateTemplateInput) (*domain.Template, error)
	SetDefault(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	Preview(ctx context.Context, id uuid.UUID, vars map[string]string) (string, error)
}

type templateService struct {
	templateRepo port.TemplateRepository
}

// NewTemplateService creates a new TemplateService implementation.
func NewTemplateService(templateRepo port.TemplateRepository) TemplateService {
	return &templateService{templateRepo: templateRepo}
}

func (s *templateService) Create(ctx context.Context, input CreateTemplateInput) (*domain.Template, error) {
	if input.Type != domain.TemplateTypeReceipt && input.Type != domain.TemplateTypeInvoice {
		return nil, fmt.Errorf("%w: unknown template type %q", domain.ErrValidation, input.Type)
	}

	tmpl := &domain.Template{
		Name:         input.Name,
		Type:         input.Type,
		Description:  input.Description,
		HTMLTemplate: input.HTMLTemplate,
		CSSStyles:    input.CSSStyles,
		Fields:       input.Fields,
		IsActive:     true,
		CreatedBy:    input.CreatedBy,
	}
	if err := s.templateRepo.Create(ctx, tmpl); err != nil {
		return nil, err
	}

	// The default flag goes through SetDefault so siblings are demoted in
	// the same transaction.
	if input.IsDefault {
		if err := s.templateRepo.SetDefault(ctx, tmpl.ID); err != nil {
			return nil, err
		}
		tmpl.IsDefault = true
	}
	return tmpl, nil
}

func (s *templateService) Get(ctx context.Context, id uuid.UUID) (*domain.Template, error) {
	return s.templateRepo.GetByID(ctx, id)
}

func (s *templateService) List(ctx context.Context, tmplType domain.TemplateType, activeOnly bool) ([]domain.Template, error) {
	return s.templateRepo.List(ctx, tmplType, activeOnly)
}

func (s *templateService) Update(ctx context.Context, id uuid.UUID, input UpdateTemplateInput) (*domain.Template, error) {
	tmpl, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		tmpl.Name = *input.Name
	}
	if input.Description != nil {
		tmpl.Description = *input.Description
	}
	if input.HTMLTemplate != nil {
		tmpl.HTMLTemplate = *input.HTMLTemplate
	}
	if input.CSSStyles != nil {
		tmpl.CSSStyles = *input.CSSStyles
	}
	if input.Fields != nil {
		tmpl.Fields = *input.Fields
	}

	if err := s.templateRepo.Update(ctx, tmpl); err != nil {
		return nil, err
	}
	return tmpl, nil
}

func (s *templateService) SetDefault(ctx context.Context, id uuid.UUID) error {
	return s.templateRepo.SetDefault(ctx, id)
}

func (s *templateService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.templateRepo.SoftDelete(ctx, id)
}

// Preview renders a template's HTML with the supplied variables. Markers
// without a matching variable pass through verbatim.
func (s *templateService) Preview(ctx context.Context, id uuid.UUID, vars map[string]string) (string, error) {
	tmpl, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return template.Render(tmpl.HTMLTemplate, vars), nil
}
