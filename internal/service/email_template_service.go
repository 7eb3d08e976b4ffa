package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"recibo/internal/domain"
	"recibo/internal/port"
	"recibo/internal/template"
)

// CreateEmailTemplateInput is the DTO for notification template creation.
type CreateEmailTemplateInput struct {
	Name        string                   `json:"name" binding:"required"`
	Type        domain.EmailTemplateType `json:"type" binding:"required"`
	Subject     string                   `json:"subject" binding:"required"`
	HTMLContent string                   `json:"html_content" binding:"required"`
	TextContent string                   `json:"text_content"`
	IsDefault   bool                     `json:"is_default"`
}

// UpdateEmailTemplateInput is the DTO for notification template updates.
type UpdateEmailTemplateInput struct {
	Name        *string `json:"name"`
	Subject     *string `json:"subject"`
	HTMLContent *string `json:"html_content"`
	TextContent *string `json:"text_content"`
}

// EmailTemplateService manages notification templates and the
// default-per-type invariant.
type EmailTemplateService interface {
	Create(ctx context.Context, input CreateEmailTemplateInput) (*domain.EmailTemplate, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.EmailTemplate, error)
	List(ctx context.Context, tmplType domain.EmailTemplateType, activeOnly bool) ([]domain.EmailTemplate, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateEmailTemplateInput) (*domain.EmailTemplate, error)
	SetDefault(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type emailTemplateService struct {
	templateRepo port.EmailTemplateRepository
}

// NewEmailTemplateService creates a new EmailTemplateService implementation.
func NewEmailTemplateService(templateRepo port.EmailTemplateRepository) EmailTemplateService {
	return &emailTemplateService{templateRepo: templateRepo}
}

var validEmailTemplateTypes = map[domain.EmailTemplateType]bool{
	domain.EmailTemplateReceiptSent:     true,
	domain.EmailTemplateInvoiceSent:     true,
	domain.EmailTemplatePaymentReminder: true,
	domain.EmailTemplatePaymentReceived: true,
	domain.EmailTemplateCustom:          true,
}

func (s *emailTemplateService) Create(ctx context.Context, input CreateEmailTemplateInput) (*domain.EmailTemplate, error) {
	if !validEmailTemplateTypes[input.Type] {
		return nil, fmt.Errorf("%w: unknown email template type %q", domain.ErrValidation, input.Type)
	}

	tmpl := &domain.EmailTemplate{
		Name:        input.Name,
		Type:        input.Type,
		Subject:     input.Subject,
		HTMLContent: input.HTMLContent,
		TextContent: input.TextContent,
		Variables:   collectVariables(input.Subject, input.HTMLContent, input.TextContent),
		IsActive:    true,
	}
	if err := s.templateRepo.Create(ctx, tmpl); err != nil {
		return nil, err
	}

	if input.IsDefault {
		if err := s.templateRepo.SetDefault(ctx, tmpl.ID); err != nil {
			return nil, err
		}
		tmpl.IsDefault = true
	}
	return tmpl, nil
}

func (s *emailTemplateService) Get(ctx context.Context, id uuid.UUID) (*domain.EmailTemplate, error) {
	return s.templateRepo.GetByID(ctx, id)
}

func (s *emailTemplateService) List(ctx context.Context, tmplType domain.EmailTemplateType, activeOnly bool) ([]domain.EmailTemplate, error) {
	return s.templateRepo.List(ctx, tmplType, activeOnly)
}

func (s *emailTemplateService) Update(ctx context.Context, id uuid.UUID, input UpdateEmailTemplateInput) (*domain.EmailTemplate, error) {
	tmpl, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		tmpl.Name = *input.Name
	}
	if input.Subject != nil {
		tmpl.Subject = *input.Subject
	}
	if input.HTMLContent != nil {
		tmpl.HTMLContent = *input.HTMLContent
	}
	if input.TextContent != nil {
		tmpl.TextContent = *input.TextContent
	}
	tmpl.Variables = collectVariables(tmpl.Subject, tmpl.HTMLContent, tmpl.TextContent)

	if err := s.templateRepo.Update(ctx, tmpl); err != nil {
		return nil, err
	}
	return tmpl, nil
}

func (s *emailTemplateService) SetDefault(ctx context.Context, id uuid.UUID) error {
	return s.templateRepo.SetDefault(ctx, id)
}

func (s *emailTemplateService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.templateRepo.SoftDelete(ctx, id)
}

// collectVariables extracts the distinct substitution markers used across
// the template parts, in first-seen order.
func collectVariables(parts ...string) domain.StringList {
	seen := map[string]bool{}
	var vars domain.StringList
	for _, part := range parts {
		for _, name := range template.Variables(part) {
			if !seen[name] {
				seen[name] = true
				vars = append(vars, name)
			}
		}
	}
	if vars == nil {
		vars = domain.StringList{}
	}
	return vars
}
