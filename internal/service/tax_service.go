package service

import (
	"context"

	"github.com/google/uuid"

	"recibo/internal/domain"
	"recibo/internal/port"
)

// CreateTaxSettingInput is the DTO for tax setting creation.
type CreateTaxSettingInput struct {
	Name         string              `json:"name" binding:"required"`
	Region       string              `json:"region" binding:"required"`
	TaxType      domain.TaxType      `json:"tax_type" binding:"required"`
	Rate         float64             `json:"rate"`
	Description  string              `json:"description"`
	ApplicableTo domain.ApplicableTo `json:"applicable_to"`
	IsDefault    bool                `json:"is_default"`
}

// UpdateTaxSettingInput is the DTO for tax setting updates.
type UpdateTaxSettingInput struct {
	Name         *string              `json:"name"`
	Region       *string              `json:"region"`
	TaxType      *domain.TaxType      `json:"tax_type"`
	Rate         *float64             `json:"rate"`
	Description  *string              `json:"description"`
	ApplicableTo *domain.ApplicableTo `json:"applicable_to"`
}

// TaxService manages tax settings and the default-per-region invariant.
type TaxService interface {
	Create(ctx context.Context, input CreateTaxSettingInput) (*domain.TaxSetting, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.TaxSetting, error)
	List(ctx context.Context, region string, activeOnly bool) ([]domain.TaxSetting, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateTaxSettingInput) (*domain.TaxSetting, error)
	SetDefault(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type taxService struct {
	taxRepo port.TaxSettingRepository
}

// NewTaxService creates a new TaxService implementation.
func NewTaxService(taxRepo port.TaxSettingRepository) TaxService {
	return &taxService{taxRepo: taxRepo}
}

func (s *taxService) Create(ctx context.Context, input CreateTaxSettingInput) (*domain.TaxSetting, error) {
	if input.Rate < 0 || input.Rate > 100 {
		return nil, domain.ErrInvalidTaxRate
	}
	applicableTo := input.ApplicableTo
	if applicableTo == "" {
		applicableTo = domain.ApplicableToBoth
	}

	setting := &domain.TaxSetting{
		Name:         input.Name,
		Region:       input.Region,
		TaxType:      input.TaxType,
		Rate:         input.Rate,
		Description:  input.Description,
		ApplicableTo: applicableTo,
		IsActive:     true,
	}
	if err := s.taxRepo.Create(ctx, setting); err != nil {
		return nil, err
	}

	if input.IsDefault {
		if err := s.taxRepo.SetDefault(ctx, setting.ID); err != nil {
			return nil, err
		}
		setting.IsDefault = true
	}
	return setting, nil
}

func (s *taxService) Get(ctx context.Context, id uuid.UUID) (*domain.TaxSetting, error) {
	return s.taxRepo.GetByID(ctx, id)
}

func (s *taxService) List(ctx context.Context, region string, activeOnly bool) ([]domain.TaxSetting, error) {
	return s.taxRepo.List(ctx, region, activeOnly)
}

func (s *taxService) Update(ctx context.Context, id uuid.UUID, input UpdateTaxSettingInput) (*domain.TaxSetting, error) {
	setting, err := s.taxRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		setting.Name = *input.Name
	}
	if input.Region != nil {
		// A default only holds within its region; moving regions demotes
		// the setting so the target region's default is untouched.
		if setting.IsDefault && *input.Region != setting.Region {
			setting.IsDefault = false
		}
		setting.Region = *input.Region
	}
	if input.TaxType != nil {
		setting.TaxType = *input.TaxType
	}
	if input.Rate != nil {
		if *input.Rate < 0 || *input.Rate > 100 {
			return nil, domain.ErrInvalidTaxRate
		}
		setting.Rate = *input.Rate
	}
	if input.Description != nil {
		setting.Description = *input.Description
	}
	if input.ApplicableTo != nil {
		setting.ApplicableTo = *input.ApplicableTo
	}

	if err := s.taxRepo.Update(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *taxService) SetDefault(ctx context.Context, id uuid.UUID) error {
	return s.taxRepo.SetDefault(ctx, id)
}

func (s *taxService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.taxRepo.SoftDelete(ctx, id)
}
