package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"recibo/internal/domain"
	"recibo/internal/port"
)

// CreateCurrencyInput is the DTO for currency creation.
type CreateCurrencyInput struct {
	Code         string  `json:"code" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Symbol       string  `json:"symbol" binding:"required"`
	ExchangeRate float64 `json:"exchange_rate"`
}

// UpdateCurrencyInput is the DTO for currency updates.
type UpdateCurrencyInput struct {
	Name         *string  `json:"name"`
	Symbol       *string  `json:"symbol"`
	ExchangeRate *float64 `json:"exchange_rate"`
	IsActive     *bool    `json:"is_active"`
}

// CurrencyService manages supported billing currencies.
type CurrencyService interface {
	Create(ctx context.Context, input CreateCurrencyInput) (*domain.Currency, error)
	Get(ctx context.Context, code string) (*domain.Currency, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Currency, error)
	Update(ctx context.Context, code string, input UpdateCurrencyInput) (*domain.Currency, error)
	UpdateRate(ctx context.Context, code string, rate float64) (*domain.Currency, error)
}

type currencyService struct {
	currencyRepo port.CurrencyRepository
}

// NewCurrencyService creates a new CurrencyService implementation.
func NewCurrencyService(currencyRepo port.CurrencyRepository) CurrencyService {
	return &currencyService{currencyRepo: currencyRepo}
}

func normalizeCurrencyCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return "", domain.ErrInvalidCurrencyCode
	}
	for _, r := range code {
		if !unicode.IsLetter(r) {
			return "", domain.ErrInvalidCurrencyCode
		}
	}
	return code, nil
}

func (s *currencyService) Create(ctx context.Context, input CreateCurrencyInput) (*domain.Currency, error) {
	code, err := normalizeCurrencyCode(input.Code)
	if err != nil {
		return nil, err
	}
	rate := input.ExchangeRate
	if rate <= 0 {
		rate = 1
	}

	currency := &domain.Currency{
		Code:         code,
		Name:         input.Name,
		Symbol:       input.Symbol,
		ExchangeRate: rate,
		IsActive:     true,
	}
	if err := s.currencyRepo.Create(ctx, currency); err != nil {
		return nil, err
	}
	return currency, nil
}

func (s *currencyService) Get(ctx context.Context, code string) (*domain.Currency, error) {
	normalized, err := normalizeCurrencyCode(code)
	if err != nil {
		return nil, err
	}
	return s.currencyRepo.GetByCode(ctx, normalized)
}

func (s *currencyService) List(ctx context.Context, activeOnly bool) ([]domain.Currency, error) {
	return s.currencyRepo.List(ctx, activeOnly)
}

func (s *currencyService) Update(ctx context.Context, code string, input UpdateCurrencyInput) (*domain.Currency, error) {
	normalized, err := normalizeCurrencyCode(code)
	if err != nil {
		return nil, err
	}
	currency, err := s.currencyRepo.GetByCode(ctx, normalized)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		currency.Name = *input.Name
	}
	if input.Symbol != nil {
		currency.Symbol = *input.Symbol
	}
	if input.ExchangeRate != nil {
		if *input.ExchangeRate <= 0 {
			return nil, fmt.Errorf("%w: exchange rate must be positive", domain.ErrValidation)
		}
		currency.ExchangeRate = *input.ExchangeRate
	}
	if input.IsActive != nil {
		currency.IsActive = *input.IsActive
	}

	if err := s.currencyRepo.Update(ctx, currency); err != nil {
		return nil, err
	}
	return currency, nil
}

func (s *currencyService) UpdateRate(ctx context.Context, code string, rate float64) (*domain.Currency, error) {
	normalized, err := normalizeCurrencyCode(code)
	if err != nil {
		return nil, err
	}
	if rate <= 0 {
		return nil, fmt.Errorf("%w: exchange rate must be positive", domain.ErrValidation)
	}
	return s.currencyRepo.UpdateRate(ctx, normalized, rate)
}
