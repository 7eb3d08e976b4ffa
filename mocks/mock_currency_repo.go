package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"recibo/internal/domain"
)

// MockCurrencyRepo is a mock implementation of port.CurrencyRepository.
type MockCurrencyRepo struct {
	mock.Mock
}

func (m *MockCurrencyRepo) Create(ctx context.Context, currency *domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepo) GetByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepo) List(ctx context.Context, activeOnly bool) ([]domain.Currency, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepo) Update(ctx context.Context, currency *domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepo) UpdateRate(ctx context.Context, code string, rate float64) (*domain.Currency, error) {
	args := m.Called(ctx, code, rate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}
