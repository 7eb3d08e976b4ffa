package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"recibo/internal/domain"
)

// MockTaxSettingRepo is a mock implementation of port.TaxSettingRepository.
type MockTaxSettingRepo struct {
	mock.Mock
}

func (m *MockTaxSettingRepo) Create(ctx context.Context, setting *domain.TaxSetting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

func (m *MockTaxSettingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.TaxSetting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxSetting), args.Error(1)
}

func (m *MockTaxSettingRepo) List(ctx context.Context, region string, activeOnly bool) ([]domain.TaxSetting, error) {
	args := m.Called(ctx, region, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxSetting), args.Error(1)
}

func (m *MockTaxSettingRepo) Update(ctx context.Context, setting *domain.TaxSetting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

func (m *MockTaxSettingRepo) SetDefault(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaxSettingRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
