package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"recibo/internal/domain"
)

// MockEmailTemplateRepo is a mock implementation of port.EmailTemplateRepository.
type MockEmailTemplateRepo struct {
	mock.Mock
}

func (m *MockEmailTemplateRepo) Create(ctx context.Context, tmpl *domain.EmailTemplate) error {
	args := m.Called(ctx, tmpl)
	return args.Error(0)
}

func (m *MockEmailTemplateRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.EmailTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmailTemplate), args.Error(1)
}

func (m *MockEmailTemplateRepo) GetDefaultByType(ctx context.Context, tmplType domain.EmailTemplateType) (*domain.EmailTemplate, error) {
	args := m.Called(ctx, tmplType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmailTemplate), args.Error(1)
}

func (m *MockEmailTemplateRepo) List(ctx context.Context, tmplType domain.EmailTemplateType, activeOnly bool) ([]domain.EmailTemplate, error) {
	args := m.Called(ctx, tmplType, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EmailTemplate), args.Error(1)
}

func (m *MockEmailTemplateRepo) Update(ctx context.Context, tmpl *domain.EmailTemplate) error {
	args := m.Called(ctx, tmpl)
	return args.Error(0)
}

func (m *MockEmailTemplateRepo) SetDefault(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEmailTemplateRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
