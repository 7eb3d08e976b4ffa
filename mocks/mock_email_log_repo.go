package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"recibo/internal/domain"
)

// MockEmailLogRepo is a mock implementation of port.EmailLogRepository.
type MockEmailLogRepo struct {
	mock.Mock
}

func (m *MockEmailLogRepo) Create(ctx context.Context, log *domain.EmailLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockEmailLogRepo) List(ctx context.Context, offset, limit int) ([]domain.EmailLog, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.EmailLog), args.Int(1), args.Error(2)
}
