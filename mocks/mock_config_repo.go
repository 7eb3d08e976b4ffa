package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"recibo/internal/domain"
)

// MockConfigRepo is a mock implementation of port.ConfigRepository.
type MockConfigRepo struct {
	mock.Mock
}

func (m *MockConfigRepo) Get(ctx context.Context, key string) (*domain.ConfigEntry, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConfigEntry), args.Error(1)
}

func (m *MockConfigRepo) Upsert(ctx context.Context, key string, value json.RawMessage) (*domain.ConfigEntry, error) {
	args := m.Called(ctx, key, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConfigEntry), args.Error(1)
}
