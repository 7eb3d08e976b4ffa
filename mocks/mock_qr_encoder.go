package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockQREncoder is a mock implementation of port.QREncoder.
type MockQREncoder struct {
	mock.Mock
}

func (m *MockQREncoder) EncodePNG(url string) ([]byte, error) {
	args := m.Called(url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockQREncoder) EncodeDataURL(url string) (string, error) {
	args := m.Called(url)
	return args.String(0), args.Error(1)
}
