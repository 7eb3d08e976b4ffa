package mocks

import (
	"github.com/stretchr/testify/mock"

	"recibo/internal/domain"
)

// MockPDFRenderer is a mock implementation of port.PDFRenderer.
type MockPDFRenderer struct {
	mock.Mock
}

func (m *MockPDFRenderer) RenderReceipt(view *domain.ReceiptView) ([]byte, error) {
	args := m.Called(view)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockPDFRenderer) RenderInvoice(view *domain.InvoiceView) ([]byte, error) {
	args := m.Called(view)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
