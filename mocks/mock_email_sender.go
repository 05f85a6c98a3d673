package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"vatledger/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendOrderConfirmation(ctx context.Context, msg *port.OrderConfirmation) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
