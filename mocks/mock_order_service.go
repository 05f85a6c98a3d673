package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"vatledger/internal/vat"
)

// MockOrderService is a mock implementation of service.OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) VATBreakdown(ctx context.Context, tenantID, orderID uuid.UUID) (*vat.OrderVAT, error) {
	args := m.Called(ctx, tenantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vat.OrderVAT), args.Error(1)
}

// MockConfirmationService is a mock implementation of service.ConfirmationService.
type MockConfirmationService struct {
	mock.Mock
}

func (m *MockConfirmationService) SendOrderConfirmation(ctx context.Context, tenantID, orderID uuid.UUID) error {
	args := m.Called(ctx, tenantID, orderID)
	return args.Error(0)
}
