package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"vatledger/internal/domain"
	"vatledger/internal/service"
)

// MockTenantSettingsService is a mock implementation of service.TenantSettingsService.
type MockTenantSettingsService struct {
	mock.Mock
}

func (m *MockTenantSettingsService) Get(ctx context.Context, tenantID uuid.UUID) (*domain.TenantSettings, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TenantSettings), args.Error(1)
}

func (m *MockTenantSettingsService) Update(ctx context.Context, tenantID uuid.UUID, input service.UpdateSettingsInput) (*domain.TenantSettings, error) {
	args := m.Called(ctx, tenantID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TenantSettings), args.Error(1)
}
