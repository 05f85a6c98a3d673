package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"vatledger/internal/domain"
)

// MockTenantSettingsRepo is a mock implementation of port.TenantSettingsRepository.
type MockTenantSettingsRepo struct {
	mock.Mock
}

func (m *MockTenantSettingsRepo) Get(ctx context.Context, tenantID uuid.UUID) (*domain.TenantSettings, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TenantSettings), args.Error(1)
}

func (m *MockTenantSettingsRepo) Upsert(ctx context.Context, settings *domain.TenantSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}
