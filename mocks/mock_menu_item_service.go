package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"vatledger/internal/domain"
	"vatledger/internal/service"
)

// MockMenuItemService is a mock implementation of service.MenuItemService.
type MockMenuItemService struct {
	mock.Mock
}

func (m *MockMenuItemService) Create(ctx context.Context, tenantID uuid.UUID, input service.MenuItemInput) (*domain.MenuItem, error) {
	args := m.Called(ctx, tenantID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MenuItem), args.Error(1)
}

func (m *MockMenuItemService) GetByID(ctx context.Context, tenantID, itemID uuid.UUID) (*domain.MenuItem, error) {
	args := m.Called(ctx, tenantID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MenuItem), args.Error(1)
}

func (m *MockMenuItemService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.MenuItem, int, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.MenuItem), args.Int(1), args.Error(2)
}

func (m *MockMenuItemService) Update(ctx context.Context, tenantID, itemID uuid.UUID, input service.UpdateMenuItemInput) (*domain.MenuItem, error) {
	args := m.Called(ctx, tenantID, itemID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MenuItem), args.Error(1)
}

func (m *MockMenuItemService) Delete(ctx context.Context, tenantID, itemID uuid.UUID) error {
	args := m.Called(ctx, tenantID, itemID)
	return args.Error(0)
}
