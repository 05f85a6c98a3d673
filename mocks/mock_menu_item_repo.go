package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"vatledger/internal/domain"
)

// MockMenuItemRepo is a mock implementation of port.MenuItemRepository.
type MockMenuItemRepo struct {
	mock.Mock
}

func (m *MockMenuItemRepo) Create(ctx context.Context, item *domain.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMenuItemRepo) GetByID(ctx context.Context, tenantID, itemID uuid.UUID) (*domain.MenuItem, error) {
	args := m.Called(ctx, tenantID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepo) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.MenuItem, int, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.MenuItem), args.Int(1), args.Error(2)
}

func (m *MockMenuItemRepo) Update(ctx context.Context, item *domain.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMenuItemRepo) Delete(ctx context.Context, tenantID, itemID uuid.UUID) error {
	args := m.Called(ctx, tenantID, itemID)
	return args.Error(0)
}
