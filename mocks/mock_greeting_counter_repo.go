package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockGreetingCounterRepo is a mock implementation of port.GreetingCounterRepository.
type MockGreetingCounterRepo struct {
	mock.Mock
}

func (m *MockGreetingCounterRepo) Next(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}
