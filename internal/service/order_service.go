package service

import (
	"context"

	"github.com/google/uuid"

	"vatledger/internal/port"
	"vatledger/internal/vat"
)

// OrderService exposes the VAT position of individual orders.
type OrderService interface {
	VATBreakdown(ctx context.Context, tenantID, orderID uuid.UUID) (*vat.OrderVAT, error)
}

type orderService struct {
	repo port.OrderRepository
}

// NewOrderService creates a new OrderService implementation.
func NewOrderService(repo port.OrderRepository) OrderService {
	return &orderService{repo: repo}
}

func (s *orderService) VATBreakdown(ctx context.Context, tenantID, orderID uuid.UUID) (*vat.OrderVAT, error) {
	order, err := s.repo.GetByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	ov, err := vat.ResolveOrder(order)
	if err != nil {
		return nil, err
	}
	return &ov, nil
}
