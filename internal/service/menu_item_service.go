package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"vatledger/internal/domain"
	"vatledger/internal/port"
	"vatledger/internal/vat"
)

// MenuItemInput is the DTO for creating a menu item.
type MenuItemInput struct {
	Name        string              `json:"name" binding:"required"`
	Price       decimal.Decimal     `json:"price"`
	VATRate     decimal.NullDecimal `json:"vat_rate"`
	IsVATExempt bool                `json:"is_vat_exempt"`
	VATType     domain.VATType      `json:"vat_type"`
	Components  []domain.Component  `json:"components"`
}

// UpdateMenuItemInput is the DTO for updating a menu item. Nil fields are left unchanged.
type UpdateMenuItemInput struct {
	Name        *string              `json:"name"`
	Price       *decimal.Decimal     `json:"price"`
	VATRate     *decimal.NullDecimal `json:"vat_rate"`
	IsVATExempt *bool                `json:"is_vat_exempt"`
	VATType     *domain.VATType      `json:"vat_type"`
	Components  *[]domain.Component  `json:"components"`
}

// MenuItemService manages the menu catalog. Every write passes the VAT save-time checks.
type MenuItemService interface {
	Create(ctx context.Context, tenantID uuid.UUID, input MenuItemInput) (*domain.MenuItem, error)
	GetByID(ctx context.Context, tenantID, itemID uuid.UUID) (*domain.MenuItem, error)
	List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.MenuItem, int, error)
	Update(ctx context.Context, tenantID, itemID uuid.UUID, input UpdateMenuItemInput) (*domain.MenuItem, error)
	Delete(ctx context.Context, tenantID, itemID uuid.UUID) error
}

type menuItemService struct {
	repo port.MenuItemRepository
}

// NewMenuItemService creates a new MenuItemService implementation.
func NewMenuItemService(repo port.MenuItemRepository) MenuItemService {
	return &menuItemService{repo: repo}
}

func (s *menuItemService) Create(ctx context.Context, tenantID uuid.UUID, input MenuItemInput) (*domain.MenuItem, error) {
	item := &domain.MenuItem{
		TenantID:    tenantID,
		Name:        input.Name,
		Price:       input.Price,
		VATRate:     input.VATRate,
		IsVATExempt: input.IsVATExempt,
		VATType:     input.VATType,
		Components:  input.Components,
	}
	if err := prepareItem(item); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *menuItemService) GetByID(ctx context.Context, tenantID, itemID uuid.UUID) (*domain.MenuItem, error) {
	return s.repo.GetByID(ctx, tenantID, itemID)
}

func (s *menuItemService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.MenuItem, int, error) {
	return s.repo.List(ctx, tenantID, offset, limit)
}

func (s *menuItemService) Update(ctx context.Context, tenantID, itemID uuid.UUID, input UpdateMenuItemInput) (*domain.MenuItem, error) {
	item, err := s.repo.GetByID(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Price != nil {
		item.Price = *input.Price
	}
	if input.VATRate != nil {
		item.VATRate = *input.VATRate
	}
	if input.IsVATExempt != nil {
		item.IsVATExempt = *input.IsVATExempt
	}
	if input.VATType != nil {
		item.VATType = *input.VATType
	}
	if input.Components != nil {
		item.Components = *input.Components
	}

	if err := prepareItem(item); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *menuItemService) Delete(ctx context.Context, tenantID, itemID uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, itemID)
}

// prepareItem normalizes an item and runs the VAT checks that must pass before it is stored.
func prepareItem(item *domain.MenuItem) error {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return domain.ErrInvalidItem
	}
	if item.VATType == "" {
		item.VATType = domain.VATTypeSimple
	}
	if !domain.ValidVATTypes[item.VATType] {
		return domain.ErrInvalidVATType
	}
	// A simple item keeps no components, and a mixed item's own rate is never read.
	if item.VATType == domain.VATTypeSimple {
		item.Components = nil
	}
	for i := range item.Components {
		item.Components[i].Label = strings.TrimSpace(item.Components[i].Label)
	}
	return vat.ValidateItem(item)
}
