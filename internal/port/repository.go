package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"vatledger/internal/domain"
)

// OrderRepository defines the contract for reading completed orders.
// All query methods include tenantID to enforce tenant isolation at the data layer.
type OrderRepository interface {
	// ListForReport returns orders created in [from, to) with their lines and each line's
	// menu item populated. A zero from or to leaves that side unbounded.
	ListForReport(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]domain.Order, error)
	GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*domain.Order, error)
}

// MenuItemRepository defines the contract for menu item persistence.
type MenuItemRepository interface {
	Create(ctx context.Context, item *domain.MenuItem) error
	GetByID(ctx context.Context, tenantID, itemID uuid.UUID) (*domain.MenuItem, error)
	List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.MenuItem, int, error)
	Update(ctx context.Context, item *domain.MenuItem) error
	Delete(ctx context.Context, tenantID, itemID uuid.UUID) error
}

// TenantSettingsRepository defines the contract for per-tenant display settings.
type TenantSettingsRepository interface {
	// Get returns domain.ErrNotFound when the tenant has not saved any settings.
	Get(ctx context.Context, tenantID uuid.UUID) (*domain.TenantSettings, error)
	Upsert(ctx context.Context, settings *domain.TenantSettings) error
}

// GreetingCounterRepository hands out a per-tenant sequence used to rotate greetings.
type GreetingCounterRepository interface {
	// Next atomically increments the tenant's counter and returns the new value.
	Next(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
