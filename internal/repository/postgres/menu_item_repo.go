package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"vatledger/internal/domain"
	"vatledger/internal/port"
)

const uniqueViolation = "23505"

type menuItemRepo struct {
	db *sqlx.DB
}

// NewMenuItemRepo creates a new PostgreSQL-backed MenuItemRepository.
func NewMenuItemRepo(db *sqlx.DB) port.MenuItemRepository {
	return &menuItemRepo{db: db}
}

const menuItemColumns = `id, tenant_id, name, price, vat_rate, is_vat_exempt, vat_type, components,
	created_at, updated_at`

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (r *menuItemRepo) Create(ctx context.Context, item *domain.MenuItem) error {
	item.ID = uuid.New()
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	query := `INSERT INTO menu_items (` + menuItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.TenantID, item.Name, item.Price, item.VATRate, item.IsVATExempt,
		item.VATType, item.Components, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateItem
		}
		return fmt.Errorf("menuItemRepo.Create: %w", err)
	}
	return nil
}

func (r *menuItemRepo) GetByID(ctx context.Context, tenantID, itemID uuid.UUID) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := r.db.GetContext(ctx, &item,
		"SELECT "+menuItemColumns+" FROM menu_items WHERE id = $1 AND tenant_id = $2", itemID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("menuItemRepo.GetByID: %w", err)
	}
	return &item, nil
}

func (r *menuItemRepo) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.MenuItem, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM menu_items WHERE tenant_id = $1", tenantID)
	if err != nil {
		return nil, 0, fmt.Errorf("menuItemRepo.List count: %w", err)
	}

	var items []domain.MenuItem
	err = r.db.SelectContext(ctx, &items,
		"SELECT "+menuItemColumns+" FROM menu_items WHERE tenant_id = $1 ORDER BY name LIMIT $2 OFFSET $3",
		tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("menuItemRepo.List: %w", err)
	}
	return items, total, nil
}

func (r *menuItemRepo) Update(ctx context.Context, item *domain.MenuItem) error {
	item.UpdatedAt = time.Now().UTC()
	query := `UPDATE menu_items SET name = $1, price = $2, vat_rate = $3, is_vat_exempt = $4,
		vat_type = $5, components = $6, updated_at = $7
		WHERE id = $8 AND tenant_id = $9`
	result, err := r.db.ExecContext(ctx, query,
		item.Name, item.Price, item.VATRate, item.IsVATExempt, item.VATType, item.Components,
		item.UpdatedAt, item.ID, item.TenantID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateItem
		}
		return fmt.Errorf("menuItemRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *menuItemRepo) Delete(ctx context.Context, tenantID, itemID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM menu_items WHERE id = $1 AND tenant_id = $2", itemID, tenantID)
	if err != nil {
		return fmt.Errorf("menuItemRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}
