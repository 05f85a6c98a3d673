package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"vatledger/internal/domain"
	"vatledger/internal/port"
)

type orderRepo struct {
	db *sqlx.DB
}

// NewOrderRepo creates a new PostgreSQL-backed OrderRepository.
func NewOrderRepo(db *sqlx.DB) port.OrderRepository {
	return &orderRepo{db: db}
}

const orderColumns = `o.id, o.tenant_id, o.reference, o.total, o.delivery_fee, o.order_source,
	o.vat_total, o.customer_name, o.customer_email, o.customer_phone, o.created_at`

// orderRow carries the nullable upstream VAT column alongside the order.
type orderRow struct {
	domain.Order
	VATTotal decimal.NullDecimal `db:"vat_total"`
}

func (r orderRow) toDomain() domain.Order {
	o := r.Order
	if r.VATTotal.Valid {
		o.VATInfo = &domain.VATInfo{TotalVAT: r.VATTotal.Decimal}
	}
	return o
}

// lineRow is an order line LEFT JOINed with its menu item; the mi_ columns are all NULL
// when the item was deleted or never linked.
type lineRow struct {
	domain.OrderLine
	ItemID         uuid.NullUUID       `db:"mi_id"`
	ItemTenantID   uuid.NullUUID       `db:"mi_tenant_id"`
	MenuName       sql.NullString      `db:"mi_name"`
	ItemPrice      decimal.NullDecimal `db:"mi_price"`
	ItemVATRate    decimal.NullDecimal `db:"mi_vat_rate"`
	ItemVATExempt  sql.NullBool        `db:"mi_is_vat_exempt"`
	ItemVATType    sql.NullString      `db:"mi_vat_type"`
	ItemComponents domain.Components   `db:"mi_components"`
}

func (r *lineRow) toDomain() domain.OrderLine {
	line := r.OrderLine
	if r.ItemID.Valid {
		line.MenuItem = &domain.MenuItem{
			ID:          r.ItemID.UUID,
			TenantID:    r.ItemTenantID.UUID,
			Name:        r.MenuName.String,
			Price:       r.ItemPrice.Decimal,
			VATRate:     r.ItemVATRate,
			IsVATExempt: r.ItemVATExempt.Bool,
			VATType:     domain.VATType(r.ItemVATType.String),
			Components:  r.ItemComponents,
		}
	}
	return line
}

const lineQuery = `SELECT ol.id, ol.order_id, ol.menu_item_id, ol.item_name, ol.gross_amount, ol.quantity,
		mi.id AS mi_id, mi.tenant_id AS mi_tenant_id, mi.name AS mi_name, mi.price AS mi_price,
		mi.vat_rate AS mi_vat_rate, mi.is_vat_exempt AS mi_is_vat_exempt,
		mi.vat_type AS mi_vat_type, mi.components AS mi_components
	FROM order_lines ol
	LEFT JOIN menu_items mi ON mi.id = ol.menu_item_id AND mi.tenant_id = $2
	WHERE ol.order_id = ANY($1::uuid[])
	ORDER BY ol.order_id, ol.position, ol.id`

func (r *orderRepo) ListForReport(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]domain.Order, error) {
	query := "SELECT " + orderColumns + " FROM orders o WHERE o.tenant_id = $1"
	args := []interface{}{tenantID}
	if !from.IsZero() {
		args = append(args, from)
		query += fmt.Sprintf(" AND o.created_at >= $%d", len(args))
	}
	if !to.IsZero() {
		args = append(args, to)
		query += fmt.Sprintf(" AND o.created_at < $%d", len(args))
	}
	query += " ORDER BY o.created_at, o.id"

	var rows []orderRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("orderRepo.ListForReport: %w", err)
	}

	orders := make([]domain.Order, len(rows))
	for i := range rows {
		orders[i] = rows[i].toDomain()
	}
	if err := r.attachLines(ctx, tenantID, orders); err != nil {
		return nil, fmt.Errorf("orderRepo.ListForReport: %w", err)
	}
	return orders, nil
}

func (r *orderRepo) GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*domain.Order, error) {
	var row orderRow
	err := r.db.GetContext(ctx, &row,
		"SELECT "+orderColumns+" FROM orders o WHERE o.id = $1 AND o.tenant_id = $2", orderID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("orderRepo.GetByID: %w", err)
	}

	orders := []domain.Order{row.toDomain()}
	if err := r.attachLines(ctx, tenantID, orders); err != nil {
		return nil, fmt.Errorf("orderRepo.GetByID: %w", err)
	}
	return &orders[0], nil
}

// attachLines loads the lines of all orders in one query and assigns them in place.
func (r *orderRepo) attachLines(ctx context.Context, tenantID uuid.UUID, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID.String()
	}

	var rows []lineRow
	if err := r.db.SelectContext(ctx, &rows, lineQuery, ids, tenantID); err != nil {
		return fmt.Errorf("loading order lines: %w", err)
	}

	byOrder := make(map[uuid.UUID][]domain.OrderLine, len(orders))
	for i := range rows {
		byOrder[rows[i].OrderID] = append(byOrder[rows[i].OrderID], rows[i].toDomain())
	}
	for i := range orders {
		orders[i].Lines = byOrder[orders[i].ID]
	}
	return nil
}
