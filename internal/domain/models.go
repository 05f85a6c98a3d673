package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TenantSettings holds the per-tenant display preferences used when rendering VAT figures.
type TenantSettings struct {
	TenantID       uuid.UUID `db:"tenant_id" json:"tenant_id"`
	CurrencySymbol string    `db:"currency_symbol" json:"currency_symbol"`
	Timezone       string    `db:"timezone" json:"timezone"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Location returns the tenant's time zone, falling back to UTC when it is unset or unknown.
func (s *TenantSettings) Location() *time.Location {
	if s == nil || s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// MenuItem is a sellable product definition with its VAT classification.
// VATRate is null until an administrator explicitly chooses a rate.
type MenuItem struct {
	ID          uuid.UUID           `db:"id" json:"id"`
	TenantID    uuid.UUID           `db:"tenant_id" json:"tenant_id"`
	Name        string              `db:"name" json:"name"`
	Price       decimal.Decimal     `db:"price" json:"price"`
	VATRate     decimal.NullDecimal `db:"vat_rate" json:"vat_rate"`
	IsVATExempt bool                `db:"is_vat_exempt" json:"is_vat_exempt"`
	VATType     VATType             `db:"vat_type" json:"vat_type"`
	Components  Components          `db:"components" json:"components,omitempty"`
	CreatedAt   time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time           `db:"updated_at" json:"updated_at"`
}

// Component is one independently taxed part of a mixed item, e.g. "Hot Food" or "Raita".
type Component struct {
	Label       string              `json:"label"`
	GrossAmount decimal.Decimal     `json:"gross_amount"`
	VATRate     decimal.NullDecimal `json:"vat_rate"`
	IsVATExempt bool                `json:"is_vat_exempt"`
}

// Components is stored as a JSONB array on the menu item row.
type Components []Component

// Value implements driver.Valuer.
func (c Components) Value() (driver.Value, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner.
func (c *Components) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*c = nil
		return nil
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("components: unsupported scan type %T", src)
	}
}

// VATInfo is the VAT figure an upstream billing process attached to an order at checkout.
type VATInfo struct {
	TotalVAT decimal.Decimal `json:"total_vat"`
}

// Order is a completed sale. Total is the authoritative gross amount the customer paid.
type Order struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	TenantID      uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	Reference     string          `db:"reference" json:"reference"`
	Total         decimal.Decimal `db:"total" json:"total"`
	DeliveryFee   decimal.Decimal `db:"delivery_fee" json:"delivery_fee"`
	Source        OrderSource     `db:"order_source" json:"order_source"`
	VATInfo       *VATInfo        `db:"-" json:"vat_info,omitempty"`
	CustomerName  string          `db:"customer_name" json:"customer_name"`
	CustomerEmail string          `db:"customer_email" json:"customer_email"`
	CustomerPhone string          `db:"customer_phone" json:"customer_phone"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	Lines         []OrderLine     `db:"-" json:"lines"`
}

// OrderLine is one priced line of an order. GrossAmount is the VAT-inclusive amount
// actually charged for the whole line (all units, after discounts).
type OrderLine struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	OrderID     uuid.UUID       `db:"order_id" json:"order_id"`
	MenuItemID  *uuid.UUID      `db:"menu_item_id" json:"menu_item_id"`
	ItemName    string          `db:"item_name" json:"item_name"`
	GrossAmount decimal.Decimal `db:"gross_amount" json:"gross_amount"`
	Quantity    int             `db:"quantity" json:"quantity"`
	MenuItem    *MenuItem       `db:"-" json:"menu_item,omitempty"`
}
