package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportFilters carries the parsed query of a VAT report request.
// From and To are calendar dates interpreted in the tenant's time zone; both nil means
// all dates.
type ReportFilters struct {
	From   *time.Time  `json:"from,omitempty"`
	To     *time.Time  `json:"to,omitempty"`
	Source OrderSource `json:"source,omitempty"`
	TopN   int         `json:"top_n"`
}

// VATSummary is the folded VAT position of a set of orders.
type VATSummary struct {
	OrderCount         int             `json:"order_count"`
	TotalNet           decimal.Decimal `json:"total_net"`
	TotalVAT           decimal.Decimal `json:"total_vat"`
	TotalGross         decimal.Decimal `json:"total_gross"`
	StandardRateVAT    decimal.Decimal `json:"standard_rate_vat"`
	ZeroRateVAT        decimal.Decimal `json:"zero_rate_vat"`
	StandardRatedGross decimal.Decimal `json:"standard_rated_gross"`
	ZeroRatedGross     decimal.Decimal `json:"zero_rated_gross"`
}

// TopItem is one row of the best-seller analytics.
type TopItem struct {
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	Revenue      decimal.Decimal `json:"revenue"`
	AveragePrice decimal.Decimal `json:"average_price"`
	OrderCount   int             `json:"order_count"`
}

// ReportOrder is the per-order VAT row carried into exports.
type ReportOrder struct {
	OrderID       uuid.UUID       `json:"order_id"`
	Reference     string          `json:"reference"`
	CreatedAt     time.Time       `json:"created_at"`
	Source        OrderSource     `json:"source"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	CustomerPhone string          `json:"customer_phone"`
	Gross         decimal.Decimal `json:"gross"`
	VAT           decimal.Decimal `json:"vat"`
	Net           decimal.Decimal `json:"net"`
	VATSource     string          `json:"vat_source"`
}

// VATReport is everything a report request returns; it is derived and never persisted.
type VATReport struct {
	From             time.Time     `json:"from"`
	To               time.Time     `json:"to"`
	Source           string        `json:"source"`
	Summary          VATSummary    `json:"summary"`
	TopByQuantity    []TopItem     `json:"top_by_quantity"`
	TopByRevenue     []TopItem     `json:"top_by_revenue"`
	Orders           []ReportOrder `json:"orders"`
	UnresolvedOrders int           `json:"unresolved_orders"`
}

// ReportArchive describes a report file stored in object storage.
type ReportArchive struct {
	Bucket      string    `json:"bucket"`
	Key         string    `json:"key"`
	Filename    string    `json:"filename"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
	OrderCount  int       `json:"order_count"`
	GeneratedAt time.Time `json:"generated_at"`
}
