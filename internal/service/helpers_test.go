package service_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"vatledger/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func rate(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(dec(s))
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func londonSettings(tenantID uuid.UUID) *domain.TenantSettings {
	return &domain.TenantSettings{TenantID: tenantID, CurrencySymbol: "£", Timezone: "Europe/London"}
}

func trustedOrder(total, vatTotal string, source domain.OrderSource, at time.Time, lines ...domain.OrderLine) domain.Order {
	return domain.Order{
		ID:        uuid.New(),
		Reference: "ORD-" + at.Format("0102150405"),
		Total:     dec(total),
		Source:    source,
		VATInfo:   &domain.VATInfo{TotalVAT: dec(vatTotal)},
		CreatedAt: at,
		Lines:     lines,
	}
}

func line(name string, qty int, gross string, item *domain.MenuItem) domain.OrderLine {
	return domain.OrderLine{ID: uuid.New(), ItemName: name, Quantity: qty, GrossAmount: dec(gross), MenuItem: item}
}
