// Package vat computes the VAT embedded in VAT-inclusive prices and folds orders into
// VAT reports. Everything in this package is pure: callers pass in fully loaded orders
// and items and receive derived values back.
package vat

import (
	"fmt"

	"github.com/shopspring/decimal"

	"vatledger/internal/domain"
)

var (
	hundred = decimal.NewFromInt(100)

	// minorUnit is one penny, the reconciliation tolerance for money amounts.
	minorUnit = decimal.New(1, -2)
)

// Resolution is the effective tax treatment of an item or component.
type Resolution struct {
	Rate   decimal.Decimal `json:"rate"`
	Zero   bool            `json:"zero"`
	Exempt bool            `json:"exempt"`
}

// Label is the display form of the treatment: "Exempt", "0%" or e.g. "20%".
func (r Resolution) Label() string {
	if r.Exempt {
		return "Exempt"
	}
	return r.Rate.String() + "%"
}

// ResolveRate determines the effective VAT rate of an item or component.
// Exempt items and a 0% rate both resolve to zero VAT. An unset rate on a
// non-exempt item is an error: it must never silently become 0%.
func ResolveRate(rate decimal.NullDecimal, exempt bool) (Resolution, error) {
	if exempt {
		return Resolution{Rate: decimal.Zero, Zero: true, Exempt: true}, nil
	}
	if !rate.Valid {
		return Resolution{}, domain.ErrVATRateUnset
	}
	r := rate.Decimal
	if r.IsNegative() || r.GreaterThanOrEqual(hundred) {
		return Resolution{}, fmt.Errorf("%w: got %s", domain.ErrVATRateInvalid, r.String())
	}
	if r.IsZero() {
		return Resolution{Rate: decimal.Zero, Zero: true}, nil
	}
	return Resolution{Rate: r}, nil
}

// ResolveItemRate resolves the rate of a simple item.
func ResolveItemRate(item *domain.MenuItem) (Resolution, error) {
	return ResolveRate(item.VATRate, item.IsVATExempt)
}

// ResolveComponentRate resolves the rate of one part of a mixed item.
func ResolveComponentRate(c *domain.Component) (Resolution, error) {
	res, err := ResolveRate(c.VATRate, c.IsVATExempt)
	if err != nil {
		return Resolution{}, fmt.Errorf("component %q: %w", c.Label, err)
	}
	return res, nil
}
