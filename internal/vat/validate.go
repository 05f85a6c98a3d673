package vat

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"vatledger/internal/domain"
)

// ValidateItem is the save-time gate for menu items. A simple item must carry an
// explicitly chosen rate (0 is a valid choice, unset is not). A mixed item needs at least
// one component, every component needs a chosen rate, and the component prices must add
// up to the item price within a penny.
func ValidateItem(item *domain.MenuItem) error {
	if item.Price.IsNegative() {
		return domain.ErrInvalidPrice
	}
	t, err := TreatmentOf(item)
	if err != nil {
		return err
	}

	switch tt := t.(type) {
	case Simple:
		if !tt.Rate.Valid {
			return domain.ErrVATRateUnset
		}
		if _, err := ResolveRate(tt.Rate, tt.Exempt); err != nil {
			return err
		}
		// ResolveRate skips the range check for exempt items.
		if _, err := ResolveRate(tt.Rate, false); err != nil {
			return err
		}
	case Mixed:
		if len(tt.Components) == 0 {
			return domain.ErrMixedItemNoComponents
		}
		sum := decimal.Zero
		for i := range tt.Components {
			c := &tt.Components[i]
			if strings.TrimSpace(c.Label) == "" {
				return fmt.Errorf("%w: component %d has no label", domain.ErrMixedItemNoComponents, i+1)
			}
			if c.GrossAmount.IsNegative() {
				return fmt.Errorf("component %q: %w", c.Label, domain.ErrInvalidPrice)
			}
			if !c.VATRate.Valid {
				return fmt.Errorf("component %q: %w", c.Label, domain.ErrVATRateUnset)
			}
			if _, err := ResolveRate(c.VATRate, false); err != nil {
				return fmt.Errorf("component %q: %w", c.Label, err)
			}
			sum = sum.Add(c.GrossAmount)
		}
		if sum.Sub(item.Price).Abs().GreaterThan(minorUnit) {
			return fmt.Errorf("%w: components total %s, item price %s",
				domain.ErrMixedItemUnreconciled, sum.StringFixed(2), item.Price.StringFixed(2))
		}
	}
	return nil
}
