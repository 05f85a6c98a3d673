package vat

import (
	"fmt"

	"github.com/shopspring/decimal"

	"vatledger/internal/domain"
)

// Treatment is the tax shape of a menu item: Simple or Mixed.
type Treatment interface {
	isTreatment()
}

// Simple items carry a single rate (or exemption) for the whole price.
type Simple struct {
	Rate   decimal.NullDecimal
	Exempt bool
}

// Mixed items are made of components that are each taxed at their own rate.
type Mixed struct {
	Components []domain.Component
}

func (Simple) isTreatment() {}
func (Mixed) isTreatment()  {}

// TreatmentOf converts the stored item row into its tax shape. An empty VAT type is
// read as simple, which is what items created before mixed support hold.
func TreatmentOf(item *domain.MenuItem) (Treatment, error) {
	switch item.VATType {
	case domain.VATTypeSimple, "":
		return Simple{Rate: item.VATRate, Exempt: item.IsVATExempt}, nil
	case domain.VATTypeMixed:
		return Mixed{Components: item.Components}, nil
	default:
		return nil, fmt.Errorf("%w: got %q", domain.ErrInvalidVATType, item.VATType)
	}
}
