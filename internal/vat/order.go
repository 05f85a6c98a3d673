package vat

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"vatledger/internal/domain"
)

// Source records where an order's VAT figure came from.
type Source string

const (
	// SourceTrusted: the VAT total attached upstream at checkout was adopted as-is.
	SourceTrusted Source = "trusted"
	// SourceRecomputed: no usable upstream figure, VAT was derived from the order lines.
	SourceRecomputed Source = "recomputed"
)

// LineResult is the VAT derived for one order line on the recompute path.
type LineResult struct {
	ItemName   string          `json:"item_name"`
	Quantity   int             `json:"quantity"`
	Gross      decimal.Decimal `json:"gross"`
	VAT        decimal.Decimal `json:"vat"`
	Rate       *Resolution     `json:"rate,omitempty"`
	Components []ComponentVAT  `json:"components,omitempty"`
}

// OrderVAT is the resolved VAT position of one order.
type OrderVAT struct {
	OrderID uuid.UUID       `json:"order_id"`
	Source  Source          `json:"source"`
	Gross   decimal.Decimal `json:"gross"`
	VAT     decimal.Decimal `json:"vat"`
	Net     decimal.Decimal `json:"net"`
	Lines   []LineResult    `json:"lines,omitempty"`
}

// TrustedVAT returns the upstream VAT total when it is present and within [0, total].
func TrustedVAT(o *domain.Order) (decimal.Decimal, bool) {
	if o.VATInfo == nil {
		return decimal.Zero, false
	}
	v := o.VATInfo.TotalVAT
	if v.IsNegative() || v.GreaterThan(o.Total) {
		log.Printf("vat.TrustedVAT: order %s carries VAT %s outside [0, %s], recomputing",
			o.ID, v.StringFixed(2), o.Total.StringFixed(2))
		return decimal.Zero, false
	}
	return v, true
}

// ResolveOrder produces the VAT figure for one order. The upstream checkout figure wins
// whenever it is usable because billing knows about discounts and fees this path cannot
// see; otherwise VAT is recomputed from the lines. Gross is always the order total, so
// untaxed extras such as delivery fees land in net.
func ResolveOrder(o *domain.Order) (OrderVAT, error) {
	if v, ok := TrustedVAT(o); ok {
		return OrderVAT{
			OrderID: o.ID,
			Source:  SourceTrusted,
			Gross:   o.Total,
			VAT:     v,
			Net:     o.Total.Sub(v),
		}, nil
	}

	total := decimal.Zero
	lines := make([]LineResult, 0, len(o.Lines))
	for i := range o.Lines {
		lr, err := resolveLine(&o.Lines[i])
		if err != nil {
			return OrderVAT{}, fmt.Errorf("order %s line %d: %w", o.ID, i, err)
		}
		total = total.Add(lr.VAT)
		lines = append(lines, lr)
	}

	v := RoundMoney(total)
	return OrderVAT{
		OrderID: o.ID,
		Source:  SourceRecomputed,
		Gross:   o.Total,
		VAT:     v,
		Net:     o.Total.Sub(v),
		Lines:   lines,
	}, nil
}

func resolveLine(line *domain.OrderLine) (LineResult, error) {
	if line.MenuItem == nil {
		return LineResult{}, domain.ErrLineItemUnresolvable
	}
	t, err := TreatmentOf(line.MenuItem)
	if err != nil {
		return LineResult{}, err
	}

	lr := LineResult{ItemName: line.ItemName, Quantity: line.Quantity, Gross: line.GrossAmount}
	switch tt := t.(type) {
	case Simple:
		res, err := ResolveRate(tt.Rate, tt.Exempt)
		if err != nil {
			return LineResult{}, err
		}
		lr.Rate = &res
		lr.VAT = LineVATFor(line.GrossAmount, res).VAT
	case Mixed:
		m, err := ApportionMixed(tt.Components, line.GrossAmount, line.Quantity)
		if err != nil {
			return LineResult{}, err
		}
		lr.VAT = m.TotalVAT
		lr.Components = m.Breakdown
	}
	return lr, nil
}
