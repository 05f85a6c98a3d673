package vat

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"vatledger/internal/domain"
)

// ComponentVAT is the VAT carried by one component of a mixed line.
type ComponentVAT struct {
	Label string          `json:"label"`
	Rate  Resolution      `json:"rate"`
	Gross decimal.Decimal `json:"gross"`
	VAT   decimal.Decimal `json:"vat"`
}

// MixedResult is the apportioned VAT of a mixed line. Scaled is set when the sold price
// did not match the catalog component prices and the components were re-weighted.
type MixedResult struct {
	Gross     decimal.Decimal `json:"gross"`
	TotalVAT  decimal.Decimal `json:"total_vat"`
	Breakdown []ComponentVAT  `json:"breakdown"`
	Scaled    bool            `json:"scaled"`
}

// ByLabel sums the breakdown per component label, e.g. "Hot Food" -> 2.50.
func (r MixedResult) ByLabel() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(r.Breakdown))
	for i := range r.Breakdown {
		c := &r.Breakdown[i]
		out[c.Label] = out[c.Label].Add(c.VAT)
	}
	return out
}

// ApportionMixed taxes each component of a mixed item sold quantity times for lineGross.
// Components keep their own listed prices when those add up to the line (within a penny);
// otherwise each is scaled by lineGross / catalog total so the relative weights survive a
// discount or price change. A mismatch is logged, never fatal.
func ApportionMixed(components []domain.Component, lineGross decimal.Decimal, quantity int) (MixedResult, error) {
	if len(components) == 0 {
		return MixedResult{}, domain.ErrMixedItemNoComponents
	}
	if quantity < 1 {
		quantity = 1
	}
	qty := decimal.NewFromInt(int64(quantity))

	resolved := make([]Resolution, len(components))
	catalog := decimal.Zero
	for i := range components {
		res, err := ResolveComponentRate(&components[i])
		if err != nil {
			return MixedResult{}, err
		}
		resolved[i] = res
		catalog = catalog.Add(components[i].GrossAmount.Mul(qty))
	}

	scaled := catalog.Sub(lineGross).Abs().GreaterThan(minorUnit)
	if scaled {
		if catalog.IsZero() {
			return MixedResult{}, fmt.Errorf("%w: components total 0.00, line %s",
				domain.ErrMixedItemUnreconciled, lineGross.StringFixed(2))
		}
		log.Printf("vat.ApportionMixed: components total %s does not reconcile with line gross %s, scaling components",
			catalog.StringFixed(2), lineGross.StringFixed(2))
	}

	result := MixedResult{
		Gross:     decimal.Zero,
		TotalVAT:  decimal.Zero,
		Breakdown: make([]ComponentVAT, 0, len(components)),
		Scaled:    scaled,
	}
	for i := range components {
		gross := components[i].GrossAmount.Mul(qty)
		if scaled {
			gross = gross.Mul(lineGross).Div(catalog)
		}
		amounts := LineVATFor(gross, resolved[i])
		result.Breakdown = append(result.Breakdown, ComponentVAT{
			Label: components[i].Label,
			Rate:  resolved[i],
			Gross: amounts.Gross,
			VAT:   amounts.VAT,
		})
		result.Gross = result.Gross.Add(amounts.Gross)
		result.TotalVAT = result.TotalVAT.Add(amounts.VAT)
	}

	if result.Gross.Sub(lineGross).Abs().GreaterThan(minorUnit) {
		log.Printf("vat.ApportionMixed: apportioned gross %s still differs from line gross %s",
			result.Gross.StringFixed(2), lineGross.StringFixed(2))
	}
	return result, nil
}
