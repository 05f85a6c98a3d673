package vat

import "github.com/shopspring/decimal"

// LineAmounts splits a VAT-inclusive amount into its VAT and net parts.
type LineAmounts struct {
	Gross decimal.Decimal `json:"gross"`
	VAT   decimal.Decimal `json:"vat"`
	Net   decimal.Decimal `json:"net"`
}

// LineVAT back-calculates the VAT already contained in gross at the given percentage rate:
// gross * rate / (100 + rate). Net is always derived as gross - VAT so the three figures
// can never drift apart.
func LineVAT(gross, rate decimal.Decimal) LineAmounts {
	if rate.IsZero() {
		return LineAmounts{Gross: gross, VAT: decimal.Zero, Net: gross}
	}
	v := gross.Mul(rate).Div(hundred.Add(rate))
	return LineAmounts{Gross: gross, VAT: v, Net: gross.Sub(v)}
}

// LineVATFor applies LineVAT with a resolved treatment.
func LineVATFor(gross decimal.Decimal, res Resolution) LineAmounts {
	if res.Zero {
		return LineAmounts{Gross: gross, VAT: decimal.Zero, Net: gross}
	}
	return LineVAT(gross, res.Rate)
}

// RoundMoney rounds to currency precision (two decimal places, half away from zero).
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatMoney renders an amount with a currency symbol prefix and two decimals, e.g. "£4.83".
func FormatMoney(symbol string, d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + symbol + d.Neg().StringFixed(2)
	}
	return symbol + d.StringFixed(2)
}
