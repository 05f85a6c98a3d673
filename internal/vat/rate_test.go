package vat

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vatledger/internal/domain"
)

func TestResolveRate(t *testing.T) {
	tests := []struct {
		name     string
		rate     decimal.NullDecimal
		exempt   bool
		wantErr  error
		wantZero bool
		wantRate string
	}{
		{name: "standard rate", rate: rate("20"), wantRate: "20"},
		{name: "reduced rate", rate: rate("5"), wantRate: "5"},
		{name: "explicit zero", rate: rate("0"), wantZero: true, wantRate: "0"},
		{name: "exempt ignores rate", rate: rate("20"), exempt: true, wantZero: true, wantRate: "0"},
		{name: "exempt without rate", exempt: true, wantZero: true, wantRate: "0"},
		{name: "unset rate", wantErr: domain.ErrVATRateUnset},
		{name: "negative rate", rate: rate("-1"), wantErr: domain.ErrVATRateInvalid},
		{name: "hundred percent", rate: rate("100"), wantErr: domain.ErrVATRateInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ResolveRate(tt.rate, tt.exempt)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantZero, res.Zero)
			assert.Equal(t, tt.exempt, res.Exempt)
			assert.True(t, res.Rate.Equal(d(tt.wantRate)), "rate = %s", res.Rate)
		})
	}
}

func TestResolveRate_UnsetNeverBecomesZero(t *testing.T) {
	item := &domain.MenuItem{Name: "Mystery", Price: d("5.00")}
	_, err := ResolveItemRate(item)
	assert.ErrorIs(t, err, domain.ErrVATRateUnset)
}

func TestResolveComponentRate_WrapsLabel(t *testing.T) {
	_, err := ResolveComponentRate(&domain.Component{Label: "Raita", GrossAmount: d("5.00")})
	require.ErrorIs(t, err, domain.ErrVATRateUnset)
	assert.Contains(t, err.Error(), `"Raita"`)
}

func TestResolution_Label(t *testing.T) {
	assert.Equal(t, "Exempt", Resolution{Exempt: true, Zero: true}.Label())
	assert.Equal(t, "0%", Resolution{Rate: decimal.Zero, Zero: true}.Label())
	assert.Equal(t, "20%", Resolution{Rate: d("20")}.Label())
	assert.Equal(t, "12.5%", Resolution{Rate: d("12.5")}.Label())
}
