package vat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vatledger/internal/domain"
)

func TestValidateItem(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.MenuItem)
		wantErr error
	}{
		{name: "simple standard rate", mutate: func(*domain.MenuItem) {}},
		{name: "simple explicit zero", mutate: func(i *domain.MenuItem) { i.VATRate = rate("0") }},
		{name: "simple exempt with rate", mutate: func(i *domain.MenuItem) { i.IsVATExempt = true }},
		{name: "empty type reads as simple", mutate: func(i *domain.MenuItem) { i.VATType = "" }},
		{
			name:    "simple unset rate",
			mutate:  func(i *domain.MenuItem) { i.VATRate.Valid = false },
			wantErr: domain.ErrVATRateUnset,
		},
		{
			name: "exempt still needs an explicit rate",
			mutate: func(i *domain.MenuItem) {
				i.IsVATExempt = true
				i.VATRate.Valid = false
			},
			wantErr: domain.ErrVATRateUnset,
		},
		{
			name:    "rate out of range",
			mutate:  func(i *domain.MenuItem) { i.VATRate = rate("120") },
			wantErr: domain.ErrVATRateInvalid,
		},
		{
			name:    "negative price",
			mutate:  func(i *domain.MenuItem) { i.Price = d("-1") },
			wantErr: domain.ErrInvalidPrice,
		},
		{
			name:    "unknown type",
			mutate:  func(i *domain.MenuItem) { i.VATType = "compound" },
			wantErr: domain.ErrInvalidVATType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := simpleItem("Lamb Karahi", "29.00", "20")
			tt.mutate(item)
			err := ValidateItem(item)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateItem_Mixed(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateItem(biryaniItem()))
	})

	t.Run("no components", func(t *testing.T) {
		item := biryaniItem()
		item.Components = nil
		assert.ErrorIs(t, ValidateItem(item), domain.ErrMixedItemNoComponents)
	})

	t.Run("component missing rate", func(t *testing.T) {
		item := biryaniItem()
		item.Components[1].VATRate.Valid = false
		err := ValidateItem(item)
		assert.ErrorIs(t, err, domain.ErrVATRateUnset)
		assert.Contains(t, err.Error(), "Cold Food")
	})

	t.Run("components do not add up", func(t *testing.T) {
		item := biryaniItem()
		item.Price = d("22.00")
		assert.ErrorIs(t, ValidateItem(item), domain.ErrMixedItemUnreconciled)
	})

	t.Run("within a penny", func(t *testing.T) {
		item := biryaniItem()
		item.Price = d("20.01")
		assert.NoError(t, ValidateItem(item))
	})

	t.Run("unlabelled component", func(t *testing.T) {
		item := biryaniItem()
		item.Components[0].Label = " "
		assert.ErrorIs(t, ValidateItem(item), domain.ErrMixedItemNoComponents)
	})
}
