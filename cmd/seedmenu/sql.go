package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"vatledger/internal/domain"
)

func writeBatch(b *strings.Builder, batch []domain.MenuItem) error {
	if len(batch) == 0 {
		return nil
	}

	b.WriteString("INSERT INTO menu_items (id, tenant_id, name, price, vat_rate, is_vat_exempt, vat_type, components) VALUES\n")
	for i := range batch {
		it := &batch[i]
		if i > 0 {
			b.WriteString(",\n")
		}
		comps, err := it.Components.Value()
		if err != nil {
			return fmt.Errorf("encode components of %q: %w", it.Name, err)
		}
		fmt.Fprintf(b, "  ('%s', '%s', '%s', %s, %s, %t, '%s', '%s')",
			it.ID, it.TenantID, escapeSQL(it.Name), it.Price.StringFixed(2), nullRate(it.VATRate),
			it.IsVATExempt, it.VATType, escapeSQL(string(comps.([]byte))))
	}
	b.WriteString("\nON CONFLICT (tenant_id, name) DO NOTHING;\n")
	return nil
}

func nullRate(r decimal.NullDecimal) string {
	if !r.Valid {
		return "NULL"
	}
	return r.Decimal.StringFixed(2)
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
