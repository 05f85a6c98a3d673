package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"vatledger/internal/domain"
	"vatledger/internal/vat"
)

const (
	sheetItems      = "Items"
	sheetComponents = "Components"
)

// Items columns: A=Name, B=Price, C=VAT Rate, D=Exempt, E=Type.
// Components columns: A=Item Name, B=Label, C=Gross, D=VAT Rate, E=Exempt.
// Row 1 of each sheet is a header.

// reject is a spreadsheet row that could not become a menu item.
type reject struct {
	row  int
	name string
	err  error
}

func (r reject) String() string {
	return fmt.Sprintf("%s row %d (%q): %v", sheetItems, r.row, r.name, r.err)
}

func readMenu(f *excelize.File, tenantID uuid.UUID) ([]domain.MenuItem, []reject, error) {
	rows, err := f.GetRows(sheetItems)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s sheet: %w", sheetItems, err)
	}

	components, err := readComponents(f)
	if err != nil {
		return nil, nil, err
	}

	seen := make(map[string]bool)
	var items []domain.MenuItem
	var rejects []reject
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		name := strings.TrimSpace(cellVal(row, 0))
		if name == "" {
			continue
		}
		if seen[strings.ToLower(name)] {
			rejects = append(rejects, reject{row: i + 1, name: name, err: domain.ErrDuplicateItem})
			continue
		}

		item, err := parseItem(row, tenantID)
		if err == nil {
			if item.VATType == domain.VATTypeMixed {
				item.Components = components[name]
			}
			err = vat.ValidateItem(item)
		}
		if err != nil {
			rejects = append(rejects, reject{row: i + 1, name: name, err: err})
			continue
		}
		seen[strings.ToLower(name)] = true
		items = append(items, *item)
	}
	return items, rejects, nil
}

func parseItem(row []string, tenantID uuid.UUID) (*domain.MenuItem, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(cellVal(row, 1)))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPrice, cellVal(row, 1))
	}
	rate, exempt, err := parseRate(cellVal(row, 2))
	if err != nil {
		return nil, err
	}

	vatType := domain.VATType(strings.ToLower(strings.TrimSpace(cellVal(row, 4))))
	if vatType == "" {
		vatType = domain.VATTypeSimple
	}
	if !domain.ValidVATTypes[vatType] {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidVATType, vatType)
	}

	return &domain.MenuItem{
		ID:          uuid.New(),
		TenantID:    tenantID,
		Name:        strings.TrimSpace(cellVal(row, 0)),
		Price:       price,
		VATRate:     rate,
		IsVATExempt: exempt || parseBool(cellVal(row, 3)),
		VATType:     vatType,
	}, nil
}

func readComponents(f *excelize.File) (map[string]domain.Components, error) {
	out := make(map[string]domain.Components)
	if idx, _ := f.GetSheetIndex(sheetComponents); idx < 0 {
		return out, nil
	}
	rows, err := f.GetRows(sheetComponents)
	if err != nil {
		return nil, fmt.Errorf("read %s sheet: %w", sheetComponents, err)
	}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		item := strings.TrimSpace(cellVal(row, 0))
		if item == "" {
			continue
		}
		gross, err := decimal.NewFromString(strings.TrimSpace(cellVal(row, 2)))
		if err != nil {
			return nil, fmt.Errorf("%s row %d: gross %q: %w", sheetComponents, i+1, cellVal(row, 2), err)
		}
		rate, exempt, err := parseRate(cellVal(row, 3))
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", sheetComponents, i+1, err)
		}
		out[item] = append(out[item], domain.Component{
			Label:       strings.TrimSpace(cellVal(row, 1)),
			GrossAmount: gross,
			VATRate:     rate,
			IsVATExempt: exempt || parseBool(cellVal(row, 4)),
		})
	}
	return out, nil
}

// parseRate reads "20", "20%" or "Exempt". A blank cell stays unset so validation can
// reject it; it is never read as zero.
func parseRate(s string) (decimal.NullDecimal, bool, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return decimal.NullDecimal{}, false, nil
	case "exempt":
		return decimal.NewNullDecimal(decimal.Zero), true, nil
	}
	d, err := decimal.NewFromString(strings.TrimSuffix(s, "%"))
	if err != nil {
		return decimal.NullDecimal{}, false, fmt.Errorf("%w: %q", domain.ErrVATRateInvalid, s)
	}
	return decimal.NewNullDecimal(d), false, nil
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1", "x":
		return true
	}
	return false
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
