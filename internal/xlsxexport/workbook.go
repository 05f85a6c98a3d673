// Package xlsxexport renders a VAT report as an Excel workbook with Orders, Summary and
// Top Items sheets.
package xlsxexport

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"vatledger/internal/domain"
)

const (
	SheetOrders   = "Orders"
	SheetSummary  = "Summary"
	SheetTopItems = "Top Items"
)

var orderColumns = []interface{}{
	"Order ID", "Date", "Net", "VAT", "Gross", "Source",
	"Customer Name", "Customer Email", "Customer Phone", "VAT Basis",
}

// Write renders r into a new workbook and writes it to w. Money cells are numeric with a
// currency number format so spreadsheets can total them.
func Write(w io.Writer, r *domain.VATReport, symbol string, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	b := &builder{f: f}
	if err := b.styles(symbol); err != nil {
		return err
	}

	if err := f.SetSheetName(f.GetSheetName(0), SheetOrders); err != nil {
		return fmt.Errorf("xlsxexport: rename sheet: %w", err)
	}
	if err := b.ordersSheet(r.Orders, loc); err != nil {
		return fmt.Errorf("xlsxexport: orders sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("xlsxexport: new summary sheet: %w", err)
	}
	if err := b.summarySheet(r); err != nil {
		return fmt.Errorf("xlsxexport: summary sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetTopItems); err != nil {
		return fmt.Errorf("xlsxexport: new top items sheet: %w", err)
	}
	if err := b.topItemsSheet(r); err != nil {
		return fmt.Errorf("xlsxexport: top items sheet: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsxexport: write workbook: %w", err)
	}
	return nil
}

type builder struct {
	f      *excelize.File
	header int
	money  int
}

func (b *builder) styles(symbol string) error {
	var err error
	b.header, err = b.f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsxexport: header style: %w", err)
	}
	numFmt := fmt.Sprintf(`"%s"#,##0.00`, symbol)
	b.money, err = b.f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return fmt.Errorf("xlsxexport: money style: %w", err)
	}
	return nil
}

func (b *builder) row(sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return b.f.SetSheetRow(sheet, cell, &values)
}

func (b *builder) styleRange(sheet string, fromCol, fromRow, toCol, toRow, style int) error {
	from, err := excelize.CoordinatesToCellName(fromCol, fromRow)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(toCol, toRow)
	if err != nil {
		return err
	}
	return b.f.SetCellStyle(sheet, from, to, style)
}

func (b *builder) ordersSheet(orders []domain.ReportOrder, loc *time.Location) error {
	if err := b.row(SheetOrders, 1, orderColumns); err != nil {
		return err
	}
	if err := b.styleRange(SheetOrders, 1, 1, len(orderColumns), 1, b.header); err != nil {
		return err
	}
	for i := range orders {
		o := &orders[i]
		id := o.Reference
		if id == "" {
			id = o.OrderID.String()
		}
		values := []interface{}{
			id,
			o.CreatedAt.In(loc).Format("2006-01-02 15:04"),
			money(o.Net),
			money(o.VAT),
			money(o.Gross),
			string(o.Source),
			o.CustomerName,
			o.CustomerEmail,
			o.CustomerPhone,
			o.VATSource,
		}
		if err := b.row(SheetOrders, i+2, values); err != nil {
			return err
		}
	}
	if len(orders) > 0 {
		if err := b.styleRange(SheetOrders, 3, 2, 5, len(orders)+1, b.money); err != nil {
			return err
		}
	}
	return b.f.SetColWidth(SheetOrders, "A", "J", 18)
}

func (b *builder) summarySheet(r *domain.VATReport) error {
	s := &r.Summary
	rows := [][]interface{}{
		{"Source", r.Source},
		{"From", dateOrBlank(r.From)},
		{"To", dateOrBlank(r.To)},
		{"Total Orders", s.OrderCount},
		{"Total Net", money(s.TotalNet)},
		{"Total VAT", money(s.TotalVAT)},
		{"Total Gross", money(s.TotalGross)},
		{"Standard Rate VAT", money(s.StandardRateVAT)},
		{"Zero Rate VAT", money(s.ZeroRateVAT)},
		{"Standard Rated Sales", money(s.StandardRatedGross)},
		{"Zero Rated Sales", money(s.ZeroRatedGross)},
		{"Unresolved Orders", r.UnresolvedOrders},
	}
	for i, values := range rows {
		if err := b.row(SheetSummary, i+1, values); err != nil {
			return err
		}
	}
	if err := b.styleRange(SheetSummary, 1, 1, 1, len(rows), b.header); err != nil {
		return err
	}
	if err := b.styleRange(SheetSummary, 2, 5, 2, 11, b.money); err != nil {
		return err
	}
	return b.f.SetColWidth(SheetSummary, "A", "B", 22)
}

func (b *builder) topItemsSheet(r *domain.VATReport) error {
	row := 1
	sections := []struct {
		title string
		items []domain.TopItem
	}{
		{"Top by Quantity", r.TopByQuantity},
		{"Top by Revenue", r.TopByRevenue},
	}
	for _, sec := range sections {
		if err := b.row(SheetTopItems, row, []interface{}{sec.title}); err != nil {
			return err
		}
		header := []interface{}{"Item", "Quantity", "Revenue", "Average Price", "Orders"}
		if err := b.row(SheetTopItems, row+1, header); err != nil {
			return err
		}
		if err := b.styleRange(SheetTopItems, 1, row, len(header), row+1, b.header); err != nil {
			return err
		}
		row += 2
		for i := range sec.items {
			it := &sec.items[i]
			values := []interface{}{it.Name, it.Quantity, money(it.Revenue), money(it.AveragePrice), it.OrderCount}
			if err := b.row(SheetTopItems, row, values); err != nil {
				return err
			}
			if err := b.styleRange(SheetTopItems, 3, row, 4, row, b.money); err != nil {
				return err
			}
			row++
		}
		row++
	}
	return b.f.SetColWidth(SheetTopItems, "A", "E", 20)
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func dateOrBlank(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
