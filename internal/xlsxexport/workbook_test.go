package xlsxexport

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"vatledger/internal/domain"
)

func sampleReport() *domain.VATReport {
	dec := decimal.RequireFromString
	return &domain.VATReport{
		From:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		To:     time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		Source: "online",
		Orders: []domain.ReportOrder{
			{
				OrderID:      uuid.New(),
				Reference:    "ORD-1001",
				CreatedAt:    time.Date(2024, 3, 5, 18, 30, 0, 0, time.UTC),
				Source:       domain.OrderSourceOnline,
				CustomerName: "Asha Patel",
				Gross:        dec("31.50"),
				VAT:          dec("4.83"),
				Net:          dec("26.67"),
				VATSource:    "recomputed",
			},
		},
		Summary: domain.VATSummary{
			OrderCount:      1,
			TotalGross:      dec("31.50"),
			TotalVAT:        dec("4.83"),
			TotalNet:        dec("26.67"),
			StandardRateVAT: dec("4.83"),
		},
		TopByQuantity: []domain.TopItem{
			{Name: "Lamb Karahi", Quantity: 1, Revenue: dec("29.00"), AveragePrice: dec("29.00"), OrderCount: 1},
		},
		TopByRevenue: []domain.TopItem{
			{Name: "Lamb Karahi", Quantity: 1, Revenue: dec("29.00"), AveragePrice: dec("29.00"), OrderCount: 1},
		},
	}
}

func open(t *testing.T, r *domain.VATReport) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, r, "£", time.UTC))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestWrite_Sheets(t *testing.T) {
	f := open(t, sampleReport())
	assert.Equal(t, []string{SheetOrders, SheetSummary, SheetTopItems}, f.GetSheetList())
}

func TestWrite_Orders(t *testing.T) {
	f := open(t, sampleReport())
	rows, err := f.GetRows(SheetOrders, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Order ID", rows[0][0])
	assert.Equal(t, "ORD-1001", rows[1][0])
	assert.Equal(t, "2024-03-05 18:30", rows[1][1])
	assert.Equal(t, "26.67", rows[1][2])
	assert.Equal(t, "4.83", rows[1][3])
	assert.Equal(t, "31.5", rows[1][4])
	assert.Equal(t, "recomputed", rows[1][9])
}

func TestWrite_Summary(t *testing.T) {
	f := open(t, sampleReport())

	v, err := f.GetCellValue(SheetSummary, "B6", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "4.83", v)

	label, err := f.GetCellValue(SheetSummary, "A4")
	require.NoError(t, err)
	assert.Equal(t, "Total Orders", label)

	from, err := f.GetCellValue(SheetSummary, "B2")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", from)
}

func TestWrite_TopItems(t *testing.T) {
	f := open(t, sampleReport())
	rows, err := f.GetRows(SheetTopItems, excelize.Options{RawCellValue: true})
	require.NoError(t, err)

	assert.Equal(t, "Top by Quantity", rows[0][0])
	assert.Equal(t, "Item", rows[1][0])
	assert.Equal(t, "Lamb Karahi", rows[2][0])
	assert.Equal(t, "Top by Revenue", rows[4][0])
}

func TestWrite_EmptyReport(t *testing.T) {
	f := open(t, &domain.VATReport{Source: "all"})
	rows, err := f.GetRows(SheetOrders)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
