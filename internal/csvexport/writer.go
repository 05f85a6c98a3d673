package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"vatledger/internal/domain"
	"vatledger/internal/vat"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the per-order header row.
var columns = []string{
	"Order ID",
	"Date",
	"Net",
	"VAT",
	"Gross",
	"Source",
	"Customer Name",
	"Customer Email",
	"Customer Phone",
}

// dateLayout is how order timestamps are rendered, in the tenant's zone.
const dateLayout = "2006-01-02 15:04"

// Writer wraps csv.Writer for exporting VAT reports as CSV.
type Writer struct {
	csv    *csv.Writer
	symbol string
	loc    *time.Location
}

// NewWriter creates a Writer that writes CSV to w. Money is prefixed with symbol and
// order dates are shown in loc.
func NewWriter(w io.Writer, symbol string, loc *time.Location) *Writer {
	if loc == nil {
		loc = time.UTC
	}
	return &Writer{csv: csv.NewWriter(w), symbol: symbol, loc: loc}
}

// WriteHeader writes the per-order header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteOrders writes one row per report order.
func (w *Writer) WriteOrders(orders []domain.ReportOrder) error {
	for i := range orders {
		if err := w.csv.Write(w.orderToRow(&orders[i])); err != nil {
			return err
		}
	}
	return nil
}

// WriteSummary writes a blank separator row followed by the SUMMARY block.
func (w *Writer) WriteSummary(s *domain.VATSummary) error {
	rows := [][]string{
		{},
		{"SUMMARY"},
		{"Total Orders", strconv.Itoa(s.OrderCount)},
		{"Total Net", w.money(s.TotalNet)},
		{"Total VAT", w.money(s.TotalVAT)},
		{"Total Gross", w.money(s.TotalGross)},
	}
	for _, row := range rows {
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteReport writes the header, every order, and the summary block.
func (w *Writer) WriteReport(r *domain.VATReport) error {
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteOrders(r.Orders); err != nil {
		return err
	}
	return w.WriteSummary(&r.Summary)
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func (w *Writer) orderToRow(o *domain.ReportOrder) []string {
	id := o.Reference
	if id == "" {
		id = o.OrderID.String()
	}
	return []string{
		id,
		o.CreatedAt.In(w.loc).Format(dateLayout),
		w.money(o.Net),
		w.money(o.VAT),
		w.money(o.Gross),
		string(o.Source),
		o.CustomerName,
		o.CustomerEmail,
		o.CustomerPhone,
	}
}

func (w *Writer) money(v decimal.Decimal) string {
	return vat.FormatMoney(w.symbol, v)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a label for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns the export filename for a report scope.
// Format: vat_report_{source}_{YYYY-MM-DD}.{ext}
func BuildFilename(sourceLabel string, start time.Time, ext string) string {
	label := SanitizeFilename(sourceLabel)
	if label == "" {
		label = "all"
	}
	return fmt.Sprintf("vat_report_%s_%s.%s", label, start.Format("2006-01-02"), ext)
}
