package vat

import (
	"log"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"vatledger/internal/domain"
)

const (
	// UnknownItemName buckets order lines that carry no item name.
	UnknownItemName = "Unknown Item"
	// DefaultTopN is the length of each best-seller list.
	DefaultTopN = 20
)

// DateRange selects orders created in [Start, End). End is midnight after the last
// requested day, so the whole final day up to 23:59:59.999... is included.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds the range covering the calendar days from..to in loc.
func NewDateRange(from, to time.Time, loc *time.Location) (DateRange, error) {
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc)
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	if !end.After(start) {
		return DateRange{}, domain.ErrInvalidDateRange
	}
	return DateRange{Start: start, End: end}, nil
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// LastDay is the final calendar day included in the range.
func (r DateRange) LastDay() time.Time {
	return r.End.AddDate(0, 0, -1)
}

// ReportFilter selects which orders a report covers. A nil Range means all dates and an
// empty Source means all channels.
type ReportFilter struct {
	Range  *DateRange
	Source domain.OrderSource
	TopN   int
}

// FilterOrders applies the date filter first, then the source filter.
func FilterOrders(orders []domain.Order, f ReportFilter) []domain.Order {
	out := make([]domain.Order, 0, len(orders))
	for i := range orders {
		if f.Range != nil && !f.Range.Contains(orders[i].CreatedAt) {
			continue
		}
		if f.Source != "" && orders[i].Source != f.Source {
			continue
		}
		out = append(out, orders[i])
	}
	return out
}

// BuildReport folds orders into a VAT summary plus best-seller analytics.
// An order whose VAT cannot be resolved is logged and counted as zero VAT so the rest of
// the report still renders.
func BuildReport(orders []domain.Order, f ReportFilter) *domain.VATReport {
	kept := FilterOrders(orders, f)

	report := &domain.VATReport{
		Source:  f.Source.Label(),
		Summary: zeroSummary(),
		Orders:  make([]domain.ReportOrder, 0, len(kept)),
	}
	if f.Range != nil {
		report.From = f.Range.Start
		report.To = f.Range.LastDay()
	}

	for i := range kept {
		o := &kept[i]
		ov, err := ResolveOrder(o)
		if err != nil {
			log.Printf("vat.BuildReport: %v; counting order as zero VAT", err)
			report.UnresolvedOrders++
			ov = OrderVAT{OrderID: o.ID, Source: SourceRecomputed, Gross: o.Total, VAT: decimal.Zero, Net: o.Total}
		}
		addToSummary(&report.Summary, &ov)
		report.Orders = append(report.Orders, domain.ReportOrder{
			OrderID:       o.ID,
			Reference:     o.Reference,
			CreatedAt:     o.CreatedAt,
			Source:        o.Source,
			CustomerName:  o.CustomerName,
			CustomerEmail: o.CustomerEmail,
			CustomerPhone: o.CustomerPhone,
			Gross:         ov.Gross,
			VAT:           ov.VAT,
			Net:           ov.Net,
			VATSource:     string(ov.Source),
		})
	}

	topN := f.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}
	report.TopByQuantity, report.TopByRevenue = TopItems(kept, topN)
	return report
}

func zeroSummary() domain.VATSummary {
	return domain.VATSummary{
		TotalNet:           decimal.Zero,
		TotalVAT:           decimal.Zero,
		TotalGross:         decimal.Zero,
		StandardRateVAT:    decimal.Zero,
		ZeroRateVAT:        decimal.Zero,
		StandardRatedGross: decimal.Zero,
		ZeroRatedGross:     decimal.Zero,
	}
}

// addToSummary buckets by the order's VAT amount, not by any nominal item rate: any
// positive VAT counts as standard rate, zero VAT as zero rate.
func addToSummary(s *domain.VATSummary, ov *OrderVAT) {
	s.OrderCount++
	s.TotalGross = s.TotalGross.Add(ov.Gross)
	s.TotalVAT = s.TotalVAT.Add(ov.VAT)
	s.TotalNet = s.TotalNet.Add(ov.Net)
	if ov.VAT.IsPositive() {
		s.StandardRateVAT = s.StandardRateVAT.Add(ov.VAT)
		s.StandardRatedGross = s.StandardRatedGross.Add(ov.Gross)
		return
	}
	s.ZeroRateVAT = s.ZeroRateVAT.Add(ov.VAT)
	s.ZeroRatedGross = s.ZeroRatedGross.Add(ov.Gross)
}

type itemAccumulator struct {
	name     string
	quantity int
	revenue  decimal.Decimal
	orders   int
}

// TopItems groups order lines by exact item name and returns the top n by quantity and
// by revenue. Revenue is the realized line price. Ties keep first-seen order.
func TopItems(orders []domain.Order, n int) (byQuantity, byRevenue []domain.TopItem) {
	index := make(map[string]*itemAccumulator)
	var seen []*itemAccumulator

	for i := range orders {
		inOrder := make(map[string]bool)
		for j := range orders[i].Lines {
			line := &orders[i].Lines[j]
			name := line.ItemName
			if name == "" {
				name = UnknownItemName
			}
			acc, ok := index[name]
			if !ok {
				acc = &itemAccumulator{name: name, revenue: decimal.Zero}
				index[name] = acc
				seen = append(seen, acc)
			}
			acc.quantity += line.Quantity
			acc.revenue = acc.revenue.Add(line.GrossAmount)
			if !inOrder[name] {
				inOrder[name] = true
				acc.orders++
			}
		}
	}

	items := make([]domain.TopItem, len(seen))
	for i, acc := range seen {
		avg := decimal.Zero
		if acc.quantity > 0 {
			avg = acc.revenue.DivRound(decimal.NewFromInt(int64(acc.quantity)), 2)
		}
		items[i] = domain.TopItem{
			Name:         acc.name,
			Quantity:     acc.quantity,
			Revenue:      acc.revenue,
			AveragePrice: avg,
			OrderCount:   acc.orders,
		}
	}

	byQuantity = append([]domain.TopItem(nil), items...)
	sort.SliceStable(byQuantity, func(a, b int) bool {
		return byQuantity[a].Quantity > byQuantity[b].Quantity
	})
	byRevenue = append([]domain.TopItem(nil), items...)
	sort.SliceStable(byRevenue, func(a, b int) bool {
		return byRevenue[a].Revenue.GreaterThan(byRevenue[b].Revenue)
	})

	return truncate(byQuantity, n), truncate(byRevenue, n)
}

func truncate(items []domain.TopItem, n int) []domain.TopItem {
	if len(items) > n {
		return items[:n]
	}
	if items == nil {
		return []domain.TopItem{}
	}
	return items
}
