package report

import (
	"sort"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
)

// CashFlow buckets paid transactions by calendar month over the range.
// Months are enumerated from range start to range end, so a month with no
// transactions still appears with zero values. Open range bounds fall back
// to the earliest/latest paid transaction in the data; with no data at all
// the series is empty.
func CashFlow(txs []core.Transaction, rng Range) []CashFlowPoint {
	sums := make(map[[2]int]*CashFlowPoint)
	var minDate, maxDate core.Date

	for _, tx := range txs {
		if tx.Status != core.StatusPaid {
			continue
		}
		d := tx.EffectiveDate()
		if !rng.Contains(d) {
			continue
		}
		if minDate.IsZero() || d.Before(minDate) {
			minDate = d
		}
		if maxDate.IsZero() || d.After(maxDate) {
			maxDate = d
		}
		key := [2]int{d.Year(), d.Month()}
		pt, ok := sums[key]
		if !ok {
			pt = &CashFlowPoint{Year: d.Year(), Month: d.Month()}
			sums[key] = pt
		}
		switch tx.Type {
		case core.Income:
			pt.Income = pt.Income.Add(tx.Amount)
		case core.Expense:
			pt.Expense = pt.Expense.Add(tx.Amount)
		}
	}

	first, last, ok := seriesBounds(rng, minDate, maxDate)
	if !ok {
		return nil
	}

	var series []CashFlowPoint
	for y, m := first.Year(), first.Month(); y < last.Year() || (y == last.Year() && m <= last.Month()); {
		if pt, ok := sums[[2]int{y, m}]; ok {
			series = append(series, *pt)
		} else {
			series = append(series, CashFlowPoint{Year: y, Month: m})
		}
		m++
		if m > 12 {
			m = 1
			y++
		}
	}
	return series
}

// CategoryDistribution groups in-range expense transactions by category,
// sorted by descending value. Expenses without a category land in the
// "Sem Categoria" sentinel bucket.
func CategoryDistribution(txs []core.Transaction, categories []core.Category, rng Range) []CategorySlice {
	byID := categoryIndex(categories)

	sums := make(map[int64]core.Money)
	for _, tx := range txs {
		if tx.Type != core.Expense || !rng.Contains(tx.EffectiveDate()) {
			continue
		}
		sums[tx.CategoryID] = sums[tx.CategoryID].Add(tx.Amount)
	}

	slices := make([]CategorySlice, 0, len(sums))
	for id, value := range sums {
		name, color := UncategorizedLabel, uncategorizedColor
		if cat, ok := byID[id]; ok {
			name, color = cat.Name, cat.Color
		}
		slices = append(slices, CategorySlice{Name: name, Value: value, Color: color})
	}

	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Value.Cents != slices[j].Value.Cents {
			return slices[i].Value.Cents > slices[j].Value.Cents
		}
		return slices[i].Name < slices[j].Name
	})
	return slices
}

// CategoryStatusBreakdown computes per-category paid/pending/overdue expense
// sums for the detail table and the spreadsheet export. Rows follow the same
// descending-total order as the distribution chart.
func CategoryStatusBreakdown(txs []core.Transaction, categories []core.Category, rng Range) []CategoryStatus {
	byID := categoryIndex(categories)

	rows := make(map[int64]*CategoryStatus)
	for _, tx := range txs {
		if tx.Type != core.Expense || !rng.Contains(tx.EffectiveDate()) {
			continue
		}
		row, ok := rows[tx.CategoryID]
		if !ok {
			name := UncategorizedLabel
			if cat, found := byID[tx.CategoryID]; found {
				name = cat.Name
			}
			row = &CategoryStatus{Name: name}
			rows[tx.CategoryID] = row
		}
		switch tx.Status {
		case core.StatusPaid:
			row.Paid = row.Paid.Add(tx.Amount)
		case core.StatusPending:
			row.Pending = row.Pending.Add(tx.Amount)
		case core.StatusOverdue:
			row.Overdue = row.Overdue.Add(tx.Amount)
		}
		row.Total = row.Total.Add(tx.Amount)
	}

	out := make([]CategoryStatus, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total.Cents != out[j].Total.Cents {
			return out[i].Total.Cents > out[j].Total.Cents
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func categoryIndex(categories []core.Category) map[int64]core.Category {
	byID := make(map[int64]core.Category, len(categories))
	for _, cat := range categories {
		byID[cat.ID] = cat
	}
	return byID
}

// seriesBounds picks the first and last month of an enumerated series: the
// range bound where one exists, the data extremum where the range is open.
func seriesBounds(rng Range, minDate, maxDate core.Date) (first, last core.Date, ok bool) {
	first = rng.Start
	if first.IsZero() {
		first = minDate
	}
	last = rng.End
	if last.IsZero() {
		last = maxDate
	}
	if first.IsZero() || last.IsZero() {
		return core.Date{}, core.Date{}, false
	}
	return first, last, true
}
