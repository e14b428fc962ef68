// Package report implements the aggregation engine: it turns raw transaction
// and rental collections plus a period filter into the aggregate bundle the
// dashboard and exporters consume.
//
// Everything here is a pure function of its inputs. The only time dependency
// is the reference instant passed by the caller, which makes every output
// reproducible in tests.
package report

import (
	"time"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
)

// UncategorizedLabel is the sentinel bucket for expenses without a category.
const UncategorizedLabel = "Sem Categoria"

// uncategorizedColor is the chart color for the sentinel bucket.
const uncategorizedColor = "#9ca3af"

// lowOccupancyThreshold flags months worth a pricing review.
const lowOccupancyThreshold = 30

type (
	// CashFlowPoint is one month bucket of paid income versus paid expense.
	CashFlowPoint struct {
		Year    int
		Month   int
		Income  core.Money
		Expense core.Money
	}

	// CategorySlice is one slice of the expense distribution chart.
	CategorySlice struct {
		Name  string
		Value core.Money
		Color string
	}

	// CategoryStatus breaks a category's expenses down by payment status.
	CategoryStatus struct {
		Name    string
		Paid    core.Money
		Pending core.Money
		Overdue core.Money
		Total   core.Money
	}

	// OccupancyPoint is one month of the occupancy series.
	OccupancyPoint struct {
		Year         int
		Month        int
		TotalDays    int // days of the month inside the filter range
		OccupiedDays int
		Percent      int // 0-100, half-up rounded
	}

	// FinancialSummary aggregates rental revenue for the period.
	FinancialSummary struct {
		Count      int
		Total      core.Money
		Average    core.Money
		BySource   map[core.RentalSource]core.Money
		TaxesTotal core.Money
	}

	// GuestStats summarizes guest behavior for the period. Averages are
	// half-up rounded to two decimals.
	GuestStats struct {
		RecurringGuestCount int
		AvgGuests           float64
		AvgStayDays         float64
	}

	// SourceStats is per-source booking performance.
	SourceStats struct {
		Count     int
		Revenue   core.Money
		AvgTicket core.Money
	}

	// Forecast projects confirmed future business relative to the reference
	// instant handed to Build.
	Forecast struct {
		ConfirmedCount     int
		ConfirmedRevenue   core.Money
		LowOccupancyMonths []OccupancyPoint
	}

	// Report is the full aggregate bundle for one query.
	Report struct {
		Range                Range
		CashFlow             []CashFlowPoint
		CategoryDistribution []CategorySlice
		CategoryByStatus     []CategoryStatus
		Occupancy            []OccupancyPoint
		FinancialSummary     FinancialSummary
		GuestStats           GuestStats
		SourcePerformance    map[core.RentalSource]SourceStats
		Forecast             Forecast
	}
)

// Build resolves the query against now and computes every aggregate over the
// given records. Inputs are never mutated; empty inputs yield zero-valued
// aggregates, never an error.
func Build(
	txs []core.Transaction,
	rentals []core.Rental,
	categories []core.Category,
	q Query,
	now time.Time,
) (*Report, error) {
	rng, err := q.Resolve(now)
	if err != nil {
		return nil, err
	}

	occupancy := OccupancyByMonth(rentals, rng)

	rep := &Report{
		Range:                rng,
		CashFlow:             CashFlow(txs, rng),
		CategoryDistribution: CategoryDistribution(txs, categories, rng),
		CategoryByStatus:     CategoryStatusBreakdown(txs, categories, rng),
		Occupancy:            occupancy,
		FinancialSummary:     Summarize(rentals, rng),
		GuestStats:           GuestStatistics(rentals, rng),
		SourcePerformance:    SourcePerformance(rentals, rng),
		Forecast:             BuildForecast(rentals, occupancy, rng, now),
	}
	return rep, nil
}
