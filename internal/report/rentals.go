package report

import (
	"strings"
	"time"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
)

// OccupancyByMonth computes the occupied-day percentage for every month
// overlapping the range. A day counts as occupied when any rental's
// half-open [checkIn, checkOut) interval covers it; the checkout day is
// free again. Partial-range months use only the overlapping day count as
// the denominator. BLOCKED rentals occupy days like any booking: the unit
// is not available either way.
func OccupancyByMonth(rentals []core.Rental, rng Range) []OccupancyPoint {
	var minDate, maxDate core.Date
	for _, r := range rentals {
		lastNight := r.EndDate.AddDays(-1)
		if lastNight.Before(r.StartDate) {
			lastNight = r.StartDate
		}
		if minDate.IsZero() || r.StartDate.Before(minDate) {
			minDate = r.StartDate
		}
		if maxDate.IsZero() || lastNight.After(maxDate) {
			maxDate = lastNight
		}
	}

	first, last, ok := seriesBounds(rng, minDate, maxDate)
	if !ok {
		return nil
	}

	var series []OccupancyPoint
	for y, m := first.Year(), first.Month(); y < last.Year() || (y == last.Year() && m <= last.Month()); {
		series = append(series, occupancyOfMonth(rentals, rng, y, m))
		m++
		if m > 12 {
			m = 1
			y++
		}
	}
	return series
}

func occupancyOfMonth(rentals []core.Rental, rng Range, year, month int) OccupancyPoint {
	pt := OccupancyPoint{Year: year, Month: month}

	monthStart := core.NewDate(year, month, 1)
	monthEnd := monthStart.MonthEnd()

	for d := monthStart; !d.After(monthEnd); d = d.AddDays(1) {
		if !rng.Contains(d) {
			continue
		}
		pt.TotalDays++
		for _, r := range rentals {
			if !d.Before(r.StartDate) && d.Before(r.EndDate) {
				pt.OccupiedDays++
				break
			}
			// Single-day blocks have StartDate == EndDate; the half-open
			// interval would be empty, but the day is still taken.
			if r.StartDate.Equal(r.EndDate) && d.Equal(r.StartDate) {
				pt.OccupiedDays++
				break
			}
		}
	}

	pt.Percent = int(core.RoundHalfUp(int64(pt.OccupiedDays)*100, int64(pt.TotalDays)))
	return pt
}

// Summarize aggregates rental revenue for the period. A rental belongs to the
// period containing its check-in date. BLOCKED entries carry no revenue and
// are left out entirely.
func Summarize(rentals []core.Rental, rng Range) FinancialSummary {
	sum := FinancialSummary{BySource: make(map[core.RentalSource]core.Money)}

	for _, r := range rentals {
		if r.Source == core.SourceBlocked || !rng.Contains(r.StartDate) {
			continue
		}
		sum.Count++
		sum.Total = sum.Total.Add(r.TotalAmount)
		sum.BySource[r.Source] = sum.BySource[r.Source].Add(r.TotalAmount)
		sum.TaxesTotal = sum.TaxesTotal.Add(r.ExtraFeeAmount)
	}

	sum.Average = core.Money{Cents: core.RoundHalfUp(sum.Total.Cents, int64(sum.Count))}
	return sum
}

// GuestStatistics computes guest behavior metrics over the period's bookings.
// Averages are half-up rounded to two decimals; an empty period yields zeros.
func GuestStatistics(rentals []core.Rental, rng Range) GuestStats {
	var stats GuestStats

	count := 0
	guestSeen := make(map[string]int)
	var guestSum, nightSum int64

	for _, r := range rentals {
		if r.Source == core.SourceBlocked || !rng.Contains(r.StartDate) {
			continue
		}
		count++

		if name := strings.TrimSpace(r.GuestName); name != "" {
			guestSeen[name]++
		}

		guests := r.NumberOfGuests
		if guests == 0 {
			guests = 1
		}
		guestSum += int64(guests)
		nightSum += int64(r.Nights())
	}

	for _, n := range guestSeen {
		if n > 1 {
			stats.RecurringGuestCount++
		}
	}
	stats.AvgGuests = float64(core.RoundHalfUp(guestSum*100, int64(count))) / 100
	stats.AvgStayDays = float64(core.RoundHalfUp(nightSum*100, int64(count))) / 100
	return stats
}

// SourcePerformance computes per-source booking counts, revenue and average
// ticket for the period.
func SourcePerformance(rentals []core.Rental, rng Range) map[core.RentalSource]SourceStats {
	perf := make(map[core.RentalSource]SourceStats)

	for _, r := range rentals {
		if r.Source == core.SourceBlocked || !rng.Contains(r.StartDate) {
			continue
		}
		s := perf[r.Source]
		s.Count++
		s.Revenue = s.Revenue.Add(r.TotalAmount)
		perf[r.Source] = s
	}

	for source, s := range perf {
		s.AvgTicket = core.Money{Cents: core.RoundHalfUp(s.Revenue.Cents, int64(s.Count))}
		perf[source] = s
	}
	return perf
}

// BuildForecast counts confirmed future bookings relative to now and flags
// the months of the occupancy series running under the low-occupancy
// threshold.
func BuildForecast(rentals []core.Rental, occupancy []OccupancyPoint, rng Range, now time.Time) Forecast {
	today := core.DateOf(now)
	var fc Forecast

	for _, r := range rentals {
		if r.Source == core.SourceBlocked || !rng.Contains(r.StartDate) {
			continue
		}
		if r.StartDate.Before(today) {
			continue
		}
		fc.ConfirmedCount++
		fc.ConfirmedRevenue = fc.ConfirmedRevenue.Add(r.TotalAmount)
	}

	for _, pt := range occupancy {
		if pt.TotalDays > 0 && pt.Percent < lowOccupancyThreshold {
			fc.LowOccupancyMonths = append(fc.LowOccupancyMonths, pt)
		}
	}
	return fc
}
