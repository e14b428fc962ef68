package report

import (
	"fmt"
	"time"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
)

const (
	PeriodMonth   PeriodType = "month"
	PeriodQuarter PeriodType = "quarter"
	PeriodYear    PeriodType = "year"
	PeriodCustom  PeriodType = "custom"
	PeriodAll     PeriodType = "all"
)

type (
	PeriodType string

	// Query selects the reporting period. Start/End are only read for
	// PeriodCustom; a zero date means the bound was not supplied.
	Query struct {
		Period PeriodType
		Start  core.Date
		End    core.Date
	}

	// Range is a resolved inclusive date range. A zero bound means unbounded
	// on that side.
	Range struct {
		Start core.Date
		End   core.Date
	}
)

// Resolve turns the query into a concrete range relative to now.
//
// A custom query missing either bound silently resolves to the fully
// unbounded range, same as PeriodAll. That mirrors the behavior the product
// has always had; callers wanting an error must check bounds themselves.
func (q Query) Resolve(now time.Time) (Range, error) {
	today := core.DateOf(now)

	switch q.Period {
	case PeriodMonth:
		return Range{Start: today.MonthStart(), End: today.MonthEnd()}, nil
	case PeriodQuarter:
		// Start of the month two months prior through end of current month.
		start := core.NewDate(today.Year(), today.Month()-2, 1)
		return Range{Start: start, End: today.MonthEnd()}, nil
	case PeriodYear:
		return Range{
			Start: core.NewDate(today.Year(), 1, 1),
			End:   core.NewDate(today.Year(), 12, 31),
		}, nil
	case PeriodCustom:
		if q.Start.IsZero() || q.End.IsZero() {
			return Range{}, nil
		}
		if q.End.Before(q.Start) {
			return Range{}, fmt.Errorf("custom period: %w", core.ErrInvalidRange)
		}
		return Range{Start: q.Start, End: q.End}, nil
	case PeriodAll, "":
		return Range{}, nil
	default:
		return Range{}, fmt.Errorf("unknown period type %q", q.Period)
	}
}

// Contains reports whether d falls inside the range, treating zero bounds
// as open.
func (r Range) Contains(d core.Date) bool {
	if !r.Start.IsZero() && d.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && d.After(r.End) {
		return false
	}
	return true
}

// Bounded reports whether both ends of the range are set.
func (r Range) Bounded() bool {
	return !r.Start.IsZero() && !r.End.IsZero()
}
