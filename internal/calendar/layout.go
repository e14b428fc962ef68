// Package calendar implements the calendar layout engine: row assignment and
// per-day bar spans for date-ranged items (tasks and rentals) on a month grid.
//
// The engine is pure. It never touches the clock or a store; callers hand it
// already-fetched items and consume the resulting layout for rendering.
package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
)

// Item is a date-ranged element to place on the grid. Tasks and rentals are
// both mapped to this shape by the caller. Tag and Done only influence
// rendering color, never placement.
type Item struct {
	ID    int64
	Start core.Date // inclusive
	End   core.Date // inclusive; equals Start for single-day items
	Tag   string
	Done  bool
}

// Window is the visible date range of the grid.
type Window struct {
	Start     core.Date
	End       core.Date
	WeekStart time.Weekday
}

// MonthWindow returns the full grid window for a month: from the first day of
// the week containing the 1st through the last day of the week containing the
// final day of the month.
func MonthWindow(year, month int, weekStart time.Weekday) Window {
	first := core.NewDate(year, month, 1)
	last := first.MonthEnd()

	lead := weekdayOffset(first, weekStart)
	trail := 6 - weekdayOffset(last, weekStart)

	return Window{
		Start:     first.AddDays(-lead),
		End:       last.AddDays(trail),
		WeekStart: weekStart,
	}
}

// Segment is one rendered bar piece. Bars restart at every week boundary, so
// a multi-week item produces one segment per grid row it crosses. Days covered
// by a segment's trailing columns produce no output of their own.
type Segment struct {
	ItemID  int64
	Day     core.Date // first grid cell of the bar piece
	Row     int
	IsStart bool // this piece begins on the item's real start date
	IsEnd   bool // this piece reaches the item's real end date
	Columns int  // grid cells spanned, >= 1
}

// Layout maps items to display rows and bar segments.
type Layout struct {
	Rows     map[int64]int
	RowCount int
	Segments []Segment
}

// Compute assigns every item intersecting the window to a display row such
// that items sharing a calendar day never share a row, and derives the bar
// segments for each grid week the item crosses.
//
// Row assignment is first-fit over items sorted by (start ascending, duration
// descending, id ascending); the result is fully deterministic for a given
// input set. Items with an inverted date range are rejected outright.
func Compute(items []Item, w Window) (*Layout, error) {
	for _, it := range items {
		if it.End.Before(it.Start) {
			return nil, fmt.Errorf("item %d: %w", it.ID, core.ErrInvalidRange)
		}
	}
	if w.End.Before(w.Start) {
		return nil, fmt.Errorf("window: %w", core.ErrInvalidRange)
	}

	// Keep only items whose range touches the window. The originals are never
	// mutated; sorting happens on a local copy.
	visible := make([]Item, 0, len(items))
	for _, it := range items {
		if it.End.Before(w.Start) || it.Start.After(w.End) {
			continue
		}
		visible = append(visible, it)
	}

	sort.SliceStable(visible, func(i, j int) bool {
		a, b := visible[i], visible[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		da := a.Start.DaysUntil(a.End)
		db := b.Start.DaysUntil(b.End)
		if da != db {
			return da > db // longer items claim a row first
		}
		return a.ID < b.ID
	})

	layout := &Layout{Rows: make(map[int64]int, len(visible))}

	// rowEnds[r] holds the latest end date currently occupying row r.
	var rowEnds []core.Date
	for _, it := range visible {
		row := -1
		for r, end := range rowEnds {
			if end.Before(it.Start) {
				row = r
				break
			}
		}
		if row == -1 {
			row = len(rowEnds)
			rowEnds = append(rowEnds, it.End)
		} else if it.End.After(rowEnds[row]) {
			rowEnds[row] = it.End
		}
		layout.Rows[it.ID] = row
	}
	layout.RowCount = len(rowEnds)

	for _, it := range visible {
		layout.Segments = append(layout.Segments, segments(it, layout.Rows[it.ID], w)...)
	}

	return layout, nil
}

// segments splits one item's visible range into week-bounded bar pieces.
func segments(it Item, row int, w Window) []Segment {
	day := it.Start
	if day.Before(w.Start) {
		day = w.Start
	}
	last := it.End
	if last.After(w.End) {
		last = w.End
	}

	var segs []Segment
	for !day.After(last) {
		remainingInWeek := 6 - weekdayOffset(day, w.WeekStart)
		remainingItem := day.DaysUntil(last)
		cols := remainingInWeek
		if remainingItem < cols {
			cols = remainingItem
		}
		cols++

		segs = append(segs, Segment{
			ItemID:  it.ID,
			Day:     day,
			Row:     row,
			IsStart: day.Equal(it.Start),
			IsEnd:   day.AddDays(cols - 1).Equal(it.End),
			Columns: cols,
		})
		day = day.AddDays(cols)
	}
	return segs
}

// weekdayOffset returns the 0-6 column index of d in a week starting on weekStart.
func weekdayOffset(d core.Date, weekStart time.Weekday) int {
	return (int(d.Weekday()) - int(weekStart) + 7) % 7
}
