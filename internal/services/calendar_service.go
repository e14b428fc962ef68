package services

import (
	"context"
	"fmt"
	"time"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/calendar"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
)

// Item tags on the calendar grid.
const (
	CalendarTagTask    = "task"
	CalendarTagRental  = "rental"
	CalendarTagBlocked = "blocked"
)

// CalendarStore is the storage surface the calendar service needs.
type CalendarStore interface {
	ListTasksInWindow(ctx context.Context, entityID int64, start, end core.Date) ([]core.Task, error)
	ListRentals(ctx context.Context, entityID int64) ([]core.Rental, error)
}

// MonthCalendar is the laid-out month grid handed to clients.
type MonthCalendar struct {
	Window calendar.Window
	Items  []calendar.Item
	Layout *calendar.Layout
}

// CalendarService merges tasks and bookings into a single month grid.
type CalendarService struct {
	store CalendarStore
}

func NewCalendarService(store CalendarStore) *CalendarService {
	return &CalendarService{store: store}
}

// Month returns the laid-out calendar for one month. Rental bars stop on
// the night before checkout, so two bookings sharing a turnover day never
// overlap on the grid.
func (s *CalendarService) Month(ctx context.Context, entityID int64, year, month int, weekStart time.Weekday) (*MonthCalendar, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month %d: %w", month, core.ErrInvalidDate)
	}

	w := calendar.MonthWindow(year, month, weekStart)

	tasks, err := s.store.ListTasksInWindow(ctx, entityID, w.Start, w.End)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	rentals, err := s.store.ListRentals(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("list rentals: %w", err)
	}

	items := make([]calendar.Item, 0, len(tasks)+len(rentals))
	for _, t := range tasks {
		items = append(items, calendar.Item{
			ID:    taskItemID(t.ID),
			Start: t.StartDate,
			End:   t.EndDate,
			Tag:   CalendarTagTask,
			Done:  t.Completed,
		})
	}
	for _, r := range rentals {
		end := r.EndDate
		if end.After(r.StartDate) {
			end = end.AddDays(-1)
		}
		tag := CalendarTagRental
		if r.Source == core.SourceBlocked {
			tag = CalendarTagBlocked
		}
		items = append(items, calendar.Item{
			ID:    rentalItemID(r.ID),
			Start: r.StartDate,
			End:   end,
			Tag:   tag,
		})
	}

	layout, err := calendar.Compute(items, w)
	if err != nil {
		return nil, fmt.Errorf("compute layout: %w", err)
	}

	return &MonthCalendar{Window: w, Items: items, Layout: layout}, nil
}

// Tasks and rentals share the grid, so their database IDs are interleaved
// into disjoint item ID spaces.
func taskItemID(id int64) int64   { return id * 2 }
func rentalItemID(id int64) int64 { return id*2 + 1 }

// SplitItemID recovers the record kind and database ID from a grid item ID.
func SplitItemID(itemID int64) (kind string, id int64) {
	if itemID%2 == 0 {
		return CalendarTagTask, itemID / 2
	}
	return CalendarTagRental, (itemID - 1) / 2
}
