package http

import (
	"net/http"
	"time"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/calendar"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/services"
)

type calendarItemDTO struct {
	ID       int64  `json:"id"`
	Kind     string `json:"kind"`
	RecordID int64  `json:"record_id"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Tag      string `json:"tag"`
	Done     bool   `json:"done"`
}

type calendarSegmentDTO struct {
	ItemID  int64  `json:"item_id"`
	Day     string `json:"day"`
	Row     int    `json:"row"`
	IsStart bool   `json:"is_start"`
	IsEnd   bool   `json:"is_end"`
	Columns int    `json:"columns"`
}

type calendarResponse struct {
	Start     string               `json:"start"`
	End       string               `json:"end"`
	WeekStart string               `json:"week_start"`
	RowCount  int                  `json:"row_count"`
	Items     []calendarItemDTO    `json:"items"`
	Segments  []calendarSegmentDTO `json:"segments"`
}

func toCalendarResponse(window calendar.Window, items []calendar.Item, layout *calendar.Layout) calendarResponse {
	resp := calendarResponse{
		Start:     window.Start.String(),
		End:       window.End.String(),
		WeekStart: window.WeekStart.String(),
		RowCount:  layout.RowCount,
		Items:     make([]calendarItemDTO, 0, len(items)),
		Segments:  make([]calendarSegmentDTO, 0, len(layout.Segments)),
	}
	for _, item := range items {
		kind, recordID := services.SplitItemID(item.ID)
		resp.Items = append(resp.Items, calendarItemDTO{
			ID:       item.ID,
			Kind:     kind,
			RecordID: recordID,
			Start:    item.Start.String(),
			End:      item.End.String(),
			Tag:      item.Tag,
			Done:     item.Done,
		})
	}
	for _, seg := range layout.Segments {
		resp.Segments = append(resp.Segments, calendarSegmentDTO{
			ItemID:  seg.ItemID,
			Day:     seg.Day.String(),
			Row:     seg.Row,
			IsStart: seg.IsStart,
			IsEnd:   seg.IsEnd,
			Columns: seg.Columns,
		})
	}
	return resp
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	entityID, err := parseEntityID(query)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	year, month, err := parseMonthParams(query, time.Now())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	weekStart, err := parseWeekStart(query)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	cal, err := s.deps.Calendars.Month(r.Context(), entityID, year, month, weekStart)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCalendarResponse(cal.Window, cal.Items, cal.Layout))
}
