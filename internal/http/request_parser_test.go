package http

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/report"
)

func TestParseWeekStart(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    time.Weekday
		wantErr bool
	}{
		{name: "default is sunday", raw: "", want: time.Sunday},
		{name: "numeric monday", raw: "1", want: time.Monday},
		{name: "numeric saturday", raw: "6", want: time.Saturday},
		{name: "name lowercase", raw: "monday", want: time.Monday},
		{name: "name mixed case", raw: "Wednesday", want: time.Wednesday},
		{name: "out of range", raw: "7", wantErr: true},
		{name: "negative", raw: "-1", wantErr: true},
		{name: "unknown name", raw: "someday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := url.Values{}
			if tt.raw != "" {
				q.Set("week_start", tt.raw)
			}
			got, err := parseWeekStart(q)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseWeekStart(%q) expected error", tt.raw)
				}
				if !errors.Is(err, errBadRequest) {
					t.Errorf("expected errBadRequest, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseWeekStart(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("parseWeekStart(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseMonthParams(t *testing.T) {
	now := time.Date(2026, time.August, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		query     url.Values
		wantYear  int
		wantMonth int
		wantErr   bool
	}{
		{name: "defaults to current month", query: url.Values{}, wantYear: 2026, wantMonth: 8},
		{name: "explicit year and month", query: url.Values{"year": {"2025"}, "month": {"2"}}, wantYear: 2025, wantMonth: 2},
		{name: "month only", query: url.Values{"month": {"12"}}, wantYear: 2026, wantMonth: 12},
		{name: "month zero", query: url.Values{"month": {"0"}}, wantErr: true},
		{name: "month thirteen", query: url.Values{"month": {"13"}}, wantErr: true},
		{name: "garbage year", query: url.Values{"year": {"abc"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, month, err := parseMonthParams(tt.query, now)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if year != tt.wantYear || month != tt.wantMonth {
				t.Errorf("got %d-%d, want %d-%d", year, month, tt.wantYear, tt.wantMonth)
			}
		})
	}
}

func TestParseReportQuery(t *testing.T) {
	q, err := parseReportQuery(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Period != report.PeriodMonth {
		t.Errorf("default period = %q, want %q", q.Period, report.PeriodMonth)
	}

	q, err = parseReportQuery(url.Values{
		"period": {"custom"},
		"start":  {"2026-01-01"},
		"end":    {"2026-03-31"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Period != report.PeriodCustom {
		t.Errorf("period = %q, want custom", q.Period)
	}
	if !q.Start.Equal(core.NewDate(2026, 1, 1)) || !q.End.Equal(core.NewDate(2026, 3, 31)) {
		t.Errorf("range = %s..%s", q.Start, q.End)
	}

	if _, err := parseReportQuery(url.Values{"start": {"01/02/2026"}}); err == nil {
		t.Error("expected error for malformed start date")
	}
}

func TestParseEntityID(t *testing.T) {
	if _, err := parseEntityID(url.Values{}); !errors.Is(err, core.ErrMissingEntity) {
		t.Errorf("missing entity_id: got %v, want ErrMissingEntity", err)
	}
	if _, err := parseEntityID(url.Values{"entity_id": {"0"}}); err == nil {
		t.Error("expected error for zero entity_id")
	}
	id, err := parseEntityID(url.Values{"entity_id": {"42"}})
	if err != nil || id != 42 {
		t.Errorf("got (%d, %v), want (42, nil)", id, err)
	}
}
