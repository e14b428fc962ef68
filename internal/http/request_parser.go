// Request parsing and validation helpers shared by the handlers.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/report"
)

// errBadRequest marks malformed request payloads and parameters.
var errBadRequest = errors.New("bad request")

const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	return nil
}

func parseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", errBadRequest, raw)
	}
	return id, nil
}

func parseEntityID(query url.Values) (int64, error) {
	raw := strings.TrimSpace(query.Get("entity_id"))
	if raw == "" {
		return 0, fmt.Errorf("missing entity_id: %w", core.ErrMissingEntity)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid entity_id %q", errBadRequest, raw)
	}
	return id, nil
}

// parseReportQuery reads period, start and end. Period defaults to month.
func parseReportQuery(query url.Values) (report.Query, error) {
	q := report.Query{Period: report.PeriodType(strings.TrimSpace(query.Get("period")))}
	if q.Period == "" {
		q.Period = report.PeriodMonth
	}

	if raw := strings.TrimSpace(query.Get("start")); raw != "" {
		d, err := core.ParseDate(raw)
		if err != nil {
			return report.Query{}, fmt.Errorf("start: %w", err)
		}
		q.Start = d
	}
	if raw := strings.TrimSpace(query.Get("end")); raw != "" {
		d, err := core.ParseDate(raw)
		if err != nil {
			return report.Query{}, fmt.Errorf("end: %w", err)
		}
		q.End = d
	}
	return q, nil
}

// parseMonthParams extracts year and month, defaulting to the current month.
func parseMonthParams(query url.Values, now time.Time) (year, month int, err error) {
	year, month = now.Year(), int(now.Month())

	if raw := strings.TrimSpace(query.Get("year")); raw != "" {
		year, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: invalid year %q", errBadRequest, raw)
		}
	}
	if raw := strings.TrimSpace(query.Get("month")); raw != "" {
		month, err = strconv.Atoi(raw)
		if err != nil || month < 1 || month > 12 {
			return 0, 0, fmt.Errorf("%w: invalid month %q", errBadRequest, raw)
		}
	}
	return year, month, nil
}

// parseWeekStart reads the first-day-of-week preference. Accepts a weekday
// name or a number with 0 as Sunday. Defaults to Sunday.
func parseWeekStart(query url.Values) (time.Weekday, error) {
	raw := strings.ToLower(strings.TrimSpace(query.Get("week_start")))
	if raw == "" {
		return time.Sunday, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		if n < 0 || n > 6 {
			return 0, fmt.Errorf("%w: week_start out of range: %d", errBadRequest, n)
		}
		return time.Weekday(n), nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == raw {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown week_start %q", errBadRequest, raw)
}

func parseDateField(name, raw string) (core.Date, error) {
	d, err := core.ParseDate(strings.TrimSpace(raw))
	if err != nil {
		return core.Date{}, fmt.Errorf("%s: %w", name, err)
	}
	return d, nil
}

func parseAmountField(name, raw string) (core.Money, error) {
	cents, err := core.ParseDecimalToCents(raw)
	if err != nil {
		return core.Money{}, fmt.Errorf("%s: %w", name, err)
	}
	return core.Money{Cents: cents}, nil
}
