package report

import (
	"errors"
	"testing"
	"time"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
)

func TestQueryResolve(t *testing.T) {
	now := time.Date(2026, 3, 17, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		query     Query
		wantStart core.Date
		wantEnd   core.Date
	}{
		{
			name:      "month resolves to current month",
			query:     Query{Period: PeriodMonth},
			wantStart: core.NewDate(2026, 3, 1),
			wantEnd:   core.NewDate(2026, 3, 31),
		},
		{
			name:      "quarter spans two months back through month end",
			query:     Query{Period: PeriodQuarter},
			wantStart: core.NewDate(2026, 1, 1),
			wantEnd:   core.NewDate(2026, 3, 31),
		},
		{
			name:      "quarter rolls over year boundary",
			query:     Query{Period: PeriodQuarter},
			wantStart: core.NewDate(2025, 12, 1),
			wantEnd:   core.NewDate(2026, 2, 28),
		},
		{
			name:      "year resolves to calendar year",
			query:     Query{Period: PeriodYear},
			wantStart: core.NewDate(2026, 1, 1),
			wantEnd:   core.NewDate(2026, 12, 31),
		},
		{
			name: "custom with both bounds",
			query: Query{
				Period: PeriodCustom,
				Start:  core.NewDate(2026, 2, 10),
				End:    core.NewDate(2026, 3, 5),
			},
			wantStart: core.NewDate(2026, 2, 10),
			wantEnd:   core.NewDate(2026, 3, 5),
		},
		{
			// Documented fallback: a one-sided custom range degrades to "all".
			name:  "custom with only start is unbounded",
			query: Query{Period: PeriodCustom, Start: core.NewDate(2026, 2, 10)},
		},
		{
			name:  "all is unbounded",
			query: Query{Period: PeriodAll},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := now
			if tt.name == "quarter rolls over year boundary" {
				ref = time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)
			}
			rng, err := tt.query.Resolve(ref)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if !rng.Start.Equal(tt.wantStart) && !(rng.Start.IsZero() && tt.wantStart.IsZero()) {
				t.Errorf("range start = %v, want %v", rng.Start, tt.wantStart)
			}
			if !rng.End.Equal(tt.wantEnd) && !(rng.End.IsZero() && tt.wantEnd.IsZero()) {
				t.Errorf("range end = %v, want %v", rng.End, tt.wantEnd)
			}
		})
	}
}

func TestQueryResolve_InvertedCustomRange(t *testing.T) {
	q := Query{
		Period: PeriodCustom,
		Start:  core.NewDate(2026, 3, 10),
		End:    core.NewDate(2026, 3, 1),
	}
	_, err := q.Resolve(time.Now())
	if !errors.Is(err, core.ErrInvalidRange) {
		t.Errorf("Resolve() error = %v, want ErrInvalidRange", err)
	}
}

func TestQueryResolve_UnknownPeriod(t *testing.T) {
	_, err := Query{Period: "decade"}.Resolve(time.Now())
	if err == nil {
		t.Error("Resolve() expected error for unknown period type")
	}
}

func TestRangeContains(t *testing.T) {
	rng := Range{Start: core.NewDate(2026, 3, 1), End: core.NewDate(2026, 3, 31)}

	if !rng.Contains(core.NewDate(2026, 3, 1)) || !rng.Contains(core.NewDate(2026, 3, 31)) {
		t.Error("range bounds must be inclusive")
	}
	if rng.Contains(core.NewDate(2026, 2, 28)) || rng.Contains(core.NewDate(2026, 4, 1)) {
		t.Error("dates outside the range must be excluded")
	}

	open := Range{}
	if !open.Contains(core.NewDate(1990, 1, 1)) || !open.Contains(core.NewDate(2090, 1, 1)) {
		t.Error("unbounded range must contain everything")
	}
}
