package google

import "testing"

func TestYearPrefixedName(t *testing.T) {
	tests := []struct {
		name string
		base string
		year int
		want string
	}{
		{"plain base", "Transactions", 2026, "2026 Transactions"},
		{"already prefixed", "2025 Transactions", 2026, "2025 Transactions"},
		{"empty base", "", 2026, ""},
		{"short base", "Rent", 2026, "2026 Rent"},
		{"numeric-ish base", "12345 rows", 2026, "2026 12345 rows"},
		{"whitespace trimmed", "  Reports ", 2026, "2026 Reports"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := yearPrefixedName(tt.base, tt.year); got != tt.want {
				t.Errorf("yearPrefixedName(%q, %d) = %q, want %q", tt.base, tt.year, got, tt.want)
			}
		})
	}
}
