package core

import (
	"errors"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "dot separator", input: "12.34", want: 1234},
		{name: "comma separator", input: "12,34", want: 1234},
		{name: "integer", input: "150", want: 15000},
		{name: "single fractional digit", input: "9.5", want: 950},
		{name: "third decimal rounds down", input: "12.344", want: 1234},
		{name: "third decimal rounds up", input: "12.345", want: 1235},
		{name: "leading fraction only", input: ".50", want: 50},
		{name: "empty", input: "", wantErr: true},
		{name: "negative", input: "-5.00", wantErr: true},
		{name: "explicit plus", input: "+5.00", wantErr: true},
		{name: "zero", input: "0", wantErr: true},
		{name: "letters", input: "12a.00", wantErr: true},
		{name: "double separator", input: "1.2.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimalToCents(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAmount) {
					t.Errorf("ParseDecimalToCents(%q) error = %v, want ErrInvalidAmount", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDecimalToCents(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDecimalToCents(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		name string
		num  int64
		den  int64
		want int64
	}{
		{name: "exact", num: 100, den: 4, want: 25},
		{name: "rounds up on half", num: 50001, den: 2, want: 25001},
		{name: "rounds down below half", num: 1000, den: 3, want: 333},
		{name: "rounds up above half", num: 2000, den: 3, want: 667},
		{name: "zero denominator", num: 10, den: 0, want: 0},
		{name: "zero numerator", num: 0, den: 5, want: 0},
		{name: "negative numerator", num: -50001, den: 2, want: -25001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundHalfUp(tt.num, tt.den); got != tt.want {
				t.Errorf("RoundHalfUp(%d, %d) = %d, want %d", tt.num, tt.den, got, tt.want)
			}
		})
	}
}
