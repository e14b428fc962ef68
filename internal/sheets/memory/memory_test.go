package memory

import (
	"context"
	"strings"
	"testing"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/report"
)

func TestStore_AppendTransaction(t *testing.T) {
	s := New()
	tx := core.Transaction{
		EntityID:    1,
		Type:        core.Income,
		Description: "Rent payment",
		Amount:      core.Money{Cents: 150000},
		DueDate:     core.NewDate(2026, 3, 10),
		Status:      core.StatusPending,
	}

	ref, err := s.AppendTransaction(context.Background(), tx)
	if err != nil {
		t.Fatalf("AppendTransaction() error = %v", err)
	}
	if !strings.HasPrefix(ref, "mem:tx:") {
		t.Errorf("row ref = %q, want mem:tx: prefix", ref)
	}
	if got := s.Transactions(); len(got) != 1 || got[0].Description != "Rent payment" {
		t.Errorf("stored transactions = %+v", got)
	}
}

func TestStore_AppendTransaction_Invalid(t *testing.T) {
	s := New()
	_, err := s.AppendTransaction(context.Background(), core.Transaction{})
	if err == nil {
		t.Fatal("AppendTransaction() should reject an invalid transaction")
	}
	if len(s.Transactions()) != 0 {
		t.Error("invalid transaction should not be stored")
	}
}

func TestStore_AppendRental(t *testing.T) {
	s := New()
	r := core.Rental{
		EntityID:       1,
		StartDate:      core.NewDate(2026, 3, 10),
		EndDate:        core.NewDate(2026, 3, 15),
		Source:         core.SourceAirbnb,
		TotalAmount:    core.Money{Cents: 80000},
		GuestName:      "Maria",
		NumberOfGuests: 2,
	}

	ref, err := s.AppendRental(context.Background(), r)
	if err != nil {
		t.Fatalf("AppendRental() error = %v", err)
	}
	if !strings.HasPrefix(ref, "mem:rental:") {
		t.Errorf("row ref = %q, want mem:rental: prefix", ref)
	}
	if got := s.Rentals(); len(got) != 1 || got[0].GuestName != "Maria" {
		t.Errorf("stored rentals = %+v", got)
	}
}

func TestStore_WriteCashFlow_Replaces(t *testing.T) {
	s := New()
	first := []report.CashFlowPoint{
		{Year: 2026, Month: 1, Income: core.Money{Cents: 100}, Expense: core.Money{Cents: 50}},
	}
	second := []report.CashFlowPoint{
		{Year: 2026, Month: 1, Income: core.Money{Cents: 200}, Expense: core.Money{Cents: 80}},
		{Year: 2026, Month: 2, Income: core.Money{Cents: 300}, Expense: core.Money{Cents: 90}},
	}

	if err := s.WriteCashFlow(context.Background(), first); err != nil {
		t.Fatalf("WriteCashFlow() error = %v", err)
	}
	if err := s.WriteCashFlow(context.Background(), second); err != nil {
		t.Fatalf("WriteCashFlow() error = %v", err)
	}

	got := s.CashFlow()
	if len(got) != 2 {
		t.Fatalf("stored points = %d, want 2", len(got))
	}
	if got[0].Income.Cents != 200 || got[1].Month != 2 {
		t.Errorf("stored series = %+v", got)
	}
}
