package services

import (
	"context"
	"testing"
	"time"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/cache"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/report"
)

type fakeReportStore struct {
	transactions []core.Transaction
	rentals      []core.Rental
	categories   []core.Category
	listCalls    int
}

func (f *fakeReportStore) ListTransactions(_ context.Context, _ int64) ([]core.Transaction, error) {
	f.listCalls++
	return f.transactions, nil
}

func (f *fakeReportStore) ListRentals(_ context.Context, _ int64) ([]core.Rental, error) {
	return f.rentals, nil
}

func (f *fakeReportStore) ListCategories(_ context.Context, _ int64) ([]core.Category, error) {
	return f.categories, nil
}

func TestReportService_Build(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	store := &fakeReportStore{
		transactions: []core.Transaction{
			{
				ID: 1, EntityID: 1, Type: core.Income, Description: "Rent",
				Amount: core.Money{Cents: 10000}, DueDate: core.NewDate(2026, 3, 5),
				PaymentDate: core.NewDate(2026, 3, 5), Status: core.StatusPaid,
			},
		},
	}

	svc := NewReportService(store, cache.NewLRUCache[*report.Report](10, time.Minute))
	rep, err := svc.Build(context.Background(), 1, report.Query{Period: report.PeriodMonth}, now)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(rep.CashFlow) != 1 || rep.CashFlow[0].Income.Cents != 10000 {
		t.Errorf("cash flow = %+v", rep.CashFlow)
	}
}

func TestReportService_Build_CacheHit(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	store := &fakeReportStore{}
	svc := NewReportService(store, cache.NewLRUCache[*report.Report](10, time.Minute))

	q := report.Query{Period: report.PeriodMonth}
	if _, err := svc.Build(context.Background(), 1, q, now); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Build(context.Background(), 1, q, now); err != nil {
		t.Fatal(err)
	}
	if store.listCalls != 1 {
		t.Errorf("store queried %d times, want 1 (second build served from cache)", store.listCalls)
	}
}

func TestReportService_Build_NoCache(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	store := &fakeReportStore{}
	svc := NewReportService(store, nil)

	q := report.Query{Period: report.PeriodMonth}
	if _, err := svc.Build(context.Background(), 1, q, now); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Build(context.Background(), 1, q, now); err != nil {
		t.Fatal(err)
	}
	if store.listCalls != 2 {
		t.Errorf("store queried %d times, want 2 without a cache", store.listCalls)
	}
}

func TestReportService_InvalidateEntity(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	store := &fakeReportStore{}
	svc := NewReportService(store, cache.NewLRUCache[*report.Report](10, time.Minute))

	q := report.Query{Period: report.PeriodMonth}
	if _, err := svc.Build(context.Background(), 1, q, now); err != nil {
		t.Fatal(err)
	}

	svc.InvalidateEntity(1)

	if _, err := svc.Build(context.Background(), 1, q, now); err != nil {
		t.Fatal(err)
	}
	if store.listCalls != 2 {
		t.Errorf("store queried %d times, want 2 after invalidation", store.listCalls)
	}
}
