package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
)

type fakeInvestmentStore struct {
	investments []core.Investment
	updates     map[int64]decimal.Decimal
}

func newFakeInvestmentStore(invs ...core.Investment) *fakeInvestmentStore {
	return &fakeInvestmentStore{investments: invs, updates: map[int64]decimal.Decimal{}}
}

func (f *fakeInvestmentStore) CreateInvestment(_ context.Context, inv core.Investment) (int64, error) {
	f.investments = append(f.investments, inv)
	return int64(len(f.investments)), nil
}

func (f *fakeInvestmentStore) ListInvestments(_ context.Context, _ int64) ([]core.Investment, error) {
	return f.investments, nil
}

func (f *fakeInvestmentStore) ListAllInvestments(_ context.Context) ([]core.Investment, error) {
	return f.investments, nil
}

func (f *fakeInvestmentStore) UpdateInvestmentPrice(_ context.Context, id int64, price decimal.Decimal, _ time.Time) error {
	f.updates[id] = price
	return nil
}

type fakePriceSource struct {
	prices map[string]decimal.Decimal
	err    error
}

func (f *fakePriceSource) FetchPrices(_ context.Context) (map[string]decimal.Decimal, error) {
	return f.prices, f.err
}

func TestInvestmentService_Create_NormalizesSymbol(t *testing.T) {
	store := newFakeInvestmentStore()
	svc := NewInvestmentService(store, nil)

	inv := core.Investment{
		EntityID:  1,
		Symbol:    " petr4 ",
		Name:      "Petrobras PN",
		Quantity:  decimal.NewFromInt(100),
		UnitPrice: decimal.RequireFromString("38.42"),
	}
	if _, err := svc.Create(context.Background(), inv); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if store.investments[0].Symbol != "PETR4" {
		t.Errorf("symbol = %q, want PETR4", store.investments[0].Symbol)
	}
}

func TestInvestmentService_RefreshPrices(t *testing.T) {
	store := newFakeInvestmentStore(
		core.Investment{ID: 1, EntityID: 1, Symbol: "PETR4", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.RequireFromString("38.42")},
		core.Investment{ID: 2, EntityID: 1, Symbol: "VALE3", Quantity: decimal.NewFromInt(5), UnitPrice: decimal.RequireFromString("61.07")},
		core.Investment{ID: 3, EntityID: 1, Symbol: "XPTO9", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
	)
	source := &fakePriceSource{prices: map[string]decimal.Decimal{
		"PETR4": decimal.RequireFromString("39.10"),
		"VALE3": decimal.RequireFromString("61.07"), // unchanged
	}}

	svc := NewInvestmentService(store, source)
	updated, err := svc.RefreshPrices(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("RefreshPrices() error = %v", err)
	}
	if updated != 1 {
		t.Errorf("updated = %d, want 1", updated)
	}
	if got := store.updates[1].String(); got != "39.1" {
		t.Errorf("PETR4 price = %s, want 39.1", got)
	}
	if _, ok := store.updates[2]; ok {
		t.Error("unchanged price should not trigger an update")
	}
	if _, ok := store.updates[3]; ok {
		t.Error("symbol missing from feed should not trigger an update")
	}
}

func TestInvestmentService_RefreshPrices_FeedError(t *testing.T) {
	store := newFakeInvestmentStore()
	source := &fakePriceSource{err: errors.New("feed unavailable")}

	svc := NewInvestmentService(store, source)
	if _, err := svc.RefreshPrices(context.Background(), time.Now()); err == nil {
		t.Error("RefreshPrices() should propagate feed errors")
	}
}

func TestInvestmentService_RefreshPrices_NoSource(t *testing.T) {
	svc := NewInvestmentService(newFakeInvestmentStore(), nil)
	if _, err := svc.RefreshPrices(context.Background(), time.Now()); err == nil {
		t.Error("RefreshPrices() should fail without a price source")
	}
}
