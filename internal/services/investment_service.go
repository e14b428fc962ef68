package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
)

// PriceSource provides current prices by symbol. Satisfied by
// *quotes.Client.
type PriceSource interface {
	FetchPrices(ctx context.Context) (map[string]decimal.Decimal, error)
}

// InvestmentStore is the storage surface the investment service needs.
type InvestmentStore interface {
	CreateInvestment(ctx context.Context, inv core.Investment) (int64, error)
	ListInvestments(ctx context.Context, entityID int64) ([]core.Investment, error)
	ListAllInvestments(ctx context.Context) ([]core.Investment, error)
	UpdateInvestmentPrice(ctx context.Context, id int64, price decimal.Decimal, at time.Time) error
}

// InvestmentService manages positions and keeps their prices current.
type InvestmentService struct {
	store  InvestmentStore
	prices PriceSource
}

func NewInvestmentService(store InvestmentStore, prices PriceSource) *InvestmentService {
	return &InvestmentService{store: store, prices: prices}
}

func (s *InvestmentService) Create(ctx context.Context, inv core.Investment) (int64, error) {
	inv.Symbol = strings.ToUpper(strings.TrimSpace(inv.Symbol))
	if err := inv.Validate(); err != nil {
		return 0, fmt.Errorf("validate investment: %w", err)
	}

	id, err := s.store.CreateInvestment(ctx, inv)
	if err != nil {
		return 0, fmt.Errorf("save investment: %w", err)
	}
	return id, nil
}

func (s *InvestmentService) List(ctx context.Context, entityID int64) ([]core.Investment, error) {
	return s.store.ListInvestments(ctx, entityID)
}

// RefreshPrices fetches the quote feed once and updates every position whose
// symbol appears in it. Returns the number of positions updated.
func (s *InvestmentService) RefreshPrices(ctx context.Context, now time.Time) (int, error) {
	if s.prices == nil {
		return 0, fmt.Errorf("no price source configured")
	}

	prices, err := s.prices.FetchPrices(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch prices: %w", err)
	}

	investments, err := s.store.ListAllInvestments(ctx)
	if err != nil {
		return 0, fmt.Errorf("list investments: %w", err)
	}

	updated := 0
	for _, inv := range investments {
		price, ok := prices[strings.ToUpper(inv.Symbol)]
		if !ok {
			slog.DebugContext(ctx, "Symbol not in quote feed", "symbol", inv.Symbol)
			continue
		}
		if price.Equal(inv.UnitPrice) {
			continue
		}
		if err := s.store.UpdateInvestmentPrice(ctx, inv.ID, price, now); err != nil {
			slog.ErrorContext(ctx, "Failed to update investment price",
				"id", inv.ID, "symbol", inv.Symbol, "error", err)
			continue
		}
		updated++
		slog.InfoContext(ctx, "Updated investment price",
			"symbol", inv.Symbol,
			"old_price", inv.UnitPrice.String(),
			"new_price", price.String())
	}

	slog.InfoContext(ctx, "Price refresh complete",
		"positions", len(investments),
		"updated", updated)
	return updated, nil
}
