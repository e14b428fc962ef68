package services

import (
	"context"
	"fmt"
	"time"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/cache"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/report"
)

// ReportStore is the storage surface the report service needs.
type ReportStore interface {
	ListTransactions(ctx context.Context, entityID int64) ([]core.Transaction, error)
	ListRentals(ctx context.Context, entityID int64) ([]core.Rental, error)
	ListCategories(ctx context.Context, entityID int64) ([]core.Category, error)
}

// ReportService builds aggregated reports, caching results per entity and
// period.
type ReportService struct {
	store ReportStore
	cache cache.Cache[*report.Report]
}

func NewReportService(store ReportStore, reportCache cache.Cache[*report.Report]) *ReportService {
	return &ReportService{store: store, cache: reportCache}
}

// Build resolves the query period and assembles the full report bundle.
func (s *ReportService) Build(ctx context.Context, entityID int64, q report.Query, now time.Time) (*report.Report, error) {
	key := cacheKey(entityID, q, now)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			return cached, nil
		}
	}

	txs, err := s.store.ListTransactions(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	rentals, err := s.store.ListRentals(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("list rentals: %w", err)
	}
	categories, err := s.store.ListCategories(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	rep, err := report.Build(txs, rentals, categories, q, now)
	if err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(key, rep)
	}
	return rep, nil
}

// ReportInvalidator drops cached reports for an entity after a write.
// Satisfied by *ReportService.
type ReportInvalidator interface {
	InvalidateEntity(entityID int64)
}

// InvalidateEntity drops cached reports for an entity. Called after writes.
func (s *ReportService) InvalidateEntity(entityID int64) {
	if c, ok := s.cache.(interface{ DeletePrefix(string) int }); ok {
		c.DeletePrefix(fmt.Sprintf("report:%d:", entityID))
	}
}

// cacheKey includes the resolution date so that relative periods (month,
// quarter, year) roll over at midnight.
func cacheKey(entityID int64, q report.Query, now time.Time) string {
	return fmt.Sprintf("report:%d:%s:%s:%s:%s",
		entityID, q.Period, q.Start, q.End, core.DateOf(now).String())
}
