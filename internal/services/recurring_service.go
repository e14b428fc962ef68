package services

import (
	"context"
	"fmt"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
)

// RecurringTemplateStore is the storage surface for recurrence templates.
// Materialization into concrete records is the recurring worker's job.
type RecurringTemplateStore interface {
	CreateRecurringTask(ctx context.Context, rt core.RecurringTask) (int64, error)
	CreateRecurringTransaction(ctx context.Context, rt core.RecurringTransaction) (int64, error)
}

// RecurringService registers recurrence templates.
type RecurringService struct {
	store RecurringTemplateStore
}

func NewRecurringService(store RecurringTemplateStore) *RecurringService {
	return &RecurringService{store: store}
}

func (s *RecurringService) CreateTask(ctx context.Context, rt core.RecurringTask) (int64, error) {
	if err := rt.Validate(); err != nil {
		return 0, fmt.Errorf("validate recurring task: %w", err)
	}

	id, err := s.store.CreateRecurringTask(ctx, rt)
	if err != nil {
		return 0, fmt.Errorf("save recurring task: %w", err)
	}
	return id, nil
}

func (s *RecurringService) CreateTransaction(ctx context.Context, rt core.RecurringTransaction) (int64, error) {
	if err := rt.Validate(); err != nil {
		return 0, fmt.Errorf("validate recurring transaction: %w", err)
	}

	id, err := s.store.CreateRecurringTransaction(ctx, rt)
	if err != nil {
		return 0, fmt.Errorf("save recurring transaction: %w", err)
	}
	return id, nil
}
