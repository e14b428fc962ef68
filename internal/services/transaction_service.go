package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/storage"
)

// SyncPublisher notifies downstream consumers that a record changed.
// Satisfied by *amqp.Client.
type SyncPublisher interface {
	PublishRecordSync(ctx context.Context, kind string, id, version int64) error
}

// TransactionStore is the storage surface the transaction service needs.
type TransactionStore interface {
	CreateTransaction(ctx context.Context, tx core.Transaction) (int64, error)
	GetTransaction(ctx context.Context, id int64) (*core.Transaction, error)
	ListTransactions(ctx context.Context, entityID int64) ([]core.Transaction, error)
	SoftDeleteTransaction(ctx context.Context, id int64) error
	MarkTransactionPaid(ctx context.Context, id int64, paymentDate core.Date) error
	EnqueueSync(ctx context.Context, kind string, recordID, version int64) (int64, error)
}

// TransactionService orchestrates transaction operations across SQLite and
// the sync pipeline.
type TransactionService struct {
	store       TransactionStore
	publisher   SyncPublisher
	invalidator ReportInvalidator
}

func NewTransactionService(store TransactionStore, publisher SyncPublisher, invalidator ReportInvalidator) *TransactionService {
	return &TransactionService{store: store, publisher: publisher, invalidator: invalidator}
}

// Create validates and saves a transaction, then queues it for export.
// Export failures never fail the request; the record is already durable.
func (s *TransactionService) Create(ctx context.Context, tx core.Transaction) (int64, error) {
	if tx.Status == "" {
		tx.Status = core.StatusPending
	}
	if err := tx.Validate(); err != nil {
		return 0, fmt.Errorf("validate transaction: %w", err)
	}

	id, err := s.store.CreateTransaction(ctx, tx)
	if err != nil {
		return 0, fmt.Errorf("save transaction: %w", err)
	}

	s.queueSync(ctx, storage.KindTransaction, id, 1)
	s.invalidateReports(tx.EntityID)
	return id, nil
}

func (s *TransactionService) Get(ctx context.Context, id int64) (*core.Transaction, error) {
	return s.store.GetTransaction(ctx, id)
}

func (s *TransactionService) List(ctx context.Context, entityID int64) ([]core.Transaction, error) {
	return s.store.ListTransactions(ctx, entityID)
}

// MarkPaid sets the payment date and status, then queues the updated record.
func (s *TransactionService) MarkPaid(ctx context.Context, id int64, paymentDate core.Date) error {
	if err := paymentDate.Validate(); err != nil {
		return fmt.Errorf("validate payment date: %w", err)
	}
	if err := s.store.MarkTransactionPaid(ctx, id, paymentDate); err != nil {
		return fmt.Errorf("mark transaction paid: %w", err)
	}

	s.queueSync(ctx, storage.KindTransaction, id, 2)
	s.invalidateReportsFor(ctx, id)
	return nil
}

// Delete soft deletes a transaction locally. The export sheet is append-only,
// so no sync message is queued.
func (s *TransactionService) Delete(ctx context.Context, id int64) error {
	tx, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		return fmt.Errorf("load transaction: %w", err)
	}
	if err := s.store.SoftDeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("soft delete transaction: %w", err)
	}
	s.invalidateReports(tx.EntityID)
	return nil
}

func (s *TransactionService) invalidateReports(entityID int64) {
	if s.invalidator != nil {
		s.invalidator.InvalidateEntity(entityID)
	}
}

// invalidateReportsFor resolves the entity for an ID-only update. A lookup
// failure leaves a stale cache entry that expires on its own.
func (s *TransactionService) invalidateReportsFor(ctx context.Context, id int64) {
	if s.invalidator == nil {
		return
	}
	tx, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		slog.WarnContext(ctx, "Could not resolve entity for report invalidation",
			"id", id, "error", err)
		return
	}
	s.invalidator.InvalidateEntity(tx.EntityID)
}

func (s *TransactionService) queueSync(ctx context.Context, kind string, id, version int64) {
	if _, err := s.store.EnqueueSync(ctx, kind, id, version); err != nil {
		slog.ErrorContext(ctx, "Failed to enqueue sync",
			"kind", kind, "id", id, "error", err)
		return
	}

	if s.publisher == nil {
		slog.WarnContext(ctx, "Sync publisher not available, relying on queue polling",
			"kind", kind, "id", id)
		return
	}
	if err := s.publisher.PublishRecordSync(ctx, kind, id, version); err != nil {
		// The poll fallback will pick the queue item up.
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"kind", kind, "id", id, "error", err)
	}
}
