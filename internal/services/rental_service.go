package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/storage"
)

// RentalStore is the storage surface the rental service needs.
type RentalStore interface {
	CreateRental(ctx context.Context, r core.Rental) (int64, error)
	GetRental(ctx context.Context, id int64) (*core.Rental, error)
	ListRentals(ctx context.Context, entityID int64) ([]core.Rental, error)
	SoftDeleteRental(ctx context.Context, id int64) error
	EnqueueSync(ctx context.Context, kind string, recordID, version int64) (int64, error)
}

// RentalService orchestrates booking operations across SQLite and the sync
// pipeline.
type RentalService struct {
	store       RentalStore
	publisher   SyncPublisher
	invalidator ReportInvalidator
}

func NewRentalService(store RentalStore, publisher SyncPublisher, invalidator ReportInvalidator) *RentalService {
	return &RentalService{store: store, publisher: publisher, invalidator: invalidator}
}

// Create validates and saves a booking, then queues it for export. Blocked
// periods are stored like bookings but are never exported.
func (s *RentalService) Create(ctx context.Context, r core.Rental) (int64, error) {
	if err := r.Validate(); err != nil {
		return 0, fmt.Errorf("validate rental: %w", err)
	}

	id, err := s.store.CreateRental(ctx, r)
	if err != nil {
		return 0, fmt.Errorf("save rental: %w", err)
	}

	if r.Source != core.SourceBlocked {
		s.queueSync(ctx, id)
	}
	if s.invalidator != nil {
		s.invalidator.InvalidateEntity(r.EntityID)
	}
	return id, nil
}

func (s *RentalService) Get(ctx context.Context, id int64) (*core.Rental, error) {
	return s.store.GetRental(ctx, id)
}

func (s *RentalService) List(ctx context.Context, entityID int64) ([]core.Rental, error) {
	return s.store.ListRentals(ctx, entityID)
}

func (s *RentalService) Delete(ctx context.Context, id int64) error {
	r, err := s.store.GetRental(ctx, id)
	if err != nil {
		return fmt.Errorf("load rental: %w", err)
	}
	if err := s.store.SoftDeleteRental(ctx, id); err != nil {
		return fmt.Errorf("soft delete rental: %w", err)
	}
	if s.invalidator != nil {
		s.invalidator.InvalidateEntity(r.EntityID)
	}
	return nil
}

func (s *RentalService) queueSync(ctx context.Context, id int64) {
	if _, err := s.store.EnqueueSync(ctx, storage.KindRental, id, 1); err != nil {
		slog.ErrorContext(ctx, "Failed to enqueue rental sync", "id", id, "error", err)
		return
	}

	if s.publisher == nil {
		slog.WarnContext(ctx, "Sync publisher not available, relying on queue polling", "id", id)
		return
	}
	if err := s.publisher.PublishRecordSync(ctx, storage.KindRental, id, 1); err != nil {
		slog.ErrorContext(ctx, "Failed to publish rental sync message", "id", id, "error", err)
	}
}
