package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/sheets"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/storage"
)

// SyncQueueStore is the storage surface the sync processor needs.
type SyncQueueStore interface {
	GetPendingSync(ctx context.Context, limit int) ([]storage.PendingSyncRecord, error)
	MarkSyncProcessing(ctx context.Context, queueID int64) error
	MarkSyncCompleted(ctx context.Context, queueID int64) error
	MarkSyncError(ctx context.Context, queueID int64, maxRetries int) error
	ResetStaleProcessing(ctx context.Context) error
	CleanupCompleted(ctx context.Context, age time.Duration) (int64, error)
	GetTransaction(ctx context.Context, id int64) (*core.Transaction, error)
	GetRental(ctx context.Context, id int64) (*core.Rental, error)
}

// SyncProcessorConfig holds configuration for the sync processor.
type SyncProcessorConfig struct {
	// PollInterval is how often to check for pending items.
	PollInterval time.Duration

	// BatchSize is the max number of items to process per poll cycle.
	BatchSize int

	// MaxRetries is the maximum retry attempts before marking as failed.
	MaxRetries int

	// CleanupInterval is how often to clean up completed items.
	CleanupInterval time.Duration

	// CleanupAge is how old completed items must be before cleanup.
	CleanupAge time.Duration
}

// DefaultSyncProcessorConfig returns sensible defaults.
func DefaultSyncProcessorConfig() SyncProcessorConfig {
	return SyncProcessorConfig{
		PollInterval:    10 * time.Second,
		BatchSize:       10,
		MaxRetries:      3,
		CleanupInterval: 1 * time.Hour,
		CleanupAge:      24 * time.Hour,
	}
}

// SyncProcessor drains the SQLite sync queue into the spreadsheet. It runs
// on a poll ticker and can also be kicked immediately when an AMQP
// notification arrives.
type SyncProcessor struct {
	store  SyncQueueStore
	writer sheets.RecordWriter
	config SyncProcessorConfig

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	kickCh  chan struct{}
}

func NewSyncProcessor(store SyncQueueStore, writer sheets.RecordWriter, config SyncProcessorConfig) *SyncProcessor {
	return &SyncProcessor{
		store:  store,
		writer: writer,
		config: config,
		kickCh: make(chan struct{}, 1),
	}
}

// Start begins the processing loop. Returns an error if already running.
func (p *SyncProcessor) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("sync processor is already running")
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	p.mu.Unlock()

	// Requeue anything stuck in processing after a crash.
	if err := p.store.ResetStaleProcessing(ctx); err != nil {
		slog.WarnContext(ctx, "Failed to reset stale processing items", "error", err)
	}

	go p.runLoop(ctx)

	slog.InfoContext(ctx, "Sync processor started",
		"poll_interval", p.config.PollInterval,
		"batch_size", p.config.BatchSize)
	return nil
}

// Stop gracefully stops the processor and waits for completion.
func (p *SyncProcessor) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	close(p.stopCh)

	select {
	case <-p.doneCh:
		slog.InfoContext(ctx, "Sync processor stopped gracefully")
	case <-ctx.Done():
		slog.WarnContext(ctx, "Sync processor stop timed out")
		return ctx.Err()
	}

	p.mu.Lock()
	p.running = false
	p.mu.Unlock()
	return nil
}

// IsRunning returns whether the processor is currently running.
func (p *SyncProcessor) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Kick requests an immediate drain outside the poll schedule. Safe to call
// from any goroutine; extra kicks while one is pending are coalesced.
func (p *SyncProcessor) Kick() {
	select {
	case p.kickCh <- struct{}{}:
	default:
	}
}

func (p *SyncProcessor) runLoop(ctx context.Context) {
	defer close(p.doneCh)

	pollTicker := time.NewTicker(p.config.PollInterval)
	defer pollTicker.Stop()

	cleanupTicker := time.NewTicker(p.config.CleanupInterval)
	defer cleanupTicker.Stop()

	// Process immediately on startup.
	p.ProcessPending(ctx)

	for {
		select {
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		case <-p.kickCh:
			p.ProcessPending(ctx)
		case <-pollTicker.C:
			p.ProcessPending(ctx)
		case <-cleanupTicker.C:
			p.cleanupCompleted(ctx)
		}
	}
}

// ProcessPending drains one batch of pending queue items.
func (p *SyncProcessor) ProcessPending(ctx context.Context) {
	items, err := p.store.GetPendingSync(ctx, p.config.BatchSize)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to fetch pending sync items", "error", err)
		return
	}
	if len(items) == 0 {
		return
	}

	slog.DebugContext(ctx, "Processing sync batch", "count", len(items))

	for _, item := range items {
		select {
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		default:
		}

		if err := p.store.MarkSyncProcessing(ctx, item.QueueID); err != nil {
			slog.ErrorContext(ctx, "Failed to mark item as processing",
				"queue_id", item.QueueID, "error", err)
			continue
		}

		if err := p.exportRecord(ctx, item); err != nil {
			slog.ErrorContext(ctx, "Failed to export record",
				"queue_id", item.QueueID,
				"kind", item.Kind,
				"record_id", item.RecordID,
				"error", err)
			if err := p.store.MarkSyncError(ctx, item.QueueID, p.config.MaxRetries); err != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error",
					"queue_id", item.QueueID, "error", err)
			}
			continue
		}

		if err := p.store.MarkSyncCompleted(ctx, item.QueueID); err != nil {
			slog.ErrorContext(ctx, "Failed to mark sync completed",
				"queue_id", item.QueueID, "error", err)
		}
	}
}

func (p *SyncProcessor) exportRecord(ctx context.Context, item storage.PendingSyncRecord) error {
	switch item.Kind {
	case storage.KindTransaction:
		tx, err := p.store.GetTransaction(ctx, item.RecordID)
		if errors.Is(err, storage.ErrNotFound) {
			// Deleted before export; nothing to do.
			slog.WarnContext(ctx, "Transaction gone before export", "id", item.RecordID)
			return nil
		}
		if err != nil {
			return fmt.Errorf("get transaction %d: %w", item.RecordID, err)
		}
		ref, err := p.writer.AppendTransaction(ctx, *tx)
		if err != nil {
			return fmt.Errorf("append transaction to sheet: %w", err)
		}
		slog.InfoContext(ctx, "Exported transaction", "id", item.RecordID, "sheets_ref", ref)
		return nil
	case storage.KindRental:
		rental, err := p.store.GetRental(ctx, item.RecordID)
		if errors.Is(err, storage.ErrNotFound) {
			slog.WarnContext(ctx, "Rental gone before export", "id", item.RecordID)
			return nil
		}
		if err != nil {
			return fmt.Errorf("get rental %d: %w", item.RecordID, err)
		}
		ref, err := p.writer.AppendRental(ctx, *rental)
		if err != nil {
			return fmt.Errorf("append rental to sheet: %w", err)
		}
		slog.InfoContext(ctx, "Exported rental", "id", item.RecordID, "sheets_ref", ref)
		return nil
	default:
		return fmt.Errorf("unknown record kind: %s", item.Kind)
	}
}

func (p *SyncProcessor) cleanupCompleted(ctx context.Context) {
	removed, err := p.store.CleanupCompleted(ctx, p.config.CleanupAge)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to clean up completed sync items", "error", err)
		return
	}
	if removed > 0 {
		slog.InfoContext(ctx, "Cleaned up completed sync items", "removed", removed)
	}
}
