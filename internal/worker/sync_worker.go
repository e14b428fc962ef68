// Package worker bridges the AMQP notification stream with the sync
// processor's queue drain loop.
package worker

import (
	"context"
	"log/slog"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/amqp"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/services"
)

// SyncWorker consumes record sync notifications and kicks the processor.
// The SQLite queue is the source of truth: a notification only lowers
// latency, the poll ticker covers lost messages.
type SyncWorker struct {
	consumer  *amqp.Client
	processor *services.SyncProcessor
}

func NewSyncWorker(consumer *amqp.Client, processor *services.SyncProcessor) *SyncWorker {
	return &SyncWorker{
		consumer:  consumer,
		processor: processor,
	}
}

// Run starts the sync processor and, when an AMQP consumer is configured,
// consumes wake-up notifications until ctx is cancelled.
func (w *SyncWorker) Run(ctx context.Context) error {
	if err := w.processor.Start(ctx); err != nil {
		return err
	}

	if w.consumer == nil {
		slog.InfoContext(ctx, "No AMQP consumer configured, relying on queue polling")
		<-ctx.Done()
		return nil
	}

	return w.consumer.ConsumeRecordSync(ctx, w.handleNotification)
}

func (w *SyncWorker) handleNotification(msg *amqp.RecordSyncMessage) error {
	slog.Info("Sync notification received",
		"message_id", msg.MessageID,
		"kind", msg.Kind,
		"id", msg.ID,
		"version", msg.Version)

	w.processor.Kick()
	return nil
}

// Shutdown stops the drain loop, letting an in-flight batch finish.
func (w *SyncWorker) Shutdown(ctx context.Context) error {
	return w.processor.Stop(ctx)
}
