package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"expenses/internal/amqp"
	"expenses/internal/export"
	"expenses/internal/ports"
)

// SyncWorker mirrors the full transaction set into a spreadsheet. Every
// message triggers a snapshot replacement, so redelivered or reordered
// messages converge on the same sheet content.
type SyncWorker struct {
	store  ports.TransactionStore
	writer ports.SnapshotWriter

	mu sync.Mutex
}

func NewSyncWorker(store ports.TransactionStore, writer ports.SnapshotWriter) *SyncWorker {
	return &SyncWorker{
		store:  store,
		writer: writer,
	}
}

// HandleSyncMessage processes a single transaction sync message from AMQP
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"id", msg.ID,
		"op", msg.Op)

	if err := w.Resync(ctx); err != nil {
		if msg.Op == ports.SyncOpResync {
			return fmt.Errorf("resync: %w", err)
		}
		return fmt.Errorf("sync transaction %d (%s): %w", msg.ID, msg.Op, err)
	}
	return nil
}

// Resync lists the store and replaces the sheet with the export rows.
func (w *SyncWorker) Resync(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	txs, err := w.store.List(ctx)
	if err != nil {
		return fmt.Errorf("list transactions: %w", err)
	}

	if err := w.writer.ReplaceRows(ctx, export.Header, export.Rows(txs)); err != nil {
		return fmt.Errorf("replace sheet rows: %w", err)
	}

	slog.InfoContext(ctx, "Sheet mirror updated", "count", len(txs))
	return nil
}

// RunPeriodicSync resyncs once at start and then every interval until ctx is done.
// Each pass goes through HandleSyncMessage as a resync message. Failures are
// logged and retried on the next tick.
func (w *SyncWorker) RunPeriodicSync(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		msg := amqp.NewTransactionSyncMessage(0, ports.SyncOpResync)
		if err := w.HandleSyncMessage(ctx, msg); err != nil && ctx.Err() == nil {
			slog.ErrorContext(ctx, "Periodic resync failed", "error", err, "op", msg.Op)
		}

		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Periodic sync stopped")
			return nil
		case <-ticker.C:
		}
	}
}
