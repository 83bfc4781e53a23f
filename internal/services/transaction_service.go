package services

import (
	"context"
	"fmt"
	"log/slog"

	"expenses/internal/core"
	"expenses/internal/ports"
)

// TransactionService sequences store mutations, snapshot reads and optional
// sync notifications. It holds no transaction state of its own.
type TransactionService struct {
	store     ports.TransactionStore
	publisher ports.SyncPublisher
}

// Snapshot is the full stored set plus everything derived from it.
type Snapshot struct {
	Transactions []core.Transaction
	Totals       core.Totals
	Monthly      []core.MonthAmount
	Categories   []core.CategoryAmount
}

// NewTransactionService wires store with an optional publisher (nil disables sync).
func NewTransactionService(store ports.TransactionStore, publisher ports.SyncPublisher) *TransactionService {
	return &TransactionService{
		store:     store,
		publisher: publisher,
	}
}

// Initialize prepares the underlying store.
func (s *TransactionService) Initialize(ctx context.Context) error {
	if err := s.store.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	return nil
}

// CreateTransaction persists t and announces the change.
func (s *TransactionService) CreateTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	id, err := s.store.Create(ctx, t)
	if err != nil {
		return 0, fmt.Errorf("save transaction: %w", err)
	}

	// The transaction is stored; a failed notification only delays the mirror.
	s.publish(ctx, id, ports.SyncOpCreated)
	return id, nil
}

// DeleteTransaction removes id (no-op when unknown) and announces the change.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	s.publish(ctx, id, ports.SyncOpDeleted)
	return nil
}

// ListTransactions returns the store's ordered snapshot.
func (s *TransactionService) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	txs, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// Snapshot re-reads all transactions and aggregates them.
func (s *TransactionService) Snapshot(ctx context.Context) (Snapshot, error) {
	txs, err := s.ListTransactions(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Transactions: txs,
		Totals:       core.ComputeTotals(txs),
		Monthly:      core.MonthlyExpenses(txs),
		Categories:   core.CategoryExpenses(txs),
	}, nil
}

func (s *TransactionService) publish(ctx context.Context, id int64, op string) {
	if s.publisher == nil {
		slog.DebugContext(ctx, "Sync publisher not configured, skipping sync message", "id", id, "op", op)
		return
	}
	if err := s.publisher.PublishTransactionSync(ctx, id, op); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", id, "op", op, "error", err)
	}
}

// Close closes both storage and publisher connections
func (s *TransactionService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close transaction service: %v", errs)
	}

	return nil
}
