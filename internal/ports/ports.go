package ports

import (
	"context"

	"expenses/internal/core"
)

// Sync operations announced through SyncPublisher.
const (
	SyncOpCreated = "created"
	SyncOpDeleted = "deleted"
	SyncOpResync  = "resync"
)

// Ports for the persistence and sync adapters.
type (
	// TransactionStore owns the persisted transactions.
	TransactionStore interface {
		// Initialize ensures the schema exists. Safe to call on every start.
		Initialize(ctx context.Context) error
		// Create appends t with a freshly assigned id. No validation happens here.
		Create(ctx context.Context, t core.Transaction) (id int64, err error)
		// List returns every record ordered by date descending, then insertion order.
		List(ctx context.Context) ([]core.Transaction, error)
		// Delete removes the record with id. Unknown ids are not an error.
		Delete(ctx context.Context, id int64) error
		Close() error
	}

	// SyncPublisher announces that the stored snapshot changed.
	SyncPublisher interface {
		PublishTransactionSync(ctx context.Context, id int64, op string) error
		Close() error
	}

	// SnapshotWriter replaces a remote copy with the given export rows.
	SnapshotWriter interface {
		ReplaceRows(ctx context.Context, header []string, rows [][]string) error
	}
)
