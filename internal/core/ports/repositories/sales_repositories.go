package repositories

import (
	"context"
	"time"

	"github.com/voyagebooks/voyage_backoffice/internal/core/domain"
)

// SalesReader defines read operations for sales transaction data.
type SalesReader interface {
	// FindSalesTransactionByID retrieves a sales transaction by its identifier.
	FindSalesTransactionByID(ctx context.Context, id string) (*domain.SalesTransaction, error)

	// ListSalesTransactions retrieves a paginated list of sales transactions,
	// most recent first.
	ListSalesTransactions(ctx context.Context, limit int, offset int) ([]domain.SalesTransaction, error)

	// ListPendingSalesTransactions retrieves every transaction not yet posted
	// to accounting, in insertion order. This is the sync engine's work queue.
	ListPendingSalesTransactions(ctx context.Context) ([]domain.SalesTransaction, error)
}

// SalesWriter defines write operations for sales transaction data.
type SalesWriter interface {
	// UpsertSalesTransaction persists a sales transaction. Re-recording an
	// existing ID replaces the row instead of creating a duplicate.
	UpsertSalesTransaction(ctx context.Context, txn domain.SalesTransaction) error

	// MarkSynced flips the synced_to_accounting flag for the given transaction.
	// Unknown IDs are a no-op.
	MarkSynced(ctx context.Context, id string, userID string, now time.Time) error
}

// SalesRepositoryFacade combines all sales-related repository interfaces.
type SalesRepositoryFacade interface {
	SalesReader
	SalesWriter
}
