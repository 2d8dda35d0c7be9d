package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voyagebooks/voyage_backoffice/internal/apperrors"
	"github.com/voyagebooks/voyage_backoffice/internal/core/domain"
	portsrepo "github.com/voyagebooks/voyage_backoffice/internal/core/ports/repositories"
)

type salesRepository struct {
	pool *pgxpool.Pool
}

// NewSalesRepository creates a new repository for sales transaction data.
func NewSalesRepository(pool *pgxpool.Pool) portsrepo.SalesRepositoryFacade {
	return &salesRepository{pool: pool}
}

const salesColumns = `id, sale_date, customer_name, customer_email, sales_type, product_id, product_name, quantity, unit_price, total_amount, payment_method, reference, notes, synced_to_accounting, created_at, created_by, last_updated_at, last_updated_by`

func scanSalesTransaction(row pgx.Row) (*domain.SalesTransaction, error) {
	var txn domain.SalesTransaction
	err := row.Scan(
		&txn.ID,
		&txn.Date,
		&txn.CustomerName,
		&txn.CustomerEmail,
		&txn.Type,
		&txn.ProductID,
		&txn.ProductName,
		&txn.Quantity,
		&txn.UnitPrice,
		&txn.TotalAmount,
		&txn.PaymentMethod,
		&txn.Reference,
		&txn.Notes,
		&txn.SyncedToAccounting,
		&txn.CreatedAt,
		&txn.CreatedBy,
		&txn.LastUpdatedAt,
		&txn.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// UpsertSalesTransaction persists a sales transaction. Recording the same ID
// again replaces the row, so the pending queue never holds duplicates.
func (r *salesRepository) UpsertSalesTransaction(ctx context.Context, txn domain.SalesTransaction) error {
	query := `
		INSERT INTO sales_transactions (` + salesColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (id) DO UPDATE SET
			sale_date = EXCLUDED.sale_date,
			customer_name = EXCLUDED.customer_name,
			customer_email = EXCLUDED.customer_email,
			sales_type = EXCLUDED.sales_type,
			product_id = EXCLUDED.product_id,
			product_name = EXCLUDED.product_name,
			quantity = EXCLUDED.quantity,
			unit_price = EXCLUDED.unit_price,
			total_amount = EXCLUDED.total_amount,
			payment_method = EXCLUDED.payment_method,
			reference = EXCLUDED.reference,
			notes = EXCLUDED.notes,
			synced_to_accounting = EXCLUDED.synced_to_accounting,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.pool.Exec(ctx, query,
		txn.ID,
		txn.Date,
		txn.CustomerName,
		txn.CustomerEmail,
		txn.Type,
		txn.ProductID,
		txn.ProductName,
		txn.Quantity,
		txn.UnitPrice,
		txn.TotalAmount,
		txn.PaymentMethod,
		txn.Reference,
		txn.Notes,
		txn.SyncedToAccounting,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert sales transaction %s: %w", txn.ID, err)
	}
	return nil
}

// FindSalesTransactionByID retrieves a sales transaction by its identifier.
func (r *salesRepository) FindSalesTransactionByID(ctx context.Context, id string) (*domain.SalesTransaction, error) {
	query := `SELECT ` + salesColumns + ` FROM sales_transactions WHERE id = $1;`
	txn, err := scanSalesTransaction(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sales transaction by ID %s: %w", id, err)
	}
	return txn, nil
}

// ListSalesTransactions retrieves a paginated list, most recent first.
func (r *salesRepository) ListSalesTransactions(ctx context.Context, limit int, offset int) ([]domain.SalesTransaction, error) {
	query := `SELECT ` + salesColumns + ` FROM sales_transactions ORDER BY sale_date DESC, created_at DESC LIMIT $1 OFFSET $2;`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales transactions: %w", err)
	}
	defer rows.Close()
	return collectSalesTransactions(rows)
}

// ListPendingSalesTransactions retrieves every transaction not yet posted to
// accounting, in insertion order. This is the sync engine's work queue.
func (r *salesRepository) ListPendingSalesTransactions(ctx context.Context) ([]domain.SalesTransaction, error) {
	query := `SELECT ` + salesColumns + ` FROM sales_transactions WHERE NOT synced_to_accounting ORDER BY created_at, id;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending sales transactions: %w", err)
	}
	defer rows.Close()
	return collectSalesTransactions(rows)
}

func collectSalesTransactions(rows pgx.Rows) ([]domain.SalesTransaction, error) {
	txns := []domain.SalesTransaction{}
	for rows.Next() {
		txn, err := scanSalesTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sales transaction row: %w", err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sales transaction rows: %w", err)
	}
	return txns, nil
}

// MarkSynced flips the synced flag for the given transaction. An unknown ID
// affects zero rows and is treated as a no-op, not an error.
func (r *salesRepository) MarkSynced(ctx context.Context, id string, userID string, now time.Time) error {
	query := `
		UPDATE sales_transactions
		SET synced_to_accounting = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE id = $1;
	`
	if _, err := r.pool.Exec(ctx, query, id, now, userID); err != nil {
		return fmt.Errorf("failed to mark sales transaction %s synced: %w", id, err)
	}
	return nil
}
