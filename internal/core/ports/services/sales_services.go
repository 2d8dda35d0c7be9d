package services

import (
	"context"

	"github.com/voyagebooks/voyage_backoffice/internal/core/domain"
	"github.com/voyagebooks/voyage_backoffice/internal/dto"
)

// SalesReaderSvc defines read operations for sales transactions.
type SalesReaderSvc interface {
	// GetSalesTransactionByID retrieves a sales transaction by its identifier.
	GetSalesTransactionByID(ctx context.Context, id string) (*domain.SalesTransaction, error)

	// ListSalesTransactions retrieves a paginated list of sales transactions.
	ListSalesTransactions(ctx context.Context, params dto.ListSalesParams) ([]domain.SalesTransaction, error)

	// ListPendingSalesTransactions retrieves the transactions awaiting
	// accounting treatment, in insertion order.
	ListPendingSalesTransactions(ctx context.Context) ([]domain.SalesTransaction, error)
}

// SalesWriterSvc defines write operations for sales transactions.
type SalesWriterSvc interface {
	// RecordSale persists a sales transaction onto the pending queue.
	// Recording an ID twice replaces the earlier entry (no duplicates).
	RecordSale(ctx context.Context, req dto.RecordSaleRequest, creatorUserID string) (*domain.SalesTransaction, error)
}

// SalesSvcFacade combines all sales-related service interfaces.
type SalesSvcFacade interface {
	SalesReaderSvc
	SalesWriterSvc
}
