package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/voyagebooks/voyage_backoffice/internal/apperrors"
	"github.com/voyagebooks/voyage_backoffice/internal/core/domain"
	portsrepo "github.com/voyagebooks/voyage_backoffice/internal/core/ports/repositories"
	portssvc "github.com/voyagebooks/voyage_backoffice/internal/core/ports/services"
	"github.com/voyagebooks/voyage_backoffice/internal/dto"
	"github.com/voyagebooks/voyage_backoffice/internal/middleware"
)

var ErrUnknownSalesType = errors.New("unknown sales type")

// salesService manages sales transactions and the pending accounting queue.
type salesService struct {
	salesRepo portsrepo.SalesRepositoryFacade
	notifier  portssvc.SaleRecordedNotifier // optional; realtime cadence hook
}

// NewSalesService creates a new sales service. The notifier may be nil when
// no realtime sync dispatch is wanted (tests, batch tooling).
func NewSalesService(salesRepo portsrepo.SalesRepositoryFacade, notifier portssvc.SaleRecordedNotifier) portssvc.SalesSvcFacade {
	return &salesService{
		salesRepo: salesRepo,
		notifier:  notifier,
	}
}

var _ portssvc.SalesSvcFacade = (*salesService)(nil)

// RecordSale persists a sales transaction onto the pending queue.
// Recording the same ID twice replaces the earlier entry, so a retried
// submission never produces a duplicate posting later.
func (s *salesService) RecordSale(ctx context.Context, req dto.RecordSaleRequest, creatorUserID string) (*domain.SalesTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.KnownSalesType(req.Type) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSalesType, req.Type)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}
	if req.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit price must not be negative", apperrors.ErrValidation)
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	now := time.Now().UTC()
	txn := domain.SalesTransaction{
		ID:            id,
		Date:          req.Date,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Type:          req.Type,
		ProductID:     req.ProductID,
		ProductName:   req.ProductName,
		Quantity:      req.Quantity,
		UnitPrice:     req.UnitPrice,
		TotalAmount:   req.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity))),
		PaymentMethod: req.PaymentMethod,
		Reference:     req.Reference,
		Notes:         req.Notes,
		// New and re-recorded sales always await accounting treatment.
		SyncedToAccounting: false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.salesRepo.UpsertSalesTransaction(ctx, txn); err != nil {
		logger.Error("Failed to save sales transaction", slog.String("error", err.Error()), slog.String("sales_id", id))
		return nil, fmt.Errorf("failed to save sales transaction: %w", err)
	}

	logger.Info("Sales transaction recorded", slog.String("sales_id", id), slog.String("type", string(txn.Type)))

	if s.notifier != nil {
		s.notifier.OnSaleRecorded(ctx)
	}
	return &txn, nil
}

// GetSalesTransactionByID retrieves a sales transaction.
func (s *salesService) GetSalesTransactionByID(ctx context.Context, id string) (*domain.SalesTransaction, error) {
	txn, err := s.salesRepo.FindSalesTransactionByID(ctx, id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find sales transaction", slog.String("error", err.Error()), slog.String("sales_id", id))
		}
		return nil, fmt.Errorf("failed to find sales transaction %s: %w", id, err)
	}
	return txn, nil
}

// ListSalesTransactions retrieves a paginated list of sales transactions.
func (s *salesService) ListSalesTransactions(ctx context.Context, params dto.ListSalesParams) ([]domain.SalesTransaction, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	txns, err := s.salesRepo.ListSalesTransactions(ctx, limit, params.Offset)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list sales transactions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve sales transactions: %w", err)
	}
	return txns, nil
}

// ListPendingSalesTransactions retrieves the queue of transactions awaiting
// accounting treatment, in insertion order.
func (s *salesService) ListPendingSalesTransactions(ctx context.Context) ([]domain.SalesTransaction, error) {
	txns, err := s.salesRepo.ListPendingSalesTransactions(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list pending sales transactions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve pending sales transactions: %w", err)
	}
	return txns, nil
}
