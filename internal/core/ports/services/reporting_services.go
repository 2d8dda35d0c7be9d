package services

import (
	"context"

	"github.com/voyagebooks/voyage_backoffice/internal/core/domain"
)

// ReportingSvcFacade defines the read-only reporting operations.
type ReportingSvcFacade interface {
	// GetTrialBalance returns per-account debit/credit totals over all
	// posted journals.
	GetTrialBalance(ctx context.Context) ([]domain.TrialBalanceRow, error)

	// GetSalesSummary returns aggregate sales activity for the dashboard.
	GetSalesSummary(ctx context.Context) (*domain.SalesSummary, error)
}
