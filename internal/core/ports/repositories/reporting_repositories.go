package repositories

import (
	"context"

	"github.com/voyagebooks/voyage_backoffice/internal/core/domain"
)

// ReportingRepositoryFacade defines read-only aggregation queries used by the
// reporting endpoints. Reports are derived data; there is no writer.
type ReportingRepositoryFacade interface {
	// GetTrialBalance returns per-account debit and credit totals over all
	// posted journals, ordered by account code.
	GetTrialBalance(ctx context.Context) ([]domain.TrialBalanceRow, error)

	// GetSalesSummary returns aggregate counts and revenue for the sales dashboard.
	GetSalesSummary(ctx context.Context) (*domain.SalesSummary, error)
}
