package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/voyagebooks/voyage_backoffice/internal/core/domain"
	portsrepo "github.com/voyagebooks/voyage_backoffice/internal/core/ports/repositories"
	portssvc "github.com/voyagebooks/voyage_backoffice/internal/core/ports/services"
	"github.com/voyagebooks/voyage_backoffice/internal/middleware"
)

// reportingService serves read-only aggregations for the dashboards.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetTrialBalance returns per-account debit/credit totals over all posted journals.
func (s *reportingService) GetTrialBalance(ctx context.Context) ([]domain.TrialBalanceRow, error) {
	rows, err := s.reportingRepo.GetTrialBalance(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to build trial balance", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to build trial balance: %w", err)
	}
	return rows, nil
}

// GetSalesSummary returns aggregate sales activity for the dashboard.
func (s *reportingService) GetSalesSummary(ctx context.Context) (*domain.SalesSummary, error) {
	summary, err := s.reportingRepo.GetSalesSummary(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to build sales summary", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to build sales summary: %w", err)
	}
	return summary, nil
}
