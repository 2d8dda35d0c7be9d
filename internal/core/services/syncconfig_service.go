package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/voyagebooks/voyage_backoffice/internal/apperrors"
	"github.com/voyagebooks/voyage_backoffice/internal/core/domain"
	portsrepo "github.com/voyagebooks/voyage_backoffice/internal/core/ports/repositories"
	portssvc "github.com/voyagebooks/voyage_backoffice/internal/core/ports/services"
	"github.com/voyagebooks/voyage_backoffice/internal/dto"
	"github.com/voyagebooks/voyage_backoffice/internal/middleware"
)

var ErrUnknownSyncFrequency = errors.New("unknown sync frequency")

// syncConfigService manages the account mappings and the global sync settings.
type syncConfigService struct {
	repo        portsrepo.SyncConfigRepositoryFacade
	accountSvc  portssvc.AccountReaderSvc
	rescheduler portssvc.SyncRescheduler // optional; nil when no scheduler runs
}

// NewSyncConfigService creates the sync configuration service. The
// rescheduler may be nil (tests, CLI tooling); cadence changes are then only
// persisted, not applied to a live timer.
func NewSyncConfigService(repo portsrepo.SyncConfigRepositoryFacade, accountSvc portssvc.AccountReaderSvc, rescheduler portssvc.SyncRescheduler) portssvc.SyncConfigSvcFacade {
	return &syncConfigService{
		repo:        repo,
		accountSvc:  accountSvc,
		rescheduler: rescheduler,
	}
}

var _ portssvc.SyncConfigSvcFacade = (*syncConfigService)(nil)

// GetAccountMappings returns the current mappings in stable sales-type order.
func (s *syncConfigService) GetAccountMappings(ctx context.Context) ([]domain.AccountMapping, error) {
	mappings, err := s.repo.ListAccountMappings(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list account mappings", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve account mappings: %w", err)
	}
	return mappings, nil
}

// UpdateAccountMapping replaces the mapping for the request's sales type.
// Unknown sales types are ignored: the type set is closed, so there is no row
// such a mapping could ever apply to. Both target accounts must exist, be
// active and be DETAIL type; header accounts never receive postings.
func (s *syncConfigService) UpdateAccountMapping(ctx context.Context, req dto.UpdateAccountMappingRequest, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.KnownSalesType(req.SalesType) {
		logger.Warn("Ignoring mapping update for unknown sales type", slog.String("sales_type", string(req.SalesType)))
		return nil
	}

	codes := []string{req.RevenueAccountCode, req.ReceivableAccountCode}
	accounts, err := s.accountSvc.GetAccountsByCodes(ctx, codes)
	if err != nil {
		logger.Error("Failed to fetch accounts for mapping validation", slog.String("error", err.Error()))
		return fmt.Errorf("failed to validate mapping accounts: %w", err)
	}
	for _, code := range codes {
		acc, found := accounts[code]
		if !found {
			return fmt.Errorf("%w: account %s does not exist", apperrors.ErrValidation, code)
		}
		if !acc.Postable() {
			return fmt.Errorf("%w: account %s must be an active detail account", apperrors.ErrValidation, code)
		}
	}

	now := time.Now().UTC()
	mapping := domain.AccountMapping{
		SalesType:             req.SalesType,
		RevenueAccountCode:    req.RevenueAccountCode,
		ReceivableAccountCode: req.ReceivableAccountCode,
		Description:           req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.repo.UpsertAccountMapping(ctx, mapping); err != nil {
		logger.Error("Failed to save account mapping", slog.String("error", err.Error()), slog.String("sales_type", string(req.SalesType)))
		return fmt.Errorf("failed to save account mapping: %w", err)
	}

	logger.Info("Account mapping updated", slog.String("sales_type", string(req.SalesType)))
	return nil
}

// GetSyncSettings returns the single global sync settings record.
func (s *syncConfigService) GetSyncSettings(ctx context.Context) (*domain.SyncSettings, error) {
	settings, err := s.repo.GetSyncSettings(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to get sync settings", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve sync settings: %w", err)
	}
	return settings, nil
}

// UpdateSyncSettings persists the new cadence and reschedules the timer. The
// scheduler cancels the previous timer before installing the new one, so two
// timers never run concurrently.
func (s *syncConfigService) UpdateSyncSettings(ctx context.Context, req dto.UpdateSyncSettingsRequest, userID string) (*domain.SyncSettings, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.KnownSyncFrequency(req.SyncFrequency) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSyncFrequency, req.SyncFrequency)
	}

	now := time.Now().UTC()
	settings := domain.SyncSettings{
		SyncFrequency: req.SyncFrequency,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.repo.UpdateSyncSettings(ctx, settings); err != nil {
		logger.Error("Failed to save sync settings", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save sync settings: %w", err)
	}

	if s.rescheduler != nil {
		if err := s.rescheduler.Reschedule(req.SyncFrequency); err != nil {
			logger.Error("Failed to reschedule sync timer", slog.String("error", err.Error()), slog.String("frequency", string(req.SyncFrequency)))
			return nil, fmt.Errorf("settings saved but rescheduling failed: %w", err)
		}
	}

	logger.Info("Sync settings updated", slog.String("frequency", string(req.SyncFrequency)))
	return &settings, nil
}
