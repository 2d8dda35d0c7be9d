package services

import (
	"context"

	"github.com/voyagebooks/voyage_backoffice/internal/core/domain"
	"github.com/voyagebooks/voyage_backoffice/internal/dto"
)

// SyncSvcFacade is the sales-to-accounting sync engine.
type SyncSvcFacade interface {
	// Sync drains the pending sales queue and posts one balanced journal
	// entry per transaction. Per-item failures are collected in the result;
	// only infrastructure failures (queue or mapping store unreadable, or an
	// overlapping invocation) are returned as an error.
	Sync(ctx context.Context) (*domain.SyncResult, error)
}

// SyncConfigSvcFacade manages the account mappings and sync settings.
type SyncConfigSvcFacade interface {
	// GetAccountMappings returns the current mappings, one per sales type,
	// in stable order.
	GetAccountMappings(ctx context.Context) ([]domain.AccountMapping, error)

	// UpdateAccountMapping replaces the mapping for the request's sales type.
	// An unrecognised sales type is a silent no-op; the type set is closed.
	UpdateAccountMapping(ctx context.Context, req dto.UpdateAccountMappingRequest, userID string) error

	// GetSyncSettings returns the global sync settings.
	GetSyncSettings(ctx context.Context) (*domain.SyncSettings, error)

	// UpdateSyncSettings changes the sync cadence and reschedules the timer.
	UpdateSyncSettings(ctx context.Context, req dto.UpdateSyncSettingsRequest, userID string) (*domain.SyncSettings, error)
}

// SyncRescheduler is implemented by the scheduler adapter. Changing the
// cadence cancels any previously scheduled timer before installing a new one.
type SyncRescheduler interface {
	Reschedule(frequency domain.SyncFrequency) error
}

// SaleRecordedNotifier receives a signal after every recorded sale so the
// realtime cadence can post immediately at the point of sale.
type SaleRecordedNotifier interface {
	OnSaleRecorded(ctx context.Context)
}
