package repositories

import (
	"context"

	"github.com/voyagebooks/voyage_backoffice/internal/core/domain"
)

// SyncConfigReader defines read operations for the sync bridge configuration.
type SyncConfigReader interface {
	// ListAccountMappings retrieves the account mappings in stable
	// (sales type) order, one per sales type.
	ListAccountMappings(ctx context.Context) ([]domain.AccountMapping, error)

	// GetSyncSettings retrieves the single global sync settings record.
	GetSyncSettings(ctx context.Context) (*domain.SyncSettings, error)
}

// SyncConfigWriter defines write operations for the sync bridge configuration.
type SyncConfigWriter interface {
	// UpsertAccountMapping replaces the mapping row for mapping.SalesType.
	UpsertAccountMapping(ctx context.Context, mapping domain.AccountMapping) error

	// UpdateSyncSettings replaces the global sync settings record.
	UpdateSyncSettings(ctx context.Context, settings domain.SyncSettings) error
}

// SyncConfigRepositoryFacade combines the sync configuration interfaces.
type SyncConfigRepositoryFacade interface {
	SyncConfigReader
	SyncConfigWriter
}
