package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voyagebooks/voyage_backoffice/internal/apperrors"
	"github.com/voyagebooks/voyage_backoffice/internal/core/domain"
	portsrepo "github.com/voyagebooks/voyage_backoffice/internal/core/ports/repositories"
)

type syncConfigRepository struct {
	pool *pgxpool.Pool
}

// NewSyncConfigRepository creates a new repository for account mappings and
// the global sync settings record.
func NewSyncConfigRepository(pool *pgxpool.Pool) portsrepo.SyncConfigRepositoryFacade {
	return &syncConfigRepository{pool: pool}
}

// ListAccountMappings retrieves all account mappings ordered by sales type.
func (r *syncConfigRepository) ListAccountMappings(ctx context.Context) ([]domain.AccountMapping, error) {
	query := `
		SELECT sales_type, revenue_account_code, receivable_account_code, description, created_at, created_by, last_updated_at, last_updated_by
		FROM account_mappings
		ORDER BY sales_type;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query account mappings: %w", err)
	}
	defer rows.Close()

	mappings := []domain.AccountMapping{}
	for rows.Next() {
		var m domain.AccountMapping
		err := rows.Scan(
			&m.SalesType,
			&m.RevenueAccountCode,
			&m.ReceivableAccountCode,
			&m.Description,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account mapping row: %w", err)
		}
		mappings = append(mappings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate account mapping rows: %w", err)
	}
	return mappings, nil
}

// UpsertAccountMapping replaces the mapping row for mapping.SalesType. The
// sales type is the primary key, so each type holds exactly one mapping.
func (r *syncConfigRepository) UpsertAccountMapping(ctx context.Context, mapping domain.AccountMapping) error {
	query := `
		INSERT INTO account_mappings (sales_type, revenue_account_code, receivable_account_code, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (sales_type) DO UPDATE SET
			revenue_account_code = EXCLUDED.revenue_account_code,
			receivable_account_code = EXCLUDED.receivable_account_code,
			description = EXCLUDED.description,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.pool.Exec(ctx, query,
		mapping.SalesType,
		mapping.RevenueAccountCode,
		mapping.ReceivableAccountCode,
		mapping.Description,
		mapping.CreatedAt,
		mapping.CreatedBy,
		mapping.LastUpdatedAt,
		mapping.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert account mapping for %s: %w", mapping.SalesType, err)
	}
	return nil
}

// GetSyncSettings retrieves the single global sync settings record.
func (r *syncConfigRepository) GetSyncSettings(ctx context.Context) (*domain.SyncSettings, error) {
	query := `
		SELECT sync_frequency, created_at, created_by, last_updated_at, last_updated_by
		FROM sync_settings
		WHERE id = 1;
	`
	var s domain.SyncSettings
	err := r.pool.QueryRow(ctx, query).Scan(
		&s.SyncFrequency,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read sync settings: %w", err)
	}
	return &s, nil
}

// UpdateSyncSettings replaces the global sync settings record. The table holds
// a single row with id = 1.
func (r *syncConfigRepository) UpdateSyncSettings(ctx context.Context, settings domain.SyncSettings) error {
	query := `
		INSERT INTO sync_settings (id, sync_frequency, created_at, created_by, last_updated_at, last_updated_by)
		VALUES (1, $1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			sync_frequency = EXCLUDED.sync_frequency,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.pool.Exec(ctx, query,
		settings.SyncFrequency,
		settings.CreatedAt,
		settings.CreatedBy,
		settings.LastUpdatedAt,
		settings.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update sync settings: %w", err)
	}
	return nil
}
