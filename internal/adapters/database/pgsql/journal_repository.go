package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/voyagebooks/voyage_backoffice/internal/apperrors"
	"github.com/voyagebooks/voyage_backoffice/internal/core/domain"
	portsrepo "github.com/voyagebooks/voyage_backoffice/internal/core/ports/repositories"
)

type journalRepository struct {
	pool *pgxpool.Pool
}

// NewJournalRepository creates a new repository for journal and line data.
func NewJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &journalRepository{pool: pool}
}

// SaveJournal saves a journal, its lines and the resulting account balance
// deltas within a single database transaction.
func (r *journalRepository) SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	journalQuery := `
		INSERT INTO journals (journal_id, journal_date, description, reference, status, amount, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, journalQuery,
		journal.JournalID,
		journal.JournalDate,
		journal.Description,
		journal.Reference,
		journal.Status,
		journal.Amount,
		journal.CreatedAt,
		journal.CreatedBy,
		journal.LastUpdatedAt,
		journal.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal %s: %w", journal.JournalID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, journal_id, account_id, account_code, amount, entry_type, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, line := range lines {
		batch.Queue(lineQuery,
			line.LineID,
			line.JournalID,
			line.AccountID,
			line.AccountCode,
			line.Amount,
			line.EntryType,
			line.Notes,
			line.CreatedAt,
			line.CreatedBy,
			line.LastUpdatedAt,
			line.LastUpdatedBy,
		)
	}
	balanceQuery := `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	for accountID, delta := range balanceChanges {
		batch.Queue(balanceQuery, accountID, delta, journal.LastUpdatedAt, journal.LastUpdatedBy)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute line batch for journal %s: %w", journal.JournalID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction for journal %s: %w", journal.JournalID, err)
	}
	return nil
}

const journalColumns = `journal_id, journal_date, description, reference, status, amount, created_at, created_by, last_updated_at, last_updated_by`

func scanJournal(row pgx.Row) (*domain.Journal, error) {
	var j domain.Journal
	err := row.Scan(
		&j.JournalID,
		&j.JournalDate,
		&j.Description,
		&j.Reference,
		&j.Status,
		&j.Amount,
		&j.CreatedAt,
		&j.CreatedBy,
		&j.LastUpdatedAt,
		&j.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// FindJournalByID retrieves a journal by its ID, without lines.
func (r *journalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1;`
	journal, err := scanJournal(r.pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal by ID %s: %w", journalID, err)
	}
	return journal, nil
}

// FindLinesByJournalID retrieves all lines for a journal in creation order.
func (r *journalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, journal_id, account_id, account_code, amount, entry_type, notes, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_lines
		WHERE journal_id = $1
		ORDER BY line_id;
	`
	rows, err := r.pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for journal %s: %w", journalID, err)
	}
	defer rows.Close()

	lines := []domain.JournalLine{}
	for rows.Next() {
		var line domain.JournalLine
		err := rows.Scan(
			&line.LineID,
			&line.JournalID,
			&line.AccountID,
			&line.AccountCode,
			&line.Amount,
			&line.EntryType,
			&line.Notes,
			&line.CreatedAt,
			&line.CreatedBy,
			&line.LastUpdatedAt,
			&line.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate journal lines: %w", err)
	}
	return lines, nil
}

// ListJournals retrieves a paginated list of journals, most recent first.
func (r *journalRepository) ListJournals(ctx context.Context, limit int, offset int) ([]domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals ORDER BY journal_date DESC, created_at DESC LIMIT $1 OFFSET $2;`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query journals: %w", err)
	}
	defer rows.Close()

	journals := []domain.Journal{}
	for rows.Next() {
		journal, err := scanJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		journals = append(journals, *journal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate journal rows: %w", err)
	}
	return journals, nil
}
