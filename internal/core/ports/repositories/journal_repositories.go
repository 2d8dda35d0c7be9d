package repositories

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/voyagebooks/voyage_backoffice/internal/core/domain"
)

// JournalReader defines read operations for journal data.
type JournalReader interface {
	// FindJournalByID retrieves a specific journal by its unique identifier.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// FindLinesByJournalID retrieves all lines associated with a single journal.
	FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error)

	// ListJournals retrieves a paginated list of journals, most recent first.
	ListJournals(ctx context.Context, limit int, offset int) ([]domain.Journal, error)
}

// JournalWriter defines write operations for journal data.
type JournalWriter interface {
	// SaveJournal persists a journal with its lines and applies the account
	// balance deltas within a single database transaction. Either everything
	// is written or nothing is.
	SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
