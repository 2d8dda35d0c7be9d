package services

import (
	"context"

	"github.com/voyagebooks/voyage_backoffice/internal/core/domain"
	"github.com/voyagebooks/voyage_backoffice/internal/dto"
)

// JournalReaderSvc defines read operations for journal data.
type JournalReaderSvc interface {
	// GetJournalByID retrieves a journal with its lines populated.
	GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListJournals retrieves a paginated list of journals, most recent first.
	ListJournals(ctx context.Context, params dto.ListJournalsParams) ([]domain.Journal, error)
}

// JournalWriterSvc defines write operations for journal data.
type JournalWriterSvc interface {
	// CreateJournal validates and posts a balanced journal entry. Both lines
	// are persisted atomically together with the account balance updates.
	CreateJournal(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error)
}

// JournalSvcFacade combines all journal-related service interfaces.
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
