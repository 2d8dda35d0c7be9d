package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/voyagebooks/voyage_backoffice/internal/apperrors"
	"github.com/voyagebooks/voyage_backoffice/internal/core/domain"
	portsrepo "github.com/voyagebooks/voyage_backoffice/internal/core/ports/repositories"
	portssvc "github.com/voyagebooks/voyage_backoffice/internal/core/ports/services"
	"github.com/voyagebooks/voyage_backoffice/internal/dto"
	"github.com/voyagebooks/voyage_backoffice/internal/middleware"
)

var (
	ErrJournalUnbalanced  = errors.New("journal lines do not balance")
	ErrJournalMinLines    = errors.New("journal must have at least two lines")
	ErrJournalMinAccounts = errors.New("journal must affect at least two different accounts")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountNotPostable = errors.New("account cannot receive postings")
	ErrDescriptionMissing = errors.New("journal description is required")
)

// journalService provides the accounting posting operations.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountSvc  portssvc.AccountReaderSvc
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountReaderSvc) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// signedAmount applies the sign convention for balance updates:
// DEBIT to ASSET/EXPENSE increases the balance, CREDIT decreases it;
// for LIABILITY/EQUITY/REVENUE accounts the convention is inverted.
func signedAmount(line domain.JournalLine, category domain.AccountCategory) (decimal.Decimal, error) {
	amount := line.Amount
	isDebit := line.EntryType == domain.Debit

	switch category {
	case domain.Asset, domain.Expense:
		if !isDebit {
			amount = amount.Neg()
		}
	case domain.Liability, domain.Equity, domain.Revenue:
		if isDebit {
			amount = amount.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account category %q for account %s", category, line.AccountID)
	}
	return amount, nil
}

// validateBalance checks the double-entry invariant: the debit side and the
// credit side must sum to the same positive total.
func validateBalance(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return ErrJournalMinLines
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		if line.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: line amount must be positive for account %s", apperrors.ErrValidation, line.AccountCode)
		}
		if line.EntryType == domain.Debit {
			debits = debits.Add(line.Amount)
		} else {
			credits = credits.Add(line.Amount)
		}
	}

	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits sum to %s, credits sum to %s", ErrJournalUnbalanced, debits.String(), credits.String())
	}
	return nil
}

// journalAmount computes the economic value of a balanced journal: the sum of
// its debit side.
func journalAmount(lines []domain.JournalLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		if line.EntryType == domain.Debit {
			total = total.Add(line.Amount)
		}
	}
	return total
}

// CreateJournal validates and posts a balanced journal entry. The journal,
// its lines and the account balance updates are persisted atomically.
func (s *journalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Lines) < 2 {
		return nil, ErrJournalMinLines
	}
	if req.Description == "" {
		return nil, ErrDescriptionMissing
	}

	accountSet := make(map[string]struct{})
	codes := make([]string, 0, len(req.Lines))
	for _, line := range req.Lines {
		if _, seen := accountSet[line.AccountCode]; !seen {
			accountSet[line.AccountCode] = struct{}{}
			codes = append(codes, line.AccountCode)
		}
	}
	if len(accountSet) < 2 {
		return nil, ErrJournalMinAccounts
	}

	accountsByCode, err := s.accountSvc.GetAccountsByCodes(ctx, codes)
	if err != nil {
		logger.Error("Failed to fetch accounts for journal creation", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, code := range codes {
		acc, found := accountsByCode[code]
		if !found {
			return nil, fmt.Errorf("%w: code %s", ErrAccountNotFound, code)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", ErrAccountNotPostable, code)
		}
		if acc.AccountType != domain.Detail {
			return nil, fmt.Errorf("%w: account %s is a header account", ErrAccountNotPostable, code)
		}
	}

	now := time.Now().UTC()
	journalID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	lines := make([]domain.JournalLine, len(req.Lines))
	for i, lineReq := range req.Lines {
		acc := accountsByCode[lineReq.AccountCode]
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			JournalID:   journalID,
			AccountID:   acc.AccountID,
			AccountCode: acc.Code,
			Amount:      lineReq.Amount,
			EntryType:   lineReq.EntryType,
			Notes:       lineReq.Notes,
			AuditFields: audit,
		}
	}

	if err := validateBalance(lines); err != nil {
		return nil, err
	}

	balanceChanges := make(map[string]decimal.Decimal)
	for _, line := range lines {
		acc := accountsByCode[line.AccountCode]
		delta, err := signedAmount(line, acc.Category)
		if err != nil {
			logger.Error("Failed to compute balance delta", slog.String("error", err.Error()), slog.String("line_id", line.LineID))
			return nil, fmt.Errorf("internal error computing balance changes: %w", err)
		}
		balanceChanges[line.AccountID] = balanceChanges[line.AccountID].Add(delta)
	}

	journal := domain.Journal{
		JournalID:   journalID,
		JournalDate: req.Date,
		Description: req.Description,
		Reference:   req.Reference,
		Status:      domain.Posted,
		AuditFields: audit,
		Amount:      journalAmount(lines),
	}

	if err := s.journalRepo.SaveJournal(ctx, journal, lines, balanceChanges); err != nil {
		logger.Error("Failed to save journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to save journal: %w", err)
	}

	logger.Info("Journal posted", slog.String("journal_id", journalID), slog.String("reference", req.Reference))
	journal.Lines = lines
	return &journal, nil
}

// GetJournalByID retrieves a journal together with its lines.
func (s *journalService) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find journal by ID", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		}
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}

	lines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		logger.Error("Failed to fetch journal lines", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to retrieve lines for journal %s: %w", journalID, apperrors.ErrInternal)
	}
	journal.Lines = lines

	return journal, nil
}

// ListJournals retrieves a paginated list of journals without lines.
func (s *journalService) ListJournals(ctx context.Context, params dto.ListJournalsParams) ([]domain.Journal, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	journals, err := s.journalRepo.ListJournals(ctx, limit, params.Offset)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list journals", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve journals: %w", err)
	}
	return journals, nil
}
