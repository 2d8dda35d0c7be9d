package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/voyagebooks/voyage_backoffice/internal/core/domain"
	portsrepo "github.com/voyagebooks/voyage_backoffice/internal/core/ports/repositories"
	portssvc "github.com/voyagebooks/voyage_backoffice/internal/core/ports/services"
	"github.com/voyagebooks/voyage_backoffice/internal/dto"
	"github.com/voyagebooks/voyage_backoffice/internal/middleware"
)

// ErrSyncInProgress is returned when Sync is invoked while a previous
// invocation is still running. The new invocation is skipped entirely;
// nothing is processed twice.
var ErrSyncInProgress = errors.New("sync already in progress")

// syncActorID is the audit identity used when a sync pass is not triggered by
// an authenticated request (timer fires).
const syncActorID = "SYSTEM_SYNC"

// syncService drains the pending sales queue and posts one balanced journal
// entry per transaction, using the configured account mappings.
type syncService struct {
	salesRepo  portsrepo.SalesRepositoryFacade
	syncCfg    portsrepo.SyncConfigReader
	journalSvc portssvc.JournalWriterSvc

	inFlight atomic.Bool
}

// NewSyncService creates the sync engine.
func NewSyncService(salesRepo portsrepo.SalesRepositoryFacade, syncCfg portsrepo.SyncConfigReader, journalSvc portssvc.JournalWriterSvc) portssvc.SyncSvcFacade {
	return &syncService{
		salesRepo:  salesRepo,
		syncCfg:    syncCfg,
		journalSvc: journalSvc,
	}
}

var _ portssvc.SyncSvcFacade = (*syncService)(nil)

// Sync processes every pending sales transaction in insertion order.
//
// Per-item failures (missing mapping, rejected posting) are recorded in the
// result and never abort the batch: the transaction stays pending and is
// retried on the next invocation. Only infrastructure failures - the queue or
// the mapping store being unreadable, or an overlapping invocation - are
// returned as an error.
func (s *syncService) Sync(ctx context.Context) (*domain.SyncResult, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSyncInProgress
	}
	defer s.inFlight.Store(false)

	logger := middleware.GetLoggerFromCtx(ctx)

	actorID := syncActorID
	if userID, ok := middleware.GetUserIDFromCtx(ctx); ok {
		actorID = userID
	}

	pending, err := s.salesRepo.ListPendingSalesTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read pending sales queue: %w", err)
	}

	mappings, err := s.syncCfg.ListAccountMappings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read account mappings: %w", err)
	}
	mappingByType := make(map[domain.SalesType]domain.AccountMapping, len(mappings))
	for _, m := range mappings {
		mappingByType[m.SalesType] = m
	}

	result := &domain.SyncResult{Errors: []string{}}
	for _, txn := range pending {
		mapping, ok := mappingByType[txn.Type]
		if !ok {
			result.FailedCount++
			result.Errors = append(result.Errors, fmt.Sprintf("No account mapping for type %s", strings.ToLower(string(txn.Type))))
			continue
		}

		req := dto.CreateJournalRequest{
			Date:        txn.Date,
			Description: saleDescription(txn),
			Reference:   txn.ID,
			Lines: []dto.CreateJournalLineRequest{
				{AccountCode: mapping.ReceivableAccountCode, Amount: txn.TotalAmount, EntryType: domain.Debit, Notes: txn.Notes},
				{AccountCode: mapping.RevenueAccountCode, Amount: txn.TotalAmount, EntryType: domain.Credit, Notes: txn.Notes},
			},
		}

		if _, err := s.journalSvc.CreateJournal(ctx, req, actorID); err != nil {
			result.FailedCount++
			result.Errors = append(result.Errors, fmt.Sprintf("Failed to post transaction %s: %v", txn.ID, err))
			continue
		}

		if err := s.salesRepo.MarkSynced(ctx, txn.ID, actorID, time.Now().UTC()); err != nil {
			// The posting went through but the flag did not stick; the row
			// stays pending and will be re-attempted, so surface it loudly.
			logger.Error("Posted journal but failed to mark sale as synced", slog.String("sales_id", txn.ID), slog.String("error", err.Error()))
			result.FailedCount++
			result.Errors = append(result.Errors, fmt.Sprintf("Failed to mark transaction %s as synced: %v", txn.ID, err))
			continue
		}

		result.SyncedCount++
	}

	result.Success = result.FailedCount == 0
	logger.Info("Sync pass completed",
		slog.Int("pending", len(pending)),
		slog.Int("synced", result.SyncedCount),
		slog.Int("failed", result.FailedCount),
	)
	return result, nil
}

// saleDescription builds the journal description for a sales transaction.
func saleDescription(txn domain.SalesTransaction) string {
	if txn.Notes != "" {
		return txn.Notes
	}
	return fmt.Sprintf("%s sale - %s x%d for %s", string(txn.Type), txn.ProductName, txn.Quantity, txn.CustomerName)
}
