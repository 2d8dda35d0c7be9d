package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/voyagebooks/voyage_backoffice/internal/core/domain"
	portsrepo "github.com/voyagebooks/voyage_backoffice/internal/core/ports/repositories"
	portssvc "github.com/voyagebooks/voyage_backoffice/internal/core/ports/services"
	"github.com/voyagebooks/voyage_backoffice/internal/core/services"
	"github.com/voyagebooks/voyage_backoffice/internal/dto"
)

// MockSalesRepository is a mock type for the SalesRepositoryFacade interface
type MockSalesRepository struct {
	mock.Mock
}

var _ portsrepo.SalesRepositoryFacade = (*MockSalesRepository)(nil)

func (m *MockSalesRepository) FindSalesTransactionByID(ctx context.Context, id string) (*domain.SalesTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesTransaction), args.Error(1)
}

func (m *MockSalesRepository) ListSalesTransactions(ctx context.Context, limit int, offset int) ([]domain.SalesTransaction, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalesTransaction), args.Error(1)
}

func (m *MockSalesRepository) ListPendingSalesTransactions(ctx context.Context) ([]domain.SalesTransaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalesTransaction), args.Error(1)
}

func (m *MockSalesRepository) UpsertSalesTransaction(ctx context.Context, txn domain.SalesTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockSalesRepository) MarkSynced(ctx context.Context, id string, userID string, now time.Time) error {
	args := m.Called(ctx, id, userID, now)
	return args.Error(0)
}

// MockSyncConfigRepository is a mock type for the SyncConfigRepositoryFacade interface
type MockSyncConfigRepository struct {
	mock.Mock
}

var _ portsrepo.SyncConfigRepositoryFacade = (*MockSyncConfigRepository)(nil)

func (m *MockSyncConfigRepository) ListAccountMappings(ctx context.Context) ([]domain.AccountMapping, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountMapping), args.Error(1)
}

func (m *MockSyncConfigRepository) GetSyncSettings(ctx context.Context) (*domain.SyncSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncSettings), args.Error(1)
}

func (m *MockSyncConfigRepository) UpsertAccountMapping(ctx context.Context, mapping domain.AccountMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

func (m *MockSyncConfigRepository) UpdateSyncSettings(ctx context.Context, settings domain.SyncSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// MockJournalWriterSvc is a mock type for the JournalWriterSvc interface
type MockJournalWriterSvc struct {
	mock.Mock
}

var _ portssvc.JournalWriterSvc = (*MockJournalWriterSvc)(nil)

func (m *MockJournalWriterSvc) CreateJournal(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

// --- Test Suite Setup ---

type SyncServiceTestSuite struct {
	suite.Suite
	mockSales   *MockSalesRepository
	mockSyncCfg *MockSyncConfigRepository
	mockJournal *MockJournalWriterSvc
	service     portssvc.SyncSvcFacade
}

func (suite *SyncServiceTestSuite) SetupTest() {
	suite.mockSales = new(MockSalesRepository)
	suite.mockSyncCfg = new(MockSyncConfigRepository)
	suite.mockJournal = new(MockJournalWriterSvc)
	suite.service = services.NewSyncService(suite.mockSales, suite.mockSyncCfg, suite.mockJournal)
}

func defaultMappings() []domain.AccountMapping {
	return []domain.AccountMapping{
		{SalesType: domain.Flight, RevenueAccountCode: "4-1110", ReceivableAccountCode: "1-1200"},
		{SalesType: domain.Hotel, RevenueAccountCode: "4-1120", ReceivableAccountCode: "1-1200"},
	}
}

func pendingSale(salesType domain.SalesType, total string) domain.SalesTransaction {
	amount, _ := decimal.NewFromString(total)
	return domain.SalesTransaction{
		ID:           uuid.NewString(),
		Date:         time.Now().UTC(),
		CustomerName: "Jane Tan",
		Type:         salesType,
		ProductID:    "P-100",
		ProductName:  "SIN-NRT Return",
		Quantity:     1,
		UnitPrice:    amount,
		TotalAmount:  amount,
	}
}

// --- Test Cases ---

func (suite *SyncServiceTestSuite) TestSync_SingleFlightSale_PostsBalancedJournal() {
	ctx := context.Background()
	sale := pendingSale(domain.Flight, "100")

	suite.mockSales.On("ListPendingSalesTransactions", ctx).Return([]domain.SalesTransaction{sale}, nil).Once()
	suite.mockSyncCfg.On("ListAccountMappings", ctx).Return(defaultMappings(), nil).Once()
	suite.mockJournal.On("CreateJournal", ctx, mock.MatchedBy(func(req dto.CreateJournalRequest) bool {
		if req.Reference != sale.ID || len(req.Lines) != 2 {
			return false
		}
		debit, credit := req.Lines[0], req.Lines[1]
		return debit.EntryType == domain.Debit &&
			debit.AccountCode == "1-1200" &&
			debit.Amount.Equal(decimal.NewFromInt(100)) &&
			credit.EntryType == domain.Credit &&
			credit.AccountCode == "4-1110" &&
			credit.Amount.Equal(decimal.NewFromInt(100))
	}), mock.AnythingOfType("string")).Return(&domain.Journal{JournalID: uuid.NewString()}, nil).Once()
	suite.mockSales.On("MarkSynced", ctx, sale.ID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := suite.service.Sync(ctx)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.True(result.Success)
	suite.Equal(1, result.SyncedCount)
	suite.Equal(0, result.FailedCount)
	suite.Empty(result.Errors)
	suite.mockSales.AssertExpectations(suite.T())
	suite.mockJournal.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestSync_MissingMapping_RecordsFailureAndKeepsPending() {
	ctx := context.Background()
	sale := pendingSale(domain.Hotel, "250")

	// Only the flight mapping is configured.
	suite.mockSales.On("ListPendingSalesTransactions", ctx).Return([]domain.SalesTransaction{sale}, nil).Once()
	suite.mockSyncCfg.On("ListAccountMappings", ctx).Return([]domain.AccountMapping{
		{SalesType: domain.Flight, RevenueAccountCode: "4-1110", ReceivableAccountCode: "1-1200"},
	}, nil).Once()

	result, err := suite.service.Sync(ctx)

	suite.Require().NoError(err)
	suite.False(result.Success)
	suite.Equal(0, result.SyncedCount)
	suite.Equal(1, result.FailedCount)
	suite.Require().Len(result.Errors, 1)
	suite.Equal("No account mapping for type hotel", result.Errors[0])
	suite.mockJournal.AssertNotCalled(suite.T(), "CreateJournal", mock.Anything, mock.Anything, mock.Anything)
	suite.mockSales.AssertNotCalled(suite.T(), "MarkSynced", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SyncServiceTestSuite) TestSync_PartialFailure_ContinuesPastFailedItem() {
	ctx := context.Background()
	ok1 := pendingSale(domain.Flight, "100")
	bad := pendingSale(domain.Flight, "200")
	ok2 := pendingSale(domain.Hotel, "300")

	suite.mockSales.On("ListPendingSalesTransactions", ctx).Return([]domain.SalesTransaction{ok1, bad, ok2}, nil).Once()
	suite.mockSyncCfg.On("ListAccountMappings", ctx).Return(defaultMappings(), nil).Once()

	postErr := errors.New("account 4-1110 is inactive")
	suite.mockJournal.On("CreateJournal", ctx, mock.MatchedBy(func(req dto.CreateJournalRequest) bool {
		return req.Reference == bad.ID
	}), mock.AnythingOfType("string")).Return(nil, postErr).Once()
	suite.mockJournal.On("CreateJournal", ctx, mock.MatchedBy(func(req dto.CreateJournalRequest) bool {
		return req.Reference != bad.ID
	}), mock.AnythingOfType("string")).Return(&domain.Journal{}, nil).Twice()
	suite.mockSales.On("MarkSynced", ctx, ok1.ID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockSales.On("MarkSynced", ctx, ok2.ID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := suite.service.Sync(ctx)

	suite.Require().NoError(err)
	suite.False(result.Success)
	suite.Equal(2, result.SyncedCount)
	suite.Equal(1, result.FailedCount)
	suite.Require().Len(result.Errors, 1)
	suite.Equal(fmt.Sprintf("Failed to post transaction %s: %v", bad.ID, postErr), result.Errors[0])
	suite.mockSales.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestSync_EmptyQueue_SucceedsWithZeroCounts() {
	ctx := context.Background()

	suite.mockSales.On("ListPendingSalesTransactions", ctx).Return([]domain.SalesTransaction{}, nil).Once()
	suite.mockSyncCfg.On("ListAccountMappings", ctx).Return(defaultMappings(), nil).Once()

	result, err := suite.service.Sync(ctx)

	suite.Require().NoError(err)
	suite.True(result.Success)
	suite.Equal(0, result.SyncedCount)
	suite.Equal(0, result.FailedCount)
	suite.Empty(result.Errors)
	suite.mockJournal.AssertNotCalled(suite.T(), "CreateJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SyncServiceTestSuite) TestSync_QueueUnreadable_ReturnsError() {
	ctx := context.Background()

	suite.mockSales.On("ListPendingSalesTransactions", ctx).Return(nil, errors.New("connection refused")).Once()

	result, err := suite.service.Sync(ctx)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "failed to read pending sales queue")
}

func (suite *SyncServiceTestSuite) TestSync_MappingStoreUnreadable_ReturnsError() {
	ctx := context.Background()

	suite.mockSales.On("ListPendingSalesTransactions", ctx).Return([]domain.SalesTransaction{}, nil).Once()
	suite.mockSyncCfg.On("ListAccountMappings", ctx).Return(nil, errors.New("connection refused")).Once()

	result, err := suite.service.Sync(ctx)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "failed to read account mappings")
}

func (suite *SyncServiceTestSuite) TestSync_MarkSyncedFailure_CountsAsFailed() {
	ctx := context.Background()
	sale := pendingSale(domain.Flight, "100")

	suite.mockSales.On("ListPendingSalesTransactions", ctx).Return([]domain.SalesTransaction{sale}, nil).Once()
	suite.mockSyncCfg.On("ListAccountMappings", ctx).Return(defaultMappings(), nil).Once()
	suite.mockJournal.On("CreateJournal", ctx, mock.Anything, mock.AnythingOfType("string")).Return(&domain.Journal{}, nil).Once()
	suite.mockSales.On("MarkSynced", ctx, sale.ID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(errors.New("connection reset")).Once()

	result, err := suite.service.Sync(ctx)

	suite.Require().NoError(err)
	suite.False(result.Success)
	suite.Equal(0, result.SyncedCount)
	suite.Equal(1, result.FailedCount)
	suite.Require().Len(result.Errors, 1)
	suite.Contains(result.Errors[0], fmt.Sprintf("Failed to mark transaction %s as synced", sale.ID))
}

func (suite *SyncServiceTestSuite) TestSync_OverlappingInvocation_ReturnsSyncInProgress() {
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})

	suite.mockSales.On("ListPendingSalesTransactions", ctx).Run(func(args mock.Arguments) {
		close(entered)
		<-release
	}).Return([]domain.SalesTransaction{}, nil).Once()
	suite.mockSyncCfg.On("ListAccountMappings", ctx).Return(defaultMappings(), nil).Once()

	firstDone := make(chan error, 1)
	go func() {
		_, err := suite.service.Sync(ctx)
		firstDone <- err
	}()

	<-entered
	result, err := suite.service.Sync(ctx)
	suite.Require().ErrorIs(err, services.ErrSyncInProgress)
	suite.Nil(result)

	close(release)
	suite.Require().NoError(<-firstDone)

	// Once the first pass finishes, syncing is possible again.
	suite.mockSales.On("ListPendingSalesTransactions", ctx).Return([]domain.SalesTransaction{}, nil).Once()
	suite.mockSyncCfg.On("ListAccountMappings", ctx).Return(defaultMappings(), nil).Once()
	_, err = suite.service.Sync(ctx)
	suite.NoError(err)
}

func (suite *SyncServiceTestSuite) TestSync_UsesSaleNotesAsJournalDescription() {
	ctx := context.Background()
	sale := pendingSale(domain.Flight, "100")
	sale.Notes = "VIP client booking"

	suite.mockSales.On("ListPendingSalesTransactions", ctx).Return([]domain.SalesTransaction{sale}, nil).Once()
	suite.mockSyncCfg.On("ListAccountMappings", ctx).Return(defaultMappings(), nil).Once()
	suite.mockJournal.On("CreateJournal", ctx, mock.MatchedBy(func(req dto.CreateJournalRequest) bool {
		return req.Description == "VIP client booking"
	}), mock.AnythingOfType("string")).Return(&domain.Journal{}, nil).Once()
	suite.mockSales.On("MarkSynced", ctx, sale.ID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := suite.service.Sync(ctx)

	suite.Require().NoError(err)
	suite.True(result.Success)
	suite.mockJournal.AssertExpectations(suite.T())
}

func TestSyncServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SyncServiceTestSuite))
}
