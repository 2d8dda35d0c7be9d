package services_test

import (
	"context"
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

// MockJournalRepository is a mock type for the JournalRepositoryFacade interface
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, journal, lines, balanceChanges)
	return args.Error(0)
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListJournals(ctx context.Context, limit int, offset int) ([]domain.Journal, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

// MockAccountReaderSvc is a mock type for the AccountReaderSvc interface
type MockAccountReaderSvc struct {
	mock.Mock
}

var _ portssvc.AccountReaderSvc = (*MockAccountReaderSvc)(nil)

func (m *MockAccountReaderSvc) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReaderSvc) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReaderSvc) GetAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountReaderSvc) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Test Suite Setup ---

type JournalServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockJournalRepository
	mockAccountSvc *MockAccountReaderSvc
	service        portssvc.JournalSvcFacade

	receivable domain.Account
	revenue    domain.Account
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockJournalRepository)
	suite.mockAccountSvc = new(MockAccountReaderSvc)
	suite.service = services.NewJournalService(suite.mockRepo, suite.mockAccountSvc)

	suite.receivable = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1-1200",
		Name:        "Accounts Receivable",
		Category:    domain.Asset,
		AccountType: domain.Detail,
		IsActive:    true,
	}
	suite.revenue = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "4-1110",
		Name:        "Flight Sales Revenue",
		Category:    domain.Revenue,
		AccountType: domain.Detail,
		IsActive:    true,
	}
}

func (suite *JournalServiceTestSuite) accountsByCode() map[string]domain.Account {
	return map[string]domain.Account{
		suite.receivable.Code: suite.receivable,
		suite.revenue.Code:    suite.revenue,
	}
}

func balancedRequest(amount int64) dto.CreateJournalRequest {
	return dto.CreateJournalRequest{
		Date:        time.Now().UTC(),
		Description: "Flight sale posting",
		Reference:   "TXN-001",
		Lines: []dto.CreateJournalLineRequest{
			{AccountCode: "1-1200", Amount: decimal.NewFromInt(amount), EntryType: domain.Debit},
			{AccountCode: "4-1110", Amount: decimal.NewFromInt(amount), EntryType: domain.Credit},
		},
	}
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestCreateJournal_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := balancedRequest(100)

	suite.mockAccountSvc.On("GetAccountsByCodes", ctx, mock.AnythingOfType("[]string")).Return(suite.accountsByCode(), nil).Once()
	suite.mockRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.JournalLine"), mock.AnythingOfType("map[string]decimal.Decimal")).Return(nil).Once()

	journal, err := suite.service.CreateJournal(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(journal)
	suite.NotEmpty(journal.JournalID)
	suite.Equal(domain.Posted, journal.Status)
	suite.Equal("TXN-001", journal.Reference)
	suite.True(journal.Amount.Equal(decimal.NewFromInt(100)))
	suite.Len(journal.Lines, 2)
	suite.Equal(creatorUserID, journal.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournal_BalanceDeltasFollowCategorySigns() {
	ctx := context.Background()
	req := balancedRequest(100)

	var changes map[string]decimal.Decimal
	suite.mockAccountSvc.On("GetAccountsByCodes", ctx, mock.AnythingOfType("[]string")).Return(suite.accountsByCode(), nil).Once()
	suite.mockRepo.On("SaveJournal", ctx, mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		changes = args.Get(3).(map[string]decimal.Decimal)
	}).Return(nil).Once()

	_, err := suite.service.CreateJournal(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().Len(changes, 2)
	// Debit to an asset account increases its balance; credit to a revenue
	// account also increases it (stored as a positive delta).
	suite.True(changes[suite.receivable.AccountID].Equal(decimal.NewFromInt(100)))
	suite.True(changes[suite.revenue.AccountID].Equal(decimal.NewFromInt(100)))
}

func (suite *JournalServiceTestSuite) TestCreateJournal_Unbalanced_Rejected() {
	ctx := context.Background()
	req := balancedRequest(100)
	req.Lines[1].Amount = decimal.NewFromInt(90)

	suite.mockAccountSvc.On("GetAccountsByCodes", ctx, mock.AnythingOfType("[]string")).Return(suite.accountsByCode(), nil).Once()

	journal, err := suite.service.CreateJournal(ctx, req, uuid.NewString())

	suite.Require().ErrorIs(err, services.ErrJournalUnbalanced)
	suite.Nil(journal)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_SingleLine_Rejected() {
	ctx := context.Background()
	req := balancedRequest(100)
	req.Lines = req.Lines[:1]

	journal, err := suite.service.CreateJournal(ctx, req, uuid.NewString())

	suite.Require().ErrorIs(err, services.ErrJournalMinLines)
	suite.Nil(journal)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_SingleAccount_Rejected() {
	ctx := context.Background()
	req := balancedRequest(100)
	req.Lines[1].AccountCode = "1-1200"

	journal, err := suite.service.CreateJournal(ctx, req, uuid.NewString())

	suite.Require().ErrorIs(err, services.ErrJournalMinAccounts)
	suite.Nil(journal)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_MissingDescription_Rejected() {
	ctx := context.Background()
	req := balancedRequest(100)
	req.Description = ""

	journal, err := suite.service.CreateJournal(ctx, req, uuid.NewString())

	suite.Require().ErrorIs(err, services.ErrDescriptionMissing)
	suite.Nil(journal)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_UnknownAccount_Rejected() {
	ctx := context.Background()
	req := balancedRequest(100)

	// The revenue account does not exist in the chart.
	suite.mockAccountSvc.On("GetAccountsByCodes", ctx, mock.AnythingOfType("[]string")).Return(map[string]domain.Account{
		suite.receivable.Code: suite.receivable,
	}, nil).Once()

	journal, err := suite.service.CreateJournal(ctx, req, uuid.NewString())

	suite.Require().ErrorIs(err, services.ErrAccountNotFound)
	suite.Nil(journal)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_InactiveAccount_Rejected() {
	ctx := context.Background()
	req := balancedRequest(100)
	suite.revenue.IsActive = false

	suite.mockAccountSvc.On("GetAccountsByCodes", ctx, mock.AnythingOfType("[]string")).Return(suite.accountsByCode(), nil).Once()

	journal, err := suite.service.CreateJournal(ctx, req, uuid.NewString())

	suite.Require().ErrorIs(err, services.ErrAccountNotPostable)
	suite.Nil(journal)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_HeaderAccount_Rejected() {
	ctx := context.Background()
	req := balancedRequest(100)
	suite.revenue.AccountType = domain.Header

	suite.mockAccountSvc.On("GetAccountsByCodes", ctx, mock.AnythingOfType("[]string")).Return(suite.accountsByCode(), nil).Once()

	journal, err := suite.service.CreateJournal(ctx, req, uuid.NewString())

	suite.Require().ErrorIs(err, services.ErrAccountNotPostable)
	suite.Nil(journal)
}

func (suite *JournalServiceTestSuite) TestGetJournalByID_IncludesLines() {
	ctx := context.Background()
	journalID := uuid.NewString()
	lines := []domain.JournalLine{
		{LineID: uuid.NewString(), JournalID: journalID, EntryType: domain.Debit},
		{LineID: uuid.NewString(), JournalID: journalID, EntryType: domain.Credit},
	}

	suite.mockRepo.On("FindJournalByID", ctx, journalID).Return(&domain.Journal{JournalID: journalID}, nil).Once()
	suite.mockRepo.On("FindLinesByJournalID", ctx, journalID).Return(lines, nil).Once()

	journal, err := suite.service.GetJournalByID(ctx, journalID)

	suite.Require().NoError(err)
	suite.Len(journal.Lines, 2)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
