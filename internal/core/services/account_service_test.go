package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/voyagebooks/voyage_backoffice/internal/apperrors"
	"github.com/voyagebooks/voyage_backoffice/internal/core/domain"
	portsrepo "github.com/voyagebooks/voyage_backoffice/internal/core/ports/repositories"
	portssvc "github.com/voyagebooks/voyage_backoffice/internal/core/ports/services"
	"github.com/voyagebooks/voyage_backoffice/internal/core/services"
	"github.com/voyagebooks/voyage_backoffice/internal/dto"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateAccountRequest{
		Code:        "4-1130",
		Name:        "Tour Package Revenue",
		Category:    domain.Revenue,
		AccountType: domain.Detail,
	}

	suite.mockRepo.On("FindAccountByCode", ctx, "4-1130").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal("4-1130", account.Code)
	suite.True(account.IsActive)
	suite.True(account.Balance.IsZero())
	suite.Equal(creatorUserID, account.CreatedBy)
	suite.WithinDuration(time.Now(), account.CreatedAt, time.Second)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode_Rejected() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "4-1110",
		Name:        "Flight Sales Revenue",
		Category:    domain.Revenue,
		AccountType: domain.Detail,
	}

	suite.mockRepo.On("FindAccountByCode", ctx, "4-1110").Return(&domain.Account{Code: "4-1110"}, nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, uuid.NewString())

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(account)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_NonHeaderParent_Rejected() {
	ctx := context.Background()
	parentID := uuid.NewString()
	req := dto.CreateAccountRequest{
		Code:            "4-1131",
		Name:            "Nested Revenue",
		Category:        domain.Revenue,
		AccountType:     domain.Detail,
		ParentAccountID: &parentID,
	}

	suite.mockRepo.On("FindAccountByCode", ctx, "4-1131").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindAccountByID", ctx, parentID).Return(&domain.Account{
		AccountID:   parentID,
		Code:        "4-1110",
		AccountType: domain.Detail,
	}, nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, uuid.NewString())

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(account)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_PartialFields() {
	ctx := context.Background()
	accountID := uuid.NewString()
	newName := "Trade Receivables"

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(&domain.Account{
		AccountID: accountID,
		Code:      "1-1200",
		Name:      "Accounts Receivable",
		IsActive:  true,
	}, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == newName && a.IsActive
	})).Return(nil).Once()

	account, err := suite.service.UpdateAccount(ctx, accountID, dto.UpdateAccountRequest{Name: &newName}, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(newName, account.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NoFields_NoWrite() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(&domain.Account{AccountID: accountID}, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, accountID, dto.UpdateAccountRequest{}, uuid.NewString())

	suite.Require().NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockRepo.On("DeactivateAccount", ctx, accountID, userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, accountID, userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
