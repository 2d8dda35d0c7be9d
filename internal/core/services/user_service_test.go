package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/voyagebooks/voyage_backoffice/internal/apperrors"
	"github.com/voyagebooks/voyage_backoffice/internal/core/domain"
	portsrepo "github.com/voyagebooks/voyage_backoffice/internal/core/ports/repositories"
	portssvc "github.com/voyagebooks/voyage_backoffice/internal/core/ports/services"
	"github.com/voyagebooks/voyage_backoffice/internal/core/services"
	"github.com/voyagebooks/voyage_backoffice/internal/dto"
	"github.com/voyagebooks/voyage_backoffice/internal/utils"
)

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Test Suite Setup ---

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Username: "agent01", Name: "Agent One", Password: "s3cret-pass"}

	suite.mockRepo.On("FindUserByUsername", ctx, "agent01").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		// The raw password must never reach the repository.
		return u.Username == "agent01" && u.IsActive && u.PasswordHash != req.Password && utils.CheckPasswordHash(req.Password, u.PasswordHash)
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateUsername_Rejected() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Username: "agent01", Name: "Agent One", Password: "s3cret-pass"}

	suite.mockRepo.On("FindUserByUsername", ctx, "agent01").Return(&domain.User{Username: "agent01"}, nil).Once()

	user, err := suite.service.CreateUser(ctx, req, uuid.NewString())

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(user)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("s3cret-pass")
	suite.Require().NoError(err)

	suite.mockRepo.On("FindUserByUsername", ctx, "agent01").Return(&domain.User{
		UserID:       uuid.NewString(),
		Username:     "agent01",
		PasswordHash: hash,
		IsActive:     true,
	}, nil).Once()

	user, err := suite.service.Authenticate(ctx, "agent01", "s3cret-pass")

	suite.Require().NoError(err)
	suite.Equal("agent01", user.Username)
}

func (suite *UserServiceTestSuite) TestAuthenticate_WrongPassword_Rejected() {
	ctx := context.Background()
	hash, err := utils.HashPassword("s3cret-pass")
	suite.Require().NoError(err)

	suite.mockRepo.On("FindUserByUsername", ctx, "agent01").Return(&domain.User{
		Username:     "agent01",
		PasswordHash: hash,
		IsActive:     true,
	}, nil).Once()

	user, err := suite.service.Authenticate(ctx, "agent01", "wrong-pass")

	suite.Require().ErrorIs(err, services.ErrInvalidCredentials)
	suite.Nil(user)
}

func (suite *UserServiceTestSuite) TestAuthenticate_UnknownUser_SameError() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.Authenticate(ctx, "ghost", "whatever")

	suite.Require().ErrorIs(err, services.ErrInvalidCredentials)
	suite.Nil(user)
}

func (suite *UserServiceTestSuite) TestAuthenticate_InactiveUser_Rejected() {
	ctx := context.Background()
	hash, err := utils.HashPassword("s3cret-pass")
	suite.Require().NoError(err)

	suite.mockRepo.On("FindUserByUsername", ctx, "agent01").Return(&domain.User{
		Username:     "agent01",
		PasswordHash: hash,
		IsActive:     false,
	}, nil).Once()

	user, err := suite.service.Authenticate(ctx, "agent01", "s3cret-pass")

	suite.Require().ErrorIs(err, services.ErrInvalidCredentials)
	suite.Nil(user)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
