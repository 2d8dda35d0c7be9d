package services

import (
	"context"

	"github.com/voyagebooks/voyage_backoffice/internal/core/domain"
	"github.com/voyagebooks/voyage_backoffice/internal/dto"
)

// UserSvcFacade defines operations over operator accounts.
type UserSvcFacade interface {
	// CreateUser persists a new operator account with a hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)

	// GetUserByID retrieves a user by their unique identifier.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// Authenticate verifies the credentials and returns the matching user.
	Authenticate(ctx context.Context, username string, password string) (*domain.User, error)
}
