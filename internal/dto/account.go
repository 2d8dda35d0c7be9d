package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/voyagebooks/voyage_backoffice/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a chart-of-accounts entry.
type CreateAccountRequest struct {
	Code            string                 `json:"code" binding:"required,accountcode"`
	Name            string                 `json:"name" binding:"required"`
	Category        domain.AccountCategory `json:"category" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	AccountType     domain.AccountType     `json:"accountType" binding:"required,oneof=HEADER DETAIL"`
	ParentAccountID *string                `json:"parentAccountID"` // Optional
	Description     string                 `json:"description"`     // Optional
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateAccountRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string                 `json:"accountID"`
	Code            string                 `json:"code"`
	Name            string                 `json:"name"`
	Category        domain.AccountCategory `json:"category"`
	AccountType     domain.AccountType     `json:"accountType"`
	ParentAccountID string                 `json:"parentAccountID"` // Empty string if null in DB
	Description     string                 `json:"description"`
	IsActive        bool                   `json:"isActive"`
	Balance         decimal.Decimal        `json:"balance"`
	CreatedAt       time.Time              `json:"createdAt"`
	LastUpdatedAt   time.Time              `json:"lastUpdatedAt"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		Code:            acc.Code,
		Name:            acc.Name,
		Category:        acc.Category,
		AccountType:     acc.AccountType,
		ParentAccountID: acc.ParentAccountID,
		Description:     acc.Description,
		IsActive:        acc.IsActive,
		Balance:         acc.Balance,
		CreatedAt:       acc.CreatedAt,
		LastUpdatedAt:   acc.LastUpdatedAt,
	}
}

// ToListAccountsResponse converts a slice of domain.Account to the list DTO.
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return ListAccountsResponse{Accounts: res}
}
