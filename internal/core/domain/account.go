package domain

import (
	"github.com/shopspring/decimal"
)

// AccountCategory defines the fundamental accounting classification of a ledger account.
type AccountCategory string

const (
	Asset     AccountCategory = "ASSET"
	Liability AccountCategory = "LIABILITY"
	Equity    AccountCategory = "EQUITY"
	Revenue   AccountCategory = "REVENUE"
	Expense   AccountCategory = "EXPENSE"
)

// AccountType distinguishes aggregation-only accounts from postable ones.
// Header accounts group their children in reports and must never receive journal lines.
type AccountType string

const (
	Header AccountType = "HEADER"
	Detail AccountType = "DETAIL"
)

// Account represents a chart-of-accounts entry.
// Code follows the numbered convention used on financial reports (e.g. "4-1110").
type Account struct {
	AccountID       string          `json:"accountID"` // Primary key (UUID)
	Code            string          `json:"code"`      // Unique ledger code, e.g. "1-1200"
	Name            string          `json:"name"`
	Category        AccountCategory `json:"category"`
	AccountType     AccountType     `json:"accountType"`
	ParentAccountID string          `json:"parentAccountID"` // Nullable FK -> accounts.account_id
	Description     string          `json:"description"`
	IsActive        bool            `json:"isActive"`
	AuditFields
	Balance decimal.Decimal `json:"balance"` // Persisted running balance
}

// Postable reports whether the account may receive journal lines.
func (a Account) Postable() bool {
	return a.IsActive && a.AccountType == Detail
}
