package domain

import "github.com/shopspring/decimal"

// TrialBalanceRow holds per-account debit and credit totals across all posted
// journals. Balanced books show equal grand totals for both columns.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Category    AccountCategory `json:"category"`
	DebitTotal  decimal.Decimal `json:"debitTotal"`
	CreditTotal decimal.Decimal `json:"creditTotal"`
}

// SalesSummary aggregates sales activity for the dashboard.
type SalesSummary struct {
	TotalCount    int                           `json:"totalCount"`
	PendingCount  int                           `json:"pendingCount"`
	SyncedCount   int                           `json:"syncedCount"`
	TotalRevenue  decimal.Decimal               `json:"totalRevenue"`
	RevenueByType map[SalesType]decimal.Decimal `json:"revenueByType"`
}
