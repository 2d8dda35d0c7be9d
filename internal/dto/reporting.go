package dto

import (
	"github.com/shopspring/decimal"
	"github.com/voyagebooks/voyage_backoffice/internal/core/domain"
)

// TrialBalanceRowResponse is one account row of the trial balance report.
type TrialBalanceRowResponse struct {
	Code        string                 `json:"code"`
	Name        string                 `json:"name"`
	Category    domain.AccountCategory `json:"category"`
	DebitTotal  decimal.Decimal        `json:"debitTotal"`
	CreditTotal decimal.Decimal        `json:"creditTotal"`
}

// TrialBalanceResponse wraps the trial balance rows with grand totals.
type TrialBalanceResponse struct {
	Rows        []TrialBalanceRowResponse `json:"rows"`
	DebitTotal  decimal.Decimal           `json:"debitTotal"`
	CreditTotal decimal.Decimal           `json:"creditTotal"`
}

// SalesSummaryResponse aggregates sales activity for the dashboard.
type SalesSummaryResponse struct {
	TotalCount    int                        `json:"totalCount"`
	PendingCount  int                        `json:"pendingCount"`
	SyncedCount   int                        `json:"syncedCount"`
	TotalRevenue  decimal.Decimal            `json:"totalRevenue"`
	RevenueByType map[string]decimal.Decimal `json:"revenueByType"`
}

// ToTrialBalanceResponse converts trial balance rows to the report DTO,
// accumulating the grand totals.
func ToTrialBalanceResponse(rows []domain.TrialBalanceRow) TrialBalanceResponse {
	resp := TrialBalanceResponse{
		Rows:        make([]TrialBalanceRowResponse, len(rows)),
		DebitTotal:  decimal.Zero,
		CreditTotal: decimal.Zero,
	}
	for i, row := range rows {
		resp.Rows[i] = TrialBalanceRowResponse{
			Code:        row.Code,
			Name:        row.Name,
			Category:    row.Category,
			DebitTotal:  row.DebitTotal,
			CreditTotal: row.CreditTotal,
		}
		resp.DebitTotal = resp.DebitTotal.Add(row.DebitTotal)
		resp.CreditTotal = resp.CreditTotal.Add(row.CreditTotal)
	}
	return resp
}

// ToSalesSummaryResponse converts a domain.SalesSummary to its DTO.
func ToSalesSummaryResponse(s *domain.SalesSummary) SalesSummaryResponse {
	byType := make(map[string]decimal.Decimal, len(s.RevenueByType))
	for t, amount := range s.RevenueByType {
		byType[string(t)] = amount
	}
	return SalesSummaryResponse{
		TotalCount:    s.TotalCount,
		PendingCount:  s.PendingCount,
		SyncedCount:   s.SyncedCount,
		TotalRevenue:  s.TotalRevenue,
		RevenueByType: byType,
	}
}
