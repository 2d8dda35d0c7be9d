package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/voyagebooks/voyage_backoffice/internal/core/domain"
	portsrepo "github.com/voyagebooks/voyage_backoffice/internal/core/ports/repositories"
)

type reportingRepository struct {
	pool *pgxpool.Pool
}

// NewReportingRepository creates a new repository for aggregate reports.
func NewReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &reportingRepository{pool: pool}
}

// GetTrialBalance returns per-account debit and credit totals across all
// posted journals, ordered by account code. Accounts with no postings are
// included with zero totals so the report shows the full chart.
func (r *reportingRepository) GetTrialBalance(ctx context.Context) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			a.category,
			COALESCE(SUM(jl.amount) FILTER (WHERE jl.entry_type = 'DEBIT'), 0)  AS debit_total,
			COALESCE(SUM(jl.amount) FILTER (WHERE jl.entry_type = 'CREDIT'), 0) AS credit_total
		FROM accounts a
		LEFT JOIN journal_lines jl ON jl.account_id = a.account_id
		LEFT JOIN journals j ON j.journal_id = jl.journal_id AND j.status = 'POSTED'
		WHERE a.account_type = 'DETAIL'
		GROUP BY a.account_id, a.code, a.name, a.category
		ORDER BY a.code;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query trial balance: %w", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		err := rows.Scan(
			&row.AccountID,
			&row.Code,
			&row.Name,
			&row.Category,
			&row.DebitTotal,
			&row.CreditTotal,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trial balance row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trial balance rows: %w", err)
	}
	return result, nil
}

// GetSalesSummary returns aggregate counts and revenue for the dashboard.
func (r *reportingRepository) GetSalesSummary(ctx context.Context) (*domain.SalesSummary, error) {
	summary := &domain.SalesSummary{
		TotalRevenue:  decimal.Zero,
		RevenueByType: map[domain.SalesType]decimal.Decimal{},
	}

	totalsQuery := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE NOT synced_to_accounting),
			COUNT(*) FILTER (WHERE synced_to_accounting),
			COALESCE(SUM(total_amount), 0)
		FROM sales_transactions;
	`
	err := r.pool.QueryRow(ctx, totalsQuery).Scan(
		&summary.TotalCount,
		&summary.PendingCount,
		&summary.SyncedCount,
		&summary.TotalRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales totals: %w", err)
	}

	byTypeQuery := `
		SELECT sales_type, COALESCE(SUM(total_amount), 0)
		FROM sales_transactions
		GROUP BY sales_type;
	`
	rows, err := r.pool.Query(ctx, byTypeQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query revenue by type: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var salesType domain.SalesType
		var revenue decimal.Decimal
		if err := rows.Scan(&salesType, &revenue); err != nil {
			return nil, fmt.Errorf("failed to scan revenue by type row: %w", err)
		}
		summary.RevenueByType[salesType] = revenue
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate revenue rows: %w", err)
	}
	return summary, nil
}
