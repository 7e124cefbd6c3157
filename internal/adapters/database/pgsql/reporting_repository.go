package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/obeng-labs/agencyledger/internal/core/domain"
	portsrepo "github.com/obeng-labs/agencyledger/internal/core/ports/repositories"
)

// reportingRepository implements the read-only dashboard aggregates.
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetDailyTotals aggregates counts and sums for the calendar day starting at day.
func (r *reportingRepository) GetDailyTotals(ctx context.Context, companyID string, day time.Time) (*domain.DailyTotals, error) {
	dayStart := day.Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	totals := &domain.DailyTotals{
		ByChannel: make(map[domain.Channel]int),
		ByStatus:  make(map[domain.TransactionStatus]int),
	}

	sumQuery := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN type = 'deposit' AND status = 'completed' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'withdrawal' AND status = 'completed' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'completed' THEN fee ELSE 0 END), 0)
		FROM transactions
		WHERE company_id = $1 AND created_at >= $2 AND created_at < $3;
	`
	err := r.Pool.QueryRow(ctx, sumQuery, companyID, dayStart, dayEnd).Scan(
		&totals.TransactionCount,
		&totals.DepositsTotal,
		&totals.WithdrawalsTotal,
		&totals.FeesTotal,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying daily totals: %w", err)
	}

	groupQuery := `
		SELECT channel, status, COUNT(*)
		FROM transactions
		WHERE company_id = $1 AND created_at >= $2 AND created_at < $3
		GROUP BY channel, status;
	`
	rows, err := r.Pool.Query(ctx, groupQuery, companyID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("error querying daily breakdown: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var channel domain.Channel
		var status domain.TransactionStatus
		var count int
		if err := rows.Scan(&channel, &status, &count); err != nil {
			return nil, fmt.Errorf("error scanning daily breakdown row: %w", err)
		}
		totals.ByChannel[channel] += count
		totals.ByStatus[status] += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily breakdown rows: %w", err)
	}

	return totals, nil
}

// CountPendingApprovals counts transactions still awaiting a decision.
func (r *reportingRepository) CountPendingApprovals(ctx context.Context, companyID string) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM transactions WHERE company_id = $1 AND status = 'pending';
	`, companyID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting pending approvals: %w", err)
	}
	return count, nil
}

// GetTopAgents ranks agents by completed volume since the given time.
func (r *reportingRepository) GetTopAgents(ctx context.Context, companyID string, since time.Time, limit int) ([]domain.AgentVolume, error) {
	query := `
		SELECT initiated_by, COUNT(*), COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE company_id = $1 AND status = 'completed' AND created_at >= $2
		GROUP BY initiated_by
		ORDER BY COALESCE(SUM(amount), 0) DESC
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying top agents: %w", err)
	}
	defer rows.Close()

	result := []domain.AgentVolume{}
	for rows.Next() {
		var row domain.AgentVolume
		var volume decimal.Decimal
		if err := rows.Scan(&row.UserID, &row.TransactionCount, &volume); err != nil {
			return nil, fmt.Errorf("error scanning top agent row: %w", err)
		}
		row.TotalVolume = volume
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top agent rows: %w", err)
	}

	return result, nil
}
