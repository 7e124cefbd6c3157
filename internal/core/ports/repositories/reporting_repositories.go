package repositories

import (
	"context"
	"time"

	"github.com/obeng-labs/agencyledger/internal/core/domain"
)

// ReportingRepository defines the read-only aggregate queries behind the
// dashboard. These never mutate ledger state.
type ReportingRepository interface {
	// GetDailyTotals aggregates counts and sums for the given calendar day.
	GetDailyTotals(ctx context.Context, companyID string, day time.Time) (*domain.DailyTotals, error)

	// CountPendingApprovals counts transactions awaiting a decision.
	CountPendingApprovals(ctx context.Context, companyID string) (int, error)

	// GetTopAgents ranks agents by completed volume since the given time.
	GetTopAgents(ctx context.Context, companyID string, since time.Time, limit int) ([]domain.AgentVolume, error)
}
