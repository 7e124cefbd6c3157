package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/obeng-labs/agencyledger/internal/apperrors"
	"github.com/obeng-labs/agencyledger/internal/core/domain"
	portsrepo "github.com/obeng-labs/agencyledger/internal/core/ports/repositories"
)

type PgxCompanyRepository struct {
	BaseRepository
}

// newPgxCompanyRepository creates a read-only repository over company,
// membership and plan records.
func newPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

func (r *PgxCompanyRepository) FindMembership(ctx context.Context, userID, companyID string) (*domain.Membership, error) {
	query := `
		SELECT membership_id, user_id, company_id, role, branch_id, is_active, joined_at
		FROM memberships
		WHERE user_id = $1 AND company_id = $2;
	`
	var m domain.Membership
	err := r.Pool.QueryRow(ctx, query, userID, companyID).Scan(
		&m.MembershipID,
		&m.UserID,
		&m.CompanyID,
		&m.Role,
		&m.BranchID,
		&m.IsActive,
		&m.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find membership for user %s: %w", userID, err)
	}
	return &m, nil
}

func (r *PgxCompanyRepository) FindSettings(ctx context.Context, companyID string) (*domain.CompanySettings, error) {
	query := `
		SELECT company_id, require_approval_above, default_currency,
		       deposit_fee_percent, withdrawal_fee_percent, transfer_fee_flat
		FROM company_settings
		WHERE company_id = $1;
	`
	var s domain.CompanySettings
	err := r.Pool.QueryRow(ctx, query, companyID).Scan(
		&s.CompanyID,
		&s.RequireApprovalAbove,
		&s.DefaultCurrency,
		&s.DepositFeePercent,
		&s.WithdrawalFeePercent,
		&s.TransferFeeFlat,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find settings for company %s: %w", companyID, err)
	}
	return &s, nil
}

func (r *PgxCompanyRepository) FindPlanByCompany(ctx context.Context, companyID string) (*domain.SubscriptionPlan, error) {
	query := `
		SELECT p.plan_id, p.name, p.has_mobile_money, p.has_bank_deposits, p.has_multi_branch, p.has_reports
		FROM subscription_plans p
		JOIN companies c ON c.plan_id = p.plan_id
		WHERE c.company_id = $1;
	`
	var p domain.SubscriptionPlan
	err := r.Pool.QueryRow(ctx, query, companyID).Scan(
		&p.PlanID,
		&p.Name,
		&p.HasMobileMoney,
		&p.HasBankDeposits,
		&p.HasMultiBranch,
		&p.HasReports,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find plan for company %s: %w", companyID, err)
	}
	return &p, nil
}
