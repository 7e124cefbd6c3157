package repositories

import (
	"context"

	"github.com/obeng-labs/agencyledger/internal/core/domain"
)

// CompanyRepositoryFacade defines the read-only tenant, membership and plan
// lookups the ledger consults. Writes to these records belong to the company
// administration surface, outside this core.
type CompanyRepositoryFacade interface {
	// FindMembership retrieves a user's active membership in a company.
	FindMembership(ctx context.Context, userID, companyID string) (*domain.Membership, error)

	// FindSettings retrieves a company's fee/approval configuration.
	// Returns apperrors.ErrNotFound when the company has no settings row;
	// callers treat that as "no fees, no approval gate".
	FindSettings(ctx context.Context, companyID string) (*domain.CompanySettings, error)

	// FindPlanByCompany retrieves the subscription plan a company is on.
	FindPlanByCompany(ctx context.Context, companyID string) (*domain.SubscriptionPlan, error)
}
