package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/obeng-labs/agencyledger/internal/apperrors"
	"github.com/obeng-labs/agencyledger/internal/core/domain"
	portsrepo "github.com/obeng-labs/agencyledger/internal/core/ports/repositories"
	portssvc "github.com/obeng-labs/agencyledger/internal/core/ports/services"
)

// companyService resolves tenant context, settings and plan capabilities from
// the read-only company records.
type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepositoryFacade
}

// NewCompanyService creates a new company service.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade) portssvc.CompanySvcFacade {
	return &companyService{companyRepo: companyRepo}
}

// ResolveActor looks up the user's active membership in the company and builds
// the actor context. A missing or inactive membership comes back as
// ErrNotFound, never ErrForbidden, so responses don't reveal whether a foreign
// company exists.
func (s *companyService) ResolveActor(ctx context.Context, userID, companyID string) (domain.Actor, error) {
	membership, err := s.companyRepo.FindMembership(ctx, userID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.Actor{}, apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "failed to find membership", "user_id", userID, "company_id", companyID)
		return domain.Actor{}, fmt.Errorf("failed to find membership: %w", err)
	}
	if !membership.IsActive {
		return domain.Actor{}, apperrors.ErrNotFound
	}

	return domain.Actor{
		UserID:    membership.UserID,
		CompanyID: membership.CompanyID,
		BranchID:  membership.BranchID,
		Role:      membership.Role,
	}, nil
}

// GetSettings returns the company's fee/approval configuration, or nil when
// none has been configured.
func (s *companyService) GetSettings(ctx context.Context, companyID string) (*domain.CompanySettings, error) {
	settings, err := s.companyRepo.FindSettings(ctx, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		s.LogError(ctx, err, "failed to find company settings", "company_id", companyID)
		return nil, fmt.Errorf("failed to find company settings: %w", err)
	}
	return settings, nil
}

// HasCapability reports whether the company's subscription plan grants the
// capability. A company without a plan record grants nothing.
func (s *companyService) HasCapability(ctx context.Context, companyID string, capability domain.Capability) (bool, error) {
	plan, err := s.companyRepo.FindPlanByCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		s.LogError(ctx, err, "failed to find subscription plan", "company_id", companyID)
		return false, fmt.Errorf("failed to find subscription plan: %w", err)
	}
	return plan.Grants(capability), nil
}
