package services

import (
	"context"

	"github.com/obeng-labs/agencyledger/internal/core/domain"
)

// CompanySvcFacade is the boundary to the identity/tenant and plan
// collaborators. The ledger consults it; it never writes through it.
type CompanySvcFacade interface {
	// ResolveActor turns an authenticated user ID plus requested company into
	// the actor context every ledger call receives. Returns
	// apperrors.ErrNotFound for a missing or inactive membership, so a user
	// cannot learn whether a foreign company exists.
	ResolveActor(ctx context.Context, userID, companyID string) (domain.Actor, error)

	// GetSettings returns the company's fee/approval configuration, or nil
	// when none is configured (no fees, no approval gate).
	GetSettings(ctx context.Context, companyID string) (*domain.CompanySettings, error)

	// HasCapability reports whether the company's plan grants a capability.
	HasCapability(ctx context.Context, companyID string, capability domain.Capability) (bool, error)
}
