package services

import (
	"context"

	"github.com/obeng-labs/agencyledger/internal/core/domain"
	"github.com/obeng-labs/agencyledger/internal/dto"
)

// BalanceSvcFacade manages per-agent provider float balances.
type BalanceSvcFacade interface {
	// SetBalance initializes or overwrites one user's float for one provider,
	// setting starting and current balance to the same value. Admin or above.
	SetBalance(ctx context.Context, actor domain.Actor, req dto.SetBalanceRequest) (*domain.ProviderBalance, error)

	// InitializeBalances bulk-initializes floats across providers for one
	// user. Unknown providers are skipped. Admin or above.
	InitializeBalances(ctx context.Context, actor domain.Actor, req dto.InitializeBalancesRequest) ([]domain.ProviderBalance, error)

	// AdjustBalance applies an add or subtract to the actor's own float.
	// Subtracts that would overdraw fail with apperrors.ErrInsufficientBalance.
	AdjustBalance(ctx context.Context, actor domain.Actor, req dto.AdjustBalanceRequest) (*domain.ProviderBalance, error)

	// ListBalances lists company balances. Non-admin actors only see their own.
	ListBalances(ctx context.Context, actor domain.Actor, params dto.ListBalancesParams) ([]domain.ProviderBalance, error)
}
