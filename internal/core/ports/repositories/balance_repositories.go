package repositories

import (
	"context"

	"github.com/obeng-labs/agencyledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListBalanceFilters narrows a company-scoped balance listing.
type ListBalanceFilters struct {
	UserID   *string
	Provider *domain.Provider
}

// BalanceRepositoryFacade defines persistence for provider float balances.
type BalanceRepositoryFacade interface {
	// UpsertBalance creates or overwrites the balance row keyed by
	// (company, user, provider), setting both starting and current balance.
	UpsertBalance(ctx context.Context, balance domain.ProviderBalance) (*domain.ProviderBalance, error)

	// FindBalance retrieves one balance row.
	FindBalance(ctx context.Context, companyID, userID string, provider domain.Provider) (*domain.ProviderBalance, error)

	// ListBalances retrieves balance rows for a company, ordered by provider.
	ListBalances(ctx context.Context, companyID string, filters ListBalanceFilters) ([]domain.ProviderBalance, error)

	// AdjustBalance applies an add or subtract to one balance row as an atomic
	// read-modify-write serialized on the (company, user, provider) key, so
	// concurrent adjustments never lose an update. Subtracting more than the
	// current balance returns apperrors.ErrInsufficientBalance and leaves the
	// row unchanged. A missing row returns apperrors.ErrNotFound.
	AdjustBalance(ctx context.Context, companyID, userID string, provider domain.Provider, amount decimal.Decimal, op domain.BalanceOperation) (*domain.ProviderBalance, error)
}
