package dto

import (
	"time"

	"github.com/obeng-labs/agencyledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SetBalanceRequest initializes or overwrites one user's float for one provider.
type SetBalanceRequest struct {
	UserID          string          `json:"userID" binding:"required"`
	Provider        string          `json:"provider" binding:"required,provider"`
	StartingBalance decimal.Decimal `json:"startingBalance" binding:"required"`
}

// InitializeBalancesRequest sets starting floats for many providers at once.
// Unknown provider keys are skipped, matching the bulk-initialization contract.
type InitializeBalancesRequest struct {
	UserID   string                     `json:"userID" binding:"required"`
	Balances map[string]decimal.Decimal `json:"balances" binding:"required"`
}

// AdjustBalanceRequest applies an add or subtract to the caller's own float.
type AdjustBalanceRequest struct {
	Provider  string          `json:"provider" binding:"required,provider"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Operation string          `json:"operation" binding:"required,oneof=add subtract"`
}

// ListBalancesParams filters a balance listing.
type ListBalancesParams struct {
	UserID   string `form:"user"`
	Provider string `form:"provider"`
}

// BalanceResponse is the balance snapshot returned to clients and carried in
// balance_change events.
type BalanceResponse struct {
	BalanceID       string          `json:"balanceID"`
	UserID          string          `json:"userID"`
	Provider        string          `json:"provider"`
	StartingBalance decimal.Decimal `json:"startingBalance"`
	Balance         decimal.Decimal `json:"balance"`
	LastUpdated     time.Time       `json:"lastUpdated"`
}

// ToBalanceResponse converts a domain.ProviderBalance to its response DTO.
func ToBalanceResponse(b *domain.ProviderBalance) BalanceResponse {
	return BalanceResponse{
		BalanceID:       b.BalanceID,
		UserID:          b.UserID,
		Provider:        string(b.Provider),
		StartingBalance: b.StartingBalance,
		Balance:         b.Balance,
		LastUpdated:     b.LastUpdated,
	}
}

// ToBalanceResponses converts a slice of domain balances.
func ToBalanceResponses(balances []domain.ProviderBalance) []BalanceResponse {
	responses := make([]BalanceResponse, len(balances))
	for i := range balances {
		responses[i] = ToBalanceResponse(&balances[i])
	}
	return responses
}
