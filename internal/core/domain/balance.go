package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Provider is a float provider an agent holds a working balance with.
type Provider string

const (
	ProviderMTN      Provider = "mtn"
	ProviderVodafone Provider = "vodafone"
	ProviderAirtel   Provider = "airtel"
	ProviderTigo     Provider = "tigo"
	ProviderEcobank  Provider = "ecobank"
	ProviderFidelity Provider = "fidelity"
	ProviderCalBank  Provider = "cal_bank"
)

// AllProviders lists every supported provider, in display order.
func AllProviders() []Provider {
	return []Provider{
		ProviderMTN, ProviderVodafone, ProviderAirtel, ProviderTigo,
		ProviderEcobank, ProviderFidelity, ProviderCalBank,
	}
}

// IsValid reports whether p is one of the supported providers.
func (p Provider) IsValid() bool {
	switch p {
	case ProviderMTN, ProviderVodafone, ProviderAirtel, ProviderTigo,
		ProviderEcobank, ProviderFidelity, ProviderCalBank:
		return true
	}
	return false
}

// BalanceOperation is the direction of a float adjustment.
type BalanceOperation string

const (
	BalanceAdd      BalanceOperation = "add"
	BalanceSubtract BalanceOperation = "subtract"
)

// ProviderBalance tracks one agent's float with one provider inside one company.
// Unique per (company, user, provider). The balance never goes negative: a
// subtract that would overdraw is rejected, not clamped.
type ProviderBalance struct {
	BalanceID       string          `json:"balanceID"` // Primary Key (UUID)
	CompanyID       string          `json:"companyID"`
	UserID          string          `json:"userID"`
	Provider        Provider        `json:"provider"`
	StartingBalance decimal.Decimal `json:"startingBalance"`
	Balance         decimal.Decimal `json:"balance"`
	CreatedAt       time.Time       `json:"createdAt"`
	LastUpdated     time.Time       `json:"lastUpdated"`
}
