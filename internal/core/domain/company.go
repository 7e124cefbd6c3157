package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company is the tenant. Every ledger entity is scoped to exactly one company.
type Company struct {
	CompanyID string    `json:"companyID"`
	Name      string    `json:"name"`
	PlanID    string    `json:"planID"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// CompanySettings holds the per-company fee and approval configuration the
// ledger consults at creation time. A company without settings pays no fees
// and requires no approvals.
type CompanySettings struct {
	CompanyID            string          `json:"companyID"`
	RequireApprovalAbove decimal.Decimal `json:"requireApprovalAbove"`
	DefaultCurrency      string          `json:"defaultCurrency"`
	DepositFeePercent    decimal.Decimal `json:"depositFeePercent"`
	WithdrawalFeePercent decimal.Decimal `json:"withdrawalFeePercent"`
	TransferFeeFlat      decimal.Decimal `json:"transferFeeFlat"`
}

// Capability names a feature a subscription plan may grant.
type Capability string

const (
	CapabilityMobileMoney Capability = "mobile_money"
	CapabilityBankDeposit Capability = "bank_deposits"
	CapabilityMultiBranch Capability = "multi_branch"
	CapabilityReports     Capability = "reports"
)

// SubscriptionPlan is the read-only capability record for a plan tier.
type SubscriptionPlan struct {
	PlanID          string `json:"planID"`
	Name            string `json:"name"`
	HasMobileMoney  bool   `json:"hasMobileMoney"`
	HasBankDeposits bool   `json:"hasBankDeposits"`
	HasMultiBranch  bool   `json:"hasMultiBranch"`
	HasReports      bool   `json:"hasReports"`
}

// Grants reports whether the plan includes the named capability.
func (p SubscriptionPlan) Grants(c Capability) bool {
	switch c {
	case CapabilityMobileMoney:
		return p.HasMobileMoney
	case CapabilityBankDeposit:
		return p.HasBankDeposits
	case CapabilityMultiBranch:
		return p.HasMultiBranch
	case CapabilityReports:
		return p.HasReports
	}
	return false
}
