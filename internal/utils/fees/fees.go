// Package fees holds the pure fee and approval policies the ledger consults at
// creation time. Both functions are side-effect free so they can be tested
// without persistence.
package fees

import (
	"github.com/obeng-labs/agencyledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// minorUnitPlaces is the precision fees are rounded to, matching currency display.
const minorUnitPlaces = 2

// ComputeFee returns the fee for a transaction of the given type and amount
// under the company's fee configuration. Deposits and withdrawals pay a
// percentage, transfers pay a flat fee, everything else (fee, commission,
// reversal) is free. A nil config means the company charges no fees.
// The result is rounded half-up to the currency's minor unit.
func ComputeFee(cfg *domain.CompanySettings, txType domain.TransactionType, amount decimal.Decimal) decimal.Decimal {
	if cfg == nil {
		return decimal.Zero
	}

	var fee decimal.Decimal
	switch txType {
	case domain.TypeDeposit:
		fee = cfg.DepositFeePercent.Div(oneHundred).Mul(amount)
	case domain.TypeWithdrawal:
		fee = cfg.WithdrawalFeePercent.Div(oneHundred).Mul(amount)
	case domain.TypeTransfer:
		fee = cfg.TransferFeeFlat
	default:
		return decimal.Zero
	}

	return fee.Round(minorUnitPlaces)
}

// NeedsApproval reports whether a transaction of the given amount requires the
// approval workflow. The threshold is inclusive: an amount equal to
// RequireApprovalAbove requires approval. A nil config never requires approval.
func NeedsApproval(cfg *domain.CompanySettings, amount decimal.Decimal) bool {
	if cfg == nil {
		return false
	}
	return amount.GreaterThanOrEqual(cfg.RequireApprovalAbove)
}
