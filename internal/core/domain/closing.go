package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyClosing is one user's end-of-day count of physical cash and e-cash
// floats. At most one closing exists per (company, user, date).
type DailyClosing struct {
	ClosingID string  `json:"closingID"` // Primary Key (UUID)
	CompanyID string  `json:"companyID"`
	BranchID  *string `json:"branchID,omitempty"`
	ClosedBy  string  `json:"closedBy"`

	Date time.Time `json:"date"` // Calendar day, time component ignored

	PhysicalCash    decimal.Decimal `json:"physicalCash"`
	MTNECash        decimal.Decimal `json:"mtnECash"`
	VodafoneECash   decimal.Decimal `json:"vodafoneECash"`
	AirtelTigoECash decimal.Decimal `json:"airtelTigoECash"`
	TotalECash      decimal.Decimal `json:"totalECash"` // Derived, recomputed on save

	Overage  decimal.Decimal `json:"overage"`
	Shortage decimal.Decimal `json:"shortage"`

	Notes string `json:"notes,omitempty"`
	Timestamps
}

// RecomputeTotals re-derives TotalECash from the per-network floats.
func (c *DailyClosing) RecomputeTotals() {
	c.TotalECash = c.MTNECash.Add(c.VodafoneECash).Add(c.AirtelTigoECash)
}
