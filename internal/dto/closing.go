package dto

import (
	"time"

	"github.com/obeng-labs/agencyledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateClosingRequest records one user's end-of-day count.
type CreateClosingRequest struct {
	Date            string          `json:"date" binding:"required,datetime=2006-01-02"`
	PhysicalCash    decimal.Decimal `json:"physicalCash"`
	MTNECash        decimal.Decimal `json:"mtnECash"`
	VodafoneECash   decimal.Decimal `json:"vodafoneECash"`
	AirtelTigoECash decimal.Decimal `json:"airtelTigoECash"`
	Overage         decimal.Decimal `json:"overage"`
	Shortage        decimal.Decimal `json:"shortage"`
	Notes           string          `json:"notes,omitempty"`
}

// UpdateClosingRequest edits an existing closing. Nil fields are left unchanged.
type UpdateClosingRequest struct {
	PhysicalCash    *decimal.Decimal `json:"physicalCash,omitempty"`
	MTNECash        *decimal.Decimal `json:"mtnECash,omitempty"`
	VodafoneECash   *decimal.Decimal `json:"vodafoneECash,omitempty"`
	AirtelTigoECash *decimal.Decimal `json:"airtelTigoECash,omitempty"`
	Overage         *decimal.Decimal `json:"overage,omitempty"`
	Shortage        *decimal.Decimal `json:"shortage,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
}

// ListClosingsParams filters a closings listing.
type ListClosingsParams struct {
	Date string `form:"date"` // YYYY-MM-DD
}

// ClosingResponse is the closing snapshot returned to clients.
type ClosingResponse struct {
	ClosingID       string          `json:"closingID"`
	BranchID        *string         `json:"branchID,omitempty"`
	ClosedBy        string          `json:"closedBy"`
	Date            string          `json:"date"`
	PhysicalCash    decimal.Decimal `json:"physicalCash"`
	MTNECash        decimal.Decimal `json:"mtnECash"`
	VodafoneECash   decimal.Decimal `json:"vodafoneECash"`
	AirtelTigoECash decimal.Decimal `json:"airtelTigoECash"`
	TotalECash      decimal.Decimal `json:"totalECash"`
	Overage         decimal.Decimal `json:"overage"`
	Shortage        decimal.Decimal `json:"shortage"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ToClosingResponse converts a domain.DailyClosing to its response DTO.
func ToClosingResponse(c *domain.DailyClosing) ClosingResponse {
	return ClosingResponse{
		ClosingID:       c.ClosingID,
		BranchID:        c.BranchID,
		ClosedBy:        c.ClosedBy,
		Date:            c.Date.Format("2006-01-02"),
		PhysicalCash:    c.PhysicalCash,
		MTNECash:        c.MTNECash,
		VodafoneECash:   c.VodafoneECash,
		AirtelTigoECash: c.AirtelTigoECash,
		TotalECash:      c.TotalECash,
		Overage:         c.Overage,
		Shortage:        c.Shortage,
		Notes:           c.Notes,
		CreatedAt:       c.CreatedAt,
	}
}

// ToClosingResponses converts a slice of domain closings.
func ToClosingResponses(closings []domain.DailyClosing) []ClosingResponse {
	responses := make([]ClosingResponse, len(closings))
	for i := range closings {
		responses[i] = ToClosingResponse(&closings[i])
	}
	return responses
}
