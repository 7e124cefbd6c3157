package dto

import (
	"time"

	"github.com/obeng-labs/agencyledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest submits a staff expense for approval.
type CreateExpenseRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Reason string          `json:"reason" binding:"required"`
}

// ExpenseDecisionRequest approves or rejects a pending expense.
type ExpenseDecisionRequest struct {
	Action          string `json:"action" binding:"required,oneof=approve reject"`
	RejectionReason string `json:"rejectionReason,omitempty"`
}

// ExpenseResponse is the expense snapshot returned to clients.
type ExpenseResponse struct {
	ExpenseID       string          `json:"expenseID"`
	RequestedBy     string          `json:"requestedBy"`
	Amount          decimal.Decimal `json:"amount"`
	Reason          string          `json:"reason"`
	Status          string          `json:"status"`
	ApprovedBy      *string         `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time      `json:"approvedAt,omitempty"`
	RejectionReason string          `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ToExpenseResponse converts a domain.ExpenseRequest to its response DTO.
func ToExpenseResponse(e *domain.ExpenseRequest) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:       e.ExpenseID,
		RequestedBy:     e.RequestedBy,
		Amount:          e.Amount,
		Reason:          e.Reason,
		Status:          string(e.Status),
		ApprovedBy:      e.ApprovedBy,
		ApprovedAt:      e.ApprovedAt,
		RejectionReason: e.RejectionReason,
		CreatedAt:       e.CreatedAt,
	}
}

// ToExpenseResponses converts a slice of domain expenses.
func ToExpenseResponses(expenses []domain.ExpenseRequest) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return responses
}
