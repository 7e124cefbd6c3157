package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseStatus is the state of an internal expense request.
type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "pending"
	ExpenseApproved ExpenseStatus = "approved"
	ExpenseRejected ExpenseStatus = "rejected"
	ExpensePaid     ExpenseStatus = "paid"
)

// ExpenseRequest is a staff expense submitted for approval. It reuses the
// ledger's approval/role gating pattern at lower stakes.
type ExpenseRequest struct {
	ExpenseID       string          `json:"expenseID"` // Primary Key (UUID)
	CompanyID       string          `json:"companyID"`
	RequestedBy     string          `json:"requestedBy"`
	Amount          decimal.Decimal `json:"amount"`
	Reason          string          `json:"reason"`
	Status          ExpenseStatus   `json:"status"`
	ApprovedBy      *string         `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time      `json:"approvedAt,omitempty"`
	RejectionReason string          `json:"rejectionReason,omitempty"`
	Timestamps
}
