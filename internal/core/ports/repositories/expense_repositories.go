package repositories

import (
	"context"

	"github.com/obeng-labs/agencyledger/internal/core/domain"
)

// ExpenseRepositoryFacade defines persistence for expense requests.
type ExpenseRepositoryFacade interface {
	SaveExpense(ctx context.Context, expense domain.ExpenseRequest) error

	// FindExpenseByID retrieves one expense request within a company.
	FindExpenseByID(ctx context.Context, companyID, expenseID string) (*domain.ExpenseRequest, error)

	// ListExpenses retrieves a company's expense requests, newest first.
	// requestedBy narrows to one requester when set.
	ListExpenses(ctx context.Context, companyID string, requestedBy *string) ([]domain.ExpenseRequest, error)

	// UpdateExpense persists a decision or payment status change.
	UpdateExpense(ctx context.Context, expense domain.ExpenseRequest) error
}
