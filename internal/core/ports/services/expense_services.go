package services

import (
	"context"

	"github.com/obeng-labs/agencyledger/internal/core/domain"
	"github.com/obeng-labs/agencyledger/internal/dto"
)

// ExpenseSvcFacade manages staff expense requests.
type ExpenseSvcFacade interface {
	// Submit creates a pending expense owned by the actor.
	Submit(ctx context.Context, actor domain.Actor, req dto.CreateExpenseRequest) (*domain.ExpenseRequest, error)

	// List returns the company's expenses, newest first. Tellers see their own only.
	List(ctx context.Context, actor domain.Actor) ([]domain.ExpenseRequest, error)

	// Decide approves or rejects a pending expense. Manager or above.
	Decide(ctx context.Context, actor domain.Actor, expenseID string, req dto.ExpenseDecisionRequest) (*domain.ExpenseRequest, error)

	// MarkPaid transitions an approved expense to paid. Admin or above.
	MarkPaid(ctx context.Context, actor domain.Actor, expenseID string) (*domain.ExpenseRequest, error)
}
