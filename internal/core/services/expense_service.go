package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/obeng-labs/agencyledger/internal/apperrors"
	"github.com/obeng-labs/agencyledger/internal/core/domain"
	portsrepo "github.com/obeng-labs/agencyledger/internal/core/ports/repositories"
	portssvc "github.com/obeng-labs/agencyledger/internal/core/ports/services"
	"github.com/obeng-labs/agencyledger/internal/dto"
)

// expenseService manages staff expense requests. It mirrors the ledger's role
// gating but carries no fee or reference machinery.
type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepositoryFacade
}

// NewExpenseService creates a new expense service.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade) portssvc.ExpenseSvcFacade {
	return &expenseService{expenseRepo: expenseRepo}
}

func (s *expenseService) Submit(ctx context.Context, actor domain.Actor, req dto.CreateExpenseRequest) (*domain.ExpenseRequest, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	expense := domain.ExpenseRequest{
		ExpenseID:   uuid.NewString(),
		CompanyID:   actor.CompanyID,
		RequestedBy: actor.UserID,
		Amount:      req.Amount,
		Reason:      req.Reason,
		Status:      domain.ExpensePending,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "failed to save expense", "expense_id", expense.ExpenseID)
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}

	s.LogInfo(ctx, "expense submitted", "expense_id", expense.ExpenseID, "requested_by", actor.UserID)
	return &expense, nil
}

func (s *expenseService) List(ctx context.Context, actor domain.Actor) ([]domain.ExpenseRequest, error) {
	var requestedBy *string
	if !actor.Role.AtLeast(domain.RoleManager) {
		requestedBy = &actor.UserID
	}

	expenses, err := s.expenseRepo.ListExpenses(ctx, actor.CompanyID, requestedBy)
	if err != nil {
		s.LogError(ctx, err, "failed to list expenses")
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

// Decide approves or rejects a pending expense. Unlike transaction approval
// there is no requester/approver separation here.
func (s *expenseService) Decide(ctx context.Context, actor domain.Actor, expenseID string, req dto.ExpenseDecisionRequest) (*domain.ExpenseRequest, error) {
	if !actor.Role.AtLeast(domain.RoleManager) {
		return nil, fmt.Errorf("%w: manager role or above required", apperrors.ErrForbidden)
	}

	expense, err := s.findExpense(ctx, actor.CompanyID, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.Status != domain.ExpensePending {
		return nil, fmt.Errorf("%w: only pending expenses can be decided", apperrors.ErrConflict)
	}

	now := time.Now().UTC()
	expense.ApprovedBy = &actor.UserID
	expense.ApprovedAt = &now
	expense.UpdatedAt = now
	switch req.Action {
	case "approve":
		expense.Status = domain.ExpenseApproved
	case "reject":
		expense.Status = domain.ExpenseRejected
		expense.RejectionReason = req.RejectionReason
	default:
		return nil, fmt.Errorf("%w: action must be approve or reject", apperrors.ErrValidation)
	}

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		s.LogError(ctx, err, "failed to persist expense decision", "expense_id", expenseID)
		return nil, fmt.Errorf("failed to persist expense decision: %w", err)
	}

	s.LogInfo(ctx, "expense decided", "expense_id", expenseID, "action", req.Action, "decided_by", actor.UserID)
	return expense, nil
}

func (s *expenseService) MarkPaid(ctx context.Context, actor domain.Actor, expenseID string) (*domain.ExpenseRequest, error) {
	if !actor.Role.AtLeast(domain.RoleAdmin) {
		return nil, fmt.Errorf("%w: admin role or above required", apperrors.ErrForbidden)
	}

	expense, err := s.findExpense(ctx, actor.CompanyID, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.Status != domain.ExpenseApproved {
		return nil, fmt.Errorf("%w: only approved expenses can be marked paid", apperrors.ErrConflict)
	}

	expense.Status = domain.ExpensePaid
	expense.UpdatedAt = time.Now().UTC()

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		s.LogError(ctx, err, "failed to mark expense paid", "expense_id", expenseID)
		return nil, fmt.Errorf("failed to mark expense paid: %w", err)
	}

	s.LogInfo(ctx, "expense marked paid", "expense_id", expenseID, "marked_by", actor.UserID)
	return expense, nil
}

func (s *expenseService) findExpense(ctx context.Context, companyID, expenseID string) (*domain.ExpenseRequest, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, companyID, expenseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "failed to find expense", "expense_id", expenseID)
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}
	return expense, nil
}
