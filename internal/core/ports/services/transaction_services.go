package services

import (
	"context"

	"github.com/obeng-labs/agencyledger/internal/core/domain"
	"github.com/obeng-labs/agencyledger/internal/dto"
)

// TransactionSvcFacade is the ledger's public surface. Every operation takes
// the resolved actor explicitly and is scoped to the actor's company.
type TransactionSvcFacade interface {
	// CreateBankDeposit records a bank deposit and its detail atomically.
	CreateBankDeposit(ctx context.Context, actor domain.Actor, req dto.CreateBankDepositRequest) (*domain.Transaction, error)

	// CreateMobileMoney records a mobile money deposit or withdrawal. Fails
	// with apperrors.ErrPlanRestricted when the plan lacks mobile money.
	CreateMobileMoney(ctx context.Context, actor domain.Actor, req dto.CreateMobileMoneyRequest) (*domain.Transaction, error)

	// CreateCash records a cash deposit or withdrawal with denomination counts.
	CreateCash(ctx context.Context, actor domain.Actor, req dto.CreateCashRequest) (*domain.Transaction, error)

	// ListTransactions returns a filtered, newest-first page of the company's
	// transactions. Tellers only see transactions they initiated.
	ListTransactions(ctx context.Context, actor domain.Actor, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// GetTransaction returns one transaction with its channel detail.
	GetTransaction(ctx context.Context, actor domain.Actor, transactionID string) (*dto.TransactionDetailResponse, error)

	// ListPendingApprovals returns transactions awaiting a decision. Manager or above.
	ListPendingApprovals(ctx context.Context, actor domain.Actor) ([]domain.Transaction, error)

	// Decide approves or rejects a pending transaction. Manager or above, and
	// never the transaction's own initiator.
	Decide(ctx context.Context, actor domain.Actor, transactionID string, req dto.DecisionRequest) (*domain.Transaction, error)

	// Reverse reverses a completed transaction, creating a new completed
	// reversal record and flipping the original to reversed. Admin or above.
	Reverse(ctx context.Context, actor domain.Actor, transactionID string, req dto.ReverseRequest) (*domain.Transaction, error)
}
