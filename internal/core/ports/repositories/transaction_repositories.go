package repositories

import (
	"context"
	"time"

	"github.com/obeng-labs/agencyledger/internal/core/domain"
)

// ListTransactionFilters narrows a company-scoped transaction listing.
// InitiatedBy is set by the service for teller actors, who only see their own work.
type ListTransactionFilters struct {
	Status      *domain.TransactionStatus
	Type        *domain.TransactionType
	Channel     *domain.Channel
	CustomerID  *string
	BranchID    *string
	InitiatedBy *string
	DateFrom    *time.Time
	DateTo      *time.Time
	Search      string // Matches reference or description, case-insensitive
}

// TransactionReader defines read operations for ledger data. Every query is
// scoped by company ID in SQL; a transaction outside the company does not exist
// as far as these methods are concerned.
type TransactionReader interface {
	// FindTransactionByID retrieves one transaction within a company.
	FindTransactionByID(ctx context.Context, companyID, transactionID string) (*domain.Transaction, error)

	// FindChannelDetail retrieves the 1:1 channel detail record for a transaction.
	FindChannelDetail(ctx context.Context, transactionID string, channel domain.Channel) (*domain.ChannelDetail, error)

	// ListTransactions retrieves a filtered, newest-first page of transactions
	// using token pagination. Returns the page, the next-page token, and an error.
	ListTransactions(ctx context.Context, companyID string, filters ListTransactionFilters, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListPendingApprovals retrieves all transactions awaiting an approval decision.
	ListPendingApprovals(ctx context.Context, companyID string) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for ledger data.
type TransactionWriter interface {
	// SaveTransaction persists a transaction and its channel detail as one
	// database transaction; a reader never observes one without the other.
	// Returns apperrors.ErrDuplicate when the reference collides with an
	// existing row, so the caller can regenerate and retry.
	SaveTransaction(ctx context.Context, tx domain.Transaction, detail domain.ChannelDetail) error

	// UpdateDecision persists an approval decision: status, approver,
	// approvedAt and rejectionReason.
	UpdateDecision(ctx context.Context, tx domain.Transaction) error

	// SaveReversal inserts the reversal transaction and flips the original to
	// reversed as one atomic unit. Returns apperrors.ErrDuplicate on a
	// reference collision and apperrors.ErrConflict when the original is no
	// longer in completed state.
	SaveReversal(ctx context.Context, reversal domain.Transaction, originalID string) error
}

// TransactionRepositoryFacade combines the ledger repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
