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
	"github.com/obeng-labs/agencyledger/internal/events"
	"github.com/obeng-labs/agencyledger/internal/obs"
	"github.com/obeng-labs/agencyledger/internal/utils/fees"
	"github.com/obeng-labs/agencyledger/internal/utils/refgen"
)

const (
	defaultCurrency  = "GHS"
	defaultListLimit = 20
	maxListLimit     = 100
)

// transactionService implements the ledger and approval workflow.
type transactionService struct {
	BaseService
	txRepo     portsrepo.TransactionRepositoryFacade
	companySvc portssvc.CompanySvcFacade
	publisher  events.Publisher
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(txRepo portsrepo.TransactionRepositoryFacade, companySvc portssvc.CompanySvcFacade, publisher events.Publisher) portssvc.TransactionSvcFacade {
	return &transactionService{
		txRepo:     txRepo,
		companySvc: companySvc,
		publisher:  publisher,
	}
}

// newTransaction builds a priced, gated transaction for the actor. Fee and
// approval requirement come from the company settings; a company without
// settings pays no fees and skips the approval gate.
func (s *transactionService) newTransaction(ctx context.Context, actor domain.Actor, txType domain.TransactionType, channel domain.Channel, amount decimal.Decimal, customerID *string, description string) (domain.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.Transaction{}, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	settings, err := s.companySvc.GetSettings(ctx, actor.CompanyID)
	if err != nil {
		return domain.Transaction{}, err
	}

	currency := defaultCurrency
	if settings != nil && settings.DefaultCurrency != "" {
		currency = settings.DefaultCurrency
	}

	now := time.Now().UTC()
	tx := domain.Transaction{
		TransactionID: uuid.NewString(),
		CompanyID:     actor.CompanyID,
		BranchID:      actor.BranchID,
		CustomerID:    customerID,
		InitiatedBy:   actor.UserID,
		Type:          txType,
		Channel:       channel,
		Status:        domain.StatusCompleted,
		Amount:        amount,
		Fee:           fees.ComputeFee(settings, txType, amount),
		Currency:      currency,
		Description:   description,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	tx.RecomputeNet()

	if fees.NeedsApproval(settings, amount) {
		tx.Status = domain.StatusPending
		tx.RequiresApproval = true
	}
	return tx, nil
}

// saveWithRetry persists the transaction and its detail, regenerating the
// reference on a unique-constraint collision. Exhausting the attempts means
// reference generation is broken, not that the caller did anything wrong.
func (s *transactionService) saveWithRetry(ctx context.Context, tx *domain.Transaction, detail domain.ChannelDetail) error {
	for attempt := 0; attempt < refgen.MaxAttempts; attempt++ {
		tx.Reference = refgen.Generate()
		err := s.txRepo.SaveTransaction(ctx, *tx, detail)
		if err == nil {
			return nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "failed to save transaction", "transaction_id", tx.TransactionID)
			return fmt.Errorf("failed to save transaction: %w", err)
		}
		s.LogWarn(ctx, "transaction reference collision, regenerating", "reference", tx.Reference, "attempt", attempt+1)
	}
	return fmt.Errorf("%w: exhausted %d attempts", apperrors.ErrReferenceGeneration, refgen.MaxAttempts)
}

// finishCreate records metrics and emits the post-commit lifecycle event.
func (s *transactionService) finishCreate(ctx context.Context, tx *domain.Transaction) {
	obs.TransactionsCreated.WithLabelValues(string(tx.Channel), string(tx.Type)).Inc()
	s.publisher.Publish(events.New(events.TypeTransactionUpdate, tx.CompanyID, map[string]any{
		"transaction": dto.ToTransactionResponse(tx),
		"is_new":      true,
	}))
	s.LogInfo(ctx, "transaction created",
		"transaction_id", tx.TransactionID,
		"reference", tx.Reference,
		"type", string(tx.Type),
		"channel", string(tx.Channel),
		"status", string(tx.Status),
	)
}

func (s *transactionService) CreateBankDeposit(ctx context.Context, actor domain.Actor, req dto.CreateBankDepositRequest) (*domain.Transaction, error) {
	tx, err := s.newTransaction(ctx, actor, domain.TypeDeposit, domain.ChannelBank, req.Amount, req.CustomerID, req.Description)
	if err != nil {
		return nil, err
	}

	detail := domain.ChannelDetail{Bank: &domain.BankDepositDetail{
		TransactionID: tx.TransactionID,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		AccountName:   req.AccountName,
		DepositorName: req.DepositorName,
		SlipNumber:    req.SlipNumber,
	}}

	if err := s.saveWithRetry(ctx, &tx, detail); err != nil {
		return nil, err
	}
	s.finishCreate(ctx, &tx)
	return &tx, nil
}

func (s *transactionService) CreateMobileMoney(ctx context.Context, actor domain.Actor, req dto.CreateMobileMoneyRequest) (*domain.Transaction, error) {
	allowed, err := s.companySvc.HasCapability(ctx, actor.CompanyID, domain.CapabilityMobileMoney)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("%w: mobile money is not included in the company plan", apperrors.ErrPlanRestricted)
	}

	tx, err := s.newTransaction(ctx, actor, domain.TransactionType(req.Type), domain.ChannelMobileMoney, req.Amount, req.CustomerID, req.Description)
	if err != nil {
		return nil, err
	}

	detail := domain.ChannelDetail{MoMo: &domain.MobileMoneyDetail{
		TransactionID:  tx.TransactionID,
		Network:        domain.MoMoNetwork(req.Network),
		ServiceType:    domain.MoMoServiceType(req.ServiceType),
		SenderNumber:   req.SenderNumber,
		ReceiverNumber: req.ReceiverNumber,
		MoMoReference:  req.MoMoReference,
	}}

	if err := s.saveWithRetry(ctx, &tx, detail); err != nil {
		return nil, err
	}
	s.finishCreate(ctx, &tx)
	return &tx, nil
}

func (s *transactionService) CreateCash(ctx context.Context, actor domain.Actor, req dto.CreateCashRequest) (*domain.Transaction, error) {
	tx, err := s.newTransaction(ctx, actor, domain.TransactionType(req.Type), domain.ChannelCash, req.Amount, req.CustomerID, req.Description)
	if err != nil {
		return nil, err
	}

	detail := domain.ChannelDetail{Cash: &domain.CashDetail{
		TransactionID: tx.TransactionID,
		D200:          req.D200,
		D100:          req.D100,
		D50:           req.D50,
		D20:           req.D20,
		D10:           req.D10,
		D5:            req.D5,
		D2:            req.D2,
		D1:            req.D1,
	}}

	if err := s.saveWithRetry(ctx, &tx, detail); err != nil {
		return nil, err
	}
	s.finishCreate(ctx, &tx)
	return &tx, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, actor domain.Actor, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	filters, err := buildListFilters(params)
	if err != nil {
		return nil, err
	}

	// Tellers only ever see the transactions they initiated.
	if !actor.Role.AtLeast(domain.RoleManager) {
		initiatedBy := actor.UserID
		filters.InitiatedBy = &initiatedBy
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	var nextToken *string
	if params.NextToken != "" {
		nextToken = &params.NextToken
	}

	txs, newToken, err := s.txRepo.ListTransactions(ctx, actor.CompanyID, filters, limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, err
		}
		s.LogError(ctx, err, "failed to list transactions")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txs),
		NextToken:    newToken,
	}, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, actor domain.Actor, transactionID string) (*dto.TransactionDetailResponse, error) {
	tx, err := s.findVisible(ctx, actor, transactionID)
	if err != nil {
		return nil, err
	}

	detail, err := s.txRepo.FindChannelDetail(ctx, tx.TransactionID, tx.Channel)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "failed to find channel detail", "transaction_id", tx.TransactionID)
		return nil, fmt.Errorf("failed to find channel detail: %w", err)
	}

	resp := dto.ToTransactionDetailResponse(tx, detail)
	return &resp, nil
}

func (s *transactionService) ListPendingApprovals(ctx context.Context, actor domain.Actor) ([]domain.Transaction, error) {
	if !actor.Role.AtLeast(domain.RoleManager) {
		return nil, fmt.Errorf("%w: manager role or above required", apperrors.ErrForbidden)
	}

	txs, err := s.txRepo.ListPendingApprovals(ctx, actor.CompanyID)
	if err != nil {
		s.LogError(ctx, err, "failed to list pending approvals")
		return nil, fmt.Errorf("failed to list pending approvals: %w", err)
	}
	return txs, nil
}

func (s *transactionService) Decide(ctx context.Context, actor domain.Actor, transactionID string, req dto.DecisionRequest) (*domain.Transaction, error) {
	if !actor.Role.AtLeast(domain.RoleManager) {
		return nil, fmt.Errorf("%w: manager role or above required", apperrors.ErrForbidden)
	}

	tx, err := s.txRepo.FindTransactionByID(ctx, actor.CompanyID, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "failed to find transaction", "transaction_id", transactionID)
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	if tx.Status != domain.StatusPending {
		return nil, fmt.Errorf("%w: only pending transactions can be decided", apperrors.ErrConflict)
	}
	if tx.InitiatedBy == actor.UserID {
		return nil, fmt.Errorf("%w: a transaction cannot be approved by its initiator", apperrors.ErrForbidden)
	}

	now := time.Now().UTC()
	tx.ApprovedBy = &actor.UserID
	tx.ApprovedAt = &now
	tx.UpdatedAt = now
	switch req.Action {
	case "approve":
		tx.Status = domain.StatusCompleted
	case "reject":
		tx.Status = domain.StatusRejected
		tx.RejectionReason = req.RejectionReason
	default:
		return nil, fmt.Errorf("%w: action must be approve or reject", apperrors.ErrValidation)
	}

	if err := s.txRepo.UpdateDecision(ctx, *tx); err != nil {
		s.LogError(ctx, err, "failed to persist decision", "transaction_id", transactionID)
		return nil, fmt.Errorf("failed to persist decision: %w", err)
	}

	obs.ApprovalDecisions.WithLabelValues(req.Action).Inc()
	s.publisher.Publish(events.New(events.TypeTransactionUpdate, tx.CompanyID, map[string]any{
		"transaction": dto.ToTransactionResponse(tx),
		"is_new":      false,
	}))
	s.LogInfo(ctx, "transaction decided", "transaction_id", tx.TransactionID, "action", req.Action, "decided_by", actor.UserID)
	return tx, nil
}

func (s *transactionService) Reverse(ctx context.Context, actor domain.Actor, transactionID string, req dto.ReverseRequest) (*domain.Transaction, error) {
	if !actor.Role.AtLeast(domain.RoleAdmin) {
		return nil, fmt.Errorf("%w: admin role or above required", apperrors.ErrForbidden)
	}

	original, err := s.txRepo.FindTransactionByID(ctx, actor.CompanyID, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "failed to find transaction", "transaction_id", transactionID)
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	if original.Type == domain.TypeReversal {
		return nil, fmt.Errorf("%w: a reversal cannot itself be reversed", apperrors.ErrConflict)
	}
	if original.Status != domain.StatusCompleted {
		return nil, fmt.Errorf("%w: only completed transactions can be reversed", apperrors.ErrConflict)
	}

	now := time.Now().UTC()
	reversal := domain.Transaction{
		TransactionID:         uuid.NewString(),
		CompanyID:             original.CompanyID,
		BranchID:              original.BranchID,
		CustomerID:            original.CustomerID,
		InitiatedBy:           actor.UserID,
		Type:                  domain.TypeReversal,
		Channel:               original.Channel,
		Status:                domain.StatusCompleted,
		Amount:                original.Amount,
		Fee:                   decimal.Zero,
		Currency:              original.Currency,
		Description:           fmt.Sprintf("Reversal of %s: %s", original.Reference, req.Reason),
		ReversedTransactionID: &original.TransactionID,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	reversal.RecomputeNet()

	if err := s.saveReversalWithRetry(ctx, &reversal, original.TransactionID); err != nil {
		return nil, err
	}

	obs.Reversals.Inc()
	s.publisher.Publish(events.New(events.TypeTransactionUpdate, reversal.CompanyID, map[string]any{
		"transaction": dto.ToTransactionResponse(&reversal),
		"is_new":      true,
	}))
	s.LogInfo(ctx, "transaction reversed", "transaction_id", original.TransactionID, "reversal_id", reversal.TransactionID, "reversed_by", actor.UserID)
	return &reversal, nil
}

// saveReversalWithRetry persists the reversal and the original's status flip,
// regenerating the reference on a unique-constraint collision. An ErrConflict
// means another actor reversed the original first; it propagates unchanged.
func (s *transactionService) saveReversalWithRetry(ctx context.Context, reversal *domain.Transaction, originalID string) error {
	for attempt := 0; attempt < refgen.MaxAttempts; attempt++ {
		reversal.Reference = refgen.Generate()
		err := s.txRepo.SaveReversal(ctx, *reversal, originalID)
		if err == nil {
			return nil
		}
		if errors.Is(err, apperrors.ErrConflict) {
			return err
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "failed to save reversal", "transaction_id", originalID)
			return fmt.Errorf("failed to save reversal: %w", err)
		}
		s.LogWarn(ctx, "reversal reference collision, regenerating", "reference", reversal.Reference, "attempt", attempt+1)
	}
	return fmt.Errorf("%w: exhausted %d attempts", apperrors.ErrReferenceGeneration, refgen.MaxAttempts)
}

// findVisible fetches a transaction and applies the teller ownership rule.
// A transaction hidden from the actor is reported as not found.
func (s *transactionService) findVisible(ctx context.Context, actor domain.Actor, transactionID string) (*domain.Transaction, error) {
	tx, err := s.txRepo.FindTransactionByID(ctx, actor.CompanyID, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "failed to find transaction", "transaction_id", transactionID)
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	if !actor.Role.AtLeast(domain.RoleManager) && tx.InitiatedBy != actor.UserID {
		return nil, apperrors.ErrNotFound
	}
	return tx, nil
}

// buildListFilters parses the raw query parameters into typed repository filters.
func buildListFilters(params dto.ListTransactionsParams) (portsrepo.ListTransactionFilters, error) {
	var filters portsrepo.ListTransactionFilters

	if params.Status != "" {
		status := domain.TransactionStatus(params.Status)
		filters.Status = &status
	}
	if params.Type != "" {
		txType := domain.TransactionType(params.Type)
		filters.Type = &txType
	}
	if params.Channel != "" {
		channel := domain.Channel(params.Channel)
		filters.Channel = &channel
	}
	if params.CustomerID != "" {
		customerID := params.CustomerID
		filters.CustomerID = &customerID
	}
	if params.BranchID != "" {
		branchID := params.BranchID
		filters.BranchID = &branchID
	}
	if params.DateFrom != "" {
		from, err := time.Parse("2006-01-02", params.DateFrom)
		if err != nil {
			return filters, fmt.Errorf("%w: date_from must be YYYY-MM-DD", apperrors.ErrValidation)
		}
		filters.DateFrom = &from
	}
	if params.DateTo != "" {
		to, err := time.Parse("2006-01-02", params.DateTo)
		if err != nil {
			return filters, fmt.Errorf("%w: date_to must be YYYY-MM-DD", apperrors.ErrValidation)
		}
		// Make the upper bound inclusive of the whole day.
		end := to.Add(24*time.Hour - time.Nanosecond)
		filters.DateTo = &end
	}
	filters.Search = params.Search

	return filters, nil
}
