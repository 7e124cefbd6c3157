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
)

// balanceService manages per-agent provider float balances.
type balanceService struct {
	BaseService
	balanceRepo portsrepo.BalanceRepositoryFacade
	publisher   events.Publisher
}

// NewBalanceService creates a new balance service.
func NewBalanceService(balanceRepo portsrepo.BalanceRepositoryFacade, publisher events.Publisher) portssvc.BalanceSvcFacade {
	return &balanceService{balanceRepo: balanceRepo, publisher: publisher}
}

func (s *balanceService) SetBalance(ctx context.Context, actor domain.Actor, req dto.SetBalanceRequest) (*domain.ProviderBalance, error) {
	if !actor.Role.AtLeast(domain.RoleAdmin) {
		return nil, fmt.Errorf("%w: admin role or above required", apperrors.ErrForbidden)
	}

	provider := domain.Provider(req.Provider)
	if !provider.IsValid() {
		return nil, fmt.Errorf("%w: unknown provider %q", apperrors.ErrValidation, req.Provider)
	}
	if req.StartingBalance.IsNegative() {
		return nil, fmt.Errorf("%w: starting balance cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	balance := domain.ProviderBalance{
		BalanceID:       uuid.NewString(),
		CompanyID:       actor.CompanyID,
		UserID:          req.UserID,
		Provider:        provider,
		StartingBalance: req.StartingBalance,
		Balance:         req.StartingBalance,
		CreatedAt:       now,
		LastUpdated:     now,
	}

	saved, err := s.balanceRepo.UpsertBalance(ctx, balance)
	if err != nil {
		s.LogError(ctx, err, "failed to upsert balance", "user_id", req.UserID, "provider", req.Provider)
		return nil, fmt.Errorf("failed to upsert balance: %w", err)
	}

	s.emitBalanceChange(saved)
	s.LogInfo(ctx, "balance initialized", "user_id", saved.UserID, "provider", string(saved.Provider))
	return saved, nil
}

// InitializeBalances bulk-initializes floats for one user. Unknown provider
// keys are skipped rather than failing the whole batch.
func (s *balanceService) InitializeBalances(ctx context.Context, actor domain.Actor, req dto.InitializeBalancesRequest) ([]domain.ProviderBalance, error) {
	if !actor.Role.AtLeast(domain.RoleAdmin) {
		return nil, fmt.Errorf("%w: admin role or above required", apperrors.ErrForbidden)
	}

	saved := make([]domain.ProviderBalance, 0, len(req.Balances))
	for _, provider := range domain.AllProviders() {
		amount, ok := req.Balances[string(provider)]
		if !ok {
			continue
		}
		if amount.IsNegative() {
			return nil, fmt.Errorf("%w: starting balance for %s cannot be negative", apperrors.ErrValidation, provider)
		}

		now := time.Now().UTC()
		balance, err := s.balanceRepo.UpsertBalance(ctx, domain.ProviderBalance{
			BalanceID:       uuid.NewString(),
			CompanyID:       actor.CompanyID,
			UserID:          req.UserID,
			Provider:        provider,
			StartingBalance: amount,
			Balance:         amount,
			CreatedAt:       now,
			LastUpdated:     now,
		})
		if err != nil {
			s.LogError(ctx, err, "failed to upsert balance", "user_id", req.UserID, "provider", string(provider))
			return nil, fmt.Errorf("failed to upsert balance for %s: %w", provider, err)
		}
		s.emitBalanceChange(balance)
		saved = append(saved, *balance)
	}

	s.LogInfo(ctx, "balances initialized", "user_id", req.UserID, "count", len(saved))
	return saved, nil
}

func (s *balanceService) AdjustBalance(ctx context.Context, actor domain.Actor, req dto.AdjustBalanceRequest) (*domain.ProviderBalance, error) {
	provider := domain.Provider(req.Provider)
	if !provider.IsValid() {
		return nil, fmt.Errorf("%w: unknown provider %q", apperrors.ErrValidation, req.Provider)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	op := domain.BalanceOperation(req.Operation)
	balance, err := s.balanceRepo.AdjustBalance(ctx, actor.CompanyID, actor.UserID, provider, req.Amount, op)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInsufficientBalance):
			return nil, err
		case errors.Is(err, apperrors.ErrNotFound):
			return nil, apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "failed to adjust balance", "provider", req.Provider, "operation", req.Operation)
		return nil, fmt.Errorf("failed to adjust balance: %w", err)
	}

	obs.BalanceAdjustments.WithLabelValues(string(provider), req.Operation).Inc()
	s.emitBalanceChange(balance)
	s.LogInfo(ctx, "balance adjusted",
		"user_id", actor.UserID,
		"provider", string(provider),
		"operation", req.Operation,
		"new_balance", balance.Balance.String(),
	)
	return balance, nil
}

func (s *balanceService) ListBalances(ctx context.Context, actor domain.Actor, params dto.ListBalancesParams) ([]domain.ProviderBalance, error) {
	var filters portsrepo.ListBalanceFilters

	if params.Provider != "" {
		provider := domain.Provider(params.Provider)
		if !provider.IsValid() {
			return nil, fmt.Errorf("%w: unknown provider %q", apperrors.ErrValidation, params.Provider)
		}
		filters.Provider = &provider
	}

	// Non-admins only see their own floats, regardless of the filter asked for.
	if !actor.Role.AtLeast(domain.RoleAdmin) {
		userID := actor.UserID
		filters.UserID = &userID
	} else if params.UserID != "" {
		userID := params.UserID
		filters.UserID = &userID
	}

	balances, err := s.balanceRepo.ListBalances(ctx, actor.CompanyID, filters)
	if err != nil {
		s.LogError(ctx, err, "failed to list balances")
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}
	return balances, nil
}

// emitBalanceChange publishes the post-commit balance_change event.
func (s *balanceService) emitBalanceChange(balance *domain.ProviderBalance) {
	s.publisher.Publish(events.New(events.TypeBalanceChange, balance.CompanyID, map[string]any{
		"balance": dto.ToBalanceResponse(balance),
	}))
}
