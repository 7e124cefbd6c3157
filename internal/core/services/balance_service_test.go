package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/obeng-labs/agencyledger/internal/apperrors"
	"github.com/obeng-labs/agencyledger/internal/core/domain"
	portsrepo "github.com/obeng-labs/agencyledger/internal/core/ports/repositories"
	portssvc "github.com/obeng-labs/agencyledger/internal/core/ports/services"
	"github.com/obeng-labs/agencyledger/internal/core/services"
	"github.com/obeng-labs/agencyledger/internal/dto"
	"github.com/obeng-labs/agencyledger/internal/events"
)

// --- Mock BalanceRepository ---
type MockBalanceRepository struct {
	mock.Mock
}

var _ portsrepo.BalanceRepositoryFacade = (*MockBalanceRepository)(nil)

func (m *MockBalanceRepository) UpsertBalance(ctx context.Context, balance domain.ProviderBalance) (*domain.ProviderBalance, error) {
	args := m.Called(ctx, balance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProviderBalance), args.Error(1)
}

func (m *MockBalanceRepository) FindBalance(ctx context.Context, companyID, userID string, provider domain.Provider) (*domain.ProviderBalance, error) {
	args := m.Called(ctx, companyID, userID, provider)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProviderBalance), args.Error(1)
}

func (m *MockBalanceRepository) ListBalances(ctx context.Context, companyID string, filters portsrepo.ListBalanceFilters) ([]domain.ProviderBalance, error) {
	args := m.Called(ctx, companyID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProviderBalance), args.Error(1)
}

func (m *MockBalanceRepository) AdjustBalance(ctx context.Context, companyID, userID string, provider domain.Provider, amount decimal.Decimal, op domain.BalanceOperation) (*domain.ProviderBalance, error) {
	args := m.Called(ctx, companyID, userID, provider, amount, op)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProviderBalance), args.Error(1)
}

// --- Test Suite Setup ---
type BalanceServiceTestSuite struct {
	suite.Suite
	mockBalanceRepo *MockBalanceRepository
	publisher       *recordingPublisher
	service         portssvc.BalanceSvcFacade
	companyID       string
	teller          domain.Actor
	admin           domain.Actor
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.mockBalanceRepo = new(MockBalanceRepository)
	suite.publisher = &recordingPublisher{}
	suite.service = services.NewBalanceService(suite.mockBalanceRepo, suite.publisher)

	suite.companyID = uuid.NewString()
	suite.teller = domain.Actor{UserID: uuid.NewString(), CompanyID: suite.companyID, Role: domain.RoleTeller}
	suite.admin = domain.Actor{UserID: uuid.NewString(), CompanyID: suite.companyID, Role: domain.RoleAdmin}
}

func (suite *BalanceServiceTestSuite) balanceRow(userID string, provider domain.Provider, amount decimal.Decimal) *domain.ProviderBalance {
	now := time.Now().UTC()
	return &domain.ProviderBalance{
		BalanceID:       uuid.NewString(),
		CompanyID:       suite.companyID,
		UserID:          userID,
		Provider:        provider,
		StartingBalance: amount,
		Balance:         amount,
		CreatedAt:       now,
		LastUpdated:     now,
	}
}

// --- Test Cases ---

func (suite *BalanceServiceTestSuite) TestSetBalance_Success() {
	ctx := context.Background()
	saved := suite.balanceRow(suite.teller.UserID, domain.ProviderMTN, decimal.NewFromInt(1000))

	suite.mockBalanceRepo.On("UpsertBalance", ctx, mock.MatchedBy(func(b domain.ProviderBalance) bool {
		return b.CompanyID == suite.companyID &&
			b.UserID == suite.teller.UserID &&
			b.Provider == domain.ProviderMTN &&
			b.Balance.Equal(b.StartingBalance)
	})).Return(saved, nil).Once()

	balance, err := suite.service.SetBalance(ctx, suite.admin, dto.SetBalanceRequest{
		UserID:          suite.teller.UserID,
		Provider:        "mtn",
		StartingBalance: decimal.NewFromInt(1000),
	})

	suite.Require().NoError(err)
	suite.True(balance.Balance.Equal(decimal.NewFromInt(1000)))
	suite.Require().Len(suite.publisher.published, 1)
	suite.Equal(events.TypeBalanceChange, suite.publisher.published[0].Type)
}

func (suite *BalanceServiceTestSuite) TestSetBalance_TellerForbidden() {
	ctx := context.Background()

	_, err := suite.service.SetBalance(ctx, suite.teller, dto.SetBalanceRequest{
		UserID:          suite.teller.UserID,
		Provider:        "mtn",
		StartingBalance: decimal.NewFromInt(1000),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockBalanceRepo.AssertNotCalled(suite.T(), "UpsertBalance", mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestSetBalance_UnknownProvider() {
	ctx := context.Background()

	_, err := suite.service.SetBalance(ctx, suite.admin, dto.SetBalanceRequest{
		UserID:          suite.teller.UserID,
		Provider:        "zelle",
		StartingBalance: decimal.NewFromInt(1000),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BalanceServiceTestSuite) TestInitializeBalances_SkipsUnknownProviders() {
	ctx := context.Background()

	suite.mockBalanceRepo.On("UpsertBalance", ctx, mock.MatchedBy(func(b domain.ProviderBalance) bool {
		return b.Provider == domain.ProviderMTN
	})).Return(suite.balanceRow(suite.teller.UserID, domain.ProviderMTN, decimal.NewFromInt(500)), nil).Once()
	suite.mockBalanceRepo.On("UpsertBalance", ctx, mock.MatchedBy(func(b domain.ProviderBalance) bool {
		return b.Provider == domain.ProviderEcobank
	})).Return(suite.balanceRow(suite.teller.UserID, domain.ProviderEcobank, decimal.NewFromInt(2000)), nil).Once()

	balances, err := suite.service.InitializeBalances(ctx, suite.admin, dto.InitializeBalancesRequest{
		UserID: suite.teller.UserID,
		Balances: map[string]decimal.Decimal{
			"mtn":      decimal.NewFromInt(500),
			"ecobank":  decimal.NewFromInt(2000),
			"monopoly": decimal.NewFromInt(9999), // not a real provider, skipped
		},
	})

	suite.Require().NoError(err)
	suite.Len(balances, 2)
	suite.mockBalanceRepo.AssertNumberOfCalls(suite.T(), "UpsertBalance", 2)
	suite.Len(suite.publisher.published, 2)
}

func (suite *BalanceServiceTestSuite) TestAdjustBalance_Add() {
	ctx := context.Background()
	updated := suite.balanceRow(suite.teller.UserID, domain.ProviderMTN, decimal.NewFromInt(1500))

	suite.mockBalanceRepo.On("AdjustBalance", ctx, suite.companyID, suite.teller.UserID, domain.ProviderMTN, decimal.NewFromInt(500), domain.BalanceAdd).
		Return(updated, nil).Once()

	balance, err := suite.service.AdjustBalance(ctx, suite.teller, dto.AdjustBalanceRequest{
		Provider:  "mtn",
		Amount:    decimal.NewFromInt(500),
		Operation: "add",
	})

	suite.Require().NoError(err)
	suite.True(balance.Balance.Equal(decimal.NewFromInt(1500)))
	suite.Require().Len(suite.publisher.published, 1)
}

func (suite *BalanceServiceTestSuite) TestAdjustBalance_InsufficientBalance() {
	ctx := context.Background()

	suite.mockBalanceRepo.On("AdjustBalance", ctx, suite.companyID, suite.teller.UserID, domain.ProviderMTN, decimal.NewFromInt(500), domain.BalanceSubtract).
		Return(nil, apperrors.ErrInsufficientBalance).Once()

	_, err := suite.service.AdjustBalance(ctx, suite.teller, dto.AdjustBalanceRequest{
		Provider:  "mtn",
		Amount:    decimal.NewFromInt(500),
		Operation: "subtract",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientBalance)
	suite.Empty(suite.publisher.published)
}

func (suite *BalanceServiceTestSuite) TestAdjustBalance_NonPositiveAmount() {
	ctx := context.Background()

	_, err := suite.service.AdjustBalance(ctx, suite.teller, dto.AdjustBalanceRequest{
		Provider:  "mtn",
		Amount:    decimal.NewFromInt(-5),
		Operation: "add",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBalanceRepo.AssertNotCalled(suite.T(), "AdjustBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestAdjustBalance_MissingRowNotFound() {
	ctx := context.Background()

	suite.mockBalanceRepo.On("AdjustBalance", ctx, suite.companyID, suite.teller.UserID, domain.ProviderVodafone, decimal.NewFromInt(10), domain.BalanceAdd).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AdjustBalance(ctx, suite.teller, dto.AdjustBalanceRequest{
		Provider:  "vodafone",
		Amount:    decimal.NewFromInt(10),
		Operation: "add",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *BalanceServiceTestSuite) TestListBalances_TellerScopedToOwn() {
	ctx := context.Background()
	otherUser := uuid.NewString()

	suite.mockBalanceRepo.On("ListBalances", ctx, suite.companyID, mock.MatchedBy(func(f portsrepo.ListBalanceFilters) bool {
		return f.UserID != nil && *f.UserID == suite.teller.UserID
	})).Return([]domain.ProviderBalance{}, nil).Once()

	// The teller asks for someone else's floats; the filter is overridden.
	_, err := suite.service.ListBalances(ctx, suite.teller, dto.ListBalancesParams{UserID: otherUser})

	suite.Require().NoError(err)
	suite.mockBalanceRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestListBalances_AdminMayFilterByUser() {
	ctx := context.Background()
	target := uuid.NewString()

	suite.mockBalanceRepo.On("ListBalances", ctx, suite.companyID, mock.MatchedBy(func(f portsrepo.ListBalanceFilters) bool {
		return f.UserID != nil && *f.UserID == target
	})).Return([]domain.ProviderBalance{}, nil).Once()

	_, err := suite.service.ListBalances(ctx, suite.admin, dto.ListBalancesParams{UserID: target})

	suite.Require().NoError(err)
}

func TestBalanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}
